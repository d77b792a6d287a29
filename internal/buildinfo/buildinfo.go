package buildinfo

const Graffiti = "            _   _      _ \n ___ _ __  __ _| |_(_) __ _| |\n/ __| '_ \\/ _` | __| |/ _` | |\n\\__ \\ |_) | (_| | |_| | (_| | |\n|___/ .__/ \\__,_|\\__|_|\\__,_|_|\n    |_|\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "spatial"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
