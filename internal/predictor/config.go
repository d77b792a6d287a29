package predictor

type AlgType string

const (
	AlgTypeLof AlgType = "LOF"
)

type Config struct {
	Type AlgType `envconfig:"SPATIAL_PREDICTOR_TYPE" default:"LOF"`
}

func (c Config) PredictorType() AlgType {
	return c.Type
}
