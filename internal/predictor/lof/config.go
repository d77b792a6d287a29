package lof

// MinKNum is the smallest neighborhood LOF is computed over.
const MinKNum = 3

type Config struct {
	KNum      int     `envconfig:"SPATIAL_LOF_K_NUM" default:"3"`
	Threshold float64 `envconfig:"SPATIAL_LOF_THRESHOLD" default:"1.5"`
	Workers   int     `envconfig:"SPATIAL_LOF_WORKERS"`
}

// Options turns c into the options New takes. Workers only applies when
// positive.
func (c *Config) Options() []Option {
	opts := []Option{
		WithKNum(c.KNum),
		WithThreshold(c.Threshold),
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
