package spatial

import (
	"github.com/go-sod/spatial/internal/index"
	"github.com/go-sod/spatial/internal/predictor"
	"github.com/go-sod/spatial/internal/predictor/lof"
	"github.com/go-sod/spatial/internal/query"
	"github.com/go-sod/spatial/internal/setup"
)

var (
	_ setup.DatasetConfigProvider   = (*Config)(nil)
	_ setup.IndexConfigProvider     = (*Config)(nil)
	_ setup.PredictorConfigProvider = (*Config)(nil)
	_ setup.MetricsConfigProvider   = (*Config)(nil)
)

type Config struct {
	SrvAddr   string `envconfig:"SPATIAL_ADDR" default:":8787"`
	GRPCAddr  string `envconfig:"SPATIAL_GRPC_ADDR" default:":8788"`
	Metrics   bool   `envconfig:"SPATIAL_METRICS" default:"true"`
	Dataset   string `envconfig:"SPATIAL_DATASET" required:"true"`
	Index     index.Config
	Query     query.Config
	Predictor predictor.Config
	Lof       lof.Config
}

func (c *Config) DatasetPath() string {
	return c.Dataset
}

func (c *Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c *Config) PredictorConfig() *predictor.Config {
	return &c.Predictor
}

func (c *Config) LofConfig() *lof.Config {
	return &c.Lof
}

func (c *Config) MetricsEnabled() bool {
	return c.Metrics
}
