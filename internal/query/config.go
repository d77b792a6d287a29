package query

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"SPATIAL_QUERY_REQUEST_TIMEOUT" default:"30s"`
	MaxBatch       int           `envconfig:"SPATIAL_QUERY_MAX_BATCH" default:"100"`
	MaxK           int           `envconfig:"SPATIAL_QUERY_MAX_K" default:"1000"`
	Token          string        `envconfig:"SPATIAL_QUERY_TOKEN"`
}
