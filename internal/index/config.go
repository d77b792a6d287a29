package index

import "github.com/go-sod/spatial/internal/geom"

type AlgType string

const (
	AlgTypeKDTree AlgType = "KD_TREE"
	AlgTypeBrute  AlgType = "BRUTE"
)

type Config struct {
	AlgType    AlgType         `envconfig:"SPATIAL_INDEX_ALG" default:"KD_TREE"`
	MetricType geom.MetricType `envconfig:"SPATIAL_INDEX_METRIC" default:"EUCLIDEAN"`
	Parallel   bool            `envconfig:"SPATIAL_INDEX_PARALLEL" default:"true"`
	Workers    int             `envconfig:"SPATIAL_INDEX_WORKERS"`
	Cutoff     int             `envconfig:"SPATIAL_INDEX_CUTOFF" default:"4096"`
	Seed       uint32          `envconfig:"SPATIAL_INDEX_SEED" default:"625341585"`
}
