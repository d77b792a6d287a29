package srvenv

import (
	"contrib.go.opencensus.io/exporter/prometheus"

	"github.com/go-sod/spatial/internal/dataset"
	"github.com/go-sod/spatial/internal/index"
	"github.com/go-sod/spatial/internal/predictor"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	dataset   *dataset.Dataset
	searcher  index.Searcher
	predictor predictor.ProvideFn
	exporter  *prometheus.Exporter
}

func (s *SrvEnv) Dataset() *dataset.Dataset {
	return s.dataset
}

func (s *SrvEnv) Searcher() index.Searcher {
	return s.searcher
}

func (s *SrvEnv) ProvidePredictor() predictor.ProvideFn {
	return s.predictor
}

// Exporter returns the prometheus exporter, or nil when metrics are disabled.
func (s *SrvEnv) Exporter() *prometheus.Exporter {
	return s.exporter
}

func WithDataset(ds *dataset.Dataset) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.dataset = ds
		return s
	}
}

func WithSearcher(searcher index.Searcher) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.searcher = searcher
		return s
	}
}

func WithPredictor(fn predictor.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.predictor = fn
		return s
	}
}

func WithExporter(pe *prometheus.Exporter) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.exporter = pe
		return s
	}
}
