// Package setup turns a configuration struct into a server environment.
// Each capability is enabled by the provider interfaces the struct implements.
package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/spatial/internal/dataset"
	"github.com/go-sod/spatial/internal/index"
	"github.com/go-sod/spatial/internal/logging"
	"github.com/go-sod/spatial/internal/metrics"
	"github.com/go-sod/spatial/internal/predictor"
	"github.com/go-sod/spatial/internal/predictor/lof"
	"github.com/go-sod/spatial/internal/srvenv"
)

type DatasetConfigProvider interface {
	DatasetPath() string
}

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

type PredictorConfigProvider interface {
	PredictorConfig() *predictor.Config
	LofConfig() *lof.Config
}

type MetricsConfigProvider interface {
	MetricsEnabled() bool
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	return SetupWith(ctx, config)
}

// SetupWith is Setup for a config that is already populated.
func SetupWith(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var (
		serverEnvOpts []srvenv.Option
		ds            *dataset.Dataset
		searcher      index.Searcher
	)

	if metricsConfigProvider, ok := config.(MetricsConfigProvider); ok && metricsConfigProvider.MetricsEnabled() {
		logger.Info("Configuring metrics")
		if err := metrics.Register(); err != nil {
			return nil, err
		}
		pe, err := metrics.NewExporter("spatial")
		if err != nil {
			return nil, err
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithExporter(pe))
	}

	if datasetConfigProvider, ok := config.(DatasetConfigProvider); ok {
		logger.Infow("Loading dataset", "path", datasetConfigProvider.DatasetPath())
		loaded, err := dataset.Load(datasetConfigProvider.DatasetPath())
		if err != nil {
			return nil, fmt.Errorf("unable to load dataset: %w", err)
		}
		ds = loaded
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDataset(ds))
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		if ds == nil {
			return nil, fmt.Errorf("index configured without a dataset")
		}
		logger.Info("Building index")
		s, err := index.New(ctx, indexConfigProvider.IndexConfig(), ds.Dimensions, ds.IDs(), ds.Vectors())
		if err != nil {
			return nil, fmt.Errorf("unable to build index: %w", err)
		}
		searcher = s
		serverEnvOpts = append(serverEnvOpts, srvenv.WithSearcher(searcher))
	}

	if predictorConfigProvider, ok := config.(PredictorConfigProvider); ok {
		if searcher == nil {
			return nil, fmt.Errorf("predictor configured without an index")
		}
		logger.Info("Configuring predictor")
		provideFn, err := ProvidePredictorFor(ctx, predictorConfigProvider, searcher)
		if err != nil {
			return nil, fmt.Errorf("unable create predictor provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPredictor(provideFn))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvidePredictorFor(ctx context.Context, provider PredictorConfigProvider, searcher index.Searcher) (predictor.ProvideFn, error) {
	cfg := provider.PredictorConfig()
	switch cfg.PredictorType() {
	case predictor.AlgTypeLof:
		cfgLof := provider.LofConfig()
		return func() (predictor.Predictor, error) {
			l, err := lof.New(ctx, searcher, cfgLof.Options()...)
			if err != nil {
				return nil, fmt.Errorf("unable create lof instance: %w", err)
			}
			return l, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown predictor type: %s", cfg.PredictorType())
	}
}
