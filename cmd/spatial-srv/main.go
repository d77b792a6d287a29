package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/go-sod/spatial/internal/buildinfo"
	spatial "github.com/go-sod/spatial/internal/config"
	"github.com/go-sod/spatial/internal/logging"
	"github.com/go-sod/spatial/internal/predictor"
	"github.com/go-sod/spatial/internal/predictor/lof"
	"github.com/go-sod/spatial/internal/query"
	"github.com/go-sod/spatial/internal/server"
	"github.com/go-sod/spatial/internal/setup"
	"github.com/go-sod/spatial/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	err := run(ctx)
	done()
	if err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	config := spatial.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	var p predictor.Predictor
	if provide := env.ProvidePredictor(); provide != nil {
		p, err = provide()
		switch {
		case errors.Is(err, lof.ErrTooFewPoints):
			logger.Warnw("outlier scoring disabled", "error", err)
		case err != nil:
			return fmt.Errorf("predictor provider function error: %w", err)
		}
	}

	svc, err := query.NewService(&config.Query, env.Searcher(), p, env.Dataset().IDs())
	if err != nil {
		return fmt.Errorf("query.NewService: %w", err)
	}

	mux := http.NewServeMux()
	svc.Register(mux)
	mux.Handle("/health", server.HandleHealth(ctx))
	if exporter := env.Exporter(); exporter != nil {
		mux.Handle("/metrics", exporter)
	}

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcSrv, err := server.New(config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	grpcServer, health := server.NewGRPC()
	health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	logger.Infow("serving", "http", srv.Addr(), "grpc", grpcSrv.Addr(), "points", env.Searcher().Len())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ServeHTTPHandler(gctx, mux)
	})
	g.Go(func() error {
		return grpcSrv.ServeGRPC(gctx, grpcServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		health.Shutdown()
		return nil
	})
	return g.Wait()
}
