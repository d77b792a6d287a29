package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/spatial/internal/dataset"
	"github.com/go-sod/spatial/internal/geom"
	"github.com/go-sod/spatial/internal/httputil"
	"github.com/go-sod/spatial/internal/index"
	"github.com/go-sod/spatial/internal/logging"
	"github.com/go-sod/spatial/internal/predictor"
	"github.com/go-sod/spatial/internal/predictor/lof"
	"github.com/go-sod/spatial/internal/query"
	"github.com/go-sod/spatial/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	err := run(ctx, os.Args[1:], os.Stdout)
	done()
	if err != nil {
		logger.Fatal(err)
	}
}

type flags struct {
	data    string
	remote  string
	op      string
	q       string
	hi      string
	k       int
	r       float64
	id      string
	exclude string
	alg     string
	metric  string
}

func parse(args []string) (*flags, error) {
	var f flags
	fs := flag.NewFlagSet("spatial", flag.ContinueOnError)
	fs.StringVar(&f.data, "data", "", "TOML dataset to index")
	fs.StringVar(&f.remote, "remote", "", "base URL of a spatial-srv to query instead of -data")
	fs.StringVar(&f.op, "op", string(query.OpNearest), "nearest, knn, within, radius or outlier")
	fs.StringVar(&f.q, "q", "", "query point, or lower corner for within")
	fs.StringVar(&f.hi, "hi", "", "upper corner for within")
	fs.IntVar(&f.k, "k", 1, "neighbors for knn")
	fs.Float64Var(&f.r, "r", 0, "radius for radius")
	fs.StringVar(&f.id, "id", "", "dataset id to score for outlier")
	fs.StringVar(&f.exclude, "exclude", "", "comma separated ids left out of knn")
	fs.StringVar(&f.alg, "alg", "", "override SPATIAL_INDEX_ALG")
	fs.StringVar(&f.metric, "metric", "", "override SPATIAL_INDEX_METRIC")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if (f.data == "") == (f.remote == "") {
		return nil, fmt.Errorf("exactly one of -data and -remote is required")
	}
	return &f, nil
}

func (f *flags) query() (query.Query, error) {
	var q query.Query
	if f.q != "" {
		p, err := geom.Parse(f.q)
		if err != nil {
			return q, fmt.Errorf("-q: %w", err)
		}
		q.Point = p
	}
	switch query.Op(f.op) {
	case query.OpKNN:
		q.K = f.k
		if f.exclude != "" {
			q.Exclude = strings.Split(f.exclude, ",")
		}
	case query.OpWithin:
		hi, err := geom.Parse(f.hi)
		if err != nil {
			return q, fmt.Errorf("-hi: %w", err)
		}
		q.Lo, q.Hi, q.Point = q.Point, hi, nil
	case query.OpRadius:
		q.Radius = f.r
	case query.OpOutlier:
		if f.id != "" {
			q.ID, q.Point = f.id, nil
		}
	}
	return q, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f, err := parse(args)
	if err != nil {
		return err
	}
	q, err := f.query()
	if err != nil {
		return err
	}

	var resp query.Response
	if f.remote != "" {
		resp, err = remote(ctx, f, q)
	} else {
		resp, err = local(ctx, f, q)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func remote(ctx context.Context, f *flags, q query.Query) (query.Response, error) {
	var cfg httputil.ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return query.Response{}, fmt.Errorf("error loading environment variables: %w", err)
	}
	client, err := httputil.NewClient(cfg)
	if err != nil {
		return query.Response{}, err
	}
	var resp query.Response
	url := strings.TrimSuffix(f.remote, "/") + "/" + f.op
	err = httputil.PostJSON(ctx, client, url, query.Request{Queries: []query.Query{q}}, &resp)
	return resp, err
}

func local(ctx context.Context, f *flags, q query.Query) (query.Response, error) {
	var (
		indexCfg index.Config
		queryCfg query.Config
		lofCfg   lof.Config
	)
	for _, cfg := range []interface{}{&indexCfg, &queryCfg, &lofCfg} {
		if err := envconfig.Process("", cfg); err != nil {
			return query.Response{}, fmt.Errorf("error loading environment variables: %w", err)
		}
	}
	if f.alg != "" {
		indexCfg.AlgType = index.AlgType(f.alg)
	}
	if f.metric != "" {
		indexCfg.MetricType = geom.MetricType(strings.ToUpper(f.metric))
	}

	ds, err := dataset.Load(f.data)
	if err != nil {
		return query.Response{}, err
	}
	searcher, err := index.New(ctx, &indexCfg, ds.Dimensions, ds.IDs(), ds.Vectors())
	if err != nil {
		return query.Response{}, err
	}
	var p predictor.Predictor
	if query.Op(f.op) == query.OpOutlier {
		l, err := lof.New(ctx, searcher, lofCfg.Options()...)
		if err != nil {
			return query.Response{}, err
		}
		p = l
	}
	svc, err := query.NewService(&queryCfg, searcher, p, ds.IDs())
	if err != nil {
		return query.Response{}, err
	}
	res, err := svc.Answer(ctx, query.Op(f.op), q)
	if err != nil {
		return query.Response{}, err
	}
	return query.Response{Results: []query.Result{res}}, nil
}
