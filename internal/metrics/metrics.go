// Package metrics defines the opencensus measures of index builds and
// queries and exposes them to prometheus.
package metrics

import (
	"context"
	"fmt"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	BuildLatencyMs = stats.Float64("spatial/index/build_latency", "Index build latency", stats.UnitMilliseconds)
	BuildPoints    = stats.Int64("spatial/index/points", "Points in the index", stats.UnitDimensionless)
	QueryLatencyMs = stats.Float64("spatial/query/latency", "Query latency", stats.UnitMilliseconds)
	QueryResults   = stats.Int64("spatial/query/results", "Items returned by a query", stats.UnitDimensionless)

	KeyAlg    = tag.MustNewKey("alg")
	KeyOp     = tag.MustNewKey("op")
	KeyStatus = tag.MustNewKey("status")
)

var latencyBuckets = view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000, 5000)

var Views = []*view.View{
	{
		Name:        "spatial/index/build_latency",
		Measure:     BuildLatencyMs,
		Description: "Distribution of index build latencies",
		TagKeys:     []tag.Key{KeyAlg},
		Aggregation: latencyBuckets,
	},
	{
		Name:        "spatial/index/points",
		Measure:     BuildPoints,
		Description: "Points in the last built index",
		TagKeys:     []tag.Key{KeyAlg},
		Aggregation: view.LastValue(),
	},
	{
		Name:        "spatial/query/latency",
		Measure:     QueryLatencyMs,
		Description: "Distribution of query latencies",
		TagKeys:     []tag.Key{KeyOp, KeyStatus},
		Aggregation: latencyBuckets,
	},
	{
		Name:        "spatial/query/count",
		Measure:     QueryLatencyMs,
		Description: "Number of queries",
		TagKeys:     []tag.Key{KeyOp, KeyStatus},
		Aggregation: view.Count(),
	},
	{
		Name:        "spatial/query/results",
		Measure:     QueryResults,
		Description: "Items returned by queries",
		TagKeys:     []tag.Key{KeyOp},
		Aggregation: view.Sum(),
	},
}

// Register registers Views with opencensus.
func Register() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("register views: %w", err)
	}
	return nil
}

// NewExporter returns a prometheus exporter of the registered views. The
// exporter is an http.Handler serving the scrape endpoint.
func NewExporter(namespace string) (*prometheus.Exporter, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	return pe, nil
}

func RecordBuild(ctx context.Context, alg string, points int, took time.Duration) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyAlg, alg)},
		BuildLatencyMs.M(millis(took)),
		BuildPoints.M(int64(points)),
	)
}

func RecordQuery(ctx context.Context, op string, results int, took time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyOp, op), tag.Upsert(KeyStatus, status)},
		QueryLatencyMs.M(millis(took)),
		QueryResults.M(int64(results)),
	)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
