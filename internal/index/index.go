// Package index answers spatial queries over a dataset with a k-d tree or a
// linear scan.
package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sod/spatial/internal/geom"
	"github.com/go-sod/spatial/internal/logging"
	"github.com/go-sod/spatial/internal/metrics"
)

var (
	ErrUnknownAlg = errors.New("unknown index algorithm")
	ErrEmpty      = errors.New("index is empty")
	ErrInvalidK   = errors.New("k must be positive")
)

// Neighbor is a dataset point found by a query. Distance is zero for box
// queries.
type Neighbor struct {
	Pos      int
	ID       string
	Point    geom.Point
	Distance float64
}

// Searcher answers queries over a fixed set of points. Implementations are
// safe for concurrent use. Every query point must have Dimensions()
// coordinates or geom.ErrDimNotEqual is returned.
type Searcher interface {
	Len() int
	Dimensions() int
	Measure() geom.Measure
	Point(pos int) geom.Point

	// Nearest returns the closest point, or ErrEmpty.
	Nearest(q geom.Point) (Neighbor, error)

	// NearestK returns up to k closest points in ascending distance, leaving
	// out the positions skip reports. skip may be nil.
	NearestK(q geom.Point, k int, skip func(pos int) bool) ([]Neighbor, error)

	// WithinBox returns the points inside the closed box [lo, hi] by position.
	WithinBox(lo, hi geom.Point) ([]Neighbor, error)

	// WithinRadius returns the points closer than r to center by position.
	WithinRadius(center geom.Point, r float64) ([]Neighbor, error)
}

// New builds a searcher of cfg.AlgType over points. ids name the points and
// may be nil. dims is the dimension of an empty point set and ignored
// otherwise.
func New(ctx context.Context, cfg *Config, dims int, ids []string, points []geom.Point) (Searcher, error) {
	logger := logging.FromContext(ctx)
	if ids != nil && len(ids) != len(points) {
		return nil, fmt.Errorf("%d ids for %d points", len(ids), len(points))
	}
	if len(points) > 0 {
		dims = points[0].Dimensions()
	}
	measure, err := geom.MeasureFor(cfg.MetricType)
	if err != nil {
		return nil, fmt.Errorf("unable to create index: %w", err)
	}
	base := entries{ids: ids, points: points, dims: dims, measure: measure}

	start := time.Now()
	var s Searcher
	switch cfg.AlgType {
	case AlgTypeKDTree:
		s, err = newKD(base, cfg)
	case AlgTypeBrute:
		s, err = newBrute(base)
	default:
		return nil, fmt.Errorf("alg type %q: %w", cfg.AlgType, ErrUnknownAlg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to create index: %w", err)
	}
	took := time.Since(start)
	metrics.RecordBuild(ctx, string(cfg.AlgType), len(points), took)
	logger.Infow("index built",
		"alg", cfg.AlgType,
		"metric", cfg.MetricType,
		"points", len(points),
		"dimensions", dims,
		"took", took,
	)
	return s, nil
}

// entries holds what every Searcher shares.
type entries struct {
	ids     []string
	points  []geom.Point
	dims    int
	measure geom.Measure
}

func (e *entries) Len() int                 { return len(e.points) }
func (e *entries) Dimensions() int          { return e.dims }
func (e *entries) Measure() geom.Measure    { return e.measure }
func (e *entries) Point(pos int) geom.Point { return e.points[pos] }

func (e *entries) id(pos int) string {
	if e.ids == nil {
		return ""
	}
	return e.ids[pos]
}

func (e *entries) neighbor(pos int, raw float64) Neighbor {
	return Neighbor{
		Pos:      pos,
		ID:       e.id(pos),
		Point:    e.points[pos],
		Distance: e.measure.Report(raw),
	}
}

func (e *entries) check(qs ...geom.Point) error {
	for _, q := range qs {
		if q.Dimensions() != e.dims {
			return fmt.Errorf("query has %d dimensions, index has %d: %w", q.Dimensions(), e.dims, geom.ErrDimNotEqual)
		}
	}
	return nil
}
