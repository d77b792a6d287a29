package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-sod/spatial/pkg/container/kdtree"
)

var (
	ErrDimNotEqual   = errors.New("vectors dimension is not equal")
	ErrUnknownMetric = errors.New("unknown metric")
)

type MetricType string

const (
	MetricEuclidean MetricType = "EUCLIDEAN"
	MetricManhattan MetricType = "MANHATTAN"
	MetricChebyshev MetricType = "CHEBYSHEV"
)

// Measure pairs a tree metric with the distance it stands for. Squared
// Euclidean values are reported as Euclidean distances.
type Measure struct {
	Type   MetricType
	Metric kdtree.Metric[float64]
}

func MeasureFor(t MetricType) (Measure, error) {
	switch t {
	case MetricEuclidean:
		return Measure{Type: t, Metric: kdtree.SquaredEuclidean[float64]{}}, nil
	case MetricManhattan:
		return Measure{Type: t, Metric: kdtree.Manhattan[float64]{}}, nil
	case MetricChebyshev:
		return Measure{Type: t, Metric: kdtree.Chebyshev[float64]{}}, nil
	default:
		return Measure{}, fmt.Errorf("%q: %w", t, ErrUnknownMetric)
	}
}

// Raw returns the metric value between vec and vec1, the quantity a tree
// built with m.Metric orders by.
func (m Measure) Raw(vec, vec1 []float64) (float64, error) {
	if len(vec) != len(vec1) {
		return 0.0, ErrDimNotEqual
	}
	var d float64
	for i := range vec {
		d = m.Metric.Combine(d, m.Metric.Axis(vec[i]-vec1[i]))
	}
	return d, nil
}

// Report converts a metric value to a distance.
func (m Measure) Report(raw float64) float64 {
	if m.Type == MetricEuclidean {
		return math.Sqrt(raw)
	}
	return raw
}

func (m Measure) Distance(vec, vec1 []float64) (float64, error) {
	d, err := m.Raw(vec, vec1)
	if err != nil {
		return 0.0, err
	}
	return m.Report(d), nil
}

func EuclideanDistance(vec, vec1 []float64) (float64, error) {
	return Measure{Type: MetricEuclidean, Metric: kdtree.SquaredEuclidean[float64]{}}.Distance(vec, vec1)
}

func ChebyshevDistance(vec, vec1 []float64) (float64, error) {
	return Measure{Type: MetricChebyshev, Metric: kdtree.Chebyshev[float64]{}}.Distance(vec, vec1)
}

func ManhattanDistance(vec, vec1 []float64) (float64, error) {
	return Measure{Type: MetricManhattan, Metric: kdtree.Manhattan[float64]{}}.Distance(vec, vec1)
}
