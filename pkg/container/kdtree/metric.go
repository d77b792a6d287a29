package kdtree

// A Metric maps coordinate differences into an order preserving surrogate of
// distance.
//
// The distance between two points is computed by folding Axis(p_a - q_a) over
// every axis a with Combine, starting from zero. Search prunes a subtree by
// comparing Axis of the perpendicular distance to the splitting plane against
// the best distance found so far, so for every axis a Metric must satisfy
//
//	distance(p, q) >= Axis(p_a - q_a)
type Metric[S Scalar] interface {
	// Axis returns the metric value of a single axis difference.
	Axis(diff S) S

	// Combine folds the contribution of one axis into acc.
	Combine(acc, axis S) S
}

// SquaredEuclidean is the sum of squared differences. It is the default metric.
type SquaredEuclidean[S Scalar] struct{}

func (SquaredEuclidean[S]) Axis(diff S) S        { return diff * diff }
func (SquaredEuclidean[S]) Combine(acc, axis S) S { return acc + axis }

// Manhattan is the sum of absolute differences.
type Manhattan[S Scalar] struct{}

func (Manhattan[S]) Axis(diff S) S        { return abs(diff) }
func (Manhattan[S]) Combine(acc, axis S) S { return acc + axis }

// Chebyshev is the largest absolute difference.
type Chebyshev[S Scalar] struct{}

func (Chebyshev[S]) Axis(diff S) S { return abs(diff) }
func (Chebyshev[S]) Combine(acc, axis S) S {
	if Compare(axis, acc) > 0 {
		return axis
	}
	return acc
}

func abs[S Scalar](v S) S {
	if v < 0 {
		return -v
	}
	return v
}
