package kdtree

import "golang.org/x/exp/constraints"

// Scalar is a signed coordinate type.
//
// Metric values are computed in the coordinate type itself. For integer
// coordinates every distance, and the metric value of any radius passed to
// WithinRadius, must fit in S or it wraps.
type Scalar interface {
	constraints.Signed | constraints.Float
}

// Compare orders a and b totally.
//
// Comparable values use their natural order. A value that is not equal to
// itself (a NaN) is ordered after every comparable value, and two such values
// compare equal. This is not the IEEE 754 totalOrder predicate: the sign and
// payload of a NaN are ignored.
func Compare[S Scalar](a, b S) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	an, bn := isNaN(a), isNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	default:
		return -1
	}
}

func isNaN[S Scalar](v S) bool {
	return v != v
}

func less[S Scalar](a, b S) bool {
	return Compare(a, b) < 0
}
