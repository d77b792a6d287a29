package kdtree

// Nearest returns the item closest to q. The second result is false when the
// tree is empty. Among items at equal distance the one returned depends on
// the layout only.
//
// Nearest panics if q does not have the tree dimension.
func (t *Tree[T, S]) Nearest(q Point[S]) (Neighbor[T, S], bool) {
	t.check(q, "query")
	s := nearestSearch[T, S]{t: t, q: q}
	s.search(t.items, 0)
	return s.best, s.found
}

type nearestSearch[T any, S Scalar] struct {
	t     *Tree[T, S]
	q     Point[S]
	best  Neighbor[T, S]
	found bool
}

func (s *nearestSearch[T, S]) search(items []T, axis int) {
	if len(items) == 0 {
		return
	}
	mid := len(items) / 2
	item := items[mid]
	if d := s.t.distance(s.q, item); !s.found || less(d, s.best.Distance) {
		s.best = Neighbor[T, S]{Item: item, Distance: d}
		s.found = true
	}

	near, far, bound := s.t.branches(s.q, items, mid, axis)
	next := s.t.next(axis)
	s.search(near, next)
	if len(far) > 0 && less(bound, s.best.Distance) {
		s.search(far, next)
	}
}

// branches splits items around mid into the half on the query's side of the
// splitting plane and the other half, and returns the smallest metric
// distance any item of the other half can have.
func (t *Tree[T, S]) branches(q Point[S], items []T, mid, axis int) (near, far []T, bound S) {
	qv, sv := q.Dim(axis), t.coord(items[mid], axis)
	near, far = items[mid+1:], items[:mid]
	if less(qv, sv) {
		near, far = far, near
	}
	return near, far, t.metric.Axis(qv - sv)
}
