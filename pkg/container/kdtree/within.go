package kdtree

// WithinFunc returns the items accepted by check whose coordinates cmp places
// inside a window on every axis. cmp(v, axis) reports whether v is below (-1),
// inside (0) or above (+1) the window on axis; the windows must be intervals
// under Compare. A nil check accepts every item. The result is unordered.
func (t *Tree[T, S]) WithinFunc(cmp func(v S, axis int) int, check func(T) bool) []T {
	var out []T
	t.within(&out, t.items, 0, cmp, check)
	return out
}

func (t *Tree[T, S]) within(out *[]T, items []T, axis int, cmp func(S, int) int, check func(T) bool) {
	if len(items) == 0 {
		return
	}
	mid := len(items) / 2
	item := items[mid]
	lower, upper := items[:mid], items[mid+1:]
	next := t.next(axis)
	switch c := cmp(t.coord(item, axis), axis); {
	case c < 0:
		t.within(out, upper, next, cmp, check)
	case c > 0:
		t.within(out, lower, next, cmp, check)
	default:
		if t.inside(item, axis, cmp) && (check == nil || check(item)) {
			*out = append(*out, item)
		}
		t.within(out, lower, next, cmp, check)
		t.within(out, upper, next, cmp, check)
	}
}

// inside checks the axes other than axis, starting after it.
func (t *Tree[T, S]) inside(item T, axis int, cmp func(S, int) int) bool {
	for i := 1; i < t.dims; i++ {
		a := (axis + i) % t.dims
		if cmp(t.coord(item, a), a) != 0 {
			return false
		}
	}
	return true
}

// WithinBox returns the items with lo_a <= x_a <= hi_a on every axis a. The
// result is empty when lo exceeds hi on some axis.
//
// WithinBox panics if lo or hi does not have the tree dimension.
func (t *Tree[T, S]) WithinBox(lo, hi Point[S]) []T {
	t.check(lo, "lower corner")
	t.check(hi, "upper corner")
	for a := 0; a < t.dims; a++ {
		if Compare(lo.Dim(a), hi.Dim(a)) > 0 {
			return nil
		}
	}
	return t.WithinFunc(func(v S, axis int) int {
		switch {
		case less(v, lo.Dim(axis)):
			return -1
		case less(hi.Dim(axis), v):
			return 1
		}
		return 0
	}, nil)
}

// WithinRadius returns the items whose metric distance from center is
// strictly less than the metric value of radius. Points on the boundary are
// excluded. The result is empty for a negative or NaN radius.
//
// WithinRadius panics if center does not have the tree dimension.
func (t *Tree[T, S]) WithinRadius(center Point[S], radius S) []T {
	t.check(center, "center")
	if isNaN(radius) || radius < 0 {
		return nil
	}
	limit := t.metric.Axis(radius)
	return t.WithinFunc(func(v S, axis int) int {
		c := center.Dim(axis)
		lo, hi := c-radius, c+radius
		// A bound that wrapped around is unbounded on that side.
		switch {
		case !(lo > c) && less(v, lo):
			return -1
		case !(hi < c) && less(hi, v):
			return 1
		}
		return 0
	}, func(item T) bool {
		return less(t.distance(center, item), limit)
	})
}
