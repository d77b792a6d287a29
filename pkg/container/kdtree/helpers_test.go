package kdtree

import (
	"math/rand"
	"sort"
)

func randomCoords(rnd *rand.Rand, n, dims int) []Coords[float64] {
	points := make([]Coords[float64], n)
	for i := range points {
		p := make(Coords[float64], dims)
		for k := range p {
			p[k] = rnd.Float64()
		}
		points[i] = p
	}
	return points
}

func cloneCoords(points []Coords[float64]) []Coords[float64] {
	out := make([]Coords[float64], len(points))
	copy(out, points)
	return out
}

func isKDTree[T any, S Scalar](t *Tree[T, S]) bool {
	return t.isPartitioned(t.items, 0)
}

func (t *Tree[T, S]) isPartitioned(items []T, axis int) bool {
	if len(items) <= 1 {
		return true
	}
	mid := len(items) / 2
	v := t.coord(items[mid], axis)
	for _, item := range items[:mid] {
		if Compare(t.coord(item, axis), v) > 0 {
			return false
		}
	}
	for _, item := range items[mid+1:] {
		if Compare(t.coord(item, axis), v) < 0 {
			return false
		}
	}
	next := (axis + 1) % t.dims
	return t.isPartitioned(items[:mid], next) && t.isPartitioned(items[mid+1:], next)
}

func sqDist(a, b Coords[float64]) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}

func bruteNearest(q Coords[float64], points []Coords[float64]) float64 {
	best := sqDist(q, points[0])
	for _, p := range points[1:] {
		if d := sqDist(q, p); d < best {
			best = d
		}
	}
	return best
}

func bruteNearestK(q Coords[float64], points []Coords[float64], k int, filter func(Coords[float64]) bool) []float64 {
	dists := []float64{}
	for _, p := range points {
		if filter == nil || filter(p) {
			dists = append(dists, sqDist(q, p))
		}
	}
	sort.Float64s(dists)
	if len(dists) > k {
		dists = dists[:k]
	}
	return dists
}

func bruteBox(lo, hi Coords[float64], points []Coords[float64]) int {
	var n int
outer:
	for _, p := range points {
		for k := range p {
			if p[k] < lo[k] || p[k] > hi[k] {
				continue outer
			}
		}
		n++
	}
	return n
}

func bruteRadius(c Coords[float64], r float64, points []Coords[float64]) int {
	var n int
	for _, p := range points {
		if sqDist(c, p) < r*r {
			n++
		}
	}
	return n
}

func distances[T any](ns []Neighbor[T, float64]) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.Distance
	}
	return out
}

// scenario is the three point example used across the query tests.
func scenario() []Coords[float64] {
	return []Coords[float64]{{1, 2, 3}, {3, 1, 2}, {2, 3, 1}}
}
