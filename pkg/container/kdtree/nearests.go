package kdtree

import (
	"fmt"

	"github.com/go-sod/spatial/pkg/pqueue"
)

// NearestK returns up to k items closest to q in ascending distance. When
// filter is not nil only items it accepts are considered, and the result
// holds min(k, number of accepted items) neighbors.
//
// NearestK panics if k < 1 or q does not have the tree dimension.
func (t *Tree[T, S]) NearestK(q Point[S], k int, filter func(T) bool) []Neighbor[T, S] {
	if k < 1 {
		panic(fmt.Sprintf("kdtree: k must be positive, got %d", k))
	}
	t.check(q, "query")
	queue := pqueue.New(k, compareNeighbors[T, S])
	t.nearests(queue, q, filter)
	return queue.PopAll()
}

// NearestInto is NearestK with k = cap(dst), storing the result in dst's
// backing array without allocating.
//
// NearestInto panics if cap(dst) == 0 or q does not have the tree dimension.
func (t *Tree[T, S]) NearestInto(dst []Neighbor[T, S], q Point[S], filter func(T) bool) []Neighbor[T, S] {
	if cap(dst) == 0 {
		panic("kdtree: destination has no capacity")
	}
	t.check(q, "query")
	queue := pqueue.Wrap(dst, compareNeighbors[T, S])
	t.nearests(queue, q, filter)
	return queue.Items()
}

func compareNeighbors[T any, S Scalar](a, b Neighbor[T, S]) int {
	return Compare(a.Distance, b.Distance)
}

func (t *Tree[T, S]) nearests(queue *pqueue.Queue[Neighbor[T, S]], q Point[S], filter func(T) bool) {
	s := nearestsSearch[T, S]{t: t, q: q, filter: filter, queue: queue}
	s.search(t.items, 0)
}

type nearestsSearch[T any, S Scalar] struct {
	t      *Tree[T, S]
	q      Point[S]
	filter func(T) bool
	queue  *pqueue.Queue[Neighbor[T, S]]
}

// admits reports whether a candidate at distance d would enter the queue.
func (s *nearestsSearch[T, S]) admits(d S) bool {
	if !s.queue.Full() {
		return true
	}
	worst, _ := s.queue.Last()
	return less(d, worst.Distance)
}

func (s *nearestsSearch[T, S]) search(items []T, axis int) {
	if len(items) == 0 {
		return
	}
	mid := len(items) / 2
	item := items[mid]
	// The filter runs before the queue is touched: a rejected item must not
	// evict a kept one.
	if d := s.t.distance(s.q, item); s.admits(d) && (s.filter == nil || s.filter(item)) {
		s.queue.Push(Neighbor[T, S]{Item: item, Distance: d})
	}

	near, far, bound := s.t.branches(s.q, items, mid, axis)
	next := s.t.next(axis)
	s.search(near, next)
	if len(far) > 0 && s.admits(bound) {
		s.search(far, next)
	}
}
