package pqueue

import "sort"

// Queue keeps values sorted ascending by cmp, holding at most Cap of them.
// Equal values keep their insertion order.
type Queue[E any] struct {
	cap   int
	cmp   func(a, b E) int
	items []E
}

// New returns an empty queue. A negative capacity means unbounded.
func New[E any](capacity int, cmp func(a, b E) int) *Queue[E] {
	return &Queue[E]{cap: capacity, cmp: cmp}
}

// Wrap returns an empty queue storing its values in buf. The capacity of the
// queue is cap(buf) and Push never reallocates.
func Wrap[E any](buf []E, cmp func(a, b E) int) *Queue[E] {
	return &Queue[E]{cap: cap(buf), cmp: cmp, items: buf[:0]}
}

// Push inserts v at its sorted position. When the queue is full v is kept
// only if it sorts before the last value, which is then dropped. Push
// reports whether v was kept.
func (q *Queue[E]) Push(v E) bool {
	if q.cap == 0 {
		return false
	}
	n := len(q.items)
	full := q.Full()
	if full && q.cmp(v, q.items[n-1]) >= 0 {
		return false
	}
	i := sort.Search(n, func(i int) bool {
		return q.cmp(q.items[i], v) > 0
	})
	if full {
		q.items = q.items[:n-1]
	}
	var zero E
	q.items = append(q.items, zero)
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = v
	return true
}

// Full reports whether the queue holds Cap values.
func (q *Queue[E]) Full() bool {
	return q.cap >= 0 && len(q.items) >= q.cap
}

// Last returns the greatest value.
func (q *Queue[E]) Last() (E, bool) {
	if len(q.items) == 0 {
		var zero E
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

// Items returns the values in order. The slice is owned by the queue.
func (q *Queue[E]) Items() []E { return q.items }

// PopAll returns the values in order and empties the queue.
func (q *Queue[E]) PopAll() []E {
	pulled := q.items
	q.items = nil
	return pulled
}

func (q *Queue[E]) Cap() int { return q.cap }

func (q *Queue[E]) Len() int { return len(q.items) }
