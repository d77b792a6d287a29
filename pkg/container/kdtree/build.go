package kdtree

import (
	"golang.org/x/sync/errgroup"

	"github.com/go-sod/spatial/pkg/rworker"
)

type builder[T any, S Scalar] struct {
	dims   int
	coord  func(T, int) S
	seed   uint32
	cutoff int
}

func (b *builder[T, S]) run(items []T) {
	b.arrange(items, 0, 0)
}

func (b *builder[T, S]) runParallel(items []T, workers int) {
	var g errgroup.Group
	g.SetLimit(workers)
	b.arrangeParallel(&g, items, 0, 0)
	_ = g.Wait()
}

// arrange places the median of items on axis at the midpoint and repeats on
// both halves with the next axis. offset is the position of items in the
// whole tree and only feeds pivot selection. The upper half is handled by the
// loop so the stack grows with the lower halves only.
func (b *builder[T, S]) arrange(items []T, offset, axis int) {
	for len(items) > 1 {
		mid := len(items) / 2
		b.selectKth(items, mid, offset, axis)
		next := (axis + 1) % b.dims
		b.arrange(items[:mid], offset, next)
		items, offset, axis = items[mid+1:], offset+mid+1, next
	}
}

func (b *builder[T, S]) arrangeParallel(g *errgroup.Group, items []T, offset, axis int) {
	for len(items) > 1 {
		if len(items) <= b.cutoff {
			b.arrange(items, offset, axis)
			return
		}
		mid := len(items) / 2
		b.selectKth(items, mid, offset, axis)
		next := (axis + 1) % b.dims
		lower, lowerOffset := items[:mid], offset
		_ = rworker.Fork(g, func() error {
			b.arrangeParallel(g, lower, lowerOffset, next)
			return nil
		})
		items, offset, axis = items[mid+1:], offset+mid+1, next
	}
}
