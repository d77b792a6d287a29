package rworker

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestForkRunsEveryTask(t *testing.T) {
	t.Parallel()
	var g errgroup.Group
	g.SetLimit(2)

	var count atomic.Int64
	var sum func(depth int) error
	sum = func(depth int) error {
		count.Add(1)
		if depth == 0 {
			return nil
		}
		if err := Fork(&g, func() error { return sum(depth - 1) }); err != nil {
			return err
		}
		return sum(depth - 1)
	}
	assert.NoError(t, sum(10))
	assert.NoError(t, g.Wait())
	assert.Equal(t, int64(1<<11-1), count.Load())
}

func TestForkInlineError(t *testing.T) {
	t.Parallel()
	var g errgroup.Group
	g.SetLimit(1)
	block := make(chan struct{})
	assert.NoError(t, Fork(&g, func() error { <-block; return nil }))

	errInline := errors.New("inline")
	assert.ErrorIs(t, Fork(&g, func() error { return errInline }), errInline)
	close(block)
	assert.NoError(t, g.Wait())
}
