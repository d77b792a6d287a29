/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package kdtree implements an implicit k-d tree.
//
// A tree is a slice of items reordered in place so that the element at the
// midpoint of every sub-range splits that sub-range on the sub-range's axis.
// No nodes or links are allocated: position in the slice is the topology.
// A built tree is never modified and all queries are safe for concurrent use.
package kdtree

import (
	"errors"
	"fmt"
)

// ErrDimensions is returned when items do not share the tree dimension.
var ErrDimensions = errors.New("kdtree: invalid dimensions")

// A Point exposes its coordinates.
type Point[S Scalar] interface {
	// Dim returns the coordinate on axis, 0 <= axis < Dimensions().
	Dim(axis int) S

	// Dimensions returns the number of coordinates.
	Dimensions() int
}

// Coords is a Point backed by a slice.
type Coords[S Scalar] []S

func (c Coords[S]) Dim(axis int) S  { return c[axis] }
func (c Coords[S]) Dimensions() int { return len(c) }

// A Neighbor is a search result: an item and its metric distance from the query.
type Neighbor[T any, S Scalar] struct {
	Item     T
	Distance S
}

// Tree is a k-d tree over a slice of T.
type Tree[T any, S Scalar] struct {
	items  []T
	dims   int
	coord  func(T, int) S
	metric Metric[S]
}

// Build reorders items into a k-d tree and returns a Tree viewing them.
// The dimension is taken from WithDimensions or from the first item, and every
// item must agree with it. The caller must not modify items afterwards.
func Build[P Point[S], S Scalar](items []P, opts ...Option) (*Tree[P, S], error) {
	o := newOptions(opts)
	dims, err := dimensionsOf[P, S](items, o.dims)
	if err != nil {
		return nil, err
	}
	return newTree(items, dims, pointCoord[P, S], o), nil
}

// BuildParallel is Build with the left and right halves of large sub-ranges
// arranged concurrently.
func BuildParallel[P Point[S], S Scalar](items []P, opts ...Option) (*Tree[P, S], error) {
	return Build[P, S](items, append(opts[:len(opts):len(opts)], WithParallel())...)
}

// BuildFunc reorders items into a k-d tree using coord to read the coordinate
// of an item on an axis. dims must be positive.
func BuildFunc[T any, S Scalar](items []T, dims int, coord func(item T, axis int) S, opts ...Option) (*Tree[T, S], error) {
	if dims <= 0 {
		return nil, fmt.Errorf("dimension %d: %w", dims, ErrDimensions)
	}
	return newTree(items, dims, coord, newOptions(opts)), nil
}

func newTree[T any, S Scalar](items []T, dims int, coord func(T, int) S, o options) *Tree[T, S] {
	b := builder[T, S]{
		dims:   dims,
		coord:  coord,
		seed:   o.seed,
		cutoff: o.cutoff,
	}
	if o.parallel {
		b.runParallel(items, o.workers)
	} else {
		b.run(items)
	}
	return &Tree[T, S]{
		items:  items,
		dims:   dims,
		coord:  coord,
		metric: SquaredEuclidean[S]{},
	}
}

func pointCoord[P Point[S], S Scalar](p P, axis int) S {
	return p.Dim(axis)
}

func dimensionsOf[P Point[S], S Scalar](items []P, dims int) (int, error) {
	if dims == 0 && len(items) > 0 {
		dims = items[0].Dimensions()
	}
	if dims < 0 || (dims == 0 && len(items) > 0) {
		return 0, fmt.Errorf("dimension %d: %w", dims, ErrDimensions)
	}
	for i, p := range items {
		if n := p.Dimensions(); n != dims {
			return 0, fmt.Errorf("item %d has %d dimensions, want %d: %w", i, n, dims, ErrDimensions)
		}
	}
	return dims, nil
}

// WithMetric returns a tree sharing t's layout that measures distance with m.
// The layout does not depend on the metric.
func (t *Tree[T, S]) WithMetric(m Metric[S]) *Tree[T, S] {
	c := *t
	c.metric = m
	return &c
}

// Len returns the number of items in the tree.
func (t *Tree[T, S]) Len() int { return len(t.items) }

// Dimensions returns the tree dimension. An empty tree built without
// WithDimensions reports zero and accepts queries of any dimension.
func (t *Tree[T, S]) Dimensions() int { return t.dims }

// Items returns the items in tree order. The slice must not be modified.
func (t *Tree[T, S]) Items() []T { return t.items }

func (t *Tree[T, S]) check(q Point[S], name string) {
	if t.dims != 0 && q.Dimensions() != t.dims {
		panic(fmt.Sprintf("kdtree: %s has %d dimensions, tree has %d", name, q.Dimensions(), t.dims))
	}
}

func (t *Tree[T, S]) next(axis int) int {
	return (axis + 1) % t.dims
}

func (t *Tree[T, S]) distance(q Point[S], item T) S {
	var d S
	for k := 0; k < t.dims; k++ {
		d = t.metric.Combine(d, t.metric.Axis(q.Dim(k)-t.coord(item, k)))
	}
	return d
}
