package kdtree

// IndexTree is a k-d tree of positions into a source slice. The source is
// never reordered; results are positions in it.
type IndexTree[P Point[S], S Scalar] struct {
	*Tree[int, S]
	source []P
}

// BuildIndex builds a tree of the positions of source. Dimension rules are
// those of Build. The caller must not modify source afterwards.
func BuildIndex[P Point[S], S Scalar](source []P, opts ...Option) (*IndexTree[P, S], error) {
	o := newOptions(opts)
	dims, err := dimensionsOf[P, S](source, o.dims)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(source))
	for i := range indices {
		indices[i] = i
	}
	coord := func(i, axis int) S {
		return source[i].Dim(axis)
	}
	return &IndexTree[P, S]{
		Tree:   newTree(indices, dims, coord, o),
		source: source,
	}, nil
}

// WithMetric returns an index tree sharing t's layout that measures distance with m.
func (t *IndexTree[P, S]) WithMetric(m Metric[S]) *IndexTree[P, S] {
	return &IndexTree[P, S]{Tree: t.Tree.WithMetric(m), source: t.source}
}

// Source returns the indexed slice.
func (t *IndexTree[P, S]) Source() []P { return t.source }

// Item returns the source item at position i.
func (t *IndexTree[P, S]) Item(i int) P { return t.source[i] }

// Resolve maps neighbors found by position to their source items.
func (t *IndexTree[P, S]) Resolve(ns []Neighbor[int, S]) []Neighbor[P, S] {
	out := make([]Neighbor[P, S], len(ns))
	for i, n := range ns {
		out[i] = Neighbor[P, S]{Item: t.source[n.Item], Distance: n.Distance}
	}
	return out
}
