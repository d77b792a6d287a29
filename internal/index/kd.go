package index

import (
	"sort"

	"github.com/go-sod/spatial/internal/geom"
	"github.com/go-sod/spatial/pkg/container/kdtree"
)

type kdSearcher struct {
	entries
	tree *kdtree.IndexTree[geom.Point, float64]
}

func newKD(e entries, cfg *Config) (*kdSearcher, error) {
	opts := []kdtree.Option{
		kdtree.WithDimensions(e.dims),
		kdtree.WithSeed(cfg.Seed),
	}
	if cfg.Cutoff > 0 {
		opts = append(opts, kdtree.WithCutoff(cfg.Cutoff))
	}
	if cfg.Workers > 0 {
		opts = append(opts, kdtree.WithWorkers(cfg.Workers))
	}
	if cfg.Parallel {
		opts = append(opts, kdtree.WithParallel())
	}
	tree, err := kdtree.BuildIndex[geom.Point, float64](e.points, opts...)
	if err != nil {
		return nil, err
	}
	return &kdSearcher{entries: e, tree: tree.WithMetric(e.measure.Metric)}, nil
}

func (s *kdSearcher) Nearest(q geom.Point) (Neighbor, error) {
	if err := s.check(q); err != nil {
		return Neighbor{}, err
	}
	n, ok := s.tree.Nearest(q)
	if !ok {
		return Neighbor{}, ErrEmpty
	}
	return s.neighbor(n.Item, n.Distance), nil
}

func (s *kdSearcher) NearestK(q geom.Point, k int, skip func(pos int) bool) ([]Neighbor, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if err := s.check(q); err != nil {
		return nil, err
	}
	var filter func(int) bool
	if skip != nil {
		filter = func(pos int) bool { return !skip(pos) }
	}
	found := s.tree.NearestK(q, k, filter)
	out := make([]Neighbor, len(found))
	for i, n := range found {
		out[i] = s.neighbor(n.Item, n.Distance)
	}
	return out, nil
}

func (s *kdSearcher) WithinBox(lo, hi geom.Point) ([]Neighbor, error) {
	if err := s.check(lo, hi); err != nil {
		return nil, err
	}
	return s.positions(s.tree.WithinBox(lo, hi), nil), nil
}

func (s *kdSearcher) WithinRadius(center geom.Point, r float64) ([]Neighbor, error) {
	if err := s.check(center); err != nil {
		return nil, err
	}
	return s.positions(s.tree.WithinRadius(center, r), center), nil
}

// positions sorts found and resolves it, measuring distances from center
// when it is not nil.
func (s *kdSearcher) positions(found []int, center geom.Point) []Neighbor {
	if len(found) == 0 {
		return nil
	}
	sort.Ints(found)
	out := make([]Neighbor, len(found))
	for i, pos := range found {
		var raw float64
		if center != nil {
			raw, _ = s.measure.Raw(center, s.points[pos])
		}
		out[i] = s.neighbor(pos, raw)
	}
	return out
}
