package index

import (
	"fmt"
	"math"

	"github.com/go-sod/spatial/internal/geom"
	"github.com/go-sod/spatial/pkg/container/kdtree"
	"github.com/go-sod/spatial/pkg/pqueue"
)

// bruteSearcher scans every point. It shares the ordering and metric of the
// tree and serves as its reference.
type bruteSearcher struct {
	entries
}

func newBrute(e entries) (*bruteSearcher, error) {
	for i, p := range e.points {
		if p.Dimensions() != e.dims {
			return nil, fmt.Errorf("point %d has %d dimensions, want %d: %w", i, p.Dimensions(), e.dims, kdtree.ErrDimensions)
		}
	}
	return &bruteSearcher{entries: e}, nil
}

type candidate struct {
	pos int
	raw float64
}

func compareCandidates(a, b candidate) int {
	return kdtree.Compare(a.raw, b.raw)
}

func (s *bruteSearcher) Nearest(q geom.Point) (Neighbor, error) {
	ns, err := s.NearestK(q, 1, nil)
	if err != nil {
		return Neighbor{}, err
	}
	if len(ns) == 0 {
		return Neighbor{}, ErrEmpty
	}
	return ns[0], nil
}

func (s *bruteSearcher) NearestK(q geom.Point, k int, skip func(pos int) bool) ([]Neighbor, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if err := s.check(q); err != nil {
		return nil, err
	}
	queue := pqueue.New(k, compareCandidates)
	for pos, p := range s.points {
		if skip != nil && skip(pos) {
			continue
		}
		raw, _ := s.measure.Raw(q, p)
		queue.Push(candidate{pos: pos, raw: raw})
	}
	found := queue.PopAll()
	out := make([]Neighbor, len(found))
	for i, c := range found {
		out[i] = s.neighbor(c.pos, c.raw)
	}
	return out, nil
}

func (s *bruteSearcher) WithinBox(lo, hi geom.Point) ([]Neighbor, error) {
	if err := s.check(lo, hi); err != nil {
		return nil, err
	}
	var out []Neighbor
outer:
	for pos, p := range s.points {
		for a := range p {
			if kdtree.Compare(p[a], lo[a]) < 0 || kdtree.Compare(p[a], hi[a]) > 0 {
				continue outer
			}
		}
		out = append(out, s.neighbor(pos, 0))
	}
	return out, nil
}

func (s *bruteSearcher) WithinRadius(center geom.Point, r float64) ([]Neighbor, error) {
	if err := s.check(center); err != nil {
		return nil, err
	}
	if math.IsNaN(r) || r < 0 {
		return nil, nil
	}
	limit := s.measure.Metric.Axis(r)
	var out []Neighbor
	for pos, p := range s.points {
		if raw, _ := s.measure.Raw(center, p); kdtree.Compare(raw, limit) < 0 {
			out = append(out, s.neighbor(pos, raw))
		}
	}
	return out, nil
}
