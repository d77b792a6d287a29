// Package lof computes the local outlier factor of points against an indexed
// dataset. The neighborhood of a dataset point never contains the point
// itself.
package lof

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-sod/spatial/internal/geom"
	"github.com/go-sod/spatial/internal/index"
	"github.com/go-sod/spatial/internal/logging"
	"github.com/go-sod/spatial/internal/predictor"
)

var _ predictor.Predictor = (*Lof)(nil)

var (
	ErrTooFewPoints = errors.New("too few points")
	ErrKTooSmall    = errors.New("the k selected in the config is too small")
)

// DefaultThreshold is the score above which a point is an outlier.
const DefaultThreshold = 1.5

type Option func(*Lof)

func WithKNum(k int) Option {
	return func(l *Lof) {
		l.kNum = k
	}
}

func WithThreshold(v float64) Option {
	return func(l *Lof) {
		l.threshold = v
	}
}

func WithWorkers(n int) Option {
	return func(l *Lof) {
		l.workers = n
	}
}

type Lof struct {
	searcher  index.Searcher
	kNum      int
	threshold float64
	workers   int

	// per dataset point
	neighbors [][]int
	kDistance []float64
	lrd       []float64
}

// New computes the k-distance and local reachability density of every point
// of s.
func New(ctx context.Context, s index.Searcher, opts ...Option) (*Lof, error) {
	l := &Lof{
		searcher:  s,
		kNum:      MinKNum,
		threshold: DefaultThreshold,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, f := range opts {
		f(l)
	}
	if l.kNum < MinKNum {
		return nil, fmt.Errorf("k %d: %w", l.kNum, ErrKTooSmall)
	}
	if n := s.Len(); n <= l.kNum {
		return nil, fmt.Errorf("unable creating lof instance, %d points for k %d: %w", n, l.kNum, ErrTooFewPoints)
	}
	if l.workers < 1 {
		l.workers = 1
	}

	start := time.Now()
	if err := l.fit(ctx); err != nil {
		return nil, fmt.Errorf("unable creating lof instance, %w", err)
	}
	logging.FromContext(ctx).Infow("lof fitted", "points", s.Len(), "k", l.kNum, "took", time.Since(start))
	return l, nil
}

func (l *Lof) KNum() int { return l.kNum }

func (l *Lof) fit(ctx context.Context) error {
	n := l.searcher.Len()
	l.neighbors = make([][]int, n)
	l.kDistance = make([]float64, n)
	l.lrd = make([]float64, n)

	// lrd needs the k-distance of every neighbor, so the passes are separate.
	if err := l.forEach(ctx, n, l.fitNeighbors); err != nil {
		return err
	}
	return l.forEach(ctx, n, func(pos int) error {
		reach := make([]float64, len(l.neighbors[pos]))
		for i, nb := range l.neighbors[pos] {
			d, err := l.searcher.Measure().Distance(l.searcher.Point(pos), l.searcher.Point(nb))
			if err != nil {
				return err
			}
			reach[i] = math.Max(l.kDistance[nb], d)
		}
		l.lrd[pos] = density(reach)
		return nil
	})
}

func (l *Lof) fitNeighbors(pos int) error {
	ns, err := l.searcher.NearestK(l.searcher.Point(pos), l.kNum, func(p int) bool { return p == pos })
	if err != nil {
		return fmt.Errorf("unable compute KNN: %w", err)
	}
	l.neighbors[pos] = make([]int, len(ns))
	for i, nb := range ns {
		l.neighbors[pos][i] = nb.Pos
	}
	l.kDistance[pos] = ns[len(ns)-1].Distance
	return nil
}

// forEach runs fn for 0 <= pos < n in contiguous chunks, one per worker.
func (l *Lof) forEach(ctx context.Context, n int, fn func(pos int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + l.workers - 1) / l.workers
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			for pos := lo; pos < hi; pos++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(pos); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (l *Lof) Predict(vec geom.Point) (*predictor.Conclusion, error) {
	ns, err := l.searcher.NearestK(vec, l.kNum, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to predict %v, %w", vec, err)
	}
	reach := make([]float64, len(ns))
	positions := make([]int, len(ns))
	for i, nb := range ns {
		reach[i] = math.Max(l.kDistance[nb.Pos], nb.Distance)
		positions[i] = nb.Pos
	}
	return l.conclude(density(reach), positions), nil
}

func (l *Lof) PredictMember(pos int) (*predictor.Conclusion, error) {
	if pos < 0 || pos >= len(l.lrd) {
		return nil, fmt.Errorf("unable to predict, no point at %d", pos)
	}
	return l.conclude(l.lrd[pos], l.neighbors[pos]), nil
}

func (l *Lof) conclude(lrd float64, neighbors []int) *predictor.Conclusion {
	var lrdSum float64
	for _, nb := range neighbors {
		lrdSum += l.lrd[nb]
	}
	score := (lrdSum / float64(len(neighbors))) / lrd
	if math.IsNaN(score) {
		// both densities infinite: the point sits on duplicates like its neighbors
		score = 1
	}
	return &predictor.Conclusion{Score: score, Outlier: score > l.threshold}
}

// density is the inverse of the mean reachability distance.
func density(reach []float64) float64 {
	var sum float64
	for _, r := range reach {
		sum += r
	}
	return 1 / (sum / float64(len(reach)))
}
