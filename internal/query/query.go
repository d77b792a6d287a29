// Package query answers batches of spatial queries over HTTP.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-sod/spatial/internal/geom"
	"github.com/go-sod/spatial/internal/index"
	"github.com/go-sod/spatial/internal/metrics"
	"github.com/go-sod/spatial/internal/predictor"
)

type Op string

const (
	OpNearest Op = "nearest"
	OpKNN     Op = "knn"
	OpWithin  Op = "within"
	OpRadius  Op = "radius"
	OpOutlier Op = "outlier"
)

var Ops = []Op{OpNearest, OpKNN, OpWithin, OpRadius, OpOutlier}

var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrUnknownOp    = errors.New("unknown operation")
	ErrUnknownID    = errors.New("unknown id")
	ErrNoPredictor  = errors.New("outlier scoring is not configured")
)

// Query is one query of a batch. The fields used depend on the operation:
// point for nearest, knn, radius and outlier, k and exclude for knn, lo and
// hi for within, radius for radius, id in place of point for outlier.
type Query struct {
	Point   []float64 `json:"point,omitempty"`
	K       int       `json:"k,omitempty"`
	Exclude []string  `json:"exclude,omitempty"`
	Lo      []float64 `json:"lo,omitempty"`
	Hi      []float64 `json:"hi,omitempty"`
	Radius  float64   `json:"radius,omitempty"`
	ID      string    `json:"id,omitempty"`
}

type Request struct {
	Queries []Query `json:"queries"`
}

// Float encodes non-finite values as null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

type Neighbor struct {
	ID       string    `json:"id"`
	Point    []float64 `json:"point"`
	Distance Float     `json:"distance"`
}

type Result struct {
	Neighbors []Neighbor `json:"neighbors"`
	Score     *Float     `json:"score,omitempty"`
	Outlier   *bool      `json:"outlier,omitempty"`
}

type Response struct {
	RequestID string   `json:"requestId"`
	Results   []Result `json:"results"`
}

// Service answers queries against one index. The predictor may be nil, in
// which case outlier queries fail with ErrNoPredictor.
type Service struct {
	cfg       *Config
	searcher  index.Searcher
	predictor predictor.Predictor
	ids       []string
	positions map[string]int
}

func NewService(cfg *Config, s index.Searcher, p predictor.Predictor, ids []string) (*Service, error) {
	if len(ids) != s.Len() {
		return nil, fmt.Errorf("%d ids for %d points", len(ids), s.Len())
	}
	positions := make(map[string]int, len(ids))
	for pos, id := range ids {
		positions[id] = pos
	}
	return &Service{cfg: cfg, searcher: s, predictor: p, ids: ids, positions: positions}, nil
}

// Answer runs q as op and records its latency.
func (s *Service) Answer(ctx context.Context, op Op, q Query) (Result, error) {
	start := time.Now()
	res, err := s.answer(op, q)
	metrics.RecordQuery(ctx, string(op), len(res.Neighbors), time.Since(start), err)
	return res, err
}

func (s *Service) answer(op Op, q Query) (Result, error) {
	switch op {
	case OpNearest:
		n, err := s.searcher.Nearest(q.Point)
		if errors.Is(err, index.ErrEmpty) {
			return Result{Neighbors: []Neighbor{}}, nil
		}
		if err != nil {
			return Result{}, err
		}
		return s.result([]index.Neighbor{n}), nil
	case OpKNN:
		k := q.K
		if k == 0 {
			k = 1
		}
		if k < 0 || k > s.cfg.MaxK {
			return Result{}, fmt.Errorf("k %d outside [1, %d]: %w", q.K, s.cfg.MaxK, ErrInvalidQuery)
		}
		skip, err := s.excluded(q.Exclude)
		if err != nil {
			return Result{}, err
		}
		ns, err := s.searcher.NearestK(q.Point, k, skip)
		if err != nil {
			return Result{}, err
		}
		return s.result(ns), nil
	case OpWithin:
		ns, err := s.searcher.WithinBox(q.Lo, q.Hi)
		if err != nil {
			return Result{}, err
		}
		return s.result(ns), nil
	case OpRadius:
		ns, err := s.searcher.WithinRadius(q.Point, q.Radius)
		if err != nil {
			return Result{}, err
		}
		return s.result(ns), nil
	case OpOutlier:
		return s.outlier(q)
	default:
		return Result{}, fmt.Errorf("%q: %w", op, ErrUnknownOp)
	}
}

func (s *Service) outlier(q Query) (Result, error) {
	if s.predictor == nil {
		return Result{}, ErrNoPredictor
	}
	var (
		c   *predictor.Conclusion
		err error
	)
	if q.ID != "" {
		pos, ok := s.positions[q.ID]
		if !ok {
			return Result{}, fmt.Errorf("%q: %w", q.ID, ErrUnknownID)
		}
		c, err = s.predictor.PredictMember(pos)
	} else {
		if err := s.check(q.Point); err != nil {
			return Result{}, err
		}
		c, err = s.predictor.Predict(q.Point)
	}
	if err != nil {
		return Result{}, err
	}
	score := Float(c.Score)
	return Result{Neighbors: []Neighbor{}, Score: &score, Outlier: &c.Outlier}, nil
}

func (s *Service) check(p geom.Point) error {
	if p.Dimensions() != s.searcher.Dimensions() {
		return fmt.Errorf("point has %d dimensions, index has %d: %w", p.Dimensions(), s.searcher.Dimensions(), geom.ErrDimNotEqual)
	}
	return nil
}

func (s *Service) excluded(ids []string) (func(pos int) bool, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	skip := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		pos, ok := s.positions[id]
		if !ok {
			return nil, fmt.Errorf("exclude %q: %w", id, ErrUnknownID)
		}
		skip[pos] = struct{}{}
	}
	return func(pos int) bool {
		_, ok := skip[pos]
		return ok
	}, nil
}

func (s *Service) result(ns []index.Neighbor) Result {
	out := make([]Neighbor, len(ns))
	for i, n := range ns {
		out[i] = Neighbor{ID: s.ids[n.Pos], Point: n.Point, Distance: Float(n.Distance)}
	}
	return Result{Neighbors: out}
}

// badRequest reports whether err was caused by the query rather than the server.
func badRequest(err error) bool {
	return errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, ErrUnknownID) ||
		errors.Is(err, ErrUnknownOp) ||
		errors.Is(err, geom.ErrDimNotEqual) ||
		errors.Is(err, index.ErrInvalidK)
}
