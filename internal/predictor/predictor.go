// Package predictor scores points against an indexed dataset.
package predictor

import "github.com/go-sod/spatial/internal/geom"

type ProvideFn func() (Predictor, error)

type Predictor interface {
	// Predict scores a point that is not part of the dataset.
	Predict(vec geom.Point) (*Conclusion, error)

	// PredictMember scores the dataset point at pos against the others.
	PredictMember(pos int) (*Conclusion, error)
}

type Conclusion struct {
	Score   float64
	Outlier bool
}
