package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Weights is a mixture-weight probability vector of length K, indexed by
// cluster id - 1. It is non-negative and sums to 1 within floating
// tolerance.
type Weights []float64

// Validate checks that the vector is a probability vector: no negative or
// non-finite entries, and a sum within tol of 1.
func (w Weights) Validate(tol float64) error {
	if len(w) == 0 {
		return &ErrInvalidWeights{Reason: "empty vector"}
	}

	for _, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ErrInvalidWeights{Reason: "non-finite entry"}
		}
		if v < 0 {
			return &ErrInvalidWeights{Reason: "negative entry"}
		}
	}

	if sum := floats.Sum(w); math.Abs(sum-1) > tol {
		return &ErrInvalidWeights{Reason: "does not sum to 1"}
	}

	return nil
}

// Normalize rescales the vector in place so it sums to 1.
func (w Weights) Normalize() error {
	sum := floats.Sum(w)
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return &ErrInvalidWeights{Reason: "non-positive sum"}
	}
	floats.Scale(1/sum, w)
	return nil
}

// Clone returns an independent copy of the weight vector.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	copy(out, w)
	return out
}
