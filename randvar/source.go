package randvar

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source draws random variates from a seeded generator. A Source is not
// safe for concurrent use; concurrent callers each own their own Source
// (see DeriveSeed).
type Source struct {
	rnd *rand.Rand
}

// New creates a Source seeded with the given value. Two Sources built from
// the same seed produce identical draw sequences.
func New(seed uint64) *Source {
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

// Beta draws from Beta(alpha, beta). Both shapes must be positive.
func (s *Source) Beta(alpha, beta float64) (float64, error) {
	if !(alpha > 0) {
		return 0, &InvalidParameterError{Param: "alpha", Reason: fmt.Sprintf("must be positive, got %v", alpha)}
	}
	if !(beta > 0) {
		return 0, &InvalidParameterError{Param: "beta", Reason: fmt.Sprintf("must be positive, got %v", beta)}
	}

	return distuv.Beta{Alpha: alpha, Beta: beta, Src: s.rnd}.Rand(), nil
}

// Bernoulli draws a coin flip with success probability p.
func (s *Source) Bernoulli(p float64) (bool, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return false, &InvalidParameterError{Param: "p", Reason: fmt.Sprintf("must lie in [0,1], got %v", p)}
	}

	return distuv.Bernoulli{P: p, Src: s.rnd}.Rand() == 1, nil
}

// Dirichlet draws a probability vector from Dirichlet(conc). Every
// concentration entry must be positive. The result is renormalized to sum
// to exactly 1.
func (s *Source) Dirichlet(conc []float64) ([]float64, error) {
	if len(conc) == 0 {
		return nil, &InvalidParameterError{Param: "conc", Reason: "empty concentration vector"}
	}
	for i, a := range conc {
		if !(a > 0) || math.IsInf(a, 0) {
			return nil, &InvalidParameterError{Param: "conc", Reason: fmt.Sprintf("entry %d must be positive and finite, got %v", i, a)}
		}
	}

	alpha := make([]float64, len(conc))
	copy(alpha, conc)

	draw := distmv.NewDirichlet(alpha, s.rnd).Rand(nil)
	floats.Scale(1/floats.Sum(draw), draw)

	return draw, nil
}

// Categorical draws an index in [0, len(probs)) proportionally to probs.
// Entries must be non-negative and finite with a positive sum; they need
// not sum to 1.
func (s *Source) Categorical(probs []float64) (int, error) {
	if len(probs) == 0 {
		return 0, &InvalidParameterError{Param: "probs", Reason: "empty probability vector"}
	}
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return 0, &InvalidParameterError{Param: "probs", Reason: fmt.Sprintf("entry %d must be non-negative and finite, got %v", i, p)}
		}
	}
	if floats.Sum(probs) <= 0 {
		return 0, &InvalidParameterError{Param: "probs", Reason: "entries sum to zero"}
	}

	c := distuv.NewCategorical(probs, s.rnd)

	return int(c.Rand()), nil
}

// MVNormal draws from a multivariate normal with the given mean and
// covariance. The covariance must be symmetric positive definite.
func (s *Source) MVNormal(mu []float64, sigma *mat.SymDense) ([]float64, error) {
	if sigma == nil || sigma.SymmetricDim() != len(mu) {
		return nil, &InvalidParameterError{Param: "sigma", Reason: "dimension does not match mean"}
	}

	dist, ok := distmv.NewNormal(mu, sigma, s.rnd)
	if !ok {
		return nil, &InvalidParameterError{Param: "sigma", Reason: "not positive definite"}
	}

	return dist.Rand(nil), nil
}

// InvWishart draws a covariance matrix from InverseWishart(nu, scale):
// a Wishart(nu, scale^-1) draw, inverted. Requires nu > d-1 and a positive
// definite scale. The result is symmetric positive definite by
// construction.
func (s *Source) InvWishart(nu float64, scale *mat.SymDense) (*mat.SymDense, error) {
	if scale == nil || scale.SymmetricDim() == 0 {
		return nil, &InvalidParameterError{Param: "scale", Reason: "empty scale matrix"}
	}

	d := scale.SymmetricDim()
	if !(nu > float64(d-1)) {
		return nil, &InvalidParameterError{Param: "nu", Reason: fmt.Sprintf("must exceed dim-1 = %d, got %v", d-1, nu)}
	}

	var chol mat.Cholesky
	if !chol.Factorize(scale) {
		return nil, &InvalidParameterError{Param: "scale", Reason: "not positive definite"}
	}

	inv := mat.NewSymDense(d, nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil, &InvalidParameterError{Param: "scale", Reason: "not invertible"}
	}

	wish, ok := distmat.NewWishart(inv, nu, s.rnd)
	if !ok {
		return nil, &InvalidParameterError{Param: "scale", Reason: "inverted scale is not positive definite"}
	}

	draw := mat.NewSymDense(d, nil)
	wish.RandSymTo(draw)

	// Invert the Wishart draw. With nu > d-1 the draw is full rank almost
	// surely; a factorization failure here is a numeric degeneracy.
	var drawChol mat.Cholesky
	if !drawChol.Factorize(draw) {
		return nil, fmt.Errorf("inverse-wishart draw is numerically singular")
	}

	out := mat.NewSymDense(d, nil)
	if err := drawChol.InverseTo(out); err != nil {
		return nil, fmt.Errorf("inverse-wishart draw inversion failed: %w", err)
	}

	return out, nil
}
