package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Component holds the per-cluster parameters needed to evaluate the
// likelihood of a single observation. Components are immutable snapshots:
// each sweep produces a fresh draw rather than mutating in place.
type Component interface {
	// Dim returns the expected observation length.
	Dim() int

	// LogLikelihood returns the log-likelihood of one observation under
	// this component. The row must have length Dim().
	LogLikelihood(row []float64) float64
}

// Compile time checks to ensure the parameter types satisfy Component.
var (
	_ Component = (*BernoulliComponent)(nil)
	_ Component = (*GaussianComponent)(nil)
)

// BernoulliComponent parameterizes a product-of-Bernoullis component for
// binary data: one success probability per variable, each strictly
// within (0, 1).
type BernoulliComponent struct {
	probs []float64
}

// NewBernoulliComponent validates the probabilities and builds a component.
func NewBernoulliComponent(probs []float64) (*BernoulliComponent, error) {
	if len(probs) == 0 {
		return nil, &ErrDimensionMismatch{Expected: 1, Actual: 0}
	}

	for j, p := range probs {
		if math.IsNaN(p) || p <= 0 || p >= 1 {
			return nil, fmt.Errorf("bernoulli probability %v at variable %d: must lie in (0,1)", p, j)
		}
	}

	out := make([]float64, len(probs))
	copy(out, probs)

	return &BernoulliComponent{probs: out}, nil
}

// Dim returns the number of variables.
func (c *BernoulliComponent) Dim() int { return len(c.probs) }

// Probs returns the per-variable success probabilities. The slice must not
// be mutated.
func (c *BernoulliComponent) Probs() []float64 { return c.probs }

// LogLikelihood returns the Bernoulli log-pmf summed over variables.
func (c *BernoulliComponent) LogLikelihood(row []float64) float64 {
	var ll float64
	for j, p := range c.probs {
		if row[j] != 0 {
			ll += math.Log(p)
		} else {
			ll += math.Log(1 - p)
		}
	}
	return ll
}

// GaussianComponent parameterizes a multivariate-normal component: a mean
// vector and a positive-definite covariance matrix.
type GaussianComponent struct {
	mean []float64
	cov  *mat.SymDense
	dist *distmv.Normal
}

// NewGaussianComponent validates the covariance and builds a component.
// The covariance must be positive definite.
func NewGaussianComponent(mean []float64, cov *mat.SymDense) (*GaussianComponent, error) {
	if cov == nil || cov.SymmetricDim() != len(mean) {
		actual := 0
		if cov != nil {
			actual = cov.SymmetricDim()
		}
		return nil, &ErrDimensionMismatch{Expected: len(mean), Actual: actual}
	}

	m := make([]float64, len(mean))
	copy(m, mean)

	s := mat.NewSymDense(len(mean), nil)
	s.CopySym(cov)

	dist, ok := distmv.NewNormal(m, s, nil)
	if !ok {
		return nil, fmt.Errorf("gaussian component covariance is not positive definite")
	}

	return &GaussianComponent{mean: m, cov: s, dist: dist}, nil
}

// Dim returns the number of variables.
func (c *GaussianComponent) Dim() int { return len(c.mean) }

// Mean returns the mean vector. The slice must not be mutated.
func (c *GaussianComponent) Mean() []float64 { return c.mean }

// Cov returns the covariance matrix. The matrix must not be mutated.
func (c *GaussianComponent) Cov() *mat.SymDense { return c.cov }

// LogLikelihood returns the multivariate-normal log-density.
func (c *GaussianComponent) LogLikelihood(row []float64) float64 {
	return c.dist.LogProb(row)
}
