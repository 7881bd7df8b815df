package conjugate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/randvar"
)

// Compile time check to ensure BetaBernoulli satisfies Engine.
var _ Engine = (*BetaBernoulli)(nil)

// BetaBernoulli is the conjugate engine for binary data: each variable
// carries an independent Beta prior, updated with the cluster's observed
// success and failure counts.
type BetaBernoulli struct {
	alpha []float64 // prior pseudo-successes per variable
	beta  []float64 // prior pseudo-failures per variable
}

// NewBetaBernoulli builds an engine from a 2×p hyperparameter matrix:
// row 0 holds prior pseudo-successes, row 1 prior pseudo-failures. All
// entries must be positive.
func NewBetaBernoulli(prior *mat.Dense) (*BetaBernoulli, error) {
	if prior == nil {
		return nil, &randvar.InvalidParameterError{Param: "prior", Reason: "nil hyperparameter matrix"}
	}

	r, p := prior.Dims()
	if r != 2 || p == 0 {
		return nil, &randvar.InvalidParameterError{Param: "prior", Reason: fmt.Sprintf("must be 2×p, got %d×%d", r, p)}
	}

	alpha := make([]float64, p)
	beta := make([]float64, p)
	for j := 0; j < p; j++ {
		alpha[j] = prior.At(0, j)
		beta[j] = prior.At(1, j)
		if !(alpha[j] > 0) || !(beta[j] > 0) {
			return nil, &randvar.InvalidParameterError{Param: "prior", Reason: fmt.Sprintf("variable %d has non-positive shape", j)}
		}
	}

	return &BetaBernoulli{alpha: alpha, beta: beta}, nil
}

// NewUniformBetaBernoulli builds an engine with Beta(1,1) priors on all p
// variables.
func NewUniformBetaBernoulli(p int) (*BetaBernoulli, error) {
	if p <= 0 {
		return nil, &randvar.InvalidParameterError{Param: "p", Reason: "must be positive"}
	}

	ones := make([]float64, 2*p)
	for i := range ones {
		ones[i] = 1
	}

	return NewBetaBernoulli(mat.NewDense(2, p, ones))
}

// Dim returns the number of variables.
func (e *BetaBernoulli) Dim() int { return len(e.alpha) }

// PosteriorShapes returns the posterior Beta shape pairs (alpha+successes,
// beta+failures) for the given member rows, without drawing. Exposed so
// callers can cross-check draws against the closed form.
func (e *BetaBernoulli) PosteriorShapes(members *mat.Dense) (alpha, beta []float64, err error) {
	if members == nil {
		return nil, nil, ErrEmptyCluster
	}

	n, p := members.Dims()
	if n == 0 {
		return nil, nil, ErrEmptyCluster
	}
	if p != len(e.alpha) {
		return nil, nil, &model.ErrDimensionMismatch{Expected: len(e.alpha), Actual: p}
	}

	alpha = make([]float64, p)
	beta = make([]float64, p)
	for j := 0; j < p; j++ {
		var successes float64
		for i := 0; i < n; i++ {
			if members.At(i, j) != 0 {
				successes++
			}
		}
		alpha[j] = e.alpha[j] + successes
		beta[j] = e.beta[j] + float64(n) - successes
	}

	return alpha, beta, nil
}

// Posterior draws per-variable success probabilities from the posterior
// Beta distributions.
func (e *BetaBernoulli) Posterior(members *mat.Dense, src *randvar.Source) (model.Component, error) {
	alpha, beta, err := e.PosteriorShapes(members)
	if err != nil {
		return nil, err
	}

	return e.draw(alpha, beta, src)
}

// Prior draws per-variable success probabilities from the prior Beta
// distributions.
func (e *BetaBernoulli) Prior(src *randvar.Source) (model.Component, error) {
	return e.draw(e.alpha, e.beta, src)
}

func (e *BetaBernoulli) draw(alpha, beta []float64, src *randvar.Source) (model.Component, error) {
	probs := make([]float64, len(alpha))
	for j := range probs {
		p, err := src.Beta(alpha[j], beta[j])
		if err != nil {
			return nil, err
		}
		probs[j] = clampOpen01(p)
	}

	return model.NewBernoulliComponent(probs)
}

// clampOpen01 nudges a draw off the closed endpoints so log(p) and
// log(1-p) stay finite.
func clampOpen01(p float64) float64 {
	const eps = 1e-12
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
