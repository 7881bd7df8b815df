package allocation

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/randvar"
)

// ErrMismatchedComponents is returned when the component and weight counts
// disagree.
var ErrMismatchedComponents = errors.New("component count does not match weight count")

// Sampler is an immutable per-sweep view used to redraw cluster labels.
// It never mutates the components, weights, or data it was built from and
// is safe for concurrent Reassign calls with distinct Sources.
type Sampler struct {
	data       *model.Dataset
	components []model.Component
	logWeights []float64
}

// New builds a Sampler from the current sweep's components and weights.
func New(data *model.Dataset, components []model.Component, weights model.Weights) (*Sampler, error) {
	if len(components) != len(weights) {
		return nil, ErrMismatchedComponents
	}
	if err := weights.Validate(1e-9); err != nil {
		return nil, err
	}
	for _, c := range components {
		if c.Dim() != data.Dim() {
			return nil, &model.ErrDimensionMismatch{Expected: data.Dim(), Actual: c.Dim()}
		}
	}

	logW := make([]float64, len(weights))
	for j, w := range weights {
		logW[j] = math.Log(w) // -Inf for zero weight is fine in log space
	}

	return &Sampler{data: data, components: components, logWeights: logW}, nil
}

// LogPosteriors returns the unnormalized log posterior allocation scores
// for observation i: log-likelihood under each component plus the log
// mixture weight. Index j corresponds to cluster id j+1.
func (s *Sampler) LogPosteriors(i int) []float64 {
	row := s.data.Row(i)
	scores := make([]float64, len(s.components))
	for j, c := range s.components {
		scores[j] = c.LogLikelihood(row) + s.logWeights[j]
	}
	return scores
}

// Reassign draws a new cluster label for observation i and returns it
// together with the assignment entropy -Σ p log p of the normalized
// allocation probabilities.
func (s *Sampler) Reassign(i int, src *randvar.Source) (label int, entropy float64, err error) {
	scores := s.LogPosteriors(i)

	// Normalize in log space before exponentiating.
	logZ := floats.LogSumExp(scores)
	probs := make([]float64, len(scores))
	for j, v := range scores {
		probs[j] = math.Exp(v - logZ)
	}

	for _, p := range probs {
		if p > 0 {
			entropy -= p * math.Log(p)
		}
	}

	idx, err := src.Categorical(probs)
	if err != nil {
		return 0, 0, err
	}

	return idx + 1, entropy, nil
}
