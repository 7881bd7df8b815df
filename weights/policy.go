package weights

import (
	"fmt"

	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/randvar"
)

// Policy draws a fresh mixture-weight vector from the current per-cluster
// counts. Implementations must return a vector that is non-negative and
// sums to 1 within floating tolerance.
type Policy interface {
	// Sample draws weights for len(counts) clusters.
	Sample(counts []int, src *randvar.Source) (model.Weights, error)

	// Name identifies the policy in logs and traces.
	Name() string
}

// Compile time checks to ensure the policies satisfy Policy.
var (
	_ Policy = (*Dirichlet)(nil)
	_ Policy = (*SequentialBeta)(nil)
)

// Dirichlet draws weights from Dirichlet(counts + concentration), the
// conjugate count-based update. The concentration is either a scalar
// broadcast to all clusters or a per-cluster vector.
type Dirichlet struct {
	scalar float64
	vector []float64
}

// NewDirichlet builds the policy with a scalar concentration broadcast to
// all clusters.
func NewDirichlet(concentration float64) (*Dirichlet, error) {
	if !(concentration > 0) {
		return nil, &randvar.InvalidParameterError{Param: "concentration", Reason: fmt.Sprintf("must be positive, got %v", concentration)}
	}
	return &Dirichlet{scalar: concentration}, nil
}

// NewDirichletVector builds the policy with one concentration entry per
// cluster.
func NewDirichletVector(concentration []float64) (*Dirichlet, error) {
	if len(concentration) == 0 {
		return nil, &randvar.InvalidParameterError{Param: "concentration", Reason: "empty vector"}
	}
	for i, a := range concentration {
		if !(a > 0) {
			return nil, &randvar.InvalidParameterError{Param: "concentration", Reason: fmt.Sprintf("entry %d must be positive, got %v", i, a)}
		}
	}

	v := make([]float64, len(concentration))
	copy(v, concentration)

	return &Dirichlet{vector: v}, nil
}

// Name implements Policy.
func (d *Dirichlet) Name() string { return "dirichlet" }

// Sample implements Policy.
func (d *Dirichlet) Sample(counts []int, src *randvar.Source) (model.Weights, error) {
	k := len(counts)
	if d.vector != nil && len(d.vector) != k {
		return nil, &model.ErrDimensionMismatch{Expected: len(d.vector), Actual: k}
	}

	alpha := make([]float64, k)
	for j, c := range counts {
		if d.vector != nil {
			alpha[j] = d.vector[j] + float64(c)
		} else {
			alpha[j] = d.scalar + float64(c)
		}
	}

	draw, err := src.Dirichlet(alpha)
	if err != nil {
		return nil, err
	}

	return model.Weights(draw), nil
}

// SequentialBeta reproduces the ad hoc three-cluster construction used in
// a semi-supervised analysis:
//
//	pi1 ~ Beta(1+count1, 1+count2)
//	pi2 = 1 - pi1
//	pi3 = (pi1 + pi2) / 2
//
// followed by renormalization. This is not a proper Dirichlet posterior
// (the third weight is deterministic given the first two). It is
// preserved deliberately as an alternative policy, not a default. Whether
// it should be replaced by a Dirichlet draw is an open question for the
// analyses that depend on it.
type SequentialBeta struct{}

// ErrSequentialBetaClusters is returned when the policy is used with a
// cluster count other than 3.
var ErrSequentialBetaClusters = fmt.Errorf("sequential-beta policy requires exactly 3 clusters")

// NewSequentialBeta builds the policy.
func NewSequentialBeta() *SequentialBeta { return &SequentialBeta{} }

// Name implements Policy.
func (*SequentialBeta) Name() string { return "sequential-beta" }

// Sample implements Policy.
func (*SequentialBeta) Sample(counts []int, src *randvar.Source) (model.Weights, error) {
	if len(counts) != 3 {
		return nil, ErrSequentialBetaClusters
	}

	pi1, err := src.Beta(1+float64(counts[0]), 1+float64(counts[1]))
	if err != nil {
		return nil, err
	}

	w := model.Weights{pi1, 1 - pi1, (pi1 + (1 - pi1)) / 2}
	if err := w.Normalize(); err != nil {
		return nil, err
	}

	return w, nil
}
