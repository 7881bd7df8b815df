package conjugate

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/randvar"
)

// ErrEmptyCluster is returned by Posterior when a cluster has no members.
// It is recoverable: the caller may fall back to Prior or reinitialize.
var ErrEmptyCluster = errors.New("cluster has no members")

// Engine computes a component's posterior parameters from its members and
// draws a fresh parameter value.
type Engine interface {
	// Posterior draws component parameters from the posterior given the
	// cluster's member rows (n_k×d). Returns ErrEmptyCluster when members
	// is nil or has no rows.
	Posterior(members *mat.Dense, src *randvar.Source) (model.Component, error)

	// Prior draws component parameters from the prior alone. Used as the
	// explicit empty-cluster fallback.
	Prior(src *randvar.Source) (model.Component, error)

	// Dim returns the observation length the engine expects.
	Dim() int
}
