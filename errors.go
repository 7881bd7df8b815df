package gibbs

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gibbs/conjugate"
)

var (
	// ErrInvalidK is returned when the cluster count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidSweeps is returned when the sweep count is not positive.
	ErrInvalidSweeps = errors.New("sweeps must be positive")

	// ErrNilEngine is returned when no conjugate engine is supplied.
	ErrNilEngine = errors.New("engine must not be nil")

	// ErrAlreadyRun is returned when Run is called on a completed sampler.
	ErrAlreadyRun = errors.New("sampler has already completed a run")
)

// EmptyClusterError indicates that a cluster lost all of its members
// during a sweep and no fallback policy was configured. Previous sweeps'
// trace entries remain valid; the caller may reconfigure and resume from
// the last committed sweep.
//
// errors.Is(err, conjugate.ErrEmptyCluster) holds for this error.
type EmptyClusterError struct {
	Sweep   int
	Cluster int
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("sweep %d: cluster %d has no members and no fallback is configured", e.Sweep, e.Cluster)
}

func (e *EmptyClusterError) Unwrap() error { return conjugate.ErrEmptyCluster }

// SweepError wraps a failure in one of a sweep's update phases with the
// sweep index and phase name. The original error can be accessed via
// errors.Unwrap; worker failures additionally carry the observation index
// (see parallel.WorkerError).
type SweepError struct {
	Sweep int
	Phase Phase
	cause error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("sweep %d: %s phase failed: %v", e.Sweep, e.Phase, e.cause)
}

func (e *SweepError) Unwrap() error { return e.cause }
