package gibbs

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/gibbs/allocation"
	"github.com/hupe1980/gibbs/conjugate"
	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/parallel"
	"github.com/hupe1980/gibbs/randvar"
)

// State describes the sampler lifecycle.
type State int

const (
	// StateInitialized means Run has not been called yet.
	StateInitialized State = iota
	// StateRunning means a run is in progress.
	StateRunning
	// StateCompleted means the run finished, successfully or not. A
	// Sampler is single-shot; build a new one to resume from a committed
	// snapshot.
	StateCompleted
)

// Sampler drives the Gibbs iteration for a finite mixture model. Each
// sweep executes four ordered phases: component parameters, mixture
// weights, allocations, bookkeeping. Only the allocation phase runs
// concurrently; the other phases need a globally consistent view of the
// previous phase's output.
type Sampler struct {
	data   *model.Dataset
	k      int
	engine conjugate.Engine
	init   model.Assignment
	opts   options

	state State
}

// New validates the inputs and builds a Sampler.
//
// init provides the starting cluster label for every observation
// (cluster ids are 1..k). Observations marked via WithFixedLabels keep
// their init label for the whole run.
func New(data *model.Dataset, k int, engine conjugate.Engine, init model.Assignment, optFns ...Option) (*Sampler, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, model.ErrEmptyDataset
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if engine == nil {
		return nil, ErrNilEngine
	}
	if engine.Dim() != data.Dim() {
		return nil, &model.ErrDimensionMismatch{Expected: data.Dim(), Actual: engine.Dim()}
	}
	if len(init) != data.Len() {
		return nil, &model.ErrDimensionMismatch{Expected: data.Len(), Actual: len(init)}
	}
	if err := init.Validate(k); err != nil {
		return nil, err
	}
	if opts.fixedLabels != nil && !opts.fixedLabels.IsEmpty() {
		if int(opts.fixedLabels.Maximum()) >= data.Len() {
			return nil, fmt.Errorf("fixed label index %d out of range: dataset has %d observations", opts.fixedLabels.Maximum(), data.Len())
		}
	}

	return &Sampler{
		data:   data,
		k:      k,
		engine: engine,
		init:   init.Clone(),
		opts:   opts,
		state:  StateInitialized,
	}, nil
}

// State returns the sampler's lifecycle state.
func (s *Sampler) State() State { return s.state }

// Run executes the given number of sweeps and returns the trace of
// committed snapshots.
//
// Termination is by sweep count only; there is no convergence-based
// stopping. On error the trace holds every sweep committed before the
// failure, so the caller can diagnose and resume from the last committed
// snapshot with a fresh Sampler. Cancelling ctx aborts between phases and
// discards the sweep in progress.
func (s *Sampler) Run(ctx context.Context, sweeps int) (*Trace, error) {
	if s.state != StateInitialized {
		return nil, ErrAlreadyRun
	}
	if sweeps <= 0 {
		return nil, ErrInvalidSweeps
	}

	s.state = StateRunning
	defer func() { s.state = StateCompleted }()

	assign := s.init.Clone()
	counts := assign.Counts(s.k)
	trace := &Trace{}

	s.opts.logger.Info("run started",
		"observations", s.data.Len(),
		"k", s.k,
		"sweeps", sweeps,
		"weight_policy", s.opts.weightPolicy.Name(),
	)

	for t := 1; t <= sweeps; t++ {
		sweepStart := time.Now()

		next, nextCounts, snap, err := s.sweep(ctx, t, assign, counts)
		s.opts.metricsCollector.RecordSweep(time.Since(sweepStart), err)
		if err != nil {
			s.opts.logger.WithSweep(t).Error("sweep failed", "error", err)
			return trace, err
		}

		trace.append(snap)
		assign = next
		counts = nextCounts

		s.opts.logger.WithSweep(t).Debug("sweep committed", "counts", counts)
	}

	s.opts.logger.Info("run completed", "sweeps", sweeps)

	return trace, nil
}

// sweep executes the four phases of one sweep. Nothing is committed until
// the caller appends the returned snapshot, so an error or cancellation
// leaves the trace untouched.
func (s *Sampler) sweep(ctx context.Context, t int, assign model.Assignment, counts []int) (model.Assignment, []int, Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, Snapshot{}, err
	}

	// Sequential phases share one sweep-level random stream; allocation
	// workers derive their own per-observation streams below.
	sweepSrc := randvar.New(randvar.DeriveSeed(s.opts.seed, t, randvar.SweepStream))

	// Phase 1: component parameters, recomputed per cluster from the
	// current assignment.
	phaseStart := time.Now()
	comps := make([]model.Component, s.k)
	for j := 1; j <= s.k; j++ {
		comp, err := s.clusterParameters(t, j, assign, sweepSrc)
		if err != nil {
			return nil, nil, Snapshot{}, err
		}
		comps[j-1] = comp
	}
	s.opts.metricsCollector.RecordPhase(PhaseParameters, time.Since(phaseStart))

	if err := ctx.Err(); err != nil {
		return nil, nil, Snapshot{}, err
	}

	// Phase 2: mixture weights from the current counts.
	phaseStart = time.Now()
	w, err := s.opts.weightPolicy.Sample(counts, sweepSrc)
	if err != nil {
		return nil, nil, Snapshot{}, &SweepError{Sweep: t, Phase: PhaseWeights, cause: err}
	}
	if err := w.Validate(1e-9); err != nil {
		return nil, nil, Snapshot{}, &SweepError{Sweep: t, Phase: PhaseWeights, cause: err}
	}
	s.opts.metricsCollector.RecordPhase(PhaseWeights, time.Since(phaseStart))

	if err := ctx.Err(); err != nil {
		return nil, nil, Snapshot{}, err
	}

	// Phase 3: allocations, fanned out across the worker pool. The
	// component set and weights are immutable snapshots for the whole
	// phase.
	phaseStart = time.Now()
	alloc, err := allocation.New(s.data, comps, w)
	if err != nil {
		return nil, nil, Snapshot{}, &SweepError{Sweep: t, Phase: PhaseAllocations, cause: err}
	}

	next := assign.Clone()
	var entropies []float64
	if s.opts.recordEntropy {
		entropies = make([]float64, s.data.Len())
	}

	err = parallel.Map(ctx, s.data.Len(), s.opts.workerCount, func(_ context.Context, i int) error {
		if s.opts.fixedLabels != nil && s.opts.fixedLabels.Contains(uint32(i)) {
			return nil // known label, never resampled
		}

		src := randvar.New(randvar.DeriveSeed(s.opts.seed, t, i))
		label, entropy, err := alloc.Reassign(i, src)
		if err != nil {
			return err
		}

		next[i] = label
		if entropies != nil {
			entropies[i] = entropy
		}
		return nil
	})
	if err != nil {
		return nil, nil, Snapshot{}, &SweepError{Sweep: t, Phase: PhaseAllocations, cause: err}
	}
	s.opts.metricsCollector.RecordPhase(PhaseAllocations, time.Since(phaseStart))

	// Phase 4: bookkeeping.
	phaseStart = time.Now()
	nextCounts := next.Counts(s.k)
	snap := Snapshot{
		Sweep:      t,
		Components: comps,
		Weights:    w,
		Assignment: next.Clone(),
		Counts:     nextCounts,
		Entropies:  entropies,
	}
	s.opts.metricsCollector.RecordPhase(PhaseBookkeeping, time.Since(phaseStart))

	return next, nextCounts, snap, nil
}

// clusterParameters draws cluster j's parameters from its posterior, or
// from the prior when the cluster is empty and the fallback is enabled.
func (s *Sampler) clusterParameters(t, j int, assign model.Assignment, src *randvar.Source) (model.Component, error) {
	idx := assign.Members(j)
	if len(idx) == 0 {
		s.opts.metricsCollector.RecordEmptyCluster(t, j)

		if !s.opts.emptyClusterFallback {
			return nil, &EmptyClusterError{Sweep: t, Cluster: j}
		}

		s.opts.logger.WithSweep(t).WithCluster(j).Warn("empty cluster, falling back to prior")

		comp, err := s.engine.Prior(src)
		if err != nil {
			return nil, &SweepError{Sweep: t, Phase: PhaseParameters, cause: err}
		}
		return comp, nil
	}

	comp, err := s.engine.Posterior(s.data.Gather(idx), src)
	if err != nil {
		return nil, &SweepError{Sweep: t, Phase: PhaseParameters, cause: err}
	}
	return comp, nil
}
