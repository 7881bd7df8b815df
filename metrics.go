package gibbs

import (
	"sync/atomic"
	"time"
)

// Phase names one of the four ordered update phases of a sweep.
type Phase string

// Sweep phases, in execution order.
const (
	PhaseParameters  Phase = "parameters"
	PhaseWeights     Phase = "weights"
	PhaseAllocations Phase = "allocations"
	PhaseBookkeeping Phase = "bookkeeping"
)

// MetricsCollector defines an interface for collecting sampler metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordSweep is called after each sweep, committed or not.
	// duration is the total time taken, err is nil if the sweep committed.
	RecordSweep(duration time.Duration, err error)

	// RecordPhase is called after each completed update phase.
	RecordPhase(phase Phase, duration time.Duration)

	// RecordEmptyCluster is called whenever a cluster has zero members,
	// whether the run falls back to the prior or fails.
	RecordEmptyCluster(sweep, cluster int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSweep(time.Duration, error) {}
func (NoopMetricsCollector) RecordPhase(Phase, time.Duration) {}
func (NoopMetricsCollector) RecordEmptyCluster(int, int)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SweepCount            atomic.Int64
	SweepErrors           atomic.Int64
	SweepTotalNanos       atomic.Int64
	ParameterTotalNanos   atomic.Int64
	WeightTotalNanos      atomic.Int64
	AllocationTotalNanos  atomic.Int64
	BookkeepingTotalNanos atomic.Int64
	EmptyClusters         atomic.Int64
}

// RecordSweep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSweep(duration time.Duration, err error) {
	b.SweepCount.Add(1)
	b.SweepTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SweepErrors.Add(1)
	}
}

// RecordPhase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPhase(phase Phase, duration time.Duration) {
	switch phase {
	case PhaseParameters:
		b.ParameterTotalNanos.Add(duration.Nanoseconds())
	case PhaseWeights:
		b.WeightTotalNanos.Add(duration.Nanoseconds())
	case PhaseAllocations:
		b.AllocationTotalNanos.Add(duration.Nanoseconds())
	case PhaseBookkeeping:
		b.BookkeepingTotalNanos.Add(duration.Nanoseconds())
	}
}

// RecordEmptyCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmptyCluster(int, int) {
	b.EmptyClusters.Add(1)
}
