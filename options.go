package gibbs

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/gibbs/weights"
)

type options struct {
	seed                 uint64
	workerCount          int
	weightPolicy         weights.Policy
	fixedLabels          *roaring.Bitmap
	emptyClusterFallback bool
	recordEntropy        bool
	metricsCollector     MetricsCollector
	logger               *Logger
}

// Option configures sampler construction.
type Option func(*options)

// WithSeed sets the base seed of the run. Every random stream the sampler
// uses is derived from it, so two runs with the same seed, data, and
// configuration produce identical traces regardless of worker count.
//
// The default seed is 1.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithWorkerCount sets the size of the worker pool used for the
// per-observation allocation phase. If n <= 0, runtime.GOMAXPROCS(0)
// workers are used.
//
// Worker count affects throughput only, never results.
func WithWorkerCount(n int) Option {
	return func(o *options) {
		o.workerCount = n
	}
}

// WithWeightPolicy sets the mixture-weight resampling policy.
//
// The default is weights.NewDirichlet(1), the conjugate count-based
// update with a uniform concentration of 1.
func WithWeightPolicy(p weights.Policy) Option {
	return func(o *options) {
		if p != nil {
			o.weightPolicy = p
		}
	}
}

// WithFixedLabels marks the given observation indices as known/fixed.
// Fixed observations keep their initial label for the whole run and are
// excluded from likelihood evaluation and resampling. They still count
// toward their cluster's membership in parameter and weight updates,
// which is what makes the run semi-supervised.
func WithFixedLabels(fixed *roaring.Bitmap) Option {
	return func(o *options) {
		o.fixedLabels = fixed
	}
}

// WithEmptyClusterFallback makes the sampler draw prior-only parameters
// for clusters that lost all members, instead of failing the sweep with
// an EmptyClusterError.
func WithEmptyClusterFallback() Option {
	return func(o *options) {
		o.emptyClusterFallback = true
	}
}

// WithEntropyDiagnostics records the per-observation assignment entropy
// in every snapshot. Off by default; it costs one float64 per observation
// per sweep.
func WithEntropyDiagnostics() Option {
	return func(o *options) {
		o.recordEntropy = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring the
// run. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithLogger configures structured logging for the run.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) (options, error) {
	defaultPolicy, err := weights.NewDirichlet(1)
	if err != nil {
		return options{}, err
	}

	o := options{
		seed:             1,
		weightPolicy:     defaultPolicy,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	return o, nil
}
