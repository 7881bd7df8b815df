// Package gibbs provides a Gibbs-sampling inference engine for finite
// mixture models: Beta-Bernoulli components over binary data and
// Normal-Inverse-Wishart components over continuous data, with optional
// known/fixed labels for semi-supervised runs.
//
// # Quick Start
//
//	data, _ := model.NewBinaryDataset(rows)
//	engine, _ := conjugate.NewUniformBetaBernoulli(data.Dim())
//
//	s, _ := gibbs.New(data, 2, engine, initialLabels,
//	    gibbs.WithSeed(42),
//	    gibbs.WithWorkerCount(4),
//	)
//	trace, err := s.Run(ctx, 500)
//
// Each sweep runs four ordered phases: component parameters, mixture
// weights, allocations, bookkeeping. The allocation phase fans out across
// a worker pool; every observation draws from its own seeded stream, so a
// run is reproducible for a given seed regardless of worker count.
//
// # Semi-Supervised Runs
//
// Known labels are pinned with a bitmap of observation indices:
//
//	fixed := roaring.New()
//	fixed.AddRange(0, 6)
//	s, _ := gibbs.New(data, 3, engine, initialLabels,
//	    gibbs.WithFixedLabels(fixed),
//	    gibbs.WithWeightPolicy(weights.NewSequentialBeta()),
//	)
//
// # Traces
//
// Run returns a Trace of per-sweep snapshots (parameters, weights,
// assignments, counts). The core defines no storage of its own; callers
// that want draws on disk use Trace.Encode, which writes a
// self-describing stream with a pluggable codec and optional gzip or lz4
// compression.
package gibbs
