// Package allocation resamples per-observation cluster labels.
//
// A Sampler is an immutable view of one sweep's component parameters and
// mixture weights. For each free observation it combines per-cluster
// log-likelihoods with log-weights, normalizes in log space (subtracting
// the maximum before exponentiating, so small likelihoods do not
// underflow), and draws a fresh label from the resulting categorical
// distribution. Observations whose labels are known/fixed are excluded
// from evaluation and resampling entirely.
//
// Reassign takes the caller's *randvar.Source, so per-observation work can
// run on independent seeded streams and stay deterministic under any
// worker schedule.
package allocation
