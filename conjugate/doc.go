// Package conjugate computes closed-form posterior parameters for mixture
// components and draws fresh parameter values from them.
//
// Two engines are provided:
//
//   - BetaBernoulli: binary data, per-variable Beta priors updated with
//     observed success/failure counts.
//   - NormalInverseWishart: continuous data, NIW prior (k0, v0, mu0,
//     Gamma0) updated with the cluster's sample mean and scatter.
//
// Both implement Engine. Posterior draws consume an explicit
// *randvar.Source so the orchestrator controls the random stream.
//
// A cluster with zero members has no sample statistics. Posterior returns
// ErrEmptyCluster in that case; Prior draws from the prior alone and is
// the fallback the orchestrator uses when configured to tolerate empty
// clusters.
package conjugate
