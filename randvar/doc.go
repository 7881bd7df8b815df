// Package randvar wraps the random variate draws the sampler needs behind
// a single seeded Source.
//
// Every draw flows through an explicit *Source owned by the caller; there
// is no hidden global generator. This is what makes the parallel
// allocation phase reproducible: the orchestrator derives one seed per
// observation per sweep (DeriveSeed) and hands each worker its own Source.
//
// Draws are backed by gonum's distuv, distmv and distmat distributions
// over a golang.org/x/exp/rand source. Parameter validation happens up
// front and returns *InvalidParameterError instead of panicking.
package randvar
