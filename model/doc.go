// Package model defines the core types shared across the gibbs packages.
//
// # Data Types
//
//   - Dataset: fixed-shape n×d observation matrix with dimension checks
//   - Assignment: per-observation cluster labels (cluster ids begin at 1, not 0)
//   - Weights: mixture-weight probability vector
//
// # Component Parameters
//
//   - BernoulliComponent: per-variable success probabilities for binary data
//   - GaussianComponent: mean vector and covariance matrix for continuous data
//
// Both satisfy the Component interface and expose the log-likelihood of a
// single observation, which is all the allocation step needs.
package model
