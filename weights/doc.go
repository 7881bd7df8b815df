// Package weights draws new mixture-weight vectors from the current
// per-cluster counts.
//
// Two policies exist:
//
//   - Dirichlet: the standard conjugate update, Dirichlet(counts +
//     concentration). This is the default.
//   - SequentialBeta: an ad hoc 3-cluster construction preserved from an
//     existing analysis. It is NOT a Dirichlet posterior and is kept as an
//     explicitly named alternative rather than silently corrected.
package weights
