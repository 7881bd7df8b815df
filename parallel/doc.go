// Package parallel provides the ordered fan-out used by the allocation
// phase: apply a function to indices 0..n-1 across a bounded worker pool.
//
// Ordering is positional by construction: workers write into
// caller-owned, index-addressed slots, so the merged result never depends
// on completion order. The first failure cancels the remaining work and
// is reported as a *WorkerError carrying the failing index.
package parallel
