package model

import "fmt"

// ErrDimensionMismatch indicates a row/vector dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidClusterID indicates a cluster label outside [1, K].
type ErrInvalidClusterID struct {
	ID int
	K  int
}

func (e *ErrInvalidClusterID) Error() string {
	return fmt.Sprintf("invalid cluster id %d: must be in [1, %d]", e.ID, e.K)
}

// ErrNonBinaryValue indicates a value other than 0 or 1 in a binary dataset.
type ErrNonBinaryValue struct {
	Row    int
	Column int
	Value  float64
}

func (e *ErrNonBinaryValue) Error() string {
	return fmt.Sprintf("non-binary value %v at (%d, %d)", e.Value, e.Row, e.Column)
}

// ErrInvalidWeights indicates a mixture-weight vector that is not a
// probability vector.
type ErrInvalidWeights struct {
	Reason string
}

func (e *ErrInvalidWeights) Error() string {
	return fmt.Sprintf("invalid mixture weights: %s", e.Reason)
}
