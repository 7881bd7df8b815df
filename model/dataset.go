package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyDataset is returned when a dataset is constructed without rows.
var ErrEmptyDataset = errors.New("dataset must contain at least one observation")

// Dataset is a fixed-shape n×d matrix of observations. Rows are
// observations, columns are variables. A Dataset is immutable after
// construction and safe for concurrent reads.
type Dataset struct {
	m      *mat.Dense
	n, d   int
	binary bool
}

// NewDataset builds a Dataset from row-major data. All rows must have the
// same length.
func NewDataset(rows [][]float64) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	d := len(rows[0])
	if d == 0 {
		return nil, &ErrDimensionMismatch{Expected: 1, Actual: 0}
	}

	flat := make([]float64, 0, len(rows)*d)
	for _, row := range rows {
		if len(row) != d {
			return nil, &ErrDimensionMismatch{Expected: d, Actual: len(row)}
		}
		flat = append(flat, row...)
	}

	return &Dataset{
		m: mat.NewDense(len(rows), d, flat),
		n: len(rows),
		d: d,
	}, nil
}

// NewBinaryDataset builds a Dataset and additionally validates that every
// entry is 0 or 1.
func NewBinaryDataset(rows [][]float64) (*Dataset, error) {
	ds, err := NewDataset(rows)
	if err != nil {
		return nil, err
	}

	for i := 0; i < ds.n; i++ {
		for j := 0; j < ds.d; j++ {
			if v := ds.m.At(i, j); v != 0 && v != 1 {
				return nil, &ErrNonBinaryValue{Row: i, Column: j, Value: v}
			}
		}
	}

	ds.binary = true

	return ds, nil
}

// Len returns the number of observations.
func (ds *Dataset) Len() int { return ds.n }

// Dim returns the number of variables per observation.
func (ds *Dataset) Dim() int { return ds.d }

// Binary reports whether the dataset passed binary validation.
func (ds *Dataset) Binary() bool { return ds.binary }

// Row returns observation i as a slice. The slice aliases the underlying
// storage and must not be mutated.
func (ds *Dataset) Row(i int) []float64 {
	return ds.m.RawRowView(i)
}

// Gather collects the given rows into a fresh n_k×d matrix. Returns nil
// when idx is empty.
func (ds *Dataset) Gather(idx []int) *mat.Dense {
	if len(idx) == 0 {
		return nil
	}

	out := mat.NewDense(len(idx), ds.d, nil)
	for r, i := range idx {
		out.SetRow(r, ds.m.RawRowView(i))
	}

	return out
}
