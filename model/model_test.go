package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDataset(t *testing.T) {
	ds, err := NewDataset([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, []float64{3, 4}, ds.Row(1))
	assert.False(t, ds.Binary())
}

func TestNewDataset_Errors(t *testing.T) {
	_, err := NewDataset(nil)
	require.ErrorIs(t, err, ErrEmptyDataset)

	_, err = NewDataset([][]float64{{1, 2}, {3}})
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 1, dm.Actual)
}

func TestNewBinaryDataset(t *testing.T) {
	ds, err := NewBinaryDataset([][]float64{{0, 1, 1}, {1, 0, 0}})
	require.NoError(t, err)
	assert.True(t, ds.Binary())

	_, err = NewBinaryDataset([][]float64{{0, 1}, {0.5, 0}})
	var nb *ErrNonBinaryValue
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, 1, nb.Row)
	assert.Equal(t, 0, nb.Column)
}

func TestDatasetGather(t *testing.T) {
	ds, err := NewDataset([][]float64{{1, 1}, {2, 2}, {3, 3}})
	require.NoError(t, err)

	m := ds.Gather([]int{0, 2})
	require.NotNil(t, m)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 3.0, m.At(1, 0))

	assert.Nil(t, ds.Gather(nil))
}

func TestAssignment(t *testing.T) {
	a := Assignment{1, 2, 1, 3, 2, 1}

	require.NoError(t, a.Validate(3))
	assert.Equal(t, []int{3, 2, 1}, a.Counts(3))
	assert.Equal(t, []int{0, 2, 5}, a.Members(1))
	assert.Equal(t, []int{3}, a.Members(3))
	assert.Nil(t, a.Members(4))

	clone := a.Clone()
	clone[0] = 3
	assert.Equal(t, 1, a[0])
}

func TestAssignmentValidate(t *testing.T) {
	var invalid *ErrInvalidClusterID

	err := Assignment{1, 0}.Validate(2)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, invalid.ID)

	err = Assignment{1, 3}.Validate(2)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 3, invalid.ID)
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, Weights{0.25, 0.75}.Validate(1e-9))
	require.NoError(t, Weights{0, 1}.Validate(1e-9))

	require.Error(t, Weights{}.Validate(1e-9))
	require.Error(t, Weights{-0.1, 1.1}.Validate(1e-9))
	require.Error(t, Weights{0.5, 0.6}.Validate(1e-9))
	require.Error(t, Weights{math.NaN(), 1}.Validate(1e-9))
}

func TestWeightsNormalize(t *testing.T) {
	w := Weights{1, 1, 2}
	require.NoError(t, w.Normalize())
	assert.InDelta(t, 0.25, w[0], 1e-12)
	assert.InDelta(t, 0.5, w[2], 1e-12)
	require.NoError(t, w.Validate(1e-9))

	require.Error(t, Weights{0, 0}.Normalize())
}

func TestBernoulliComponent(t *testing.T) {
	c, err := NewBernoulliComponent([]float64{0.5, 0.25})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Dim())

	// log(0.5) + log(0.75) for row (1, 0)
	want := math.Log(0.5) + math.Log(0.75)
	assert.InDelta(t, want, c.LogLikelihood([]float64{1, 0}), 1e-12)
}

func TestNewBernoulliComponent_Errors(t *testing.T) {
	_, err := NewBernoulliComponent(nil)
	require.Error(t, err)

	_, err = NewBernoulliComponent([]float64{0.5, 0})
	require.Error(t, err)

	_, err = NewBernoulliComponent([]float64{1})
	require.Error(t, err)
}

func TestGaussianComponent(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 0, 0, 1})
	c, err := NewGaussianComponent([]float64{0, 0}, cov)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Dim())

	// Standard bivariate normal density at the origin: -log(2*pi).
	assert.InDelta(t, -math.Log(2*math.Pi), c.LogLikelihood([]float64{0, 0}), 1e-12)
}

func TestNewGaussianComponent_NotPD(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 2, 2, 1}) // indefinite
	_, err := NewGaussianComponent([]float64{0, 0}, cov)
	require.Error(t, err)
}

func TestGaussianComponent_Immutable(t *testing.T) {
	mean := []float64{1, 2}
	cov := mat.NewSymDense(2, []float64{2, 0, 0, 2})

	c, err := NewGaussianComponent(mean, cov)
	require.NoError(t, err)

	mean[0] = 99
	cov.SetSym(0, 0, 99)

	assert.Equal(t, 1.0, c.Mean()[0])
	assert.Equal(t, 2.0, c.Cov().At(0, 0))
}
