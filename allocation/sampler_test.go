package allocation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/randvar"
)

func binaryFixture(t *testing.T) (*model.Dataset, []model.Component) {
	t.Helper()

	ds, err := model.NewBinaryDataset([][]float64{
		{1, 1, 1},
		{0, 0, 0},
	})
	require.NoError(t, err)

	high, err := model.NewBernoulliComponent([]float64{0.99, 0.99, 0.99})
	require.NoError(t, err)
	low, err := model.NewBernoulliComponent([]float64{0.01, 0.01, 0.01})
	require.NoError(t, err)

	return ds, []model.Component{high, low}
}

func TestNew_Validation(t *testing.T) {
	ds, comps := binaryFixture(t)

	_, err := New(ds, comps, model.Weights{1})
	require.ErrorIs(t, err, ErrMismatchedComponents)

	_, err = New(ds, comps, model.Weights{0.7, 0.7})
	require.Error(t, err)

	short, err := model.NewBernoulliComponent([]float64{0.5})
	require.NoError(t, err)
	_, err = New(ds, []model.Component{short, short}, model.Weights{0.5, 0.5})
	var dm *model.ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
}

func TestLogPosteriors(t *testing.T) {
	ds, comps := binaryFixture(t)

	s, err := New(ds, comps, model.Weights{0.25, 0.75})
	require.NoError(t, err)

	scores := s.LogPosteriors(0)
	require.Len(t, scores, 2)

	// Cross-check against the closed form for row (1,1,1).
	want0 := 3*math.Log(0.99) + math.Log(0.25)
	want1 := 3*math.Log(0.01) + math.Log(0.75)
	assert.InDelta(t, want0, scores[0], 1e-12)
	assert.InDelta(t, want1, scores[1], 1e-12)
}

func TestReassign(t *testing.T) {
	ds, comps := binaryFixture(t)

	s, err := New(ds, comps, model.Weights{0.5, 0.5})
	require.NoError(t, err)

	// Row 0 is (1,1,1): overwhelmingly cluster 1. Row 1 is (0,0,0):
	// overwhelmingly cluster 2.
	src := randvar.New(1)
	label0, entropy0, err := s.Reassign(0, src)
	require.NoError(t, err)
	assert.Equal(t, 1, label0)
	assert.GreaterOrEqual(t, entropy0, 0.0)
	assert.Less(t, entropy0, 0.1)

	label1, _, err := s.Reassign(1, src)
	require.NoError(t, err)
	assert.Equal(t, 2, label1)
}

func TestReassign_Deterministic(t *testing.T) {
	ds, comps := binaryFixture(t)

	s, err := New(ds, comps, model.Weights{0.5, 0.5})
	require.NoError(t, err)

	a, _, err := s.Reassign(0, randvar.New(42))
	require.NoError(t, err)
	b, _, err := s.Reassign(0, randvar.New(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReassign_LogSumExpStability(t *testing.T) {
	// Probabilities so extreme that naive exponentiation of the
	// unnormalized log scores would underflow to all zeros.
	ds, err := model.NewBinaryDataset([][]float64{
		make([]float64, 500),
	})
	require.NoError(t, err)

	nearOne := make([]float64, 500)
	nearZero := make([]float64, 500)
	for i := range nearOne {
		nearOne[i] = 1 - 1e-9
		nearZero[i] = 1e-9
	}

	hi, err := model.NewBernoulliComponent(nearOne)
	require.NoError(t, err)
	lo, err := model.NewBernoulliComponent(nearZero)
	require.NoError(t, err)

	s, err := New(ds, []model.Component{hi, lo}, model.Weights{0.5, 0.5})
	require.NoError(t, err)

	label, entropy, err := s.Reassign(0, randvar.New(1))
	require.NoError(t, err)
	assert.Equal(t, 2, label) // all-zeros row belongs to the near-zero component
	assert.False(t, math.IsNaN(entropy))
}

func TestReassign_UniformEntropy(t *testing.T) {
	ds, err := model.NewBinaryDataset([][]float64{{1, 0}})
	require.NoError(t, err)

	c, err := model.NewBernoulliComponent([]float64{0.5, 0.5})
	require.NoError(t, err)

	// Identical components and weights: allocation probabilities are
	// uniform, so entropy is log(K).
	s, err := New(ds, []model.Component{c, c, c}, model.Weights{1.0 / 3, 1.0 / 3, 1.0 / 3})
	require.NoError(t, err)

	_, entropy, err := s.Reassign(0, randvar.New(1))
	require.NoError(t, err)
	assert.InDelta(t, math.Log(3), entropy, 1e-9)
}
