package gibbs_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gibbs"
	"github.com/hupe1980/gibbs/codec"
	"github.com/hupe1980/gibbs/conjugate"
	"github.com/hupe1980/gibbs/model"
	"github.com/hupe1980/gibbs/testutil"
)

func binaryTrace(t *testing.T) *gibbs.Trace {
	t.Helper()

	ds, init, fixed := semiSupervisedBinary(t)
	engine, err := conjugate.NewUniformBetaBernoulli(3)
	require.NoError(t, err)

	s, err := gibbs.New(ds, 2, engine, init,
		gibbs.WithSeed(99),
		gibbs.WithFixedLabels(fixed),
		gibbs.WithEntropyDiagnostics(),
	)
	require.NoError(t, err)

	trace, err := s.Run(context.Background(), 3)
	require.NoError(t, err)

	return trace
}

func gaussianTrace(t *testing.T) *gibbs.Trace {
	t.Helper()

	rows, labels := testutil.GaussianMixture(51, 8, [][]float64{
		{0, 0},
		{5, 5},
	}, 1)

	ds, err := model.NewDataset(rows)
	require.NoError(t, err)

	engine, err := conjugate.NewNormalInverseWishart(1, 4, []float64{0, 0}, testutil.Eye(2, 1))
	require.NoError(t, err)

	s, err := gibbs.New(ds, 2, engine, model.Assignment(labels),
		gibbs.WithSeed(52),
		gibbs.WithEmptyClusterFallback(),
	)
	require.NoError(t, err)

	trace, err := s.Run(context.Background(), 2)
	require.NoError(t, err)

	return trace
}

func assertTracesEqual(t *testing.T, want, got *gibbs.Trace) {
	t.Helper()

	require.Equal(t, want.Len(), got.Len())
	for i := 0; i < want.Len(); i++ {
		ws, gs := want.At(i), got.At(i)

		assert.Equal(t, ws.Sweep, gs.Sweep)
		assert.Equal(t, ws.Assignment, gs.Assignment)
		assert.Equal(t, ws.Counts, gs.Counts)
		assert.Equal(t, ws.Weights, gs.Weights)
		assert.Equal(t, ws.Entropies, gs.Entropies)

		require.Len(t, gs.Components, len(ws.Components))
		for j := range ws.Components {
			switch wc := ws.Components[j].(type) {
			case *model.BernoulliComponent:
				gc, ok := gs.Components[j].(*model.BernoulliComponent)
				require.True(t, ok)
				assert.Equal(t, wc.Probs(), gc.Probs())
			case *model.GaussianComponent:
				gc, ok := gs.Components[j].(*model.GaussianComponent)
				require.True(t, ok)
				assert.Equal(t, wc.Mean(), gc.Mean())
				for a := 0; a < wc.Dim(); a++ {
					for b := 0; b < wc.Dim(); b++ {
						assert.Equal(t, wc.Cov().At(a, b), gc.Cov().At(a, b))
					}
				}
			default:
				t.Fatalf("unexpected component type %T", wc)
			}
		}
	}
}

func TestTraceRoundTrip(t *testing.T) {
	trace := binaryTrace(t)

	for _, compression := range []gibbs.Compression{
		gibbs.CompressionNone,
		gibbs.CompressionGzip,
		gibbs.CompressionLZ4,
	} {
		t.Run(string(compression), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, trace.Encode(&buf, gibbs.WithCompression(compression)))

			decoded, err := gibbs.DecodeTrace(&buf)
			require.NoError(t, err)
			assertTracesEqual(t, trace, decoded)
		})
	}
}

func TestTraceRoundTrip_StdlibCodec(t *testing.T) {
	trace := binaryTrace(t)

	var buf bytes.Buffer
	require.NoError(t, trace.Encode(&buf, gibbs.WithCodec(codec.JSON{})))

	decoded, err := gibbs.DecodeTrace(&buf)
	require.NoError(t, err)
	assertTracesEqual(t, trace, decoded)
}

func TestTraceRoundTrip_Gaussian(t *testing.T) {
	trace := gaussianTrace(t)

	var buf bytes.Buffer
	require.NoError(t, trace.Encode(&buf, gibbs.WithCompression(gibbs.CompressionGzip)))

	decoded, err := gibbs.DecodeTrace(&buf)
	require.NoError(t, err)
	assertTracesEqual(t, trace, decoded)
}

func TestDecodeTrace_BadHeader(t *testing.T) {
	_, err := gibbs.DecodeTrace(bytes.NewReader([]byte("not a trace")))
	require.ErrorIs(t, err, gibbs.ErrBadTraceHeader)

	_, err = gibbs.DecodeTrace(bytes.NewReader(nil))
	require.ErrorIs(t, err, gibbs.ErrBadTraceHeader)
}

func TestTraceLast(t *testing.T) {
	trace := binaryTrace(t)

	last, ok := trace.Last()
	require.True(t, ok)
	assert.Equal(t, 3, last.Sweep)

	empty := &gibbs.Trace{}
	_, ok = empty.Last()
	assert.False(t, ok)
}
