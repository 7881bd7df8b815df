package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	type payload struct {
		Sweep   int       `json:"sweep"`
		Weights []float64 `json:"weights"`
	}

	in := payload{Sweep: 3, Weights: []float64{0.25, 0.75}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		data, err := c.Marshal(in)
		require.NoError(t, err, c.Name())

		var out payload
		require.NoError(t, c.Unmarshal(data, &out), c.Name())
		assert.Equal(t, in, out, c.Name())
	}
}
