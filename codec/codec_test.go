package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manifest struct {
	Points int       `json:"points"`
	Cutoff float64   `json:"cutoff"`
	Cell   []float64 `json:"cell,omitempty"`
}

func TestCodecs(t *testing.T) {
	in := manifest{Points: 3, Cutoff: 1.5, Cell: []float64{10, 0, 10}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out manifest
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	_, err := Lookup("msgpack")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}
