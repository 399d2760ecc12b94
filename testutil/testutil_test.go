package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.UniformPoints(100, 3, -2, 5)

	require.Len(t, p, 100)
	for _, row := range p {
		require.Len(t, row, 3)
		for _, x := range row {
			assert.GreaterOrEqual(t, x, -2.0)
			assert.Less(t, x, 5.0)
		}
	}

	// Appending to one row must not clobber the next.
	first := append(p[0], 99)
	assert.NotEqual(t, 99.0, p[1][0])
	assert.Len(t, first, 4)
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.UniformPoints(5, 2, 0, 1)
	rng.Reset()
	b := rng.UniformPoints(5, 2, 0, 1)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(7), rng.Seed())
}

func TestLattice(t *testing.T) {
	p := Lattice(3, 2, 0.5)
	require.Len(t, p, 9)
	assert.Equal(t, []float64{0, 0}, p[0])
	assert.Equal(t, []float64{0.5, 0}, p[1])
	assert.Equal(t, []float64{0, 0.5}, p[3])
	assert.Equal(t, []float64{1, 1}, p[8])
}

func TestBruteForce(t *testing.T) {
	points := [][]float64{{0.5}, {9.5}, {5}}

	direct := BruteForce(points, 1.5, nil)
	assert.Equal(t, [][]int{{}, {}, {}}, direct)

	periodic := BruteForce(points, 1.5, []float64{10})
	assert.Equal(t, [][]int{{1}, {0}, {}}, periodic)
	assert.Equal(t, 2, PairCount(periodic))
}

func TestTranslations(t *testing.T) {
	assert.Len(t, translations([]float64{1, 1, 1}, 3), 27)
	assert.Len(t, translations([]float64{1, 0, 1}, 3), 9)
	assert.Len(t, translations(nil, 3), 1)
}
