package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCSR(t *testing.T) {
	nl, err := FromCSR([]int{0, 2, 3, 3}, []int32{2, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, 3, nl.Len())
	assert.Equal(t, 3, nl.Pairs())
	assert.Equal(t, []int{2, 1, 0}, nl.Counts())
	assert.Equal(t, []int32{2, 1}, nl.Neighbors(0))
	assert.Equal(t, [][]int{{2, 1}, {0}, {}}, nl.Lists())
	assert.True(t, nl.Contains(0, 1))
	assert.False(t, nl.Contains(2, 0))
}

func TestFromCSR_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		indices []int32
	}{
		{"NoOffsets", nil, nil},
		{"NonZeroStart", []int{1, 1}, []int32{}},
		{"Decreasing", []int{0, 2, 1}, []int32{1, 0}},
		{"Coverage", []int{0, 1, 1}, []int32{1, 0}},
		{"SelfNeighbor", []int{0, 1, 1}, []int32{0}},
		{"OutOfRange", []int{0, 1, 1}, []int32{5}},
		{"Negative", []int{0, 1, 1}, []int32{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCSR(tt.offsets, tt.indices)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLists_IsCopy(t *testing.T) {
	nl, err := FromCSR([]int{0, 1, 2}, []int32{1, 0})
	require.NoError(t, err)

	lists := nl.Lists()
	lists[0][0] = 42
	assert.Equal(t, []int32{1}, nl.Neighbors(0))
}

func TestBitmap(t *testing.T) {
	nl, err := FromCSR([]int{0, 3, 3, 3, 3}, []int32{3, 1, 2})
	require.NoError(t, err)

	bm := nl.Bitmap(0)
	assert.Equal(t, uint64(3), bm.GetCardinality())
	assert.Equal(t, []uint32{1, 2, 3}, bm.ToArray())
	assert.True(t, nl.Bitmap(1).IsEmpty())
}

func TestIsSymmetric(t *testing.T) {
	sym, err := FromCSR([]int{0, 2, 3, 4}, []int32{1, 2, 0, 0})
	require.NoError(t, err)
	assert.True(t, sym.IsSymmetric())

	asym, err := FromCSR([]int{0, 2, 3, 3}, []int32{1, 2, 0})
	require.NoError(t, err)
	assert.False(t, asym.IsSymmetric())
}

func TestEqual(t *testing.T) {
	a, err := FromCSR([]int{0, 1, 2}, []int32{1, 0})
	require.NoError(t, err)
	b, err := FromCSR([]int{0, 1, 2}, []int32{1, 0})
	require.NoError(t, err)
	c, err := FromCSR([]int{0, 1, 1}, []int32{1})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
