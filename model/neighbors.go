package model

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrMalformed is returned by FromCSR for inconsistent offsets or indices.
var ErrMalformed = errors.New("malformed neighbor lists")

// NeighborLists holds, for every point, the indices of the points within the
// cutoff. It is immutable once built.
type NeighborLists struct {
	offsets []int
	indices []int32
}

// FromCSR wraps offsets (len N+1, non-decreasing, offsets[0] == 0,
// offsets[N] == len(indices)) and indices (each in [0, N), never the owner).
// The slices are owned by the result afterwards.
func FromCSR(offsets []int, indices []int32) (*NeighborLists, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: missing offsets", ErrMalformed)
	}
	if offsets[0] != 0 {
		return nil, fmt.Errorf("%w: first offset is %d", ErrMalformed, offsets[0])
	}
	n := len(offsets) - 1
	for i := range n {
		if offsets[i+1] < offsets[i] {
			return nil, fmt.Errorf("%w: offsets decrease at point %d", ErrMalformed, i)
		}
	}
	if offsets[n] != len(indices) {
		return nil, fmt.Errorf("%w: %d offsets cover %d of %d indices", ErrMalformed, len(offsets), offsets[n], len(indices))
	}
	for i := range n {
		for _, j := range indices[offsets[i]:offsets[i+1]] {
			if j < 0 || int(j) >= n || int(j) == i {
				return nil, fmt.Errorf("%w: point %d lists neighbor %d", ErrMalformed, i, j)
			}
		}
	}

	return &NeighborLists{offsets: offsets, indices: indices}, nil
}

// Len returns the number of points.
func (nl *NeighborLists) Len() int {
	return len(nl.offsets) - 1
}

// Pairs returns the total number of recorded (owner, neighbor) entries.
func (nl *NeighborLists) Pairs() int {
	return len(nl.indices)
}

// Count returns the number of neighbors of point i.
func (nl *NeighborLists) Count(i int) int {
	return nl.offsets[i+1] - nl.offsets[i]
}

// Counts returns the neighbor count of every point.
func (nl *NeighborLists) Counts() []int {
	counts := make([]int, nl.Len())
	for i := range counts {
		counts[i] = nl.Count(i)
	}
	return counts
}

// Neighbors returns the neighbors of point i in discovery order.
// The slice aliases internal storage and must not be modified.
func (nl *NeighborLists) Neighbors(i int) []int32 {
	lo, hi := nl.offsets[i], nl.offsets[i+1]
	return nl.indices[lo:hi:hi]
}

// Lists returns a fresh [][]int with one entry per point.
func (nl *NeighborLists) Lists() [][]int {
	out := make([][]int, nl.Len())
	flat := make([]int, len(nl.indices))
	for k, j := range nl.indices {
		flat[k] = int(j)
	}
	for i := range out {
		lo, hi := nl.offsets[i], nl.offsets[i+1]
		out[i] = flat[lo:hi:hi]
	}
	return out
}

// Contains reports whether j is a neighbor of i.
func (nl *NeighborLists) Contains(i, j int) bool {
	for _, k := range nl.Neighbors(i) {
		if int(k) == j {
			return true
		}
	}
	return false
}

// Bitmap returns the neighbors of point i as a roaring bitmap.
func (nl *NeighborLists) Bitmap(i int) *roaring.Bitmap {
	nb := nl.Neighbors(i)
	ids := make([]uint32, len(nb))
	for k, j := range nb {
		ids[k] = uint32(j)
	}
	return roaring.BitmapOf(ids...)
}

// IsSymmetric reports whether j is a neighbor of i exactly when i is a
// neighbor of j.
func (nl *NeighborLists) IsSymmetric() bool {
	n := nl.Len()
	sets := make([]*roaring.Bitmap, n)
	for i := range n {
		sets[i] = nl.Bitmap(i)
	}
	for i := range n {
		it := sets[i].Iterator()
		for it.HasNext() {
			if !sets[it.Next()].Contains(uint32(i)) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether both lists hold the same neighbors in the same order.
func (nl *NeighborLists) Equal(other *NeighborLists) bool {
	if nl.Len() != other.Len() || nl.Pairs() != other.Pairs() {
		return false
	}
	for i, off := range nl.offsets {
		if other.offsets[i] != off {
			return false
		}
	}
	for k, j := range nl.indices {
		if other.indices[k] != j {
			return false
		}
	}
	return true
}

// CSR exposes the underlying offsets and indices. Both slices alias internal
// storage and must not be modified.
func (nl *NeighborLists) CSR() (offsets []int, indices []int32) {
	return nl.offsets, nl.indices
}
