// Package periodic decides whether any periodic image of one point lies within
// the cutoff of another.
//
// A cell is described by per-axis lengths and an origin. Axes with length 0
// are not periodic. For P periodic axes the resolver tests up to 3^P-1
// translation offsets built from {0, +L, -L} per axis and accepts on the first
// one that passes; the all-zero offset is the direct test.
//
// # Skin Prefilter
//
// Two exact shortcuts skip offsets that cannot pass:
//
//   - Point skin: if point i lies inside the cell at least one cutoff away
//     from every face, and point j lies inside the cell, no non-zero offset
//     brings j within the cutoff of i.
//   - Axis pruning: a squared distance is a sum of non-negative per-axis
//     terms, so an offset whose term on any axis already reaches cutoff^2
//     cannot pass.
//
// Neither shortcut changes which pairs are accepted.
package periodic
