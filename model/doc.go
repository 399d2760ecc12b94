// Package model defines the neighbor-list result type shared by the builder,
// the assembler and the persistence layer.
//
// # Layout
//
// NeighborLists is stored in compressed sparse row (CSR) form: one flat slice
// of neighbor indices in owner order plus N+1 offsets. The neighbors of point
// i are indices[offsets[i]:offsets[i+1]], in the order they were discovered.
//
//	lists.Neighbors(i)  // read-only view
//	lists.Lists()       // [][]int copy
//	lists.Bitmap(i)     // roaring bitmap for set operations
package model
