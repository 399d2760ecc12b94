// Package nblist builds cutoff neighbor lists for sets of points.
//
// For every point, the neighbor list holds the indices of all other points
// whose Euclidean distance is strictly below the cutoff. Periodic boundaries
// (minimum-image style translation by ±L on up to three axes) are supported.
//
// # Quick Start
//
//	points := [][]float64{{0, 0, 0}, {1, 0, 0}, {5, 5, 5}}
//	lists, _ := nblist.Build(points, 1.5)
//	lists.Lists() // [[1] [0] []]
//
// Periodic cell:
//
//	lists, _ := nblist.Build(points, 1.5, nblist.WithPeriodicLengths([]float64{10, 10, 10}))
//
// # Enumeration Policies
//
//	PolicyFull  every ordered pair, works with periodic boundaries
//	PolicyHalf  every unordered pair once, both directions recorded (non-periodic only)
//	PolicyAuto  half without periodicity, full with it (default)
//
// Both policies produce identical lists, sorted by neighbor index.
//
// # Memory
//
// Neighbor indices are collected in one buffer that grows by a fixed
// increment. WithMemoryLimit or WithResourceController bounds it; a build
// that cannot grow fails with *ErrAllocation and leaves nothing allocated.
//
// # Batches and Snapshots
//
//	results, _ := nblist.BuildBatch(ctx, frames, nblist.WithWorkers(4))
//	_ = nblist.Save(ctx, store, "frame-0001", results[0])
//	lists, _ := nblist.Load(ctx, store, "frame-0001")
//
// Snapshots go to any blobstore.BlobStore (local disk, memory, S3, MinIO).
//
// # Errors
//
//   - *ErrInvalidInput: empty or ragged points, bad cutoff or cell, half policy with periodicity
//   - *ErrUnsupportedDimension: periodic boundaries above three dimensions
//   - *ErrAllocation: buffer growth refused
//
// All are terminal. No partial result is ever returned.
package nblist
