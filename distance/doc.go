// Package distance provides squared Euclidean distance kernels for float64
// coordinates.
//
// The low-dimensional cases that dominate particle simulations (1-D, 2-D and
// 3-D) get unrolled kernels; every other dimension uses a generic loop.
//
// # Usage
//
//	fn := distance.ForDim(3)
//	d2 := fn(a, b)
//	if d2 < cutoff*cutoff {
//	    // neighbors
//	}
package distance
