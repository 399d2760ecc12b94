// Package testutil provides helpers for nblist tests and benchmarks.
//
// # Random Point Clouds
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(500, 3, 0, 10)   // uniform in [0, 10)^3
//
// # Reference Neighbor Lists
//
//	want := testutil.BruteForce(points, cutoff, lengths)
//
// BruteForce tests every ordered pair against every periodic translation
// with no shortcuts. It is the oracle the engine is checked against.
package testutil
