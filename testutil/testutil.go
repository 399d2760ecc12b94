package testutil

import (
	"math/rand"
	"sync"
)

// RNG wraps a seeded math/rand source. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points of dim coordinates uniform in [lo, hi).
// Rows share one backing array.
func (r *RNG) UniformPoints(num, dim int, lo, hi float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	span := hi - lo

	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for a := range p {
			p[a] = lo + r.rand.Float64()*span
		}
		points[i] = p
	}
	return points
}

// Lattice returns the points of a simple cubic lattice with perAxis sites per
// axis and the given spacing, ordered with the first axis fastest.
func Lattice(perAxis, dim int, spacing float64) [][]float64 {
	total := 1
	for range dim {
		total *= perAxis
	}
	points := make([][]float64, total)
	for i := range total {
		p := make([]float64, dim)
		c := i
		for a := range dim {
			p[a] = float64(c%perAxis) * spacing
			c /= perAxis
		}
		points[i] = p
	}
	return points
}

// BruteForce returns, for every point, the ascending indices of the other
// points within cutoff directly or through any translation in {-L, 0, +L}
// on the axes with a positive length. A nil lengths slice means no
// periodicity.
func BruteForce(points [][]float64, cutoff float64, lengths []float64) [][]int {
	n := len(points)
	cutoff2 := cutoff * cutoff
	shifts := translations(lengths, dimOf(points))

	out := make([][]int, n)
	for i := range n {
		out[i] = []int{}
		for j := range n {
			if i == j {
				continue
			}
			for _, s := range shifts {
				if dist2(points[i], points[j], s) < cutoff2 {
					out[i] = append(out[i], j)
					break
				}
			}
		}
	}
	return out
}

// PairCount returns the total number of entries in lists.
func PairCount(lists [][]int) int {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	return total
}

func dimOf(points [][]float64) int {
	if len(points) == 0 {
		return 0
	}
	return len(points[0])
}

// translations returns the zero shift followed by every combination of
// {0, +L, -L} over the periodic axes.
func translations(lengths []float64, dim int) [][]float64 {
	shifts := [][]float64{make([]float64, dim)}
	for a, l := range lengths {
		if l <= 0 {
			continue
		}
		var next [][]float64
		for _, s := range shifts {
			for _, sign := range []float64{1, -1} {
				t := append([]float64(nil), s...)
				t[a] = sign * l
				next = append(next, t)
			}
		}
		shifts = append(shifts, next...)
	}
	return shifts
}

func dist2(pi, pj, shift []float64) float64 {
	var sum float64
	for a := range pi {
		d := pi[a] - (pj[a] + shift[a])
		sum += float64(d * d)
	}
	return sum
}
