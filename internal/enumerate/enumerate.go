// Package enumerate walks point pairs, applies the cutoff test and records
// accepted neighbors into an index buffer in owner order.
package enumerate

import (
	"errors"
	"fmt"

	"github.com/hupe1980/nblist/distance"
	"github.com/hupe1980/nblist/internal/buffer"
	"github.com/hupe1980/nblist/internal/periodic"
	"github.com/hupe1980/nblist/internal/position"
)

// Policy selects how pairs are visited.
type Policy int

const (
	// PolicyAuto uses PolicyHalf without an active periodic cell and
	// PolicyFull otherwise.
	PolicyAuto Policy = iota
	// PolicyFull tests every ordered pair (i, j), i != j.
	PolicyFull
	// PolicyHalf tests every unordered pair once and records both directions.
	// Only valid without periodic boundaries.
	PolicyHalf
)

func (p Policy) String() string {
	switch p {
	case PolicyAuto:
		return "auto"
	case PolicyFull:
		return "full"
	case PolicyHalf:
		return "half"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ErrHalfPeriodic is returned when PolicyHalf is requested with an active
// periodic cell.
var ErrHalfPeriodic = errors.New("half enumeration requires a non-periodic cell")

// Resolve maps PolicyAuto to a concrete policy and rejects combinations that
// are not valid for r.
func Resolve(p Policy, r *periodic.Resolver) (Policy, error) {
	switch p {
	case PolicyAuto:
		if r.Active() {
			return PolicyFull, nil
		}
		return PolicyHalf, nil
	case PolicyFull:
		return PolicyFull, nil
	case PolicyHalf:
		if r.Active() {
			return 0, ErrHalfPeriodic
		}
		return PolicyHalf, nil
	default:
		return 0, fmt.Errorf("unknown policy %d", int(p))
	}
}

// Run enumerates with the resolved policy and returns per-point counts.
func Run(p Policy, set *position.Set, r *periodic.Resolver, buf *buffer.IndexBuffer) ([]int, error) {
	p, err := Resolve(p, r)
	if err != nil {
		return nil, err
	}
	if p == PolicyHalf {
		return Half(set, buf)
	}
	return Full(set, r, buf)
}

// Full tests every ordered pair. For each owner i, candidates j are visited in
// ascending order and appended to i's segment of buf.
func Full(set *position.Set, r *periodic.Resolver, buf *buffer.IndexBuffer) ([]int, error) {
	n := set.Len()
	counts := make([]int, n)

	if r != nil {
		for i := range n {
			for j := range n {
				if i == j || !r.Within(i, j) {
					continue
				}
				if err := buf.Append(int32(j)); err != nil {
					return nil, err
				}
				counts[i]++
			}
		}
		return counts, nil
	}

	dist := distance.ForDim(set.Dim())
	cutoff2 := set.Cutoff2()
	for i := range n {
		pi := set.Row(i)
		for j := range n {
			if i == j || dist(pi, set.Row(j)) >= cutoff2 {
				continue
			}
			if err := buf.Append(int32(j)); err != nil {
				return nil, err
			}
			counts[i]++
		}
	}
	return counts, nil
}

// Half tests every unordered pair i < j once. A forward hit appends j to i's
// segment right away. The reverse hit (i as neighbor of j) is staged in
// pending[j] and flushed when j becomes the owner, before j's own forward
// scan, so the buffer stays in owner order.
func Half(set *position.Set, buf *buffer.IndexBuffer) ([]int, error) {
	n := set.Len()
	counts := make([]int, n)
	pending := make([][]int32, n)

	dist := distance.ForDim(set.Dim())
	cutoff2 := set.Cutoff2()

	for k := range n {
		if len(pending[k]) > 0 {
			if err := buf.AppendSlice(pending[k]); err != nil {
				return nil, err
			}
			counts[k] += len(pending[k])
			pending[k] = nil
		}

		pk := set.Row(k)
		for m := k + 1; m < n; m++ {
			if dist(pk, set.Row(m)) >= cutoff2 {
				continue
			}
			if err := buf.Append(int32(m)); err != nil {
				return nil, err
			}
			counts[k]++
			pending[m] = append(pending[m], int32(k))
		}
	}
	return counts, nil
}
