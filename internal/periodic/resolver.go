package periodic

import (
	"fmt"
	"math"

	"github.com/hupe1980/nblist/distance"
	"github.com/hupe1980/nblist/internal/position"
)

// MaxDim is the highest dimension supported with periodic boundaries.
const MaxDim = 3

// skinMargin widens the point-skin test relative to the cell scale so that
// rounding in the face distances can never classify a boundary point as
// interior.
const skinMargin = 1e-9

// ErrUnsupportedDimension indicates periodicity requested for D > MaxDim.
type ErrUnsupportedDimension struct {
	Dimension int
}

func (e *ErrUnsupportedDimension) Error() string {
	return fmt.Sprintf("periodic boundaries support at most %d dimensions, got %d", MaxDim, e.Dimension)
}

// ErrInvalidCell indicates malformed cell lengths or origin.
type ErrInvalidCell struct {
	Reason string
}

func (e *ErrInvalidCell) Error() string {
	return "invalid periodic cell: " + e.Reason
}

// Options configures a Resolver.
type Options struct {
	// Origin anchors the cell. Nil means the zero vector.
	Origin []float64
	// Skin enables the exact prefilters.
	Skin bool
}

// Resolver tests direct and periodic-image distances for one position set.
type Resolver struct {
	set     *position.Set
	dim     int
	lengths []float64
	origin  []float64
	axes    []int // periodic axes
	dist    distance.Func

	// offsets holds the non-zero translation vectors, row-major.
	offsets []float64

	skin     bool
	interior []bool
	inside   []bool
}

// New builds a resolver for set. A nil lengths slice disables periodicity
// and yields a nil resolver; a nil *Resolver performs direct tests only.
func New(set *position.Set, lengths []float64, opts Options) (*Resolver, error) {
	if lengths == nil {
		return nil, nil
	}

	dim := set.Dim()
	if dim > MaxDim {
		return nil, &ErrUnsupportedDimension{Dimension: dim}
	}
	if len(lengths) != dim {
		return nil, &ErrInvalidCell{Reason: fmt.Sprintf("%d lengths for dimension %d", len(lengths), dim)}
	}
	for a, l := range lengths {
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, &ErrInvalidCell{Reason: fmt.Sprintf("length %v on axis %d", l, a)}
		}
	}

	origin := make([]float64, dim)
	if opts.Origin != nil {
		if len(opts.Origin) != dim {
			return nil, &ErrInvalidCell{Reason: fmt.Sprintf("origin has %d components for dimension %d", len(opts.Origin), dim)}
		}
		for a, o := range opts.Origin {
			if math.IsNaN(o) || math.IsInf(o, 0) {
				return nil, &ErrInvalidCell{Reason: fmt.Sprintf("origin %v on axis %d", o, a)}
			}
		}
		copy(origin, opts.Origin)
	}

	r := &Resolver{
		set:     set,
		dim:     dim,
		lengths: append([]float64(nil), lengths...),
		origin:  origin,
		dist:    distance.ForDim(dim),
		skin:    opts.Skin,
	}
	for a, l := range r.lengths {
		if l > 0 {
			r.axes = append(r.axes, a)
		}
	}

	r.buildOffsets()
	if r.skin && r.Active() {
		r.classify()
	}

	return r, nil
}

// buildOffsets enumerates every combination of {0, +1, -1} over the periodic
// axes except the all-zero one. The first periodic axis varies fastest.
func (r *Resolver) buildOffsets() {
	p := len(r.axes)
	if p == 0 {
		return
	}

	total := 1
	for range p {
		total *= 3
	}

	digitSign := [3]int8{0, 1, -1}
	for code := 1; code < total; code++ {
		c := code
		shift := make([]int8, r.dim)
		for _, a := range r.axes {
			shift[a] = digitSign[c%3]
			c /= 3
		}
		for a := range r.dim {
			r.offsets = append(r.offsets, float64(shift[a])*r.lengths[a])
		}
	}
}

// classify marks points inside the cell and points at least one cutoff away
// from every periodic face.
func (r *Resolver) classify() {
	n := r.set.Len()
	rc := r.set.Cutoff()

	r.interior = make([]bool, n)
	r.inside = make([]bool, n)

	for i := range n {
		in, deep := true, true
		for _, a := range r.axes {
			x := r.set.Coord(i, a)
			lo := r.origin[a]
			l := r.lengths[a]
			if x < lo || x >= lo+l {
				in = false
				deep = false
				break
			}
			margin := rc + skinMargin*(l+rc)
			if x-lo < margin || lo+l-x < margin {
				deep = false
			}
		}
		r.inside[i] = in
		r.interior[i] = deep
	}
}

// Active reports whether any axis is periodic.
func (r *Resolver) Active() bool {
	return r != nil && len(r.axes) > 0
}

// Offsets returns the number of non-zero translation offsets tested.
func (r *Resolver) Offsets() int {
	if r == nil || r.dim == 0 {
		return 0
	}
	return len(r.offsets) / r.dim
}

// SmallCell reports whether the cutoff reaches half of the shortest periodic
// length, the regime in which several offsets may pass for the same pair.
func (r *Resolver) SmallCell() bool {
	if !r.Active() {
		return false
	}
	rc := r.set.Cutoff()
	for _, a := range r.axes {
		if rc >= r.lengths[a]/2 {
			return true
		}
	}
	return false
}

// Within reports whether point j, or any periodic image of it, lies strictly
// within the cutoff of point i.
func (r *Resolver) Within(i, j int) bool {
	pi, pj := r.set.Row(i), r.set.Row(j)
	cutoff2 := r.set.Cutoff2()
	if r.dist(pi, pj) < cutoff2 {
		return true
	}
	if !r.Active() {
		return false
	}
	return r.imageWithin(i, j, pi, pj, cutoff2)
}

func (r *Resolver) imageWithin(i, j int, pi, pj []float64, cutoff2 float64) bool {
	if r.skin && r.interior[i] && r.inside[j] {
		return false
	}

	dim := r.dim
	for k := 0; k < len(r.offsets); k += dim {
		off := r.offsets[k : k+dim]
		if r.skin {
			if r.imageDistance2Pruned(pi, pj, off, cutoff2) < cutoff2 {
				return true
			}
			continue
		}
		if imageDistance2(pi, pj, off) < cutoff2 {
			return true
		}
	}
	return false
}

// imageDistance2 returns the squared distance from pi to pj translated by off.
func imageDistance2(pi, pj, off []float64) float64 {
	var sum float64
	for a := range pi {
		d := pi[a] - (pj[a] + off[a])
		sum += float64(d * d)
	}
	return sum
}

// imageDistance2Pruned is imageDistance2 with an early exit: as soon as one
// per-axis term reaches cutoff2 the partial sum is returned, which is already
// >= cutoff2.
func (r *Resolver) imageDistance2Pruned(pi, pj, off []float64, cutoff2 float64) float64 {
	var sum float64
	for a := range pi {
		d := pi[a] - (pj[a] + off[a])
		t := float64(d * d)
		if t >= cutoff2 {
			return t
		}
		sum += t
	}
	return sum
}
