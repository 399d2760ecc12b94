// Package position validates raw coordinates and stores them contiguously.
package position

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmpty is returned when no points are supplied.
var ErrEmpty = errors.New("point set is empty")

// ErrRagged indicates that a row does not have the dimension of the first row.
type ErrRagged struct {
	Row      int
	Expected int
	Actual   int
}

func (e *ErrRagged) Error() string {
	return fmt.Sprintf("point %d has %d coordinates, expected %d", e.Row, e.Actual, e.Expected)
}

// ErrInvalidCutoff indicates a negative or non-finite cutoff radius.
type ErrInvalidCutoff struct {
	Cutoff float64
}

func (e *ErrInvalidCutoff) Error() string {
	return fmt.Sprintf("invalid cutoff: %v", e.Cutoff)
}

// ErrTooManyPoints indicates a point count that cannot be addressed with
// 32-bit indices.
type ErrTooManyPoints struct {
	Count int
}

func (e *ErrTooManyPoints) Error() string {
	return fmt.Sprintf("too many points: %d", e.Count)
}

// Set is an immutable, row-major store of N points of dimension D.
type Set struct {
	coords  []float64
	n       int
	dim     int
	cutoff  float64
	cutoff2 float64
}

// New validates rows and cutoff and copies the coordinates.
func New(rows [][]float64, cutoff float64) (*Set, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	if len(rows) > math.MaxInt32 {
		return nil, &ErrTooManyPoints{Count: len(rows)}
	}
	if cutoff < 0 || math.IsNaN(cutoff) || math.IsInf(cutoff, 0) {
		return nil, &ErrInvalidCutoff{Cutoff: cutoff}
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, &ErrRagged{Row: 0, Expected: 1, Actual: 0}
	}

	coords := make([]float64, len(rows)*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, &ErrRagged{Row: i, Expected: dim, Actual: len(row)}
		}
		copy(coords[i*dim:], row)
	}

	return &Set{
		coords:  coords,
		n:       len(rows),
		dim:     dim,
		cutoff:  cutoff,
		cutoff2: cutoff * cutoff,
	}, nil
}

// Len returns the number of points.
func (s *Set) Len() int { return s.n }

// Dim returns the dimension of every point.
func (s *Set) Dim() int { return s.dim }

// Cutoff returns the cutoff radius.
func (s *Set) Cutoff() float64 { return s.cutoff }

// Cutoff2 returns the squared cutoff radius.
func (s *Set) Cutoff2() float64 { return s.cutoff2 }

// Coord returns the coordinate of point on axis.
func (s *Set) Coord(point, axis int) float64 {
	return s.coords[point*s.dim+axis]
}

// Row returns the coordinates of point. The slice aliases the store and must
// not be modified.
func (s *Set) Row(point int) []float64 {
	off := point * s.dim
	return s.coords[off : off+s.dim : off+s.dim]
}
