package nblist

import (
	"errors"
	"fmt"

	"github.com/hupe1980/nblist/internal/buffer"
	"github.com/hupe1980/nblist/internal/enumerate"
	"github.com/hupe1980/nblist/internal/periodic"
	"github.com/hupe1980/nblist/internal/position"
)

var (
	// ErrInvalidArgument matches every *ErrInvalidInput via errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoFrames is returned by BuildBatch when no frames are supplied.
	ErrNoFrames = errors.New("no frames")
)

// ErrInvalidInput indicates points, cutoff or cell parameters that cannot be
// processed: zero points, ragged coordinates, a negative cutoff, a malformed
// periodic cell, or half enumeration combined with periodic boundaries.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidInput struct {
	Reason string
	cause  error
}

func (e *ErrInvalidInput) Error() string {
	return "invalid input: " + e.Reason
}

func (e *ErrInvalidInput) Unwrap() error { return e.cause }

// Is reports ErrInvalidArgument as a match.
func (e *ErrInvalidInput) Is(target error) bool { return target == ErrInvalidArgument }

// ErrUnsupportedDimension indicates periodic boundaries requested for more
// than three dimensions.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnsupportedDimension struct {
	Dimension int
	cause     error
}

func (e *ErrUnsupportedDimension) Error() string {
	return fmt.Sprintf("unsupported dimension for periodic boundaries: %d", e.Dimension)
}

func (e *ErrUnsupportedDimension) Unwrap() error { return e.cause }

// ErrAllocation indicates that the neighbor buffer could not grow to the
// requested capacity. No partial result is returned.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrAllocation struct {
	// Requested is the capacity in index entries that could not be obtained.
	Requested int
	// Limit is the memory budget in bytes that refused the growth, 0 if none.
	Limit int64
	cause error
}

func (e *ErrAllocation) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("allocation of %d neighbor entries failed (limit %d bytes)", e.Requested, e.Limit)
	}
	return fmt.Sprintf("allocation of %d neighbor entries failed", e.Requested)
}

func (e *ErrAllocation) Unwrap() error { return e.cause }

// ErrFrame wraps the failure of one frame in BuildBatch.
type ErrFrame struct {
	Frame int
	cause error
}

func (e *ErrFrame) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.cause)
}

func (e *ErrFrame) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, position.ErrEmpty) {
		return &ErrInvalidInput{Reason: err.Error(), cause: err}
	}
	var re *position.ErrRagged
	if errors.As(err, &re) {
		return &ErrInvalidInput{Reason: re.Error(), cause: err}
	}
	var ce *position.ErrInvalidCutoff
	if errors.As(err, &ce) {
		return &ErrInvalidInput{Reason: ce.Error(), cause: err}
	}
	var tm *position.ErrTooManyPoints
	if errors.As(err, &tm) {
		return &ErrInvalidInput{Reason: tm.Error(), cause: err}
	}
	var ic *periodic.ErrInvalidCell
	if errors.As(err, &ic) {
		return &ErrInvalidInput{Reason: ic.Error(), cause: err}
	}
	if errors.Is(err, enumerate.ErrHalfPeriodic) {
		return &ErrInvalidInput{Reason: err.Error(), cause: err}
	}

	var ud *periodic.ErrUnsupportedDimension
	if errors.As(err, &ud) {
		return &ErrUnsupportedDimension{Dimension: ud.Dimension, cause: err}
	}

	var ge *buffer.ErrGrowth
	if errors.As(err, &ge) {
		return &ErrAllocation{Requested: ge.Requested, cause: err}
	}

	return err
}
