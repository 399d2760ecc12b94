package buffer

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/nblist/resource"
)

// EntrySize is the accounted size of one stored index in bytes.
const EntrySize = 4

const (
	// DefaultInitialCapacity is the number of entries allocated up front.
	DefaultInitialCapacity = 4096
	// DefaultLowWaterMark triggers growth when fewer free entries remain.
	DefaultLowWaterMark = 256
	// DefaultGrowIncrement is the fixed number of entries added per growth step.
	DefaultGrowIncrement = 4096
)

// ErrCapacityOverflow is the cause of *ErrGrowth when the requested capacity
// cannot be addressed with 32-bit indices.
var ErrCapacityOverflow = errors.New("capacity overflow")

// ErrGrowth indicates that the buffer could not obtain the requested capacity.
type ErrGrowth struct {
	// Requested is the total capacity in entries that was asked for.
	Requested int
	cause     error
}

func (e *ErrGrowth) Error() string {
	return fmt.Sprintf("index buffer growth to %d entries failed: %v", e.Requested, e.cause)
}

func (e *ErrGrowth) Unwrap() error { return e.cause }

// Config configures the growth schedule.
type Config struct {
	InitialCapacity int
	LowWaterMark    int
	GrowIncrement   int
}

// DefaultConfig returns the default growth schedule.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultInitialCapacity,
		LowWaterMark:    DefaultLowWaterMark,
		GrowIncrement:   DefaultGrowIncrement,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.InitialCapacity <= 0 {
		c.InitialCapacity = d.InitialCapacity
	}
	if c.LowWaterMark < 0 {
		c.LowWaterMark = d.LowWaterMark
	}
	if c.GrowIncrement <= 0 {
		c.GrowIncrement = d.GrowIncrement
	}
	return c
}

// IndexBuffer is an append-only store of point indices with capacity >= length.
// It is not safe for concurrent use.
type IndexBuffer struct {
	cfg      Config
	rc       *resource.Controller
	data     []int32
	reserved int64
	grows    int
}

// New allocates a buffer with cfg.InitialCapacity entries, reserving the
// memory against rc. A nil rc disables accounting.
func New(cfg Config, rc *resource.Controller) (*IndexBuffer, error) {
	cfg = cfg.normalized()

	b := &IndexBuffer{
		cfg: cfg,
		rc:  rc,
	}
	if err := b.resize(cfg.InitialCapacity); err != nil {
		return nil, err
	}
	b.grows = 0

	return b, nil
}

// Append stores idx. Capacity grows by one increment first if the append
// would leave less than the low-water mark free.
func (b *IndexBuffer) Append(idx int32) error {
	if cap(b.data)-len(b.data) <= b.cfg.LowWaterMark {
		if err := b.resize(cap(b.data) + b.cfg.GrowIncrement); err != nil {
			return err
		}
	}
	b.data = append(b.data, idx)
	return nil
}

// AppendSlice stores all indices in order.
func (b *IndexBuffer) AppendSlice(idxs []int32) error {
	if err := b.Reserve(len(idxs)); err != nil {
		return err
	}
	b.data = append(b.data, idxs...)
	return nil
}

// Reserve grows capacity in whole increments until n more entries fit
// without dropping below the low-water mark.
func (b *IndexBuffer) Reserve(n int) error {
	if n <= 0 {
		return nil
	}
	need := len(b.data) + n + b.cfg.LowWaterMark
	if need <= cap(b.data) {
		return nil
	}
	steps := (need - cap(b.data) + b.cfg.GrowIncrement - 1) / b.cfg.GrowIncrement
	return b.resize(cap(b.data) + steps*b.cfg.GrowIncrement)
}

func (b *IndexBuffer) resize(newCap int) error {
	if newCap > math.MaxInt32 || newCap < 0 {
		return &ErrGrowth{Requested: newCap, cause: ErrCapacityOverflow}
	}

	delta := int64(newCap-cap(b.data)) * EntrySize
	if err := b.rc.AcquireMemory(delta); err != nil {
		return &ErrGrowth{Requested: newCap, cause: err}
	}

	data := make([]int32, len(b.data), newCap)
	copy(data, b.data)
	b.data = data
	b.reserved += delta
	b.grows++

	return nil
}

// Len returns the number of stored entries.
func (b *IndexBuffer) Len() int { return len(b.data) }

// Cap returns the current capacity in entries.
func (b *IndexBuffer) Cap() int { return cap(b.data) }

// Grows returns how many times capacity was increased after construction.
func (b *IndexBuffer) Grows() int { return b.grows }

// Bytes returns the bytes currently reserved against the controller.
func (b *IndexBuffer) Bytes() int64 { return b.reserved }

// Slice returns the stored entries. The slice aliases the buffer.
func (b *IndexBuffer) Slice() []int32 { return b.data }

// Detach hands the stored entries to the caller and returns the accounting
// to the controller. The buffer is empty afterwards.
func (b *IndexBuffer) Detach() []int32 {
	data := b.data
	b.Release()
	return data
}

// Release returns all reserved memory and drops the storage.
// It is safe to call more than once.
func (b *IndexBuffer) Release() {
	b.rc.ReleaseMemory(b.reserved)
	b.reserved = 0
	b.data = nil
}
