package nblist

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/nblist/internal/assemble"
	"github.com/hupe1980/nblist/internal/buffer"
	"github.com/hupe1980/nblist/internal/enumerate"
	"github.com/hupe1980/nblist/internal/periodic"
	"github.com/hupe1980/nblist/internal/position"
	"github.com/hupe1980/nblist/model"
)

// NeighborLists is the result of a build: one neighbor list per point.
type NeighborLists = model.NeighborLists

// BuildStats summarizes one build.
type BuildStats struct {
	Points    int
	Dimension int
	// Pairs is the number of recorded (owner, neighbor) entries.
	Pairs int
	// Policy is the policy actually used after resolving PolicyAuto.
	Policy Policy
	// ImageOffsets is the number of periodic translations tested per pair.
	ImageOffsets int
	// BufferGrows counts the fixed-increment growth steps of the buffer.
	BufferGrows int
	Duration    time.Duration
}

// Build computes the neighbor lists of points for the given cutoff.
//
// points holds one row of D coordinates per point; every row must have the
// same length. A pair (i, j), i != j, is recorded when their squared distance,
// or that of a periodic image, is strictly below cutoff².
func Build(points [][]float64, cutoff float64, opts ...Option) (*NeighborLists, error) {
	lists, _, err := BuildWithStats(points, cutoff, opts...)
	return lists, err
}

// BuildWithStats is Build and additionally reports build statistics.
func BuildWithStats(points [][]float64, cutoff float64, opts ...Option) (*NeighborLists, BuildStats, error) {
	o := applyOptions(opts)
	return build(context.Background(), points, cutoff, &o)
}

func build(ctx context.Context, points [][]float64, cutoff float64, o *options) (*NeighborLists, BuildStats, error) {
	start := time.Now()

	stats := BuildStats{Points: len(points), Policy: o.policy}
	if len(points) > 0 {
		stats.Dimension = len(points[0])
	}

	lists, err := run(ctx, points, cutoff, o, &stats)
	err = translateError(err)
	var ae *ErrAllocation
	if errors.As(err, &ae) {
		ae.Limit = o.rc.MemoryLimit()
	}
	if lists != nil {
		stats.Pairs = lists.Pairs()
	}
	stats.Duration = time.Since(start)

	o.metricsCollector.RecordBuild(stats.Points, stats.Pairs, stats.Duration, err)
	o.logger.LogBuild(ctx, stats, err)

	if err != nil {
		return nil, stats, err
	}
	return lists, stats, nil
}

func run(ctx context.Context, points [][]float64, cutoff float64, o *options, stats *BuildStats) (*NeighborLists, error) {
	set, err := position.New(points, cutoff)
	if err != nil {
		return nil, err
	}

	r, err := periodic.New(set, o.lengths, periodic.Options{Origin: o.origin, Skin: o.skin})
	if err != nil {
		return nil, err
	}
	if r.SmallCell() {
		o.logger.LogSmallCell(ctx, cutoff, o.lengths)
	}

	policy, err := enumerate.Resolve(o.policy, r)
	if err != nil {
		return nil, err
	}
	stats.Policy = policy
	stats.ImageOffsets = r.Offsets()

	buf, err := buffer.New(o.bufferConfig, o.rc)
	if err != nil {
		return nil, err
	}
	// Covers every failure path; a no-op after Detach.
	defer buf.Release()

	counts, err := enumerate.Run(policy, set, r, buf)
	stats.BufferGrows = buf.Grows()
	if err != nil {
		return nil, err
	}

	return assemble.Assemble(buf.Detach(), counts)
}
