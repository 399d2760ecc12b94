package nblist

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Frame is one independent input of BuildBatch, e.g. one trajectory snapshot.
type Frame struct {
	Points [][]float64
	Cutoff float64
}

// BuildBatch builds the neighbor lists of several frames concurrently.
// Each frame is computed single-threaded with the shared options; at most
// WithWorkers frames run at once, further bounded by the resource
// controller's worker slots.
//
// The batch is all-or-nothing: the first failure cancels the frames not yet
// started and is returned wrapped in *ErrFrame.
func BuildBatch(ctx context.Context, frames []Frame, opts ...Option) ([]*NeighborLists, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	o := applyOptions(opts)
	start := time.Now()

	results := make([]*NeighborLists, len(frames))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	limit := o.workers
	if o.rc != nil {
		limit = min(limit, o.rc.MaxWorkers())
	}
	g.SetLimit(limit)

	for i, f := range frames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := o.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.rc.ReleaseWorker()

			fo := o
			fo.logger = o.logger.WithFrame(i)
			lists, _, err := build(gctx, f.Points, f.Cutoff, &fo)
			if err != nil {
				failed.Add(1)
				return &ErrFrame{Frame: i, cause: err}
			}
			results[i] = lists
			return nil
		})
	}

	err := g.Wait()
	duration := time.Since(start)
	o.metricsCollector.RecordBatch(len(frames), int(failed.Load()), duration)
	o.logger.LogBatch(ctx, len(frames), int(failed.Load()), duration)

	if err != nil {
		var fe *ErrFrame
		if !errors.As(err, &fe) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return results, nil
}
