package nblist_test

import (
	"context"
	"testing"

	"github.com/hupe1980/nblist"
	"github.com/hupe1980/nblist/resource"
	"github.com/hupe1980/nblist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frames(n int) []nblist.Frame {
	rng := testutil.NewRNG(99)
	out := make([]nblist.Frame, n)
	for i := range out {
		out[i] = nblist.Frame{
			Points: rng.UniformPoints(150+10*i, 3, 0, 6),
			Cutoff: 1.0 + 0.05*float64(i),
		}
	}
	return out
}

func TestBuildBatch(t *testing.T) {
	in := frames(8)
	mc := &nblist.BasicMetricsCollector{}

	got, err := nblist.BuildBatch(context.Background(), in,
		nblist.WithWorkers(3),
		nblist.WithPeriodicLengths([]float64{6, 6, 6}),
		nblist.WithMetricsCollector(mc),
	)
	require.NoError(t, err)
	require.Len(t, got, len(in))

	for i, f := range in {
		want, err := nblist.Build(f.Points, f.Cutoff, nblist.WithPeriodicLengths([]float64{6, 6, 6}))
		require.NoError(t, err)
		assert.True(t, want.Equal(got[i]), "frame %d", i)
	}

	stats := mc.GetStats()
	assert.Equal(t, int64(len(in)), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(len(in)), stats.BatchFrames)
	assert.Zero(t, stats.BatchFailed)
}

func TestBuildBatch_FrameFailure(t *testing.T) {
	in := frames(4)
	in[2].Points = [][]float64{{0, 0, 0}, {1, 1}}

	got, err := nblist.BuildBatch(context.Background(), in, nblist.WithWorkers(1))
	require.Error(t, err)
	assert.Nil(t, got)

	var fe *nblist.ErrFrame
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Frame)
	assert.ErrorIs(t, err, nblist.ErrInvalidArgument)
}

func TestBuildBatch_SharedMemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 512, MaxWorkers: 2})

	_, err := nblist.BuildBatch(context.Background(), frames(3),
		nblist.WithResourceController(rc),
		nblist.WithBufferConfig(nblist.BufferConfig{InitialCapacity: 32, LowWaterMark: 4, GrowIncrement: 32}),
	)
	var ae *nblist.ErrAllocation
	require.ErrorAs(t, err, &ae)
	assert.Zero(t, rc.MemoryUsage())
}

func TestBuildBatch_NoFrames(t *testing.T) {
	_, err := nblist.BuildBatch(context.Background(), nil)
	assert.ErrorIs(t, err, nblist.ErrNoFrames)
}

func TestBuildBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := nblist.BuildBatch(ctx, frames(4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildBatch_ControllerBoundsWorkers(t *testing.T) {
	in := frames(6)
	rc := resource.NewController(resource.Config{MaxWorkers: 1})

	got, err := nblist.BuildBatch(context.Background(), in,
		nblist.WithWorkers(8),
		nblist.WithResourceController(rc),
	)
	require.NoError(t, err)
	require.Len(t, got, len(in))

	for i, f := range in {
		want, err := nblist.Build(f.Points, f.Cutoff)
		require.NoError(t, err)
		assert.True(t, want.Equal(got[i]), "frame %d", i)
	}
}
