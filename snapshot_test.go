package nblist_test

import (
	"context"
	"testing"

	"github.com/hupe1980/nblist"
	"github.com/hupe1980/nblist/blobstore"
	"github.com/hupe1980/nblist/codec"
	"github.com/hupe1980/nblist/persistence"
	"github.com/hupe1980/nblist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	points := testutil.NewRNG(5).UniformPoints(300, 3, 0, 8)

	lists, err := nblist.Build(points, 1.5, nblist.WithPeriodicLengths([]float64{8, 8, 8}))
	require.NoError(t, err)

	for _, c := range []persistence.Compression{persistence.CompressionNone, persistence.CompressionLZ4, persistence.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			store := blobstore.NewLocalStore(t.TempDir())
			mc := &nblist.BasicMetricsCollector{}

			err := nblist.Save(ctx, store, "frames/0001", lists,
				nblist.WithCompression(c),
				nblist.WithCodec(codec.JSON{}),
				nblist.WithMetricsCollector(mc),
			)
			require.NoError(t, err)

			got, err := nblist.Load(ctx, store, "frames/0001", nblist.WithMetricsCollector(mc))
			require.NoError(t, err)
			assert.True(t, lists.Equal(got))

			stats := mc.GetStats()
			assert.Equal(t, int64(2), stats.SnapshotCount)
			assert.Zero(t, stats.SnapshotErrors)
			assert.Positive(t, stats.SnapshotBytes)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	mc := &nblist.BasicMetricsCollector{}
	_, err := nblist.Load(context.Background(), blobstore.NewMemoryStore(), "nope", nblist.WithMetricsCollector(mc))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.Equal(t, int64(1), mc.GetStats().SnapshotErrors)
}
