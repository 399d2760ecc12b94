package s3

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/nblist/blobstore"
	"github.com/hupe1980/nblist/model"
	"github.com/hupe1980/nblist/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS3Store_Integration needs S3_BUCKET (and S3_ENDPOINT for S3-compatible
// servers) plus credentials resolvable by the default AWS chain.
func TestS3Store_Integration(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg := DefaultUploadConfig()
	cfg.PartSize = 5 << 20
	store, err := New(ctx, bucket,
		WithPrefix(fmt.Sprintf("nblist-it-%d/", time.Now().UnixNano())),
		WithEndpoint(os.Getenv("S3_ENDPOINT")),
		WithUploadConfig(cfg),
	)
	require.NoError(t, err)

	t.Run("SnapshotRoundTrip", func(t *testing.T) {
		lists, err := model.FromCSR([]int{0, 2, 3, 4}, []int32{1, 2, 0, 0})
		require.NoError(t, err)

		_, err = persistence.Save(ctx, store, "frame-0000.nbl", lists, persistence.DefaultOptions())
		require.NoError(t, err)

		got, _, err := persistence.Load(ctx, store, "frame-0000.nbl", persistence.DefaultOptions())
		require.NoError(t, err)
		assert.True(t, lists.Equal(got))

		require.NoError(t, store.Delete(ctx, "frame-0000.nbl"))
	})

	t.Run("MultipartRangedRead", func(t *testing.T) {
		data := bytes.Repeat([]byte("0123456789abcdef"), (6<<20)/16)

		w, err := store.Create(ctx, "large.bin")
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		b, err := store.Open(ctx, "large.bin")
		require.NoError(t, err)
		defer b.Close()
		assert.Equal(t, int64(len(data)), b.Size())

		p := make([]byte, 32)
		_, err = b.ReadAt(ctx, p, 5<<20)
		require.NoError(t, err)
		assert.Equal(t, data[5<<20:5<<20+32], p)

		require.NoError(t, store.Delete(ctx, "large.bin"))
	})

	t.Run("AbortKeepsPrevious", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "keep.bin", []byte("good")))

		w, err := store.Create(ctx, "keep.bin")
		require.NoError(t, err)
		_, err = w.Write(bytes.Repeat([]byte{1}, 6<<20))
		require.NoError(t, err)
		require.NoError(t, w.Abort(ctx))

		got, err := blobstore.ReadAll(ctx, store, "keep.bin")
		require.NoError(t, err)
		assert.Equal(t, "good", string(got))

		require.NoError(t, store.Delete(ctx, "keep.bin"))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
