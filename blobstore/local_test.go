package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	blobName := "frames/frame-001.nbl"
	data := []byte("hello world, this is a test snapshot")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible before Close
	_, err = store.Open(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(tmpDir, "frames", "frame-001.nbl"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err = blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	rangeReader, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	defer rangeReader.Close()

	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.Equal(t, "this", string(rangeContent))

	require.NoError(t, store.Put(ctx, "frames/frame-002.nbl", []byte("x")))
	require.NoError(t, store.Put(ctx, "other.nbl", []byte("y")))

	blobs, err := store.List(ctx, "frames/")
	require.NoError(t, err)
	require.Equal(t, []string{"frames/frame-001.nbl", "frames/frame-002.nbl"}, blobs)

	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName))

	blobsAfter, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"frames/frame-002.nbl", "other.nbl"}, blobsAfter)

	_, err = store.Open(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_ReadRange_Boundaries(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "boundary.bin", data))

	blob, err := store.Open(ctx, "boundary.bin")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.True(t, bytes.Equal(data, content))

	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)
}

func TestLocalBlobStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "a", []byte("a"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := []byte("abcdef")
	require.NoError(t, store.Put(ctx, "b/1", src))
	src[0] = 'z'

	w, err := store.Create(ctx, "a/1")
	require.NoError(t, err)
	_, err = w.Write([]byte("stream"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "b/1"}, names)

	got, err := ReadAll(ctx, store, "b/1")
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(got))

	got, err = ReadAll(ctx, store, "a/1")
	require.NoError(t, err)
	assert.Equal(t, "stream", string(got))

	blob, err := store.Open(ctx, "b/1")
	require.NoError(t, err)
	p := make([]byte, 4)
	n, err := blob.ReadAt(ctx, p, 4)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)

	require.NoError(t, store.Delete(ctx, "b/1"))
	_, err = ReadAll(ctx, store, "b/1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAbortKeepsExistingBlob(t *testing.T) {
	stores := map[string]BlobStore{
		"local":  NewLocalStore(t.TempDir()),
		"memory": NewMemoryStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "snap", []byte("good")))

			w, err := store.Create(ctx, "snap")
			require.NoError(t, err)
			_, err = w.Write([]byte("partial"))
			require.NoError(t, err)

			require.NoError(t, w.Abort(ctx))
			require.NoError(t, w.Abort(ctx))
			assert.ErrorIs(t, w.Close(), ErrAborted)

			got, err := ReadAll(ctx, store, "snap")
			require.NoError(t, err)
			assert.Equal(t, "good", string(got))

			names, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"snap"}, names)
		})
	}
}

func TestLocalBlobStore_AbortLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	w, err := store.Create(ctx, "fresh")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Abort(ctx))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = store.Open(ctx, "fresh")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAbortAfterCloseIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	w, err := store.Create(ctx, "done")
	require.NoError(t, err)
	_, err = w.Write([]byte("kept"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Abort(ctx))

	got, err := ReadAll(ctx, store, "done")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got))
}
