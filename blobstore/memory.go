package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps snapshots in a map. It is safe for concurrent use and is
// mostly useful in tests and for short-lived pipelines that never touch disk.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Open returns a read handle on the current contents of name.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	// Stored slices are replaced, never written in place.
	return &memoryBlob{data: data}, nil
}

// Create buffers writes until Close publishes them under name.
func (m *MemoryStore) Create(_ context.Context, name string) (WritableBlob, error) {
	return &memoryWriter{store: m, name: name}, nil
}

// Put stores a copy of data under name.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	m.publish(name, data)
	return nil
}

// Delete drops name. Missing names are ignored.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

// List returns the sorted names starting with prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) publish(name string, data []byte) {
	cp := bytes.Clone(data)
	if cp == nil {
		cp = []byte{}
	}
	m.mu.Lock()
	m.blobs[name] = cp
	m.mu.Unlock()
}

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) Size() int64 { return int64(len(b.data)) }

func (b *memoryBlob) Close() error { return nil }

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("blobstore: negative offset")
	}
	return bytes.NewReader(b.data).ReadAt(p, off)
}

func (b *memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off < 0 || length < 0 {
		return nil, errors.New("blobstore: negative range")
	}
	size := int64(len(b.data))
	if off > size {
		return nil, io.EOF
	}
	return io.NopCloser(bytes.NewReader(b.data[off:min(off+length, size)])), nil
}

// memoryWriter publishes its buffer on Close; Abort drops it.
type memoryWriter struct {
	store   *MemoryStore
	name    string
	buf     bytes.Buffer
	aborted bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.aborted {
		return 0, ErrAborted
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Sync() error { return nil }

func (w *memoryWriter) Close() error {
	if w.aborted {
		return ErrAborted
	}
	w.store.publish(w.name, w.buf.Bytes())
	return nil
}

func (w *memoryWriter) Abort(context.Context) error {
	w.aborted = true
	w.buf.Reset()
	return nil
}
