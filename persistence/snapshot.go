package persistence

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/nblist/blobstore"
	"github.com/hupe1980/nblist/codec"
	"github.com/hupe1980/nblist/internal/compress"
	"github.com/hupe1980/nblist/internal/hash"
	"github.com/hupe1980/nblist/model"
	"github.com/hupe1980/nblist/resource"
)

// Options configures Save and Load.
type Options struct {
	// Compression applies to the payload on Save. Load reads it from the header.
	Compression Compression
	// Codec encodes the manifest. Defaults to codec.Default.
	Codec codec.Codec
	// BlockSize is the uncompressed payload block size. Defaults to compress.DefaultBlockSize.
	BlockSize int
	// Resource, when set, rate-limits IO and accounts decoded memory on Load.
	Resource *resource.Controller
}

// DefaultOptions returns ZSTD compression with the default codec.
func DefaultOptions() Options {
	return Options{
		Compression: CompressionZSTD,
		Codec:       codec.Default,
		BlockSize:   compress.DefaultBlockSize,
	}
}

func (o *Options) normalize() {
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	if o.BlockSize <= 0 {
		o.BlockSize = compress.DefaultBlockSize
	}
}

// Stats reports the outcome of a Save or Load.
type Stats struct {
	Points int
	Pairs  int
	// Bytes is the encoded snapshot size.
	Bytes int64
}

// Save encodes lists and writes them to store under name.
// The blob becomes visible only if every write succeeds.
func Save(ctx context.Context, store blobstore.BlobStore, name string, lists *model.NeighborLists, opts Options) (Stats, error) {
	opts.normalize()
	if lists == nil {
		return Stats{}, errors.New("persistence: nil neighbor lists")
	}
	if !opts.Compression.Valid() {
		return Stats{}, compress.ErrUnknownType
	}

	offsets, indices := lists.CSR()
	n := lists.Len()

	manifest, err := opts.Codec.Marshal(&Manifest{
		Points:      n,
		Pairs:       len(indices),
		Codec:       opts.Codec.Name(),
		Compression: opts.Compression.String(),
	})
	if err != nil {
		return Stats{}, fmt.Errorf("persistence: encode manifest: %w", err)
	}

	var body bytes.Buffer
	hdr := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(opts.Compression),
		ManifestLen: uint32(len(manifest)),
	}
	if err := binary.Write(&body, binary.LittleEndian, &hdr); err != nil {
		return Stats{}, err
	}
	body.Write(manifest)

	cw, err := compress.NewWriter(&body, opts.Compression, opts.BlockSize)
	if err != nil {
		return Stats{}, err
	}
	pw := hash.NewWriter(cw)
	countAt := func(i int) uint32 { return uint32(offsets[i+1] - offsets[i]) }
	indexAt := func(i int) uint32 { return uint32(indices[i]) }
	if err := writePayload(pw, n, len(indices), countAt, indexAt); err != nil {
		return Stats{}, err
	}
	if err := cw.Flush(); err != nil {
		return Stats{}, err
	}
	binary.LittleEndian.PutUint32(body.Bytes()[checksumOffset:], pw.Sum32())

	w, err := store.Create(ctx, name)
	if err != nil {
		return Stats{}, err
	}
	size := int64(body.Len())
	if _, err := io.Copy(resource.NewRateLimitedWriter(ctx, w, opts.Resource), &body); err != nil {
		return Stats{}, abort(ctx, w, err)
	}
	if err := w.Sync(); err != nil {
		return Stats{}, abort(ctx, w, err)
	}
	if err := w.Close(); err != nil {
		return Stats{}, err
	}

	return Stats{Points: n, Pairs: len(indices), Bytes: size}, nil
}

// abort discards a partially written blob. The previous blob under the same
// name, if any, stays in place.
func abort(ctx context.Context, w blobstore.WritableBlob, cause error) error {
	if err := w.Abort(context.WithoutCancel(ctx)); err != nil {
		return errors.Join(cause, fmt.Errorf("persistence: abort write: %w", err))
	}
	return cause
}

func writePayload(w io.Writer, n, pairs int, countAt, indexAt func(int) uint32) error {
	if err := writeUint32s(w, n, countAt); err != nil {
		return err
	}
	return writeUint32s(w, pairs, indexAt)
}

// Load reads the snapshot stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts Options) (*model.NeighborLists, Stats, error) {
	opts.normalize()

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, Stats{}, err
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, Stats{}, err
	}
	defer rc.Close()

	r := bufio.NewReader(resource.NewRateLimitedReader(ctx, rc, opts.Resource))

	var hdr FileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, Stats{}, fmt.Errorf("%w: short header: %v", ErrInvalidMagic, err)
	}
	if err := hdr.Validate(); err != nil {
		return nil, Stats{}, err
	}

	raw := make([]byte, hdr.ManifestLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	var m Manifest
	if err := opts.Codec.Unmarshal(raw, &m); err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, Stats{}, err
	}

	// Transient budget check for the decoded arrays.
	need := int64(8*(m.Points+1) + 4*m.Pairs)
	if err := opts.Resource.AcquireMemory(need); err != nil {
		return nil, Stats{}, err
	}
	defer opts.Resource.ReleaseMemory(need)

	cr, err := compress.NewReader(r, Compression(hdr.Compression))
	if err != nil {
		return nil, Stats{}, err
	}
	pr := hash.NewReader(cr)

	offsets := make([]int, 1, min(m.Points, chunk)+1)
	err = readUint32s(pr, m.Points, func(_ int, v uint32) error {
		next := offsets[len(offsets)-1] + int(v)
		if next > m.Pairs {
			return fmt.Errorf("%w: counts exceed %d pairs", ErrInvalidManifest, m.Pairs)
		}
		offsets = append(offsets, next)
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}
	if offsets[len(offsets)-1] != m.Pairs {
		return nil, Stats{}, fmt.Errorf("%w: counts sum to %d, want %d", ErrInvalidManifest, offsets[len(offsets)-1], m.Pairs)
	}

	indices := make([]int32, 0, min(m.Pairs, chunk))
	err = readUint32s(pr, m.Pairs, func(_ int, v uint32) error {
		indices = append(indices, int32(v))
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}

	var tail [1]byte
	if n, err := cr.Read(tail[:]); n != 0 {
		return nil, Stats{}, ErrTrailingData
	} else if err != nil && !errors.Is(err, io.EOF) {
		return nil, Stats{}, err
	}
	if pr.Sum32() != hdr.Checksum {
		return nil, Stats{}, fmt.Errorf("%w: got %#x, want %#x", ErrChecksum, pr.Sum32(), hdr.Checksum)
	}

	lists, err := model.FromCSR(offsets, indices)
	if err != nil {
		return nil, Stats{}, err
	}
	return lists, Stats{Points: m.Points, Pairs: m.Pairs, Bytes: blob.Size()}, nil
}
