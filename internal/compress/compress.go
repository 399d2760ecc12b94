package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm applied to each block.
type Type uint8

const (
	// None stores blocks uncompressed.
	None Type = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Type = 1
	// ZSTD uses Zstandard (better ratio).
	ZSTD Type = 2
)

// DefaultBlockSize is the uncompressed size of a full block.
const DefaultBlockSize = 256 * 1024

// maxBlockSize bounds the uncompressed size accepted from a header.
const maxBlockSize = 64 << 20

const headerSize = 8

var (
	// ErrUnknownType is returned for a compression byte outside the known set.
	ErrUnknownType = errors.New("compress: unknown compression type")
	// ErrCorrupt is returned when a block header or body is inconsistent.
	ErrCorrupt = errors.New("compress: corrupt block")
)

// String returns the lowercase algorithm name.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a known algorithm.
func (t Type) Valid() bool {
	return t <= ZSTD
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// encode returns the compressed form of data, or nil if it does not pay off.
func encode(data []byte, t Type) ([]byte, error) {
	switch t {
	case LZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		return dst[:n], nil
	case ZSTD:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, err
		}
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, nil
	}
}

func decode(src []byte, size int, t Type) ([]byte, error) {
	dst := make([]byte, size)
	switch t {
	case LZ4:
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if n != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return dst, nil
	case ZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(src, dst[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if len(out) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: compressed block under %s", ErrCorrupt, t)
	}
}

// Writer buffers writes into blocks and emits each block framed and compressed.
type Writer struct {
	w         io.Writer
	typ       Type
	blockSize int
	buf       *bytes.Buffer
	written   int64
}

// NewWriter creates a block writer. A non-positive blockSize selects DefaultBlockSize.
func NewWriter(w io.Writer, t Type, blockSize int) (*Writer, error) {
	if !t.Valid() {
		return nil, ErrUnknownType
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize > maxBlockSize {
		blockSize = maxBlockSize
	}
	return &Writer{
		w:         w,
		typ:       t,
		blockSize: blockSize,
		buf:       bytes.NewBuffer(make([]byte, 0, blockSize)),
	}, nil
}

// Write buffers p, flushing full blocks as they fill.
func (c *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := c.blockSize - c.buf.Len()
		if space <= 0 {
			if err := c.flushBlock(); err != nil {
				return total, err
			}
			space = c.blockSize
		}
		n := min(len(p), space)
		c.buf.Write(p[:n])
		total += n
		p = p[n:]
	}
	return total, nil
}

func (c *Writer) flushBlock() error {
	if c.buf.Len() == 0 {
		return nil
	}
	data := c.buf.Bytes()

	body, err := encode(data, c.typ)
	if err != nil {
		return err
	}

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(data)))
	// Keep the raw bytes when compression saves less than 10%.
	if len(body) == 0 || float64(len(body)) > float64(len(data))*0.9 {
		body = data
		binary.LittleEndian.PutUint32(hdr[4:], 0)
	} else {
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(body)))
	}

	if _, err := c.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := c.w.Write(body); err != nil {
		return err
	}
	c.written += int64(headerSize + len(body))
	c.buf.Reset()
	return nil
}

// Flush writes the pending partial block.
func (c *Writer) Flush() error {
	return c.flushBlock()
}

// BytesWritten returns the framed bytes written so far.
func (c *Writer) BytesWritten() int64 {
	return c.written
}

// Reader decodes a block stream produced by Writer.
type Reader struct {
	r   io.Reader
	typ Type
	cur []byte
	err error
}

// NewReader creates a reader decoding blocks compressed with t.
func NewReader(r io.Reader, t Type) (*Reader, error) {
	if !t.Valid() {
		return nil, ErrUnknownType
	}
	return &Reader{r: r, typ: t}, nil
}

// Read implements io.Reader over the decompressed stream.
func (c *Reader) Read(p []byte) (int, error) {
	for len(c.cur) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		c.cur, c.err = c.next()
	}
	n := copy(p, c.cur)
	c.cur = c.cur[n:]
	return n, nil
}

func (c *Reader) next() ([]byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(c.r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		return nil, err
	}
	size := binary.LittleEndian.Uint32(hdr[0:])
	csize := binary.LittleEndian.Uint32(hdr[4:])
	if size > maxBlockSize || csize > maxBlockSize {
		return nil, fmt.Errorf("%w: block too large", ErrCorrupt)
	}

	n := size
	if csize != 0 {
		n = csize
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(c.r, body); err != nil {
		return nil, fmt.Errorf("%w: truncated body: %v", ErrCorrupt, err)
	}
	if csize == 0 {
		return body, nil
	}
	return decode(body, int(size), c.typ)
}
