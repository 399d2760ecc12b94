package hash

import (
	"hash"
	"hash/crc32"
	"io"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Writer forwards writes to an underlying writer and checksums what was written.
type Writer struct {
	w io.Writer
	h hash.Hash32
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, h: crc32.New(castagnoli)}
}

func (c *Writer) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.h.Write(p[:n])
	return n, err
}

// Sum32 returns the checksum of all bytes written so far.
func (c *Writer) Sum32() uint32 { return c.h.Sum32() }

// Reader checksums bytes as they are read.
type Reader struct {
	r io.Reader
	h hash.Hash32
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: crc32.New(castagnoli)}
}

func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.h.Write(p[:n])
	return n, err
}

// Sum32 returns the checksum of all bytes read so far.
func (c *Reader) Sum32() uint32 { return c.h.Sum32() }
