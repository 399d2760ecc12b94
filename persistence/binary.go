package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
)

// chunk is the number of uint32 values converted per write or read.
const chunk = 16 * 1024

// writeUint32s writes n values produced by at, little-endian.
func writeUint32s(w io.Writer, n int, at func(i int) uint32) error {
	buf := make([]byte, 4*min(n, chunk))
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		b := buf[:4*(end-start)]
		for i := start; i < end; i++ {
			binary.LittleEndian.PutUint32(b[4*(i-start):], at(i))
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// readUint32s reads n little-endian values and hands each to put.
// Memory grows with the data actually read, not with n.
func readUint32s(r io.Reader, n int, put func(i int, v uint32) error) error {
	buf := make([]byte, 4*min(n, chunk))
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		b := buf[:4*(end-start)]
		if _, err := io.ReadFull(r, b); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%w: payload truncated at value %d of %d", ErrInvalidManifest, start, n)
			}
			return err
		}
		for i := start; i < end; i++ {
			if err := put(i, binary.LittleEndian.Uint32(b[4*(i-start):])); err != nil {
				return err
			}
		}
	}
	return nil
}
