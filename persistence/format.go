package persistence

import (
	"errors"
	"fmt"

	"github.com/hupe1980/nblist/codec"
	"github.com/hupe1980/nblist/internal/compress"
)

const (
	// MagicNumber identifies snapshot files (ASCII "NBLS" read little-endian).
	MagicNumber uint32 = 0x534C424E
	// Version is the current snapshot format version.
	Version uint16 = 1

	headerSize = 16

	// checksumOffset is the byte offset of FileHeader.Checksum.
	checksumOffset = 12

	// maxManifestSize bounds the manifest length accepted from a header.
	maxManifestSize = 1 << 20
)

var (
	ErrInvalidMagic    = errors.New("invalid magic number")
	ErrInvalidVersion  = errors.New("unsupported version")
	ErrChecksum        = errors.New("checksum mismatch")
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrTrailingData    = errors.New("trailing data after payload")
)

// Compression selects the block compression of the payload.
type Compression = compress.Type

const (
	CompressionNone = compress.None
	CompressionLZ4  = compress.LZ4
	CompressionZSTD = compress.ZSTD
)

// FileHeader is the fixed 16-byte header at the start of every snapshot.
type FileHeader struct {
	Magic       uint32
	Version     uint16
	Compression uint8
	Flags       uint8 // reserved, zero
	ManifestLen uint32
	Checksum    uint32 // CRC32C of the uncompressed payload
}

// Validate checks the fixed fields of a header read from storage.
func (h *FileHeader) Validate() error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: %#x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if !Compression(h.Compression).Valid() {
		return fmt.Errorf("%w: compression %d", ErrInvalidManifest, h.Compression)
	}
	if h.ManifestLen == 0 || h.ManifestLen > maxManifestSize {
		return fmt.Errorf("%w: manifest length %d", ErrInvalidManifest, h.ManifestLen)
	}
	return nil
}

// Manifest describes the payload that follows it.
type Manifest struct {
	Points      int    `json:"points"`
	Pairs       int    `json:"pairs"`
	Codec       string `json:"codec"`
	Compression string `json:"compression"`
}

func (m *Manifest) validate() error {
	if m.Points < 0 || m.Pairs < 0 {
		return fmt.Errorf("%w: negative size", ErrInvalidManifest)
	}
	if int64(m.Points) > int64(^uint32(0)>>1) || int64(m.Pairs) > int64(^uint32(0)>>1) {
		return fmt.Errorf("%w: size exceeds int32 indices", ErrInvalidManifest)
	}
	if _, err := codec.Lookup(m.Codec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return nil
}
