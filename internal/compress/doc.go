// Package compress implements the block framing used by snapshot payloads.
//
// A payload is a sequence of blocks. Each block carries an 8-byte header
// [UncompressedSize uint32][CompressedSize uint32] followed by the data.
// A CompressedSize of 0 marks a block stored as-is.
package compress
