// Package persistence stores neighbor lists as compact binary snapshots in a
// blobstore.BlobStore.
//
// # Format
//
// All integers are little-endian.
//
//	FileHeader   16 bytes: magic "NBLS", version, compression, flags,
//	             manifest length, CRC32C of the uncompressed payload
//	Manifest     codec-encoded JSON (points, pairs, codec, compression)
//	Payload      block-compressed stream of
//	               counts  []uint32 (one per point)
//	               indices []uint32 (row-major neighbor indices)
//
// Offsets are not stored; they are the prefix sums of the counts.
package persistence
