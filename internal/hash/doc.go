// Package hash provides CRC32-Castagnoli (CRC32C) checksums for snapshot integrity.
//
// CRC32C is hardware accelerated on x86 (SSE4.2) and ARM (CRC extension),
// and matches the checksum S3 validates on upload.
//
// One-shot:
//
//	sum := hash.CRC32C(data)
//
// Streaming, checksumming the uncompressed side of a compressor:
//
//	pw := hash.NewWriter(compressor)
//	writePayload(pw)
//	header.Checksum = pw.Sum32()
package hash
