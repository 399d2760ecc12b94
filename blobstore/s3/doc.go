// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("neighbors/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = nblist.Save(ctx, store, "frame-0001", lists)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large snapshots
//   - CRC32C integrity checks on uploads
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
