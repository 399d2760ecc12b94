// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible storage (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minioblob.Connect("localhost:9000", "minioadmin", "minioadmin", false, "snapshots", "run-42/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = nblist.Save(ctx, store, "frame-0001", lists)
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
