package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/nblist/blobstore"
	"github.com/hupe1980/nblist/internal/hash"
)

// UploadConfig tunes snapshot uploads.
type UploadConfig struct {
	// PartSize is the multipart part size in bytes. Snapshots smaller than
	// one part go up in a single PutObject. Default 8 MiB.
	PartSize int64

	// Concurrency is the number of parts in flight. Default 5.
	Concurrency int

	// EnableChecksum asks S3 to verify a CRC32C of every upload. Default true.
	EnableChecksum bool

	// LeavePartsOnError keeps the parts of a failed multipart upload for
	// inspection. Abort still removes them explicitly. Default false.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns 8 MiB parts, 5-way concurrency and checksums on.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 << 20,
		Concurrency:    5,
		EnableChecksum: true,
	}
}

func newUploader(client manager.UploadAPIClient, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if cfg.PartSize > 0 {
			u.PartSize = cfg.PartSize
		}
		if cfg.Concurrency > 0 {
			u.Concurrency = cfg.Concurrency
		}
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}

// crc32cHeader encodes a CRC32C the way the x-amz-checksum-crc32c header
// expects it: big-endian, base64.
func crc32cHeader(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], hash.CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}

func putWithChecksum(ctx context.Context, client Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ChecksumCRC32C: aws.String(crc32cHeader(data)),
	})
	return err
}

// uploadWriter feeds a background manager.Uploader through a pipe. The
// object exists only once Close has returned nil.
type uploadWriter struct {
	client     Client
	bucket     string
	key        string
	leaveParts bool

	pw   *io.PipeWriter
	done chan error

	mu      sync.Mutex
	state   writerState
	closeEr error
}

type writerState int

const (
	writerOpen writerState = iota
	writerClosed
	writerAborted
)

func startUpload(ctx context.Context, client Client, uploader *manager.Uploader, bucket, key string, checksum, leaveParts bool) *uploadWriter {
	pr, pw := io.Pipe()
	w := &uploadWriter{
		client:     client,
		bucket:     bucket,
		key:        key,
		leaveParts: leaveParts,
		pw:         pw,
		done:       make(chan error, 1),
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   pr,
	}
	if checksum {
		in.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	go func() {
		_, err := uploader.Upload(ctx, in)
		// A failed upload must not leave the writer blocked on the pipe.
		_ = pr.CloseWithError(err)
		w.done <- err
	}()
	return w
}

func (w *uploadWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	state := w.state
	w.mu.Unlock()

	switch state {
	case writerAborted:
		return 0, blobstore.ErrAborted
	case writerClosed:
		return 0, io.ErrClosedPipe
	}
	return w.pw.Write(p)
}

// Sync is a no-op; S3 has nothing to flush before the upload completes.
func (w *uploadWriter) Sync() error { return nil }

// Close ends the body and waits for the upload to finish.
func (w *uploadWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case writerAborted:
		return blobstore.ErrAborted
	case writerClosed:
		return w.closeEr
	}
	w.state = writerClosed

	if err := w.pw.Close(); err != nil {
		w.closeEr = err
		return err
	}
	w.closeEr = <-w.done
	return w.closeEr
}

// Abort fails the body so the uploader never completes the object. The
// uploader aborts its own multipart upload unless LeavePartsOnError is set,
// in which case the parts are removed here.
func (w *uploadWriter) Abort(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != writerOpen {
		return nil
	}
	w.state = writerAborted

	_ = w.pw.CloseWithError(blobstore.ErrAborted)
	err := <-w.done

	var mf manager.MultiUploadFailure
	if !w.leaveParts || !errors.As(err, &mf) || mf.UploadID() == "" {
		return nil
	}
	_, aerr := w.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(w.bucket),
		Key:      aws.String(w.key),
		UploadId: aws.String(mf.UploadID()),
	})
	if aerr != nil && !isNotFound(aerr) {
		return aerr
	}
	return nil
}
