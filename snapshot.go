package nblist

import (
	"context"
	"time"

	"github.com/hupe1980/nblist/blobstore"
	"github.com/hupe1980/nblist/persistence"
)

func (o *options) persistenceOptions() persistence.Options {
	return persistence.Options{
		Compression: o.compression,
		Codec:       o.codec,
		Resource:    o.rc,
	}
}

// Save writes lists to store under name as a compressed snapshot.
// Honors WithCompression, WithCodec and the IO limit of WithResourceController.
func Save(ctx context.Context, store blobstore.BlobStore, name string, lists *NeighborLists, opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()

	st, err := persistence.Save(ctx, store, name, lists, o.persistenceOptions())

	o.metricsCollector.RecordSnapshot("save", st.Bytes, time.Since(start), err)
	o.logger.LogSnapshot(ctx, "save", name, err)
	return err
}

// Load reads the snapshot stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*NeighborLists, error) {
	o := applyOptions(opts)
	start := time.Now()

	lists, st, err := persistence.Load(ctx, store, name, o.persistenceOptions())

	o.metricsCollector.RecordSnapshot("load", st.Bytes, time.Since(start), err)
	o.logger.LogSnapshot(ctx, "load", name, err)
	if err != nil {
		return nil, err
	}
	return lists, nil
}
