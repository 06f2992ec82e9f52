package ingest

import (
	"context"
	"iter"

	"github.com/kailas-cloud/salarydex/internal/domain/batch"
)

// CollectionEnsurer creates the target collection on first ingestion.
type CollectionEnsurer interface {
	Ensure(ctx context.Context, name string) (created bool, err error)
}

// Refresher makes indexed records searchable.
type Refresher interface {
	Refresh(ctx context.Context, name string) error
}

// BulkIndexer streams items into a collection.
type BulkIndexer interface {
	Bulk(ctx context.Context, collection string, items iter.Seq2[batch.Item, error], stopOnError bool) (batch.Report, error)
}

// CacheInvalidator drops cached aggregations of a collection.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, collection string)
}
