package collection

import (
	"context"

	domcol "github.com/kailas-cloud/salarydex/internal/domain/collection"
)

// Repository defines the storage contract for collections.
type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Ensure(ctx context.Context, col domcol.Collection) (created bool, err error)
	Clear(ctx context.Context, name string) (deleted int64, err error)
}

// CacheInvalidator drops cached aggregations of a collection.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, collection string)
}
