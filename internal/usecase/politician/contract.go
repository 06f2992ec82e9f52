package politician

import (
	"context"

	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
	"github.com/kailas-cloud/salarydex/internal/domain/politician/patch"
	"github.com/kailas-cloud/salarydex/internal/domain/search/request"
)

// Repository defines the storage contract for politician records.
type Repository interface {
	List(ctx context.Context, collection string, req request.Request) (items []dompol.Politician, total int64, err error)
	Get(ctx context.Context, collection, id string) (dompol.Politician, error)
	Update(ctx context.Context, collection, id string, p patch.Patch) error
	Delete(ctx context.Context, collection, id string) error
	AggregateReader
}

// AggregateReader computes collection-wide aggregations.
type AggregateReader interface {
	Statistics(ctx context.Context, collection, field string) (dompol.Statistics, error)
	Distinct(ctx context.Context, collection, field string) ([]string, error)
}

// Cache serves aggregations from a cache and drops them on writes.
type Cache interface {
	AggregateReader
	Invalidate(ctx context.Context, collection string)
}
