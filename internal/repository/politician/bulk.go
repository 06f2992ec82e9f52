package politician

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain"
	"github.com/kailas-cloud/salarydex/internal/domain/batch"
)

// bulkStore is the consumer interface for bulk indexing (ISP).
type bulkStore interface {
	Bulk(ctx context.Context, index string, items db.BulkSource, opts db.BulkOptions) (*db.BulkReport, error)
}

// BulkRepo streams records into a collection.
type BulkRepo struct {
	store       bulkStore
	maxFailures int
}

// NewBulk creates a bulk indexing repository.
func NewBulk(s bulkStore) *BulkRepo {
	return &BulkRepo{store: s, maxFailures: db.DefaultMaxReportedFailures}
}

// WithMaxReportedFailures bounds the failure list of each report.
func (r *BulkRepo) WithMaxReportedFailures(n int) *BulkRepo {
	if n > 0 {
		r.maxFailures = n
	}
	return r
}

// Bulk indexes every item. The report is returned alongside any error so
// callers can see how far the run got.
func (r *BulkRepo) Bulk(
	ctx context.Context, collection string, items iter.Seq2[batch.Item, error], stopOnError bool,
) (batch.Report, error) {
	src := func(yield func(db.BulkItem, error) bool) {
		for it, err := range items {
			if !yield(db.BulkItem{ID: it.ID, Fields: it.Fields}, err) {
				return
			}
		}
	}

	res, err := r.store.Bulk(ctx, collection, src, db.BulkOptions{
		StopOnError:         stopOnError,
		MaxReportedFailures: r.maxFailures,
	})
	report := toReport(res)
	if err != nil {
		if errors.Is(err, db.ErrBulkAborted) {
			return report, fmt.Errorf("%w: %w", domain.ErrBulkAborted, err)
		}
		return report, translate(fmt.Errorf("bulk %s: %w", collection, err))
	}
	return report, nil
}

func toReport(res *db.BulkReport) batch.Report {
	if res == nil {
		return batch.Report{}
	}
	out := batch.Report{
		Rows:     res.Added,
		Indexed:  res.Indexed,
		Failed:   res.Failed,
		Failures: make([]batch.Failure, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, batch.Failure{
			Action: f.Action,
			ID:     f.ID,
			Status: f.Status,
			Reason: f.Reason,
		})
	}
	return out
}
