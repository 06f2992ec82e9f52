package politician

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain"
	"github.com/kailas-cloud/salarydex/internal/domain/batch"
)

type mockBulkStore struct {
	bulkFn func(ctx context.Context, index string, items db.BulkSource, opts db.BulkOptions) (*db.BulkReport, error)
}

func (m *mockBulkStore) Bulk(ctx context.Context, index string, items db.BulkSource, opts db.BulkOptions) (*db.BulkReport, error) {
	return m.bulkFn(ctx, index, items, opts)
}

func itemSeq(items ...batch.Item) func(func(batch.Item, error) bool) {
	return func(yield func(batch.Item, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
	}
}

func TestBulk_ForwardsItemsAndReport(t *testing.T) {
	ms := &mockBulkStore{}
	ms.bulkFn = func(_ context.Context, index string, items db.BulkSource, opts db.BulkOptions) (*db.BulkReport, error) {
		if index != "politicians" {
			t.Errorf("index = %s", index)
		}
		if !opts.StopOnError || opts.MaxReportedFailures != 5 {
			t.Errorf("opts = %+v", opts)
		}
		var ids []string
		for it, err := range items {
			if err != nil {
				t.Fatalf("unexpected source error: %v", err)
			}
			ids = append(ids, it.ID)
		}
		if len(ids) != 2 || ids[0] != "k1" || ids[1] != "" {
			t.Errorf("ids = %v", ids)
		}
		return &db.BulkReport{
			Added: 2, Indexed: 1, Failed: 1,
			Failures: []db.BulkFailure{{Action: "index", ID: "gen", Status: 400, Reason: "mapper_parsing_exception: bad"}},
		}, nil
	}

	repo := NewBulk(ms).WithMaxReportedFailures(5)
	report, err := repo.Bulk(context.Background(), "politicians", itemSeq(
		batch.Item{Line: 2, ID: "k1", Fields: map[string]any{"nombre": "Ana"}},
		batch.Item{Line: 3, Fields: map[string]any{"nombre": "Luis"}},
	), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Rows != 2 || report.Indexed != 1 || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].Status != 400 {
		t.Errorf("failures = %+v", report.Failures)
	}
}

func TestBulk_Aborted(t *testing.T) {
	ms := &mockBulkStore{bulkFn: func(context.Context, string, db.BulkSource, db.BulkOptions) (*db.BulkReport, error) {
		return &db.BulkReport{Added: 1, Failed: 1}, &db.Error{Op: db.OpBulk, Err: db.ErrBulkAborted}
	}}

	report, err := NewBulk(ms).Bulk(context.Background(), "politicians", itemSeq(), true)
	if !errors.Is(err, domain.ErrBulkAborted) {
		t.Fatalf("expected ErrBulkAborted, got %v", err)
	}
	if report.Failed != 1 {
		t.Errorf("partial report lost: %+v", report)
	}
}

func TestBulk_Unavailable(t *testing.T) {
	ms := &mockBulkStore{bulkFn: func(context.Context, string, db.BulkSource, db.BulkOptions) (*db.BulkReport, error) {
		return nil, &db.Error{Op: db.OpBulk, Err: db.ErrUnavailable}
	}}

	report, err := NewBulk(ms).Bulk(context.Background(), "politicians", itemSeq(), false)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if report.Rows != 0 {
		t.Errorf("report = %+v", report)
	}
}
