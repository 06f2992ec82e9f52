package collection

import (
	"context"
	"testing"

	"github.com/kailas-cloud/salarydex/internal/db"
	domcol "github.com/kailas-cloud/salarydex/internal/domain/collection"
	"github.com/kailas-cloud/salarydex/internal/domain/politician"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	clearIndexFn   func(ctx context.Context, name string) (int64, error)
	refreshIndexFn func(ctx context.Context, name string) error
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) ClearIndex(ctx context.Context, name string) (int64, error) {
	if m.clearIndexFn != nil {
		return m.clearIndexFn(ctx, name)
	}
	return 0, nil
}

func (m *mockStore) RefreshIndex(ctx context.Context, name string) error {
	if m.refreshIndexFn != nil {
		return m.refreshIndexFn(ctx, name)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testCollection(t *testing.T) domcol.Collection {
	t.Helper()
	col, err := domcol.New("politicians", politician.Schema())
	if err != nil {
		t.Fatalf("collection.New: %v", err)
	}
	return col
}
