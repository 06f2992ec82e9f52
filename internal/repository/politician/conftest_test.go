package politician

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/salarydex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn    func(ctx context.Context, index, id string) (*db.Document, error)
	updateFn func(ctx context.Context, index, id string, fields map[string]any) error
	deleteFn func(ctx context.Context, index, id string) error
	searchFn func(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error)
}

func (m *mockStore) GetDocument(ctx context.Context, index, id string) (*db.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return &db.Document{ID: id, Source: json.RawMessage(`{}`)}, nil
}

func (m *mockStore) UpdateDocument(ctx context.Context, index, id string, fields map[string]any) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, index, id, fields)
	}
	return nil
}

func (m *mockStore) DeleteDocument(ctx context.Context, index, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, body)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func doc(id, source string) db.Document {
	return db.Document{ID: id, Source: json.RawMessage(source)}
}
