package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/salarydex/internal/db"
)

// IndexExists reports whether the index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := s.client.Indices.Exists([]string{name}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, transportError(db.OpIndexExists, err)
	}
	defer closeBody(res)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, responseError(db.OpIndexExists, res)
	}
}

// CreateIndex creates an index with the given mapping.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}

	body, err := encodeBody(def.Body())
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	res, err := s.client.Indices.Create(def.Name,
		s.client.Indices.Create.WithBody(body),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return transportError(db.OpCreateIndex, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return responseError(db.OpCreateIndex, res)
	}
	return nil
}

// ClearIndex deletes every document in the index, keeping its mapping.
// Returns the number of deleted documents.
func (s *Store) ClearIndex(ctx context.Context, name string) (int64, error) {
	body, err := encodeBody(map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
	})
	if err != nil {
		return 0, &db.Error{Op: db.OpDeleteByQuery, Err: err}
	}

	res, err := s.client.DeleteByQuery([]string{name}, body,
		s.client.DeleteByQuery.WithContext(ctx),
		s.client.DeleteByQuery.WithRefresh(true),
		s.client.DeleteByQuery.WithConflicts("proceed"),
	)
	if err != nil {
		return 0, transportError(db.OpDeleteByQuery, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return 0, responseError(db.OpDeleteByQuery, res)
	}

	var out struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, &db.Error{Op: db.OpDeleteByQuery, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out.Deleted, nil
}

// RefreshIndex makes recent writes visible to search.
func (s *Store) RefreshIndex(ctx context.Context, name string) error {
	res, err := s.client.Indices.Refresh(
		s.client.Indices.Refresh.WithIndex(name),
		s.client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return transportError(db.OpRefresh, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return responseError(db.OpRefresh, res)
	}
	return nil
}
