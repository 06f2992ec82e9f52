package elastic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/salarydex/internal/db"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
}

// Search runs a query body against the index.
func (s *Store) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error) {
	r, err := encodeBody(body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(r),
	)
	if err != nil {
		return nil, transportError(db.OpSearch, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return nil, responseError(db.OpSearch, res)
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode response: %w", err)}
	}

	result := &db.SearchResult{
		Total:        out.Hits.Total.Value,
		Hits:         make([]db.Document, 0, len(out.Hits.Hits)),
		Aggregations: out.Aggregations,
	}
	for _, h := range out.Hits.Hits {
		result.Hits = append(result.Hits, db.Document{ID: h.ID, Source: h.Source})
	}
	return result, nil
}
