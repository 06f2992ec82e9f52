package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/salarydex/internal/db"
)

// GetDocument returns a document by ID.
func (s *Store) GetDocument(ctx context.Context, index, id string) (*db.Document, error) {
	res, err := s.client.Get(index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, transportError(db.OpGet, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return nil, documentError(db.OpGet, res)
	}

	var out struct {
		ID     string          `json:"_id"`
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !out.Found {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrDocumentNotFound}
	}
	return &db.Document{ID: out.ID, Source: out.Source}, nil
}

// UpdateDocument merges fields into an existing document and waits for the
// change to be searchable.
func (s *Store) UpdateDocument(ctx context.Context, index, id string, fields map[string]any) error {
	body, err := encodeBody(map[string]any{"doc": fields})
	if err != nil {
		return &db.Error{Op: db.OpUpdate, Err: err}
	}

	res, err := s.client.Update(index, id, body,
		s.client.Update.WithContext(ctx),
		s.client.Update.WithRefresh("wait_for"),
	)
	if err != nil {
		return transportError(db.OpUpdate, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return documentError(db.OpUpdate, res)
	}
	return nil
}

// DeleteDocument removes a document and waits for the change to be searchable.
func (s *Store) DeleteDocument(ctx context.Context, index, id string) error {
	res, err := s.client.Delete(index, id,
		s.client.Delete.WithContext(ctx),
		s.client.Delete.WithRefresh("wait_for"),
	)
	if err != nil {
		return transportError(db.OpDelete, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return documentError(db.OpDelete, res)
	}
	return nil
}

// documentError treats a 404 without an error type as a missing document;
// a missing index carries index_not_found_exception.
func documentError(op string, res *esapi.Response) error {
	re := decodeResponseError(res)
	if res.StatusCode == http.StatusNotFound && re.Type == "" {
		return &db.Error{Op: op, Err: db.ErrDocumentNotFound}
	}
	return classify(op, re)
}
