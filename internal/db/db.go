package db

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	ClusterInspector
	IndexManager
	DocumentStore
	Searcher
	BulkWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClusterInspector reports engine cluster state.
type ClusterInspector interface {
	ClusterHealth(ctx context.Context) (map[string]any, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	ClearIndex(ctx context.Context, name string) (int64, error)
	RefreshIndex(ctx context.Context, name string) error
}

// Document is a stored document with its engine-assigned identifier.
type Document struct {
	ID     string
	Source json.RawMessage
}

// DocumentStore provides single-document operations. Writes wait for the
// change to become visible to search.
type DocumentStore interface {
	GetDocument(ctx context.Context, index, id string) (*Document, error)
	UpdateDocument(ctx context.Context, index, id string, fields map[string]any) error
	DeleteDocument(ctx context.Context, index, id string) error
}

// Searcher runs raw query bodies.
type Searcher interface {
	Search(ctx context.Context, index string, body map[string]any) (*SearchResult, error)
}

// BulkWriter streams documents into an index.
type BulkWriter interface {
	Bulk(ctx context.Context, index string, items BulkSource, opts BulkOptions) (*BulkReport, error)
}

// KVStore provides key-value operations for caches.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}
