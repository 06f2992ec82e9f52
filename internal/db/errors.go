package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for database operations.
var (
	ErrKeyNotFound      = errors.New("db: key not found")
	ErrIndexNotFound    = errors.New("db: index not found")
	ErrIndexExists      = errors.New("db: index already exists")
	ErrDocumentNotFound = errors.New("db: document not found")
	ErrBulkAborted      = errors.New("db: bulk aborted on item failure")
	ErrUnavailable      = errors.New("db: unavailable")
)

// Op constants name the engine API (or Redis command) for error context.
const (
	OpPing          = "ping"
	OpClusterHealth = "cluster.health"
	OpIndexExists   = "indices.exists"
	OpCreateIndex   = "indices.create"
	OpRefresh       = "indices.refresh"
	OpDeleteByQuery = "delete_by_query"
	OpGet           = "get"
	OpUpdate        = "update"
	OpDelete        = "delete"
	OpSearch        = "search"
	OpBulk          = "bulk"

	OpKVGet = "GET"
	OpKVSet = "SET"
	OpKVDel = "DEL"
	OpScan  = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ResponseError is an error body returned by the search engine.
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s: %s", e.Status, e.Type, e.Reason)
}
