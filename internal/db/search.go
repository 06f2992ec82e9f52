package db

import "encoding/json"

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total        int64
	Hits         []Document
	Aggregations map[string]json.RawMessage
}
