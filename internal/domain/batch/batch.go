// Package batch describes bulk ingestion items and their outcome.
package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Action names the write performed for an item.
const ActionIndex = "index"

// Item is one record submitted for indexing. An empty ID lets the search
// engine assign one.
type Item struct {
	Line   int
	ID     string
	Fields map[string]any
}

// Failure describes one item the search engine rejected.
type Failure struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	Status int    `json:"status"`
	Reason string `json:"reason"`
}

// Report summarises a bulk ingestion run. Failed items do not make the run
// fail; they are listed (up to a bound) in Failures.
type Report struct {
	ID       string
	Rows     uint64
	Indexed  uint64
	Failed   uint64
	Failures []Failure
}

// Partial reports whether some but not all submitted items were rejected.
func (r Report) Partial() bool { return r.Failed > 0 && r.Indexed > 0 }

// NaturalKey derives a stable document ID from the named fields so that
// re-ingesting the same row overwrites instead of duplicating it.
func NaturalKey(fields map[string]any, columns []string) string {
	h := sha256.New()
	for i, c := range columns {
		if i > 0 {
			h.Write([]byte{0x1f})
		}
		v, ok := fields[c]
		if !ok || v == nil {
			continue
		}
		h.Write([]byte(strings.TrimSpace(fmt.Sprint(v))))
	}
	return hex.EncodeToString(h.Sum(nil))
}
