package db

import "iter"

// DefaultMaxReportedFailures bounds BulkReport.Failures.
const DefaultMaxReportedFailures = 100

// BulkItem is one document to index. An empty ID lets the engine assign one;
// a non-empty ID makes the write an idempotent upsert.
type BulkItem struct {
	ID     string
	Fields map[string]any
}

// BulkSource yields bulk items lazily. A non-nil error stops submission.
type BulkSource = iter.Seq2[BulkItem, error]

// BulkOptions controls failure handling of a bulk run.
type BulkOptions struct {
	// StopOnError submits in chunks and sends no chunk after one with a
	// failed item.
	StopOnError bool
	// MaxReportedFailures caps the number of failures kept in the report.
	MaxReportedFailures int
}

// BulkFailure describes one item the engine rejected, or a group of items
// lost to a failed bulk request (empty ID).
type BulkFailure struct {
	Action string
	ID     string
	Status int
	Reason string
}

// BulkReport summarizes a bulk run.
type BulkReport struct {
	Added    uint64
	Indexed  uint64
	Failed   uint64
	Failures []BulkFailure
}
