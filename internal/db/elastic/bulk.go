package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"

	"github.com/elastic/go-elasticsearch/v8/esutil"

	"github.com/kailas-cloud/salarydex/internal/db"
)

const actionIndex = "index"

// DefaultChunkSize is the number of items submitted per round with StopOnError.
const DefaultChunkSize = 500

// esutil reports a failed _bulk request as "flush: [<status> <text>] <body>".
var flushStatusRe = regexp.MustCompile(`^flush: \[(\d{3}) `)

// bulkCollector gathers per-item outcomes from the indexer workers.
type bulkCollector struct {
	mu          sync.Mutex
	report      db.BulkReport
	maxFailures int
	flushErr    error
}

func (c *bulkCollector) success() {
	c.mu.Lock()
	c.report.Indexed++
	c.mu.Unlock()
}

func (c *bulkCollector) failure(f db.BulkFailure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addFailures(1, f)
}

// addFailures must be called with mu held.
func (c *bulkCollector) addFailures(n uint64, f db.BulkFailure) {
	c.report.Failed += n
	if len(c.report.Failures) < c.maxFailures {
		c.report.Failures = append(c.report.Failures, f)
	}
}

func (c *bulkCollector) requestFailed(err error) {
	c.mu.Lock()
	if c.flushErr == nil {
		c.flushErr = err
	}
	c.mu.Unlock()
}

// settle counts items submitted but never acknowledged as failed. esutil
// skips the per-item callbacks when a whole _bulk request fails.
func (c *bulkCollector) settle(added uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	done := c.report.Indexed + c.report.Failed
	if done >= added {
		return
	}
	f := db.BulkFailure{Action: actionIndex, Reason: "bulk request failed"}
	if c.flushErr != nil {
		f.Status = flushStatus(c.flushErr)
		f.Reason = c.flushErr.Error()
	}
	c.addFailures(added-done, f)
}

func (c *bulkCollector) failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report.Failed > 0
}

func (c *bulkCollector) snapshot(added uint64) (*db.BulkReport, error) {
	c.settle(added)

	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.report
	r.Added = added
	r.Failures = append([]db.BulkFailure(nil), c.report.Failures...)
	return &r, c.flushErr
}

// flushStatus extracts the HTTP status of a failed _bulk request; 0 when the
// request never got a response.
func flushStatus(err error) int {
	m := flushStatusRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// unavailable reports whether a request failure means the engine is unreachable
// or overloaded rather than rejecting the payload.
func unavailable(err error) bool {
	switch flushStatus(err) {
	case 0, http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// bulkRun is the outcome of pushing a source through one or more indexers.
type bulkRun struct {
	added    uint64
	buildErr error
	srcErr   error
	addErr   error
	closeErr error
}

func (r bulkRun) ok() bool {
	return r.buildErr == nil && r.srcErr == nil && r.addErr == nil && r.closeErr == nil
}

// Bulk streams items into the index through a bulk indexer. Item rejections
// and items lost to a failed request are collected into the report.
//
// With StopOnError items are submitted in chunks of BulkConfig.ChunkSize
// through a single worker; no chunk is sent after one with a failure and
// ErrBulkAborted is returned with the report.
func (s *Store) Bulk(ctx context.Context, index string, items db.BulkSource, opts db.BulkOptions) (*db.BulkReport, error) {
	if opts.MaxReportedFailures <= 0 {
		opts.MaxReportedFailures = db.DefaultMaxReportedFailures
	}
	col := &bulkCollector{maxFailures: opts.MaxReportedFailures}

	var run bulkRun
	if opts.StopOnError {
		run = s.indexChunks(ctx, index, items, col)
	} else {
		run = s.indexAll(ctx, index, items, col, s.bulk.Workers)
	}
	report, flushErr := col.snapshot(run.added)

	switch {
	case run.buildErr != nil:
		return report, &db.Error{Op: db.OpBulk, Err: run.buildErr}
	case run.srcErr != nil:
		return report, fmt.Errorf("bulk source: %w", run.srcErr)
	case run.addErr != nil:
		return report, transportError(db.OpBulk, run.addErr)
	case run.closeErr != nil:
		return report, transportError(db.OpBulk, run.closeErr)
	case flushErr != nil && report.Indexed == 0 && report.Added > 0 && unavailable(flushErr):
		return report, transportError(db.OpBulk, flushErr)
	case opts.StopOnError && report.Failed > 0:
		return report, &db.Error{Op: db.OpBulk, Err: db.ErrBulkAborted}
	}
	return report, nil
}

// indexChunks submits items chunk by chunk, stopping after the first chunk
// that produced a failure.
func (s *Store) indexChunks(ctx context.Context, index string, items db.BulkSource, col *bulkCollector) bulkRun {
	size := s.bulk.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	var run bulkRun
	chunk := make([]db.BulkItem, 0, size)
	submit := func() bool {
		r := s.indexAll(ctx, index, sliceSource(chunk), col, 1)
		chunk = chunk[:0]
		run.added += r.added
		run.buildErr, run.addErr, run.closeErr = r.buildErr, r.addErr, r.closeErr
		if !r.ok() {
			return false
		}
		col.settle(run.added)
		return !col.failed()
	}

	for item, err := range items {
		if err != nil {
			run.srcErr = err
			break
		}
		chunk = append(chunk, item)
		if len(chunk) == size && !submit() {
			return run
		}
	}
	if len(chunk) > 0 {
		submit()
	}
	return run
}

// indexAll pushes items through one bulk indexer and waits for every flush.
func (s *Store) indexAll(ctx context.Context, index string, items db.BulkSource, col *bulkCollector, workers int) bulkRun {
	var run bulkRun

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        s.client,
		Index:         index,
		NumWorkers:    workers,
		FlushBytes:    s.bulk.FlushBytes,
		FlushInterval: s.bulk.FlushInterval,
		OnError: func(_ context.Context, err error) {
			col.requestFailed(err)
		},
	})
	if err != nil {
		run.buildErr = fmt.Errorf("create bulk indexer: %w", err)
		return run
	}

	onSuccess := func(context.Context, esutil.BulkIndexerItem, esutil.BulkIndexerResponseItem) {
		col.success()
	}
	onFailure := func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
		f := db.BulkFailure{Action: item.Action, ID: res.DocumentID, Status: res.Status}
		if f.ID == "" {
			f.ID = item.DocumentID
		}
		if err != nil {
			f.Reason = err.Error()
		} else {
			f.Reason = res.Error.Type + ": " + res.Error.Reason
		}
		col.failure(f)
	}

	for item, err := range items {
		if err != nil {
			run.srcErr = err
			break
		}

		body, err := json.Marshal(item.Fields)
		if err != nil {
			run.buildErr = fmt.Errorf("marshal item: %w", err)
			break
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     actionIndex,
			DocumentID: item.ID,
			Body:       bytes.NewReader(body),
			OnSuccess:  onSuccess,
			OnFailure:  onFailure,
		})
		if err != nil {
			run.addErr = err
			break
		}
		run.added++
	}

	run.closeErr = bi.Close(ctx)
	return run
}

func sliceSource(items []db.BulkItem) db.BulkSource {
	return func(yield func(db.BulkItem, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
	}
}
