package elastic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/salarydex/internal/db"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// fakeTransport answers engine requests in-process.
type fakeTransport struct {
	mu       sync.Mutex
	handler  func(r *http.Request, body []byte) (int, string)
	err      error
	requests []recordedRequest
}

func (f *fakeTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body})
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	status, resp := http.StatusOK, `{"name":"node-1","version":{"number":"8.15.0","build_flavor":"default"},"tagline":"You Know, for Search"}`
	if f.handler != nil {
		status, resp = f.handler(r, body)
	}

	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body:    io.NopCloser(strings.NewReader(resp)),
		Request: r,
	}, nil
}

func (f *fakeTransport) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// bulkRequests counts the _bulk requests sent so far.
func (f *fakeTransport) bulkRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasSuffix(r.Path, "/_bulk") {
			n++
		}
	}
	return n
}

func newTestStore(t *testing.T, handler func(r *http.Request, body []byte) (int, string)) (*Store, *fakeTransport) {
	t.Helper()
	return newBulkTestStore(t, BulkConfig{Workers: 1}, handler)
}

func newBulkTestStore(t *testing.T, bulk BulkConfig, handler func(r *http.Request, body []byte) (int, string)) (*Store, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{handler: handler}
	s, err := NewStore(Config{
		Addresses:  []string{"http://es.test:9200"},
		MaxRetries: 1,
		Transport:  ft,
		Bulk:       bulk,
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, ft
}

func respond(status int, body string) func(*http.Request, []byte) (int, string) {
	return func(*http.Request, []byte) (int, string) { return status, body }
}

const indexNotFound = `{"error":{"type":"index_not_found_exception","reason":"no such index [politicians]"},"status":404}`

func TestNewStore_RequiresAddresses(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error without addresses")
	}
}

func TestNewStore_MissingCACert(t *testing.T) {
	_, err := NewStore(Config{Addresses: []string{"https://es:9200"}, CACertPath: "/nonexistent/ca.crt"})
	if err == nil {
		t.Fatal("expected error for missing CA cert")
	}
}

func TestPing_Success(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{}`))
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ft.last(); got.Method != http.MethodHead || got.Path != "/" {
		t.Errorf("request = %s %s, want HEAD /", got.Method, got.Path)
	}
}

func TestPing_Unreachable(t *testing.T) {
	s, ft := newTestStore(t, nil)
	ft.err = errors.New("dial tcp: connection refused")

	err := s.Ping(context.Background())
	if !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestIndexExists(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusNotFound, false},
	}
	for _, tt := range tests {
		s, ft := newTestStore(t, respond(tt.status, ``))
		got, err := s.IndexExists(context.Background(), "politicians")
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", tt.status, err)
		}
		if got != tt.want {
			t.Errorf("status %d: IndexExists = %v, want %v", tt.status, got, tt.want)
		}
		if req := ft.last(); req.Method != http.MethodHead || req.Path != "/politicians" {
			t.Errorf("request = %s %s", req.Method, req.Path)
		}
	}
}

func TestCreateIndex_Success(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"acknowledged":true}`))

	def := &db.IndexDefinition{
		Name:       "politicians",
		Properties: map[string]any{"partido": map[string]any{"type": "keyword"}},
	}
	if err := s.CreateIndex(context.Background(), def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := ft.last()
	if req.Method != http.MethodPut || req.Path != "/politicians" {
		t.Errorf("request = %s %s, want PUT /politicians", req.Method, req.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	props := body["mappings"].(map[string]any)["properties"].(map[string]any)
	if props["partido"].(map[string]any)["type"] != "keyword" {
		t.Errorf("properties = %v", props)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusBadRequest,
		`{"error":{"type":"resource_already_exists_exception","reason":"index [politicians] already exists"},"status":400}`))

	def := &db.IndexDefinition{Name: "politicians", Properties: map[string]any{"a": map[string]any{"type": "keyword"}}}
	err := s.CreateIndex(context.Background(), def)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Fatalf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateIndex_InvalidDefinition(t *testing.T) {
	s, ft := newTestStore(t, nil)
	err := s.CreateIndex(context.Background(), &db.IndexDefinition{Name: "Bad Name"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(ft.requests) != 0 {
		t.Errorf("sent %d requests for an invalid definition", len(ft.requests))
	}
}

func TestClearIndex_Success(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"took":12,"deleted":42,"failures":[]}`))

	n, err := s.ClearIndex(context.Background(), "politicians")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("deleted = %d, want 42", n)
	}

	req := ft.last()
	if req.Path != "/politicians/_delete_by_query" {
		t.Errorf("path = %s", req.Path)
	}
	if !strings.Contains(req.Query, "refresh=true") {
		t.Errorf("query = %s, want refresh=true", req.Query)
	}
	if !bytes.Contains(req.Body, []byte(`"match_all"`)) {
		t.Errorf("body = %s, want match_all", req.Body)
	}
}

func TestClearIndex_IndexNotFound(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound, indexNotFound))
	_, err := s.ClearIndex(context.Background(), "politicians")
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestRefreshIndex(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"_shards":{"total":2,"successful":1,"failed":0}}`))
	if err := s.RefreshIndex(context.Background(), "politicians"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req := ft.last(); req.Path != "/politicians/_refresh" {
		t.Errorf("path = %s", req.Path)
	}
}

func TestGetDocument_Found(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK,
		`{"_index":"politicians","_id":"abc","found":true,"_source":{"nombre":"Ana"}}`))

	doc, err := s.GetDocument(context.Background(), "politicians", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "abc" || string(doc.Source) != `{"nombre":"Ana"}` {
		t.Errorf("doc = %+v", doc)
	}
	if req := ft.last(); req.Path != "/politicians/_doc/abc" {
		t.Errorf("path = %s", req.Path)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound, `{"_index":"politicians","_id":"nope","found":false}`))
	_, err := s.GetDocument(context.Background(), "politicians", "nope")
	if !errors.Is(err, db.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGetDocument_IndexNotFound(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound, indexNotFound))
	_, err := s.GetDocument(context.Background(), "politicians", "abc")
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
	if errors.Is(err, db.ErrDocumentNotFound) {
		t.Error("missing index must not be reported as missing document")
	}
}

func TestUpdateDocument_Success(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"_id":"abc","result":"updated"}`))

	err := s.UpdateDocument(context.Background(), "politicians", "abc", map[string]any{"partido": "PSOE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := ft.last()
	if req.Path != "/politicians/_update/abc" {
		t.Errorf("path = %s", req.Path)
	}
	if !strings.Contains(req.Query, "refresh=wait_for") {
		t.Errorf("query = %s, want refresh=wait_for", req.Query)
	}
	if string(req.Body) != `{"doc":{"partido":"PSOE"}}` {
		t.Errorf("body = %s", req.Body)
	}
}

func TestUpdateDocument_Missing(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound,
		`{"error":{"type":"document_missing_exception","reason":"[abc]: document missing"},"status":404}`))
	err := s.UpdateDocument(context.Background(), "politicians", "abc", map[string]any{"partido": "PP"})
	if !errors.Is(err, db.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"_id":"abc","result":"deleted"}`))
	if err := s.DeleteDocument(context.Background(), "politicians", "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := ft.last()
	if req.Method != http.MethodDelete || !strings.Contains(req.Query, "refresh=wait_for") {
		t.Errorf("request = %s %s?%s", req.Method, req.Path, req.Query)
	}

	s, _ = newTestStore(t, respond(http.StatusNotFound, `{"_id":"abc","result":"not_found"}`))
	if err := s.DeleteDocument(context.Background(), "politicians", "abc"); !errors.Is(err, db.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestSearch_DecodesHitsAndAggregations(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{
		"hits":{"total":{"value":2,"relation":"eq"},"hits":[
			{"_id":"a","_source":{"nombre":"Ana"}},
			{"_id":"b","_source":{"nombre":"Luis"}}
		]},
		"aggregations":{"mean_salary":{"value":1500.5}}
	}`))

	res, err := s.Search(context.Background(), "politicians", map[string]any{"size": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Hits) != 2 || res.Hits[1].ID != "b" {
		t.Errorf("result = %+v", res)
	}
	if string(res.Aggregations["mean_salary"]) != `{"value":1500.5}` {
		t.Errorf("aggregations = %s", res.Aggregations["mean_salary"])
	}
	if req := ft.last(); req.Path != "/politicians/_search" || string(req.Body) != `{"size":2}` {
		t.Errorf("request = %s %s", req.Path, req.Body)
	}
}

func TestSearch_IndexNotFound(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound, indexNotFound))
	_, err := s.Search(context.Background(), "politicians", map[string]any{})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestClusterHealth(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"cluster_name":"docker-cluster","status":"green"}`))
	h, err := s.ClusterHealth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h["status"] != "green" {
		t.Errorf("health = %v", h)
	}
	if req := ft.last(); req.Path != "/_cluster/health" {
		t.Errorf("path = %s", req.Path)
	}
}

// bulkHandler answers _bulk requests, rejecting documents for which reject returns true.
func bulkHandler(reject func(doc map[string]any) bool) func(*http.Request, []byte) (int, string) {
	var mu sync.Mutex
	seq := 0
	return func(_ *http.Request, body []byte) (int, string) {
		mu.Lock()
		defer mu.Unlock()

		var items []string
		hasErrors := false
		sc := bufio.NewScanner(bytes.NewReader(body))
		sc.Buffer(make([]byte, 1024*1024), 1024*1024)
		for sc.Scan() {
			var action map[string]map[string]any
			if err := json.Unmarshal(sc.Bytes(), &action); err != nil {
				continue
			}
			if !sc.Scan() {
				break
			}
			var doc map[string]any
			_ = json.Unmarshal(sc.Bytes(), &doc)

			seq++
			id, _ := action["index"]["_id"].(string)
			if id == "" {
				id = fmt.Sprintf("gen-%d", seq)
			}
			if reject != nil && reject(doc) {
				hasErrors = true
				items = append(items, fmt.Sprintf(
					`{"index":{"_id":%q,"status":400,"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}}`, id))
				continue
			}
			items = append(items, fmt.Sprintf(`{"index":{"_id":%q,"status":201,"result":"created"}}`, id))
		}
		return http.StatusOK, fmt.Sprintf(`{"took":1,"errors":%t,"items":[%s]}`, hasErrors, strings.Join(items, ","))
	}
}

func itemsOf(docs ...map[string]any) db.BulkSource {
	return func(yield func(db.BulkItem, error) bool) {
		for _, d := range docs {
			if !yield(db.BulkItem{Fields: d}, nil) {
				return
			}
		}
	}
}

func TestBulk_AllIndexed(t *testing.T) {
	s, ft := newTestStore(t, bulkHandler(nil))

	report, err := s.Bulk(context.Background(), "politicians",
		itemsOf(map[string]any{"nombre": "Ana"}, map[string]any{"nombre": "Luis"}), db.BulkOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Added != 2 || report.Indexed != 2 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
	if req := ft.last(); req.Path != "/politicians/_bulk" {
		t.Errorf("path = %s", req.Path)
	}
}

func TestBulk_PartialFailure(t *testing.T) {
	s, _ := newTestStore(t, bulkHandler(func(doc map[string]any) bool { return doc["nombre"] == "Bad" }))

	report, err := s.Bulk(context.Background(), "politicians", itemsOf(
		map[string]any{"nombre": "Ana"},
		map[string]any{"nombre": "Bad"},
		map[string]any{"nombre": "Eva"},
	), db.BulkOptions{})
	if err != nil {
		t.Fatalf("partial failure must not fail the run: %v", err)
	}
	if report.Indexed != 2 || report.Failed != 1 {
		t.Fatalf("report = %+v", report)
	}
	f := report.Failures[0]
	if f.Action != "index" || f.ID != "gen-2" || f.Status != 400 || !strings.Contains(f.Reason, "mapper_parsing_exception") {
		t.Errorf("failure = %+v", f)
	}
}

func TestBulk_StopOnError(t *testing.T) {
	s, _ := newTestStore(t, bulkHandler(func(map[string]any) bool { return true }))

	report, err := s.Bulk(context.Background(), "politicians",
		itemsOf(map[string]any{"nombre": "Ana"}), db.BulkOptions{StopOnError: true})
	if !errors.Is(err, db.ErrBulkAborted) {
		t.Fatalf("expected ErrBulkAborted, got %v", err)
	}
	if report == nil || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestBulk_FailureListIsBounded(t *testing.T) {
	s, _ := newTestStore(t, bulkHandler(func(map[string]any) bool { return true }))

	docs := make([]map[string]any, 5)
	for i := range docs {
		docs[i] = map[string]any{"n": i}
	}
	report, err := s.Bulk(context.Background(), "politicians", itemsOf(docs...), db.BulkOptions{MaxReportedFailures: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed != 5 || len(report.Failures) != 2 {
		t.Errorf("Failed = %d, len(Failures) = %d", report.Failed, len(report.Failures))
	}
}

func TestBulk_SourceError(t *testing.T) {
	s, _ := newTestStore(t, bulkHandler(nil))
	srcErr := errors.New("bad row")

	src := func(yield func(db.BulkItem, error) bool) {
		if !yield(db.BulkItem{Fields: map[string]any{"nombre": "Ana"}}, nil) {
			return
		}
		yield(db.BulkItem{}, srcErr)
	}

	report, err := s.Bulk(context.Background(), "politicians", src, db.BulkOptions{})
	if !errors.Is(err, srcErr) {
		t.Fatalf("expected source error, got %v", err)
	}
	if report.Added != 1 {
		t.Errorf("Added = %d, want 1", report.Added)
	}
}

func TestBulk_WithDocumentID(t *testing.T) {
	s, ft := newTestStore(t, bulkHandler(nil))

	src := func(yield func(db.BulkItem, error) bool) {
		yield(db.BulkItem{ID: "k1", Fields: map[string]any{"nombre": "Ana"}}, nil)
	}
	if _, err := s.Bulk(context.Background(), "politicians", src, db.BulkOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(ft.last().Body, []byte(`"_id":"k1"`)) {
		t.Errorf("body = %s, want document id", ft.last().Body)
	}
}

// failingBulk rejects whole _bulk requests for which fail returns true and
// otherwise accepts every item.
func failingBulk(fail func(n int) bool) func(*http.Request, []byte) (int, string) {
	var mu sync.Mutex
	n := 0
	accept := bulkHandler(nil)
	return func(r *http.Request, body []byte) (int, string) {
		mu.Lock()
		n++
		reject := fail(n)
		mu.Unlock()
		if reject {
			return http.StatusBadRequest, `{"error":{"type":"illegal_argument_exception","reason":"malformed action"},"status":400}`
		}
		return accept(r, body)
	}
}

func numberedDocs(n int) db.BulkSource {
	docs := make([]map[string]any, n)
	for i := range docs {
		docs[i] = map[string]any{"n": i}
	}
	return itemsOf(docs...)
}

func TestBulk_FailedRequestCountsItems(t *testing.T) {
	s, ft := newBulkTestStore(t, BulkConfig{Workers: 1, FlushBytes: 1}, failingBulk(func(n int) bool { return n == 2 }))

	report, err := s.Bulk(context.Background(), "politicians", numberedDocs(4), db.BulkOptions{})
	if err != nil {
		t.Fatalf("a rejected request must be reported, not fail the run: %v", err)
	}
	if got := ft.bulkRequests(); got != 4 {
		t.Fatalf("bulk requests = %d, want 4", got)
	}
	if report.Added != 4 || report.Indexed != 3 || report.Failed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %+v", report.Failures)
	}
	f := report.Failures[0]
	if f.Action != "index" || f.Status != http.StatusBadRequest || !strings.Contains(f.Reason, "400") {
		t.Errorf("failure = %+v", f)
	}
}

func TestBulk_AllRequestsRejected(t *testing.T) {
	s, _ := newBulkTestStore(t, BulkConfig{Workers: 1, FlushBytes: 1}, failingBulk(func(int) bool { return true }))

	report, err := s.Bulk(context.Background(), "politicians", numberedDocs(2), db.BulkOptions{})
	if errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("a 400 must not be reported as unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Indexed != 0 || report.Failed != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestBulk_EngineUnreachable(t *testing.T) {
	s, ft := newTestStore(t, bulkHandler(nil))
	ft.err = errors.New("connection refused")

	report, err := s.Bulk(context.Background(), "politicians", numberedDocs(2), db.BulkOptions{})
	if !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if report == nil || report.Added != 2 || report.Failed != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestBulk_StopOnErrorStopsAfterFailingChunk(t *testing.T) {
	s, ft := newBulkTestStore(t, BulkConfig{Workers: 4, ChunkSize: 10},
		bulkHandler(func(doc map[string]any) bool { return doc["n"] == float64(0) }))

	report, err := s.Bulk(context.Background(), "politicians", numberedDocs(50), db.BulkOptions{StopOnError: true})
	if !errors.Is(err, db.ErrBulkAborted) {
		t.Fatalf("expected ErrBulkAborted, got %v", err)
	}
	if got := ft.bulkRequests(); got != 1 {
		t.Errorf("bulk requests = %d, want 1", got)
	}
	if report.Added != 10 || report.Indexed != 9 || report.Failed != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestBulk_StopOnErrorSubmitsEveryChunk(t *testing.T) {
	s, ft := newBulkTestStore(t, BulkConfig{ChunkSize: 10}, bulkHandler(nil))

	report, err := s.Bulk(context.Background(), "politicians", numberedDocs(25), db.BulkOptions{StopOnError: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ft.bulkRequests(); got != 3 {
		t.Errorf("bulk requests = %d, want 3", got)
	}
	if report.Added != 25 || report.Indexed != 25 {
		t.Errorf("report = %+v", report)
	}
}

func TestFlushStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New("flush: [413 Request Entity Too Large] body"), 413},
		{errors.New("flush: [503 Service Unavailable] "), 503},
		{errors.New("flush: dial tcp: connection refused"), 0},
	}
	for _, tt := range tests {
		if got := flushStatus(tt.err); got != tt.want {
			t.Errorf("flushStatus(%q) = %d, want %d", tt.err, got, tt.want)
		}
	}
	if unavailable(errors.New("flush: [400 Bad Request] x")) {
		t.Error("400 must not count as unavailable")
	}
	if !unavailable(errors.New("flush: [503 Service Unavailable] x")) {
		t.Error("503 must count as unavailable")
	}
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
