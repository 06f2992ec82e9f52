package elastic

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/salarydex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addresses  []string
	Username   string
	Password   string
	CACertPath string
	MaxRetries int
	Compress   bool
	Bulk       BulkConfig

	// Transport replaces the HTTP transport, used by tests.
	Transport http.RoundTripper
}

// BulkConfig tunes the bulk indexer.
type BulkConfig struct {
	Workers       int
	FlushBytes    int
	FlushInterval time.Duration
	// ChunkSize is the number of items per round when stopping on error.
	ChunkSize int
}

// Store implements db.Store via go-elasticsearch.
type Store struct {
	client    *elasticsearch.Client
	transport *http.Transport
	bulk      BulkConfig
}

// NewStore creates an Elasticsearch store. No request is sent until first use.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	s := &Store{bulk: cfg.Bulk}

	rt := cfg.Transport
	if rt == nil {
		tr, err := newTransport(cfg.CACertPath)
		if err != nil {
			return nil, err
		}
		s.transport = tr
		rt = tr
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:           cfg.Addresses,
		Username:            cfg.Username,
		Password:            cfg.Password,
		Transport:           rt,
		MaxRetries:          cfg.MaxRetries,
		RetryOnStatus:       []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		RetryBackoff:        func(attempt int) time.Duration { return time.Duration(attempt) * 100 * time.Millisecond },
		CompressRequestBody: cfg.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.client = client

	return s, nil
}

func newTransport(caCertPath string) (*http.Transport, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if caCertPath == "" {
		return tr, nil
	}

	pem, err := os.ReadFile(filepath.Clean(caCertPath))
	if err != nil {
		return nil, fmt.Errorf("read ca cert: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("ca cert %s contains no certificates", caCertPath)
	}
	tr.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
	return tr, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return transportError(db.OpPing, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return responseError(db.OpPing, res)
	}
	return nil
}

// Close releases idle connections.
func (s *Store) Close() {
	if s.transport != nil {
		s.transport.CloseIdleConnections()
	}
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for search engine: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// ClusterHealth returns the raw cluster health document.
func (s *Store) ClusterHealth(ctx context.Context) (map[string]any, error) {
	res, err := s.client.Cluster.Health(s.client.Cluster.Health.WithContext(ctx))
	if err != nil {
		return nil, transportError(db.OpClusterHealth, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return nil, responseError(db.OpClusterHealth, res)
	}

	var health map[string]any
	if err := json.NewDecoder(res.Body).Decode(&health); err != nil {
		return nil, &db.Error{Op: db.OpClusterHealth, Err: fmt.Errorf("decode response: %w", err)}
	}
	return health, nil
}

func encodeBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}
	return bytes.NewReader(data), nil
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}
}

// transportError wraps a failed round trip. Anything but cancellation means
// the engine could not be reached.
func transportError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &db.Error{Op: op, Err: err}
	}
	return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, err)}
}

// responseError decodes an engine error body and maps well-known types to
// db sentinels.
func responseError(op string, res *esapi.Response) error {
	return classify(op, decodeResponseError(res))
}

func classify(op string, re *db.ResponseError) error {
	switch {
	case re.Type == "index_not_found_exception":
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrIndexNotFound, re)}
	case re.Type == "resource_already_exists_exception":
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrIndexExists, re)}
	case re.Type == "document_missing_exception":
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrDocumentNotFound, re)}
	case re.Status == http.StatusBadGateway, re.Status == http.StatusServiceUnavailable,
		re.Status == http.StatusGatewayTimeout:
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, re)}
	}
	return &db.Error{Op: op, Err: re}
}

func decodeResponseError(res *esapi.Response) *db.ResponseError {
	re := &db.ResponseError{Status: res.StatusCode}
	if res.Body == nil {
		return re
	}

	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || len(body.Error) == 0 {
		return re
	}

	var detail struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body.Error, &detail); err == nil {
		re.Type = detail.Type
		re.Reason = detail.Reason
		return re
	}
	var reason string
	if err := json.Unmarshal(body.Error, &reason); err == nil {
		re.Reason = reason
	}
	return re
}
