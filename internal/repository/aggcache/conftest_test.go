package aggcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/salarydex/internal/db"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
)

type mockReader struct {
	stats         dompol.Statistics
	values        []string
	err           error
	statsCalls    int
	distinctCalls int
}

func (m *mockReader) Statistics(_ context.Context, _, field string) (dompol.Statistics, error) {
	m.statsCalls++
	if m.err != nil {
		return dompol.Statistics{}, m.err
	}
	s := m.stats
	s.Field = field
	return s, nil
}

func (m *mockReader) Distinct(_ context.Context, _, _ string) ([]string, error) {
	m.distinctCalls++
	return m.values, m.err
}

// memStore is an in-memory key-value store for tests.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	scanErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Scan supports trailing-* patterns only.
func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	prefix := pattern[:len(pattern)-1]
	var keys []string
	for k := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func newTestReader(t *testing.T, inner *mockReader) (*Reader, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(inner, ms, time.Minute, nil, zap.NewNop()), ms
}
