package aggcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/salarydex/internal/db"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
)

const (
	keyPrefix = "salarydex:agg:"

	kindStats    = "stats"
	kindDistinct = "distinct"

	// DefaultTTL applies when New is given a non-positive TTL.
	DefaultTTL = 5 * time.Minute
)

// reader is the decorated aggregation source (ISP).
type reader interface {
	Statistics(ctx context.Context, collection, field string) (dompol.Statistics, error)
	Distinct(ctx context.Context, collection, field string) ([]string, error)
}

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Reader caches aggregation results in a key-value store.
// Cache failures are logged and fall through to the inner reader.
type Reader struct {
	inner      reader
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner reader,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Reader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Reader{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

type cachedStats struct {
	Field  string              `json:"field"`
	Mean   float64             `json:"mean"`
	Median float64             `json:"median"`
	Top    []dompol.Politician `json:"top"`
}

// Statistics returns cached statistics or computes and caches them.
func (r *Reader) Statistics(ctx context.Context, collection, field string) (dompol.Statistics, error) {
	key := cacheKey(collection, kindStats, field)

	var cached cachedStats
	if r.load(ctx, key, &cached) {
		r.incCache("hit")
		return dompol.Statistics{Field: cached.Field, Mean: cached.Mean, Median: cached.Median, Top: cached.Top}, nil
	}
	r.incCache("miss")

	stats, err := r.inner.Statistics(ctx, collection, field)
	if err != nil {
		return dompol.Statistics{}, fmt.Errorf("statistics: %w", err)
	}

	r.save(ctx, key, cachedStats{Field: stats.Field, Mean: stats.Mean, Median: stats.Median, Top: stats.Top})
	return stats, nil
}

// Distinct returns cached distinct values or computes and caches them.
func (r *Reader) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	key := cacheKey(collection, kindDistinct, field)

	var cached []string
	if r.load(ctx, key, &cached) {
		r.incCache("hit")
		return cached, nil
	}
	r.incCache("miss")

	values, err := r.inner.Distinct(ctx, collection, field)
	if err != nil {
		return nil, fmt.Errorf("distinct: %w", err)
	}

	r.save(ctx, key, values)
	return values, nil
}

// Invalidate drops every cached aggregation of the collection.
func (r *Reader) Invalidate(ctx context.Context, collection string) {
	keys, err := r.store.Scan(ctx, keyPrefix+collection+":*")
	if err != nil {
		r.logger.Warn("Failed to scan cached aggregations", zap.String("collection", collection), zap.Error(err))
		return
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		r.logger.Warn("Failed to drop cached aggregations",
			zap.String("collection", collection), zap.Int("keys", len(keys)), zap.Error(err))
	}
}

func (r *Reader) incCache(result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (r *Reader) load(ctx context.Context, key string, dst any) bool {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("Failed to get cached aggregation", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("Failed to parse cached aggregation", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *Reader) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("Failed to encode aggregation", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Failed to cache aggregation", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(collection, kind, field string) string {
	return keyPrefix + collection + ":" + kind + ":" + field
}
