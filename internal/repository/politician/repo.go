package politician

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
	"github.com/kailas-cloud/salarydex/internal/domain/politician/patch"
	"github.com/kailas-cloud/salarydex/internal/domain/search/query"
	"github.com/kailas-cloud/salarydex/internal/domain/search/request"
)

// DefaultDistinctSize is the bucket limit for distinct value listings.
const DefaultDistinctSize = 500

// store is the consumer interface for politician records (ISP).
type store interface {
	GetDocument(ctx context.Context, index, id string) (*db.Document, error)
	UpdateDocument(ctx context.Context, index, id string, fields map[string]any) error
	DeleteDocument(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error)
}

// Repo implements usecase/politician.Repository.
type Repo struct {
	store        store
	distinctSize int
}

// New creates a politician repository.
func New(s store) *Repo {
	return &Repo{store: s, distinctSize: DefaultDistinctSize}
}

// WithDistinctSize sets the bucket limit for Distinct.
func (r *Repo) WithDistinctSize(n int) *Repo {
	if n > 0 {
		r.distinctSize = n
	}
	return r
}

// List returns one page of records matching req and the total match count.
func (r *Repo) List(ctx context.Context, collection string, req request.Request) ([]dompol.Politician, int64, error) {
	res, err := r.store.Search(ctx, collection, query.List(req, dompol.FieldName))
	if err != nil {
		return nil, 0, translate(fmt.Errorf("search %s: %w", collection, err))
	}
	items, err := fromDocuments(res.Hits)
	if err != nil {
		return nil, 0, err
	}
	return items, res.Total, nil
}

// Get returns a record by ID.
func (r *Repo) Get(ctx context.Context, collection, id string) (dompol.Politician, error) {
	doc, err := r.store.GetDocument(ctx, collection, id)
	if err != nil {
		return dompol.Politician{}, translate(fmt.Errorf("get %s/%s: %w", collection, id, err))
	}
	return fromDocument(*doc)
}

// Update merges the patched fields into a stored record.
func (r *Repo) Update(ctx context.Context, collection, id string, p patch.Patch) error {
	if err := r.store.UpdateDocument(ctx, collection, id, p.Fields()); err != nil {
		return translate(fmt.Errorf("update %s/%s: %w", collection, id, err))
	}
	return nil
}

// Delete removes a record.
func (r *Repo) Delete(ctx context.Context, collection, id string) error {
	if err := r.store.DeleteDocument(ctx, collection, id); err != nil {
		return translate(fmt.Errorf("delete %s/%s: %w", collection, id, err))
	}
	return nil
}

// Statistics computes mean and median of field along with the top earners.
// Aggregations over an empty collection report zero.
func (r *Repo) Statistics(ctx context.Context, collection, field string) (dompol.Statistics, error) {
	res, err := r.store.Search(ctx, collection, query.Statistics(field, query.TopRecords))
	if err != nil {
		return dompol.Statistics{}, translate(fmt.Errorf("statistics %s: %w", collection, err))
	}

	top, err := fromDocuments(res.Hits)
	if err != nil {
		return dompol.Statistics{}, err
	}
	mean, err := avgValue(res.Aggregations[query.AggMean])
	if err != nil {
		return dompol.Statistics{}, err
	}
	median, err := percentileValue(res.Aggregations[query.AggMedian])
	if err != nil {
		return dompol.Statistics{}, err
	}

	return dompol.Statistics{Field: field, Mean: mean, Median: median, Top: top}, nil
}

// Distinct lists every value of field once, in ascending order.
func (r *Repo) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	res, err := r.store.Search(ctx, collection, query.Distinct(field, r.distinctSize))
	if err != nil {
		return nil, translate(fmt.Errorf("distinct %s.%s: %w", collection, field, err))
	}
	return bucketKeys(res.Aggregations[query.AggValues])
}

func avgValue(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var agg struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return 0, fmt.Errorf("decode %s: %w", query.AggMean, err)
	}
	if agg.Value == nil {
		return 0, nil
	}
	return *agg.Value, nil
}

// percentileValue reads the single requested percentile. The engine keys it
// by its formatted percent ("50.0"), so the key itself is not relied on.
func percentileValue(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var agg struct {
		Values map[string]*float64 `json:"values"`
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return 0, fmt.Errorf("decode %s: %w", query.AggMedian, err)
	}
	for _, v := range agg.Values {
		if v != nil {
			return *v, nil
		}
	}
	return 0, nil
}

func bucketKeys(raw json.RawMessage) ([]string, error) {
	keys := []string{}
	if len(raw) == 0 {
		return keys, nil
	}
	var agg struct {
		Buckets []struct {
			Key         any    `json:"key"`
			KeyAsString string `json:"key_as_string"`
		} `json:"buckets"`
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", query.AggValues, err)
	}
	for _, b := range agg.Buckets {
		if b.KeyAsString != "" {
			keys = append(keys, b.KeyAsString)
			continue
		}
		keys = append(keys, asString(b.Key))
	}
	if !sort.StringsAreSorted(keys) {
		sort.Strings(keys)
	}
	return keys, nil
}

// translate maps store sentinels onto domain sentinels, keeping the cause.
func translate(err error) error {
	switch {
	case errors.Is(err, db.ErrIndexNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, db.ErrDocumentNotFound):
		return fmt.Errorf("%w: %w", domain.ErrDocumentNotFound, err)
	case errors.Is(err, db.ErrUnavailable):
		return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return err
}
