package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/salarydex/internal/domain"
	"github.com/kailas-cloud/salarydex/internal/domain/batch"
	"github.com/kailas-cloud/salarydex/internal/domain/politician"
	"github.com/kailas-cloud/salarydex/internal/ingest/csvreader"
	"github.com/kailas-cloud/salarydex/internal/logger"
	"github.com/kailas-cloud/salarydex/internal/metrics"
)

// DefaultTimeout bounds one bulk run.
const DefaultTimeout = 5 * time.Minute

// Options configures ingestion policy.
type Options struct {
	// Collection receives the records.
	Collection string
	// StopOnError aborts after the chunk holding the first rejected record.
	StopOnError bool
	// Timeout bounds the bulk phase.
	Timeout time.Duration
	// IDColumns, when set, derive a stable record ID from these columns.
	IDColumns []string
	// Comma overrides the CSV delimiter.
	Comma rune
}

// Service loads CSV uploads into a collection.
type Service struct {
	collections CollectionEnsurer
	refresher   Refresher
	bulk        BulkIndexer
	cache       CacheInvalidator
	opts        Options
}

// New creates an ingestion service.
func New(collections CollectionEnsurer, refresher Refresher, bulk BulkIndexer) *Service {
	return &Service{
		collections: collections,
		refresher:   refresher,
		bulk:        bulk,
		opts: Options{
			Collection: politician.DefaultCollection,
			Timeout:    DefaultTimeout,
		},
	}
}

// WithOptions overrides ingestion policy. Zero values keep the defaults.
func (s *Service) WithOptions(o Options) *Service {
	if o.Collection != "" {
		s.opts.Collection = o.Collection
	}
	if o.Timeout > 0 {
		s.opts.Timeout = o.Timeout
	}
	s.opts.StopOnError = o.StopOnError
	s.opts.IDColumns = make([]string, 0, len(o.IDColumns))
	for _, c := range o.IDColumns {
		s.opts.IDColumns = append(s.opts.IDColumns, strings.ToLower(strings.TrimSpace(c)))
	}
	s.opts.Comma = o.Comma
	return s
}

// WithCache sets the aggregation cache to invalidate after ingestion.
func (s *Service) WithCache(c CacheInvalidator) *Service {
	s.cache = c
	return s
}

// Collection returns the target collection name.
func (s *Service) Collection() string { return s.opts.Collection }

// Ingest validates the whole upload, then streams it into the collection.
// Nothing is written when validation fails. Rejected records are reported,
// not returned as an error, unless StopOnError is set.
func (s *Service) Ingest(ctx context.Context, filename string, src io.ReadSeeker) (batch.Report, error) {
	log := logger.FromContext(ctx)
	collection := s.opts.Collection

	if err := csvreader.ValidateFilename(filename); err != nil {
		s.countRun("rejected")
		return batch.Report{}, fmt.Errorf("ingest %s: %w", filename, err)
	}

	readOpts := csvreader.Options{
		Collection: collection,
		Columns:    politician.ColumnTypes(),
		Comma:      s.opts.Comma,
	}

	rows, err := csvreader.Validate(src, readOpts)
	if err != nil {
		s.countRun("rejected")
		return batch.Report{}, fmt.Errorf("validate %s: %w", filename, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return batch.Report{}, fmt.Errorf("rewind upload: %w", err)
	}

	reader, err := csvreader.NewReader(src, readOpts)
	if err != nil {
		return batch.Report{}, fmt.Errorf("open %s: %w", filename, err)
	}
	if err := s.checkIDColumns(reader.Header()); err != nil {
		s.countRun("rejected")
		return batch.Report{}, err
	}

	if _, err := s.collections.Ensure(ctx, collection); err != nil {
		s.countRun("error")
		return batch.Report{}, fmt.Errorf("ensure collection: %w", err)
	}

	bctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	start := time.Now()
	report, bulkErr := s.bulk.Bulk(bctx, collection, s.items(reader.All()), s.opts.StopOnError)
	metrics.BulkDuration.WithLabelValues(collection).Observe(time.Since(start).Seconds())

	report.ID = uuid.NewString()
	report.Rows = uint64(rows)
	metrics.IngestRowsTotal.WithLabelValues(collection, "indexed").Add(float64(report.Indexed))
	metrics.IngestRowsTotal.WithLabelValues(collection, "failed").Add(float64(report.Failed))

	if report.Indexed > 0 {
		if err := s.refresher.Refresh(ctx, collection); err != nil {
			log.Warn("Failed to refresh collection after bulk", zap.String("collection", collection), zap.Error(err))
		}
		if s.cache != nil {
			s.cache.Invalidate(ctx, collection)
		}
	}

	if bulkErr != nil {
		if errors.Is(bulkErr, domain.ErrBulkAborted) {
			s.countRun("aborted")
		} else {
			s.countRun("error")
		}
		return report, fmt.Errorf("bulk ingest %s: %w", filename, bulkErr)
	}

	s.countRun("ok")
	log.Info("Bulk ingestion finished",
		zap.String("ingest_id", report.ID),
		zap.String("collection", collection),
		zap.Uint64("rows", report.Rows),
		zap.Uint64("indexed", report.Indexed),
		zap.Uint64("failed", report.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

// items adapts CSV records to bulk items, filling absent salary columns with
// zero and attaching natural keys when configured.
func (s *Service) items(records iter.Seq2[csvreader.Record, error]) iter.Seq2[batch.Item, error] {
	return func(yield func(batch.Item, error) bool) {
		for rec, err := range records {
			if err != nil {
				yield(batch.Item{Line: rec.Line}, err)
				return
			}
			for _, f := range politician.SalaryFields() {
				if _, ok := rec.Fields[f]; !ok {
					rec.Fields[f] = 0.0
				}
			}
			item := batch.Item{Line: rec.Line, Fields: rec.Fields}
			if len(s.opts.IDColumns) > 0 {
				item.ID = batch.NaturalKey(rec.Fields, s.opts.IDColumns)
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

func (s *Service) checkIDColumns(header []string) error {
	for _, c := range s.opts.IDColumns {
		if !slices.Contains(header, c) {
			return domain.NewValidation("id column %q is missing from the csv header", c)
		}
	}
	return nil
}

func (s *Service) countRun(result string) {
	metrics.IngestRunsTotal.WithLabelValues(s.opts.Collection, result).Inc()
}
