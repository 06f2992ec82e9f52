package politician

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/salarydex/internal/domain"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
	"github.com/kailas-cloud/salarydex/internal/domain/politician/patch"
	"github.com/kailas-cloud/salarydex/internal/domain/search/filter"
	"github.com/kailas-cloud/salarydex/internal/domain/search/request"
)

// ListParams are the raw listing inputs. Empty slices and zero values mean unset.
type ListParams struct {
	Name      string
	Parties   []string
	Genders   []string
	Positions []string
	Page      int
	PerPage   int
}

// Page is one page of records.
type Page struct {
	Items      []dompol.Politician
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// Service handles politician record reads and writes.
type Service struct {
	repo        Repository
	aggregates  AggregateReader
	cache       Cache
	collection  string
	maxPageSize int
}

// New creates a politician service over the default collection.
func New(repo Repository) *Service {
	return &Service{
		repo:        repo,
		aggregates:  repo,
		collection:  dompol.DefaultCollection,
		maxPageSize: request.MaxPerPage,
	}
}

// WithCollection sets the collection the service reads and writes.
func (s *Service) WithCollection(name string) *Service {
	if name != "" {
		s.collection = name
	}
	return s
}

// WithPagination caps the page size.
func (s *Service) WithPagination(maxPageSize int) *Service {
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// WithCache routes aggregation reads through c and invalidates it on writes.
func (s *Service) WithCache(c Cache) *Service {
	if c != nil {
		s.cache = c
		s.aggregates = c
	}
	return s
}

// List returns one page of records matching p.
func (s *Service) List(ctx context.Context, p ListParams) (Page, error) {
	filters, err := buildFilters(p)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	req, err := request.New(strings.TrimSpace(p.Name), filters, p.Page, p.PerPage, s.maxPageSize)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	items, total, err := s.repo.List(ctx, s.collection, req)
	if err != nil {
		return Page{}, fmt.Errorf("list politicians: %w", err)
	}

	return Page{
		Items:      items,
		Total:      total,
		TotalPages: req.TotalPages(total),
		Page:       req.Page(),
		PerPage:    req.PerPage(),
	}, nil
}

func buildFilters(p ListParams) (filter.Expression, error) {
	clauses := []struct {
		key    string
		values []string
	}{
		{dompol.FieldParty, p.Parties},
		{dompol.FieldGender, p.Genders},
		{dompol.FieldPositionFilter, p.Positions},
	}

	var conds []filter.Condition
	for _, c := range clauses {
		if len(c.values) == 0 {
			continue
		}
		cond, err := filter.NewTerms(c.key, c.values)
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, cond)
	}
	return filter.NewExpression(conds)
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id string) (dompol.Politician, error) {
	if err := validateID(id); err != nil {
		return dompol.Politician{}, err
	}
	p, err := s.repo.Get(ctx, s.collection, id)
	if err != nil {
		return dompol.Politician{}, fmt.Errorf("get politician: %w", err)
	}
	return p, nil
}

// Update applies a partial update. Only supplied fields change.
func (s *Service) Update(ctx context.Context, id string, in patch.Input) error {
	if err := validateID(id); err != nil {
		return err
	}
	p, err := patch.New(in)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.repo.Update(ctx, s.collection, id, p); err != nil {
		return fmt.Errorf("update politician: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.collection, id); err != nil {
		return fmt.Errorf("delete politician: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Statistics summarises a salary field. An empty field selects the base salary.
// Mean and median are rounded to cents.
func (s *Service) Statistics(ctx context.Context, field string) (dompol.Statistics, error) {
	if field == "" {
		field = dompol.DefaultStatisticsField
	}
	if !dompol.IsSalaryField(field) {
		return dompol.Statistics{}, domain.NewValidation("unknown salary field %q", field)
	}

	stats, err := s.aggregates.Statistics(ctx, s.collection, field)
	if err != nil {
		return dompol.Statistics{}, fmt.Errorf("salary statistics: %w", err)
	}
	stats.Mean = roundCents(stats.Mean)
	stats.Median = roundCents(stats.Median)
	if stats.Top == nil {
		stats.Top = []dompol.Politician{}
	}
	return stats, nil
}

// AvailableGenders lists every gender value once.
func (s *Service) AvailableGenders(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, dompol.FieldGender)
}

// AvailableParties lists every party value once.
func (s *Service) AvailableParties(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, dompol.FieldParty)
}

func (s *Service) distinct(ctx context.Context, field string) ([]string, error) {
	values, err := s.aggregates.Distinct(ctx, s.collection, field)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, s.collection)
	}
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidation("id is required")
	}
	if len(id) > 512 {
		return domain.NewValidation("id too long (max 512 bytes)")
	}
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
