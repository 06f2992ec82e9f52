package collection

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/salarydex/internal/domain"
	domcol "github.com/kailas-cloud/salarydex/internal/domain/collection"
	"github.com/kailas-cloud/salarydex/internal/domain/politician"
)

// Service manages politician collections.
type Service struct {
	repo  Repository
	cache CacheInvalidator
}

// New creates a collection service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithCache sets the aggregation cache to invalidate after Clear.
func (s *Service) WithCache(c CacheInvalidator) *Service {
	s.cache = c
	return s
}

// Ensure creates the collection with the politician mapping when absent.
func (s *Service) Ensure(ctx context.Context, name string) (bool, error) {
	col, err := domcol.New(name, politician.Schema())
	if err != nil {
		return false, fmt.Errorf("validate collection: %w: %w", domain.ErrValidation, err)
	}

	created, err := s.repo.Ensure(ctx, col)
	if err != nil {
		return false, fmt.Errorf("ensure collection: %w", err)
	}
	return created, nil
}

// Clear deletes every record of an existing collection and returns how many
// were removed. The mapping is kept.
func (s *Service) Clear(ctx context.Context, name string) (int64, error) {
	if err := domcol.ValidateName(name); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("check collection: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("clear %s: %w", name, domain.ErrNotFound)
	}

	deleted, err := s.repo.Clear(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("clear collection: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, name)
	}
	return deleted, nil
}
