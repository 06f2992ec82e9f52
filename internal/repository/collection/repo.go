package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain"
	domcol "github.com/kailas-cloud/salarydex/internal/domain/collection"
)

// store is the consumer interface for collections (ISP).
type store interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	ClearIndex(ctx context.Context, name string) (int64, error)
	RefreshIndex(ctx context.Context, name string) error
}

// Settings holds index-level settings applied at creation.
type Settings struct {
	Shards int
	// Replicas is left to the engine when nil; zero is honored.
	Replicas *int
}

// Repo implements usecase/collection.Repository.
type Repo struct {
	store    store
	settings Settings
}

// New creates a collection repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// WithSettings configures shard and replica counts for new collections.
func (r *Repo) WithSettings(s Settings) *Repo {
	if s.Shards > 0 {
		r.settings.Shards = s.Shards
	}
	if s.Replicas != nil {
		n := *s.Replicas
		r.settings.Replicas = &n
	}
	return r
}

// Exists reports whether the collection exists.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return false, translate(fmt.Errorf("check collection %s: %w", name, err))
	}
	return ok, nil
}

// Ensure creates the collection unless it exists. Returns true when created.
// Losing a creation race to another writer counts as success.
func (r *Repo) Ensure(ctx context.Context, col domcol.Collection) (bool, error) {
	name := col.Name()
	exists, err := r.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	def, err := buildIndex(name, col.Fields(), r.settings)
	if err != nil {
		return false, fmt.Errorf("build index: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, translate(fmt.Errorf("create collection %s: %w", name, err))
	}
	return true, nil
}

// Clear deletes every record of the collection, keeping its mapping.
func (r *Repo) Clear(ctx context.Context, name string) (int64, error) {
	n, err := r.store.ClearIndex(ctx, name)
	if err != nil {
		return 0, translate(fmt.Errorf("clear collection %s: %w", name, err))
	}
	return n, nil
}

// Refresh makes recent writes searchable.
func (r *Repo) Refresh(ctx context.Context, name string) error {
	if err := r.store.RefreshIndex(ctx, name); err != nil {
		return translate(fmt.Errorf("refresh collection %s: %w", name, err))
	}
	return nil
}

// translate maps store sentinels onto domain sentinels, keeping the cause.
func translate(err error) error {
	switch {
	case errors.Is(err, db.ErrIndexNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, db.ErrUnavailable):
		return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return err
}
