package collection

import (
	"fmt"

	"github.com/kailas-cloud/salarydex/internal/db"
	"github.com/kailas-cloud/salarydex/internal/domain"
	"github.com/kailas-cloud/salarydex/internal/domain/collection/field"
)

// buildIndex translates declared fields into an index definition.
// Unknown types fail with domain.ErrInvalidSchema.
func buildIndex(name string, fields []field.Field, settings Settings) (*db.IndexDefinition, error) {
	b := db.NewIndex(name).Shards(settings.Shards)
	if settings.Replicas != nil {
		b.Replicas(*settings.Replicas)
	}

	for _, f := range fields {
		m, err := fieldMapping(f)
		if err != nil {
			return nil, err
		}
		b.Property(f.Name(), m)
	}

	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSchema, err)
	}
	return def, nil
}

func fieldMapping(f field.Field) (map[string]any, error) {
	switch f.FieldType() {
	case field.String:
		if f.FullText() {
			return db.TextProperty(), nil
		}
		return db.KeywordProperty(), nil
	case field.List:
		// Arrays of scalars need no dedicated type.
		return db.KeywordProperty(), nil
	case field.Date:
		return map[string]any{"type": db.MappingDate}, nil
	case field.Integer:
		return map[string]any{"type": db.MappingLong}, nil
	case field.Float:
		return map[string]any{"type": db.MappingFloat}, nil
	case field.Object, field.ObjectList:
		if len(f.Children()) == 0 {
			return nil, fmt.Errorf("%w: field %q has no inner schema", domain.ErrInvalidSchema, f.Name())
		}
		props := make(map[string]any, len(f.Children()))
		for _, c := range f.Children() {
			m, err := fieldMapping(c)
			if err != nil {
				return nil, err
			}
			props[c.Name()] = m
		}
		return map[string]any{"type": db.MappingNested, "properties": props}, nil
	default:
		return nil, fmt.Errorf("%w: field %q has unknown type %q", domain.ErrInvalidSchema, f.Name(), f.FieldType())
	}
}
