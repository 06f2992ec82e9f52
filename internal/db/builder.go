package db

import (
	"maps"
	"slices"
	"strings"
)

// Mapping types understood by the search engine.
const (
	MappingKeyword = "keyword"
	MappingText    = "text"
	MappingDate    = "date"
	MappingLong    = "long"
	MappingFloat   = "float"
	MappingObject  = "object"
	MappingNested  = "nested"
)

// KeywordIgnoreAbove caps the keyword sub-field of text fields.
const KeywordIgnoreAbove = 256

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{
			Name:       name,
			Properties: map[string]any{},
		},
	}
}

// Shards sets the primary shard count.
func (b *IndexBuilder) Shards(n int) *IndexBuilder {
	b.def.Shards = n
	return b
}

// Replicas sets the replica count. Zero is sent as is.
func (b *IndexBuilder) Replicas(n int) *IndexBuilder {
	b.def.Replicas = &n
	return b
}

// Keyword adds an exact-match field.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	b.def.Properties[name] = KeywordProperty()
	return b
}

// Text adds a full-text field with a keyword sub-field for exact matching.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Properties[name] = TextProperty()
	return b
}

// Date adds a date field.
func (b *IndexBuilder) Date(name string) *IndexBuilder {
	b.def.Properties[name] = map[string]any{"type": MappingDate}
	return b
}

// Long adds an integer field.
func (b *IndexBuilder) Long(name string) *IndexBuilder {
	b.def.Properties[name] = map[string]any{"type": MappingLong}
	return b
}

// Float adds a floating point field.
func (b *IndexBuilder) Float(name string) *IndexBuilder {
	b.def.Properties[name] = map[string]any{"type": MappingFloat}
	return b
}

// Object adds an object field with the given sub-properties.
func (b *IndexBuilder) Object(name string, properties map[string]any) *IndexBuilder {
	b.def.Properties[name] = map[string]any{"type": MappingObject, "properties": properties}
	return b
}

// Nested adds a nested field whose elements are indexed as separate documents.
func (b *IndexBuilder) Nested(name string, properties map[string]any) *IndexBuilder {
	b.def.Properties[name] = map[string]any{"type": MappingNested, "properties": properties}
	return b
}

// Property adds a pre-rendered mapping for name.
func (b *IndexBuilder) Property(name string, mapping map[string]any) *IndexBuilder {
	b.def.Properties[name] = mapping
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	def.Properties = maps.Clone(b.def.Properties)
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// KeywordProperty renders an exact-match mapping.
func KeywordProperty() map[string]any {
	return map[string]any{"type": MappingKeyword}
}

// TextProperty renders a full-text mapping with a keyword sub-field.
func TextProperty() map[string]any {
	return map[string]any{
		"type": MappingText,
		"fields": map[string]any{
			"keyword": map[string]any{"type": MappingKeyword, "ignore_above": KeywordIgnoreAbove},
		},
	}
}

// String returns a debug representation of the definition, fields sorted by name.
func (idx *IndexDefinition) String() string {
	parts := []string{"PUT", idx.Name}
	for _, name := range slices.Sorted(maps.Keys(idx.Properties)) {
		typ := "?"
		if m, ok := idx.Properties[name].(map[string]any); ok {
			if t, ok := m["type"].(string); ok {
				typ = t
			}
		}
		parts = append(parts, name+":"+typ)
	}
	return strings.Join(parts, " ")
}
