package collection

import (
	"fmt"
	"regexp"

	"github.com/kailas-cloud/salarydex/internal/domain/collection/field"
)

// Collection names follow search engine index naming: lowercase, no path or
// wildcard characters, not starting with a separator.
var nameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

const (
	maxNameLength = 64
	maxFields     = 64
)

// Collection is a named set of records sharing one schema (immutable value object).
type Collection struct {
	name   string
	fields []field.Field
}

// ValidateName checks a collection name without building a Collection.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("collection name too long (max %d)", maxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("collection name must be lowercase alphanumeric with dots, underscores and hyphens")
	}
	return nil
}

func validateFields(fields []field.Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	if len(fields) > maxFields {
		return fmt.Errorf("too many fields (max %d)", maxFields)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return fmt.Errorf("duplicate field name: %s", f.Name())
		}
		seen[f.Name()] = true
	}
	return nil
}

// New validates and creates a Collection.
func New(name string, fields []field.Field) (Collection, error) {
	if err := ValidateName(name); err != nil {
		return Collection{}, err
	}
	if err := validateFields(fields); err != nil {
		return Collection{}, err
	}
	return Collection{name: name, fields: fields}, nil
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// Fields returns the declared fields in order.
func (c Collection) Fields() []field.Field { return c.fields }

// FieldByName looks up a field by name.
func (c Collection) FieldByName(name string) (field.Field, bool) {
	for _, f := range c.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return field.Field{}, false
}
