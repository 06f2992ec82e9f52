package filter

import (
	"fmt"
	"strings"
)

// Filter limits.
const (
	MaxConditions      = 8
	MaxValuesPerClause = 64
)

// Expression is a conjunction of exact-match term conditions.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must []Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// Must returns the conditions every record has to satisfy.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Condition requires the field to equal one of a set of values.
type Condition struct {
	key    string
	values []string
}

// NewTerms creates a terms condition. Values must be non-empty and are used as given.
func NewTerms(key string, values []string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("at least one value is required for key %q", key)
	}
	if len(values) > MaxValuesPerClause {
		return Condition{}, fmt.Errorf("too many values for %q (max %d)", key, MaxValuesPerClause)
	}
	return Condition{key: key, values: append([]string(nil), values...)}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Values returns the accepted values.
func (c Condition) Values() []string { return c.values }

// SplitTerms splits a comma-separated list into distinct trimmed values in
// first-seen order. Empty items are dropped; embedded commas cannot be escaped.
func SplitTerms(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
