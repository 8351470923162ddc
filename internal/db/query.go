package db

import (
	"fmt"
	"strings"
)

// MaxConstraints is the maximum number of combinable constraints per native
// query. One slot is always consumed by the mandatory tenant filter.
const MaxConstraints = 10

// MaxInListSize is the maximum number of members in a set-membership
// constraint; longer lists are truncated by the caller.
const MaxInListSize = 10

// ConstraintKind discriminates the native constraint shapes.
type ConstraintKind int

const (
	// KindTag is an exact tag equality.
	KindTag ConstraintKind = iota
	// KindRange is a numeric range; nil bounds are open.
	KindRange
	// KindIn is a tag set-membership test.
	KindIn
	// KindMissing matches documents where the field is absent.
	KindMissing
)

// Constraint is one native query clause. Negate inverts the clause
// (inequality, not-missing).
type Constraint struct {
	Kind   ConstraintKind
	Field  string
	Negate bool

	// KindTag
	Value string
	// KindIn
	Values []string
	// KindRange
	Min, Max         *float64
	MinExcl, MaxExcl bool
}

// TagEq builds an exact tag equality constraint.
func TagEq(field, value string) Constraint {
	return Constraint{Kind: KindTag, Field: field, Value: value}
}

// TagNeq builds a tag inequality constraint.
func TagNeq(field, value string) Constraint {
	return Constraint{Kind: KindTag, Field: field, Value: value, Negate: true}
}

// NumEq builds a numeric equality constraint as a closed single-point range.
func NumEq(field string, v float64) Constraint {
	return Constraint{Kind: KindRange, Field: field, Min: &v, Max: &v}
}

// NumNeq builds a negated single-point range.
func NumNeq(field string, v float64) Constraint {
	c := NumEq(field, v)
	c.Negate = true
	return c
}

// Gt builds a strict greater-than range constraint.
func Gt(field string, v float64) Constraint {
	return Constraint{Kind: KindRange, Field: field, Min: &v, MinExcl: true}
}

// Lt builds a strict less-than range constraint.
func Lt(field string, v float64) Constraint {
	return Constraint{Kind: KindRange, Field: field, Max: &v, MaxExcl: true}
}

// BetweenRange builds an inclusive min/max range constraint.
func BetweenRange(field string, minVal, maxVal float64) Constraint {
	return Constraint{Kind: KindRange, Field: field, Min: &minVal, Max: &maxVal}
}

// InSet builds a set-membership constraint.
func InSet(field string, values []string) Constraint {
	return Constraint{Kind: KindIn, Field: field, Values: values}
}

// Missing builds a field-absent constraint.
func Missing(field string) Constraint {
	return Constraint{Kind: KindMissing, Field: field}
}

// Sort is a single-field ordering.
type Sort struct {
	Field string
	Desc  bool
}

// SearchQuery is one native query: constraints, ordering, and a page window.
type SearchQuery struct {
	Index       string
	Constraints []Constraint
	Sort        *Sort
	Offset      int
	Limit       int
	// ReturnPaths selects returned attributes; "$" returns the whole
	// JSON document.
	ReturnPaths []string
}

// Validate checks the query against backend limits.
func (q *SearchQuery) Validate() error {
	if q.Index == "" {
		return fmt.Errorf("index name is required")
	}
	if len(q.Constraints) > MaxConstraints {
		return fmt.Errorf("%w: %d > %d", ErrTooManyConstraints, len(q.Constraints), MaxConstraints)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	return nil
}

// SearchResult is the output of a native query.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// AttrName maps a dotted storage path to its index attribute alias.
// RediSearch attribute names cannot contain dots, so nested paths are
// flattened with underscores.
func AttrName(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}
