package gigdex

import "github.com/troismondes/gigdex/internal/domain/criterion"

// CriteriaBuilder accumulates search criteria fluently.
type CriteriaBuilder struct {
	criteria []criterion.Criterion
}

// Criteria starts a builder.
func Criteria() *CriteriaBuilder {
	return &CriteriaBuilder{}
}

// Contains adds a substring criterion (always evaluated in memory).
func (b *CriteriaBuilder) Contains(field string, search any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.Contains(field, search))
	return b
}

// Equals adds an equality criterion.
func (b *CriteriaBuilder) Equals(field string, value any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.Equals(field, value))
	return b
}

// NotEquals adds an inequality criterion.
func (b *CriteriaBuilder) NotEquals(field string, value any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.NotEquals(field, value))
	return b
}

// Between adds a bounded range criterion. Either bound may be nil for an
// open side.
func (b *CriteriaBuilder) Between(field string, minVal, maxVal any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.Between(field, minVal, maxVal))
	return b
}

// In adds a membership criterion.
func (b *CriteriaBuilder) In(field string, values ...any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.In(field, values...))
	return b
}

// StartsWith adds a prefix criterion.
func (b *CriteriaBuilder) StartsWith(field string, prefix any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.StartsWith(field, prefix))
	return b
}

// EndsWith adds a suffix criterion.
func (b *CriteriaBuilder) EndsWith(field string, suffix any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.EndsWith(field, suffix))
	return b
}

// IsEmpty adds an absence criterion.
func (b *CriteriaBuilder) IsEmpty(field string) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.IsEmpty(field))
	return b
}

// GreaterThan adds a strict lower-bound criterion.
func (b *CriteriaBuilder) GreaterThan(field string, value any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.GreaterThan(field, value))
	return b
}

// LessThan adds a strict upper-bound criterion.
func (b *CriteriaBuilder) LessThan(field string, value any) *CriteriaBuilder {
	b.criteria = append(b.criteria, criterion.LessThan(field, value))
	return b
}

// Build returns the accumulated criteria.
func (b *CriteriaBuilder) Build() []criterion.Criterion {
	return b.criteria
}
