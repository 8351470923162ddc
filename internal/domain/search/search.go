// Package search defines the search request/result envelope and the
// classified criterion derived during one execution.
package search

import (
	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/document"
	"github.com/troismondes/gigdex/internal/domain/schema"
)

// ExecutionClass says where a classified criterion is evaluated.
type ExecutionClass int

const (
	// ClassInvalid marks criteria whose field is not in the registry; they
	// are excluded from execution and reported as a warning.
	ClassInvalid ExecutionClass = iota
	// ClassNative marks criteria pushed down to the store's query engine.
	ClassNative
	// ClassLocal marks criteria evaluated in memory on the fetched page.
	ClassLocal
)

// String returns a human-readable class name.
func (c ExecutionClass) String() string {
	switch c {
	case ClassNative:
		return "native"
	case ClassLocal:
		return "local"
	case ClassInvalid:
		return "invalid"
	}
	return "unknown"
}

// Classified is a criterion enriched with classification results. Derived
// per execution, never persisted.
type Classified struct {
	criterion.Criterion
	FieldPath string
	FieldType schema.ValueType
	Class     ExecutionClass
	Valid     bool
	Virtual   bool
	Sources   []string
}

// Page carries caller-supplied ordering and continuation.
type Page struct {
	// OrderBy is the logical sort field; empty means updatedAt.
	OrderBy string
	// Ascending flips the default descending order.
	Ascending bool
	// Cursor is the opaque continuation token from the previous page.
	Cursor string
}

// Pagination describes the returned page.
type Pagination struct {
	HasMore bool   `json:"hasMore"`
	Cursor  string `json:"cursor,omitempty"`
	Total   int    `json:"total"`
}

// WarningKind tags a soft notice attached to a successful result.
type WarningKind string

const (
	// WarnInvalidCriteria reports criteria ignored because their field is
	// unknown.
	WarnInvalidCriteria WarningKind = "invalid_criteria"
	// WarnConstraintLimit reports native criteria demoted to local
	// evaluation because the per-query constraint budget was exceeded.
	WarnConstraintLimit WarningKind = "constraint_limit"
	// WarnInListTruncated reports in_list values cut to the store's maximum
	// set-membership size.
	WarnInListTruncated WarningKind = "in_list_truncated"
)

// Warning is a soft notice alongside an otherwise-successful result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	Fields  []string    `json:"fields,omitempty"`
	Count   int         `json:"count,omitempty"`
}

// Result is the output envelope of one search execution.
type Result struct {
	Data            []document.Document
	Pagination      Pagination
	AppliedCriteria []criterion.Criterion
	Warnings        []Warning
}

// NativePage is what the query-builder repository hands back: the raw page
// fetched by the native query plus execution notes.
type NativePage struct {
	Docs []document.Document
	// NextCursor continues after this page; empty when the page was short.
	NextCursor string
	// TruncatedFields lists in_list criteria whose value list was cut to
	// the native maximum.
	TruncatedFields []string
}
