package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/document"
	"github.com/troismondes/gigdex/internal/domain/schema"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

// Evaluate applies one classified criterion to a document in memory. A
// virtual criterion matches when any of its source fields matches; a missing
// source contributes false, never an error.
func Evaluate(doc document.Document, c domsearch.Classified) bool {
	if !c.Valid {
		return false
	}

	if c.Virtual {
		for _, path := range c.Sources {
			v, _ := doc.PathValue(path)
			if v == nil {
				continue
			}
			if evaluateValue(v, c) {
				return true
			}
		}
		return false
	}

	v, _ := doc.PathValue(c.FieldPath)
	return evaluateValue(v, c)
}

// Filter keeps the documents matching every criterion.
func Filter(docs []document.Document, criteria []domsearch.Classified) []document.Document {
	if len(criteria) == 0 {
		return docs
	}
	out := docs[:0]
	for _, doc := range docs {
		keep := true
		for _, c := range criteria {
			if !Evaluate(doc, c) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, doc)
		}
	}
	return out
}

func evaluateValue(v any, c domsearch.Classified) bool {
	switch c.Op {
	case criterion.OpContains:
		return textMatch(v, c.Value, strings.Contains)
	case criterion.OpStartsWith:
		return textMatch(v, c.Value, strings.HasPrefix)
	case criterion.OpEndsWith:
		return textMatch(v, c.Value, strings.HasSuffix)
	case criterion.OpEquals:
		return scalarEquals(v, c.Value)
	case criterion.OpNotEquals:
		// An absent value is by definition not equal.
		return !scalarEquals(v, c.Value)
	case criterion.OpBetween:
		return betweenMatch(v, c)
	case criterion.OpGreaterThan:
		return orderedMatch(v, c, func(cmp int) bool { return cmp > 0 })
	case criterion.OpLessThan:
		return orderedMatch(v, c, func(cmp int) bool { return cmp < 0 })
	case criterion.OpInList:
		for _, member := range c.List {
			if scalarEquals(v, member) {
				return true
			}
		}
		return false
	case criterion.OpIsEmpty:
		return isEmpty(v)
	default:
		return false
	}
}

// textMatch lowercases both sides. Arrays match when any member matches.
func textMatch(v, needle any, match func(s, substr string) bool) bool {
	if v == nil || needle == nil {
		return false
	}
	n := strings.ToLower(asString(needle))
	if n == "" {
		return false
	}

	if list, ok := v.([]any); ok {
		for _, member := range list {
			if member != nil && match(strings.ToLower(asString(member)), n) {
				return true
			}
		}
		return false
	}
	return match(strings.ToLower(asString(v)), n)
}

// scalarEquals compares after normalization: numbers numerically, booleans
// strictly, everything else as strings. Array fields match when any member
// equals the target.
func scalarEquals(v, target any) bool {
	if v == nil {
		return target == nil
	}

	if list, ok := v.([]any); ok {
		for _, member := range list {
			if scalarEquals(member, target) {
				return true
			}
		}
		return false
	}

	if vf, ok := asFloat(v); ok {
		if tf, ok := asFloat(target); ok {
			return vf == tf
		}
		return false
	}
	if vb, ok := v.(bool); ok {
		tb, ok := target.(bool)
		return ok && vb == tb
	}
	return asString(v) == asString(target)
}

// betweenMatch tests the inclusive range; a missing bound always passes on
// its side, so an open-ended range degrades to a single comparison and a
// fully open one passes everything.
func betweenMatch(v any, c domsearch.Classified) bool {
	if c.Min == nil && c.Max == nil {
		return true
	}
	if v == nil {
		return false
	}
	if c.Min != nil && compareOrdered(v, c.Min, c.FieldType) < 0 {
		return false
	}
	if c.Max != nil && compareOrdered(v, c.Max, c.FieldType) > 0 {
		return false
	}
	return true
}

func orderedMatch(v any, c domsearch.Classified, pass func(cmp int) bool) bool {
	if v == nil || c.Value == nil {
		return false
	}
	return pass(compareOrdered(v, c.Value, c.FieldType))
}

// compareOrdered compares numerically when both sides convert, falling back
// to lexicographic order for non-numeric values.
func compareOrdered(v, target any, t schema.ValueType) int {
	vf, okV := comparableFloat(v, t)
	tf, okT := comparableFloat(target, t)
	if okV && okT {
		switch {
		case vf < tf:
			return -1
		case vf > tf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(asString(v), asString(target))
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

// comparableFloat widens date strings to epoch seconds so date fields compare
// numerically whichever representation the document carries.
func comparableFloat(v any, t schema.ValueType) (float64, bool) {
	if f, ok := asFloat(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok || t != schema.TypeDate {
		return 0, false
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return float64(ts.Unix()), true
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return float64(ts.Unix()), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}
