package search

import (
	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/schema"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

// Classify resolves every criterion against the collection's field mappings
// and decides where it executes. Unknown fields classify as invalid and are
// excluded from execution; virtual fields and text-matching operators always
// run locally because the index cannot express them.
func Classify(collection string, criteria []criterion.Criterion) []domsearch.Classified {
	out := make([]domsearch.Classified, 0, len(criteria))
	for _, c := range criteria {
		out = append(out, classifyOne(collection, c))
	}
	return out
}

func classifyOne(collection string, c criterion.Criterion) domsearch.Classified {
	cc := domsearch.Classified{Criterion: c, Class: domsearch.ClassInvalid}

	m, ok := schema.Lookup(collection, c.Field)
	if !ok || c.Op == criterion.OpUnknown {
		return cc
	}

	cc.Valid = true
	cc.FieldPath = m.Path
	cc.FieldType = m.Type

	if m.Virtual {
		cc.Virtual = true
		cc.Sources = sourcePaths(collection, m)
		cc.Class = domsearch.ClassLocal
		return cc
	}

	if nativeOperator(c.Op, m.Type) {
		cc.Class = domsearch.ClassNative
	} else {
		cc.Class = domsearch.ClassLocal
	}
	return cc
}

// nativeOperator reports whether the index can evaluate the operator on a
// field of the given type.
func nativeOperator(op criterion.Operator, t schema.ValueType) bool {
	switch op {
	case criterion.OpEquals, criterion.OpNotEquals, criterion.OpIsEmpty:
		return true
	case criterion.OpBetween, criterion.OpGreaterThan, criterion.OpLessThan:
		// Range queries need a numeric index attribute.
		return t == schema.TypeNumber || t == schema.TypeDate
	case criterion.OpInList:
		// Tag set membership; numeric fields would need a range per member.
		return t == schema.TypeString || t == schema.TypeBoolean || t == schema.TypeArray
	default:
		// contains, starts_with, ends_with: tag indexes match whole values
		// only, so substring operators always run locally.
		return false
	}
}

// sourcePaths resolves a virtual field's source fields into storage paths.
// Unknown sources are skipped.
func sourcePaths(collection string, m schema.FieldMapping) []string {
	paths := make([]string, 0, len(m.VirtualSources))
	for _, name := range m.VirtualSources {
		src, ok := schema.Lookup(collection, name)
		if !ok || src.Virtual {
			continue
		}
		paths = append(paths, src.Path)
	}
	return paths
}
