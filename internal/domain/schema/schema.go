// Package schema is the static field-mapping registry: for every collection
// it describes each searchable field, its storage path, its value type, and
// whether it is virtual (computed from other fields at filter time).
//
// Lookups fail soft: an unknown collection or field yields a false ok, never
// an error. Callers treat that as "unsupported field".
package schema

// ValueType governs which operators are legal on a field and how values
// compare.
type ValueType int

const (
	// TypeString is free text, matched as an exact tag natively.
	TypeString ValueType = iota
	// TypeNumber is a numeric value.
	TypeNumber
	// TypeBoolean is a true/false flag.
	TypeBoolean
	// TypeDate is a point in time, stored as epoch seconds.
	TypeDate
	// TypeArray is a list of tags.
	TypeArray
)

// String returns a human-readable name for the value type.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeArray:
		return "array"
	}
	return "unknown"
}

// FieldMapping describes one searchable field of one collection.
type FieldMapping struct {
	// Path is the dotted storage path, which may differ from the logical name.
	Path string
	// Type governs operator compatibility and comparison.
	Type ValueType
	// Virtual marks fields with no storage path of their own; they are
	// computed from VirtualSources at filter time and always evaluated
	// locally.
	Virtual bool
	// VirtualSources lists the underlying paths a virtual field reads.
	// A virtual criterion matches when any source matches (OR).
	VirtualSources []string
	// Joined marks fields denormalized from a related collection at write
	// time; read-only at search time.
	Joined bool
}

// Lookup resolves a (collection, field) pair. ok is false when either is
// unknown.
func Lookup(collection, field string) (FieldMapping, bool) {
	fields, ok := registry[collection]
	if !ok {
		return FieldMapping{}, false
	}
	m, ok := fields[field]
	return m, ok
}

// KnownCollection reports whether the collection has a registered mapping.
func KnownCollection(collection string) bool {
	_, ok := registry[collection]
	return ok
}

// Collections returns the names of all registered collections.
func Collections() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// SearchableFields returns every field name of a collection. Empty for an
// unknown collection.
func SearchableFields(collection string) []string {
	fields, ok := registry[collection]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}

// FieldsOfType returns the field names of a collection matching the given
// value type. Empty for an unknown collection.
func FieldsOfType(collection string, t ValueType) []string {
	fields, ok := registry[collection]
	if !ok {
		return nil
	}
	var names []string
	for name, m := range fields {
		if m.Type == t {
			names = append(names, name)
		}
	}
	return names
}
