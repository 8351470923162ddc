// Package document defines the in-memory representation of a stored JSON
// document and dotted-path field access.
package document

import "strings"

// Document is one record of a collection: an id plus its decoded JSON
// fields.
type Document struct {
	id     string
	fields map[string]any
}

// New creates a document. A nil field map is normalized to an empty one.
func New(id string, fields map[string]any) Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return Document{id: id, fields: fields}
}

// ID returns the document id.
func (d Document) ID() string { return d.id }

// Fields returns the decoded field map.
func (d Document) Fields() map[string]any { return d.fields }

// PathValue traverses a dotted path ("lieu.nom") through the document.
// Any missing intermediate yields (nil, false); traversal never panics.
func (d Document) PathValue(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var cur any = d.fields
	for part := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
