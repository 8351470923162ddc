package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	domdoc "github.com/troismondes/gigdex/internal/domain/document"
)

func docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", domain.KeyPrefix, collection, id)
}

func indexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collection)
}

func extractDocID(key, collection string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%s%s:", domain.KeyPrefix, collection))
}

// parseJSONGetResult decodes a JSON.GET $ reply, which wraps the document
// in a one-element array.
func parseJSONGetResult(id string, raw []byte) (domdoc.Document, error) {
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Some server versions return the bare object for a root path.
		var m map[string]any
		if err2 := json.Unmarshal(raw, &m); err2 != nil {
			return domdoc.Document{}, fmt.Errorf("unmarshal document %s: %w", id, err)
		}
		return domdoc.New(id, m), nil
	}
	if len(docs) == 0 {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return domdoc.New(id, docs[0]), nil
}

// entryToDocument decodes one FT.SEARCH entry carrying the whole document
// under the "$" attribute.
func entryToDocument(collection string, entry db.SearchEntry) domdoc.Document {
	id := extractDocID(entry.Key, collection)

	jsonStr := entry.Fields["$"]
	if jsonStr == "" {
		return domdoc.New(id, nil)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
		return domdoc.New(id, nil)
	}
	return domdoc.New(id, m)
}
