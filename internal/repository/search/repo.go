// Package search executes native queries built from classified criteria.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	domdoc "github.com/troismondes/gigdex/internal/domain/document"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

// store is the consumer interface for native query execution (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Count(ctx context.Context, index string, constraints []db.Constraint) (int, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Execute runs the native part of one search: the tenant filter plus the
// native criteria, ordered and windowed. Local criteria are applied later by
// the caller on the returned page.
func (r *Repo) Execute(
	ctx context.Context,
	collection, tenantID string,
	native []domsearch.Classified,
	page domsearch.Page,
	pageSize int,
) (domsearch.NativePage, error) {
	constraints, truncated, err := buildConstraints(tenantID, native)
	if err != nil {
		return domsearch.NativePage{}, err
	}

	sortBy, err := buildSort(collection, page)
	if err != nil {
		return domsearch.NativePage{}, err
	}

	offset, err := decodeCursor(page.Cursor)
	if err != nil {
		return domsearch.NativePage{}, err
	}

	q := &db.SearchQuery{
		Index:       indexName(collection),
		Constraints: constraints,
		Sort:        sortBy,
		Offset:      offset,
		Limit:       pageSize,
		ReturnPaths: []string{"$"},
	}
	if err := q.Validate(); err != nil {
		return domsearch.NativePage{}, fmt.Errorf("validate query: %w", err)
	}

	result, err := r.store.Search(ctx, q)
	if err != nil {
		return domsearch.NativePage{}, fmt.Errorf("search %s: %w", collection, err)
	}

	out := domsearch.NativePage{TruncatedFields: truncated}
	if result == nil {
		return out, nil
	}

	out.Docs = make([]domdoc.Document, 0, len(result.Entries))
	for _, entry := range result.Entries {
		out.Docs = append(out.Docs, decodeEntry(collection, entry))
	}
	if len(result.Entries) == pageSize {
		out.NextCursor = encodeCursor(offset + pageSize)
	}

	return out, nil
}

// Count returns the number of documents matching the native criteria.
func (r *Repo) Count(
	ctx context.Context,
	collection, tenantID string,
	native []domsearch.Classified,
) (int, error) {
	constraints, _, err := buildConstraints(tenantID, native)
	if err != nil {
		return 0, err
	}
	n, err := r.store.Count(ctx, indexName(collection), constraints)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func indexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, collection)
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor %q: %w", cursor, domain.ErrInvalidInput)
	}
	return offset, nil
}

func encodeCursor(offset int) string {
	return strconv.Itoa(offset)
}

func decodeEntry(collection string, entry db.SearchEntry) domdoc.Document {
	id := strings.TrimPrefix(entry.Key, fmt.Sprintf("%s%s:", domain.KeyPrefix, collection))

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
