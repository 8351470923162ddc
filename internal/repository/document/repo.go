// Package document persists collection records as JSON documents.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	domdoc "github.com/troismondes/gigdex/internal/domain/document"
)

// store is the consumer interface for documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	Count(ctx context.Context, index string, constraints []db.Constraint) (int, error)
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a document. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, collection string, doc domdoc.Document) (bool, error) {
	key := docKey(collection, doc.ID())

	data, err := json.Marshal(doc.Fields())
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a document by id.
func (r *Repo) Get(ctx context.Context, collection, id string) (domdoc.Document, error) {
	key := docKey(collection, id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseJSONGetResult(id, raw)
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, collection, id string) error {
	key := docKey(collection, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns one tenant's documents with cursor-based pagination, newest
// first.
func (r *Repo) List(ctx context.Context, collection, tenantID, cursor string, limit int) (
	[]domdoc.Document, string, error,
) {
	if limit <= 0 {
		limit = 20
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor %q: %w", cursor, domain.ErrInvalidInput)
		}
		offset = parsed
	}

	q := &db.SearchQuery{
		Index:       indexName(collection),
		Constraints: []db.Constraint{db.TagEq("entrepriseId", tenantID)},
		Sort:        &db.Sort{Field: "updatedAt", Desc: true},
		Offset:      offset,
		Limit:       limit + 1,
		ReturnPaths: []string{"$"},
	}

	result, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, "", fmt.Errorf("list %s: %w", collection, err)
	}
	if result == nil || len(result.Entries) == 0 {
		return nil, "", nil
	}

	docs := make([]domdoc.Document, 0, limit)
	for i, entry := range result.Entries {
		if i >= limit {
			break
		}
		docs = append(docs, entryToDocument(collection, entry))
	}

	var nextCursor string
	if len(result.Entries) > limit {
		nextCursor = strconv.Itoa(offset + limit)
	}

	return docs, nextCursor, nil
}

// Count returns the number of one tenant's documents in a collection.
func (r *Repo) Count(ctx context.Context, collection, tenantID string) (int, error) {
	n, err := r.store.Count(ctx, indexName(collection), []db.Constraint{
		db.TagEq("entrepriseId", tenantID),
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}
