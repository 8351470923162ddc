// Package savedsearch persists named criteria sets in the shared selections
// collection.
package savedsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	domss "github.com/troismondes/gigdex/internal/domain/savedsearch"
)

// Discriminator values in the shared selections collection.
const (
	TypePlain       = "saved_search"
	TypeWithResults = "saved_search_with_results"
)

// store is the consumer interface for saved-search persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/savedsearch.Repository.
type Repo struct {
	store store
}

// New creates a saved-search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save creates or replaces a saved search.
func (r *Repo) Save(ctx context.Context, s domss.SavedSearch) error {
	data, err := json.Marshal(toDTO(s))
	if err != nil {
		return fmt.Errorf("marshal saved search: %w", err)
	}
	if err := r.store.JSONSet(ctx, key(s.ID), "$", data); err != nil {
		return fmt.Errorf("json.set saved search %s: %w", s.ID, err)
	}
	return nil
}

// Get returns one saved search, scoped to the tenant.
func (r *Repo) Get(ctx context.Context, tenantID, id string) (domss.SavedSearch, error) {
	raw, err := r.store.JSONGet(ctx, key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domss.SavedSearch{}, domain.ErrNotFound
		}
		return domss.SavedSearch{}, fmt.Errorf("json.get saved search %s: %w", id, err)
	}

	d, err := parseDTO(raw)
	if err != nil {
		return domss.SavedSearch{}, fmt.Errorf("saved search %s: %w", id, err)
	}
	if d.TenantID != tenantID || !isSavedSearchType(d.Type) {
		return domss.SavedSearch{}, domain.ErrNotFound
	}
	return fromDTO(id, d), nil
}

// Delete removes a saved search, scoped to the tenant.
func (r *Repo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.Get(ctx, tenantID, id); err != nil {
		return err
	}
	if err := r.store.Del(ctx, key(id)); err != nil {
		return fmt.Errorf("del saved search %s: %w", id, err)
	}
	return nil
}

// ListByType returns one user's saved searches of a given discriminator
// type, most recently updated first. The owner filter is part of the native
// query so other users' entries never consume the page.
func (r *Repo) ListByType(ctx context.Context, tenantID, userID, typ string, limit int) ([]domss.SavedSearch, error) {
	if limit <= 0 {
		limit = 100
	}

	q := &db.SearchQuery{
		Index: indexName(),
		Constraints: []db.Constraint{
			db.TagEq("entrepriseId", tenantID),
			db.TagEq("userId", userID),
			db.TagEq("type", typ),
		},
		Sort:        &db.Sort{Field: "updatedAt", Desc: true},
		Limit:       limit,
		ReturnPaths: []string{"$"},
	}

	result, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	if result == nil {
		return nil, nil
	}

	out := make([]domss.SavedSearch, 0, len(result.Entries))
	for _, entry := range result.Entries {
		d, err := parseDTO([]byte(entry.Fields["$"]))
		if err != nil {
			continue
		}
		out = append(out, fromDTO(idFromKey(entry.Key), d))
	}
	return out, nil
}

func isSavedSearchType(typ string) bool {
	return typ == TypePlain || typ == TypeWithResults
}
