// Package selection persists named record lists in the shared selections
// collection.
package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/troismondes/gigdex/internal/db"
	"github.com/troismondes/gigdex/internal/domain"
	domsel "github.com/troismondes/gigdex/internal/domain/selection"
)

// TypeSelection is the discriminator value in the shared collection.
const TypeSelection = "selection"

// store is the consumer interface for selection persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/selection.Repository.
type Repo struct {
	store store
}

// New creates a selection repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

type dto struct {
	TenantID   string   `json:"entrepriseId"`
	UserID     string   `json:"userId"`
	Type       string   `json:"type"`
	Name       string   `json:"nom"`
	ContactIDs []string `json:"contactIds"`
	Shared     bool     `json:"shared"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

func key(id string) string {
	return domain.KeyPrefix + "selections:" + id
}

func toDTO(s domsel.Selection) dto {
	return dto{
		TenantID:   s.TenantID,
		UserID:     s.UserID,
		Type:       TypeSelection,
		Name:       s.Name,
		ContactIDs: s.ContactIDs,
		Shared:     s.Shared,
		CreatedAt:  s.CreatedAt.Unix(),
		UpdatedAt:  s.UpdatedAt.Unix(),
	}
}

func fromDTO(id string, d dto) domsel.Selection {
	return domsel.Selection{
		ID:         id,
		TenantID:   d.TenantID,
		UserID:     d.UserID,
		Name:       d.Name,
		ContactIDs: d.ContactIDs,
		Shared:     d.Shared,
		CreatedAt:  time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt:  time.Unix(d.UpdatedAt, 0).UTC(),
	}
}

func parseDTO(raw []byte) (dto, error) {
	var list []dto
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return dto{}, domain.ErrNotFound
		}
		return list[0], nil
	}
	var d dto
	if err := json.Unmarshal(raw, &d); err != nil {
		return dto{}, fmt.Errorf("unmarshal: %w", err)
	}
	return d, nil
}

// Save creates or replaces a selection.
func (r *Repo) Save(ctx context.Context, s domsel.Selection) error {
	data, err := json.Marshal(toDTO(s))
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := r.store.JSONSet(ctx, key(s.ID), "$", data); err != nil {
		return fmt.Errorf("json.set selection %s: %w", s.ID, err)
	}
	return nil
}

// Get returns one selection, scoped to the tenant.
func (r *Repo) Get(ctx context.Context, tenantID, id string) (domsel.Selection, error) {
	raw, err := r.store.JSONGet(ctx, key(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsel.Selection{}, domain.ErrNotFound
		}
		return domsel.Selection{}, fmt.Errorf("json.get selection %s: %w", id, err)
	}

	d, err := parseDTO(raw)
	if err != nil {
		return domsel.Selection{}, fmt.Errorf("selection %s: %w", id, err)
	}
	if d.TenantID != tenantID || d.Type != TypeSelection {
		return domsel.Selection{}, domain.ErrNotFound
	}
	return fromDTO(id, d), nil
}

// Delete removes a selection, scoped to the tenant.
func (r *Repo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.Get(ctx, tenantID, id); err != nil {
		return err
	}
	if err := r.store.Del(ctx, key(id)); err != nil {
		return fmt.Errorf("del selection %s: %w", id, err)
	}
	return nil
}

// List returns one tenant's selections, most recently updated first.
func (r *Repo) List(ctx context.Context, tenantID string, limit int) ([]domsel.Selection, error) {
	if limit <= 0 {
		limit = 100
	}

	q := &db.SearchQuery{
		Index: domain.KeyPrefix + "selections:idx",
		Constraints: []db.Constraint{
			db.TagEq("entrepriseId", tenantID),
			db.TagEq("type", TypeSelection),
		},
		Sort:        &db.Sort{Field: "updatedAt", Desc: true},
		Limit:       limit,
		ReturnPaths: []string{"$"},
	}

	result, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	if result == nil {
		return nil, nil
	}

	out := make([]domsel.Selection, 0, len(result.Entries))
	for _, entry := range result.Entries {
		d, err := parseDTO([]byte(entry.Fields["$"]))
		if err != nil {
			continue
		}
		id := strings.TrimPrefix(entry.Key, domain.KeyPrefix+"selections:")
		out = append(out, fromDTO(id, d))
	}
	return out, nil
}
