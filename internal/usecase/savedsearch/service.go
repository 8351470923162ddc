// Package savedsearch implements named-search management: persisted criteria
// sets, optionally with a capped result snapshot.
package savedsearch

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/troismondes/gigdex/internal/domain"
	"github.com/troismondes/gigdex/internal/domain/criterion"
	domss "github.com/troismondes/gigdex/internal/domain/savedsearch"
	reposs "github.com/troismondes/gigdex/internal/repository/savedsearch"
)

// Repository persists saved searches.
type Repository interface {
	Save(ctx context.Context, s domss.SavedSearch) error
	Get(ctx context.Context, tenantID, id string) (domss.SavedSearch, error)
	Delete(ctx context.Context, tenantID, id string) error
	ListByType(ctx context.Context, tenantID, userID, typ string, limit int) ([]domss.SavedSearch, error)
}

// SaveInput carries the caller-supplied part of a save.
type SaveInput struct {
	TenantID    string
	UserID      string
	Name        string
	Description string
	Criteria    []criterion.Criterion
	// Results, when non-nil, is snapshotted with the search (capped per
	// collection type).
	Results domss.Snapshot
}

// Service manages saved searches.
type Service struct {
	repo Repository

	now   func() time.Time
	newID func() string
}

// New creates a saved-search service.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Save persists a named criteria set. With Results set, a capped snapshot of
// the matching records is stored alongside.
func (s *Service) Save(ctx context.Context, in SaveInput) (domss.SavedSearch, error) {
	if in.TenantID == "" {
		return domss.SavedSearch{}, domain.ErrMissingTenant
	}
	if in.Name == "" {
		return domss.SavedSearch{}, domain.ErrInvalidInput
	}

	now := s.now().UTC()
	saved := domss.SavedSearch{
		ID:          s.newID(),
		TenantID:    in.TenantID,
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Criteria:    in.Criteria,
		Results:     in.Results.Cap(),
		WithResults: in.Results != nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Save(ctx, saved); err != nil {
		return domss.SavedSearch{}, err
	}
	return saved, nil
}

// Get returns one saved search.
func (s *Service) Get(ctx context.Context, tenantID, id string) (domss.SavedSearch, error) {
	if tenantID == "" {
		return domss.SavedSearch{}, domain.ErrMissingTenant
	}
	return s.repo.Get(ctx, tenantID, id)
}

// Delete removes a saved search.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return domain.ErrMissingTenant
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// List returns one user's saved searches of both kinds, merged and ordered
// by last update, newest first. The two kinds live under distinct
// discriminators, so this is two typed queries.
func (s *Service) List(ctx context.Context, tenantID, userID string, limit int) ([]domss.SavedSearch, error) {
	if tenantID == "" {
		return nil, domain.ErrMissingTenant
	}

	plain, err := s.repo.ListByType(ctx, tenantID, userID, reposs.TypePlain, limit)
	if err != nil {
		return nil, err
	}
	withResults, err := s.repo.ListByType(ctx, tenantID, userID, reposs.TypeWithResults, limit)
	if err != nil {
		return nil, err
	}

	merged := append(plain, withResults...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdatedAt.After(merged[j].UpdatedAt)
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
