// Package selection implements named record-list management with owner and
// shared visibility.
package selection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/troismondes/gigdex/internal/domain"
	domsel "github.com/troismondes/gigdex/internal/domain/selection"
)

// Repository persists selections.
type Repository interface {
	Save(ctx context.Context, s domsel.Selection) error
	Get(ctx context.Context, tenantID, id string) (domsel.Selection, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, limit int) ([]domsel.Selection, error)
}

// Service manages selections.
type Service struct {
	repo Repository

	now   func() time.Time
	newID func() string
}

// New creates a selection service.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Create stores a new selection owned by the calling user.
func (s *Service) Create(ctx context.Context, tenantID, userID, name string, contactIDs []string, shared bool) (domsel.Selection, error) {
	if tenantID == "" {
		return domsel.Selection{}, domain.ErrMissingTenant
	}
	if name == "" {
		return domsel.Selection{}, domain.ErrInvalidInput
	}

	now := s.now().UTC()
	sel := domsel.Selection{
		ID:         s.newID(),
		TenantID:   tenantID,
		UserID:     userID,
		Name:       name,
		ContactIDs: contactIDs,
		Shared:     shared,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Save(ctx, sel); err != nil {
		return domsel.Selection{}, err
	}
	return sel, nil
}

// Get returns a selection the user may read: their own, or a shared one of
// the same organization.
func (s *Service) Get(ctx context.Context, tenantID, userID, id string) (domsel.Selection, error) {
	if tenantID == "" {
		return domsel.Selection{}, domain.ErrMissingTenant
	}
	sel, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return domsel.Selection{}, err
	}
	if !sel.VisibleTo(userID) {
		return domsel.Selection{}, domain.ErrNotFound
	}
	return sel, nil
}

// Update replaces the name, members, and sharing of a selection. Only the
// owner may update.
func (s *Service) Update(ctx context.Context, tenantID, userID, id, name string, contactIDs []string, shared bool) (domsel.Selection, error) {
	if tenantID == "" {
		return domsel.Selection{}, domain.ErrMissingTenant
	}
	current, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return domsel.Selection{}, err
	}
	if current.UserID != userID {
		return domsel.Selection{}, domain.ErrNotFound
	}

	if name != "" {
		current.Name = name
	}
	current.ContactIDs = contactIDs
	current.Shared = shared
	current.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, current); err != nil {
		return domsel.Selection{}, err
	}
	return current, nil
}

// Delete removes a selection. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, tenantID, userID, id string) error {
	if tenantID == "" {
		return domain.ErrMissingTenant
	}
	current, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, tenantID, id)
}

// List returns the selections the user may read, newest first.
func (s *Service) List(ctx context.Context, tenantID, userID string, limit int) ([]domsel.Selection, error) {
	if tenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	all, err := s.repo.List(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	visible := make([]domsel.Selection, 0, len(all))
	for _, sel := range all {
		if sel.VisibleTo(userID) {
			visible = append(visible, sel)
		}
	}
	return visible, nil
}
