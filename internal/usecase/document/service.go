// Package document implements collection record management.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/troismondes/gigdex/internal/domain"
	domdoc "github.com/troismondes/gigdex/internal/domain/document"
	"github.com/troismondes/gigdex/internal/domain/schema"
)

// Repository persists documents.
type Repository interface {
	Upsert(ctx context.Context, collection string, doc domdoc.Document) (created bool, err error)
	Get(ctx context.Context, collection, id string) (domdoc.Document, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection, tenantID, cursor string, limit int) ([]domdoc.Document, string, error)
	Count(ctx context.Context, collection, tenantID string) (int, error)
}

// Service manages collection records.
type Service struct {
	repo Repository

	now   func() time.Time
	newID func() string
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Create stores a new record. An empty id gets a generated one; the tenant
// and timestamps are stamped server-side.
func (s *Service) Create(ctx context.Context, collection, tenantID, id string, fields map[string]any) (domdoc.Document, error) {
	if err := s.validate(collection, tenantID); err != nil {
		return domdoc.Document{}, err
	}
	if id == "" {
		id = s.newID()
	}

	now := s.now().Unix()
	stamped := cloneFields(fields)
	stamped["entrepriseId"] = tenantID
	stamped["createdAt"] = now
	stamped["updatedAt"] = now

	doc := domdoc.New(id, stamped)
	if _, err := s.repo.Upsert(ctx, collection, doc); err != nil {
		return domdoc.Document{}, err
	}
	return doc, nil
}

// Update replaces an existing record's fields, preserving its creation time.
func (s *Service) Update(ctx context.Context, collection, tenantID, id string, fields map[string]any) (domdoc.Document, error) {
	if err := s.validate(collection, tenantID); err != nil {
		return domdoc.Document{}, err
	}

	current, err := s.Get(ctx, collection, tenantID, id)
	if err != nil {
		return domdoc.Document{}, err
	}

	stamped := cloneFields(fields)
	stamped["entrepriseId"] = tenantID
	if createdAt, ok := current.PathValue("createdAt"); ok {
		stamped["createdAt"] = createdAt
	}
	stamped["updatedAt"] = s.now().Unix()

	doc := domdoc.New(id, stamped)
	if _, err := s.repo.Upsert(ctx, collection, doc); err != nil {
		return domdoc.Document{}, err
	}
	return doc, nil
}

// Get returns a record, scoped to the tenant.
func (s *Service) Get(ctx context.Context, collection, tenantID, id string) (domdoc.Document, error) {
	if err := s.validate(collection, tenantID); err != nil {
		return domdoc.Document{}, err
	}

	doc, err := s.repo.Get(ctx, collection, id)
	if err != nil {
		return domdoc.Document{}, err
	}
	if owner, _ := doc.PathValue("entrepriseId"); owner != tenantID {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// Delete removes a record, scoped to the tenant.
func (s *Service) Delete(ctx context.Context, collection, tenantID, id string) error {
	if _, err := s.Get(ctx, collection, tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, collection, id)
}

// List pages through one tenant's records, newest first.
func (s *Service) List(ctx context.Context, collection, tenantID, cursor string, limit int) ([]domdoc.Document, string, error) {
	if err := s.validate(collection, tenantID); err != nil {
		return nil, "", err
	}
	return s.repo.List(ctx, collection, tenantID, cursor, limit)
}

// Count returns the number of one tenant's records.
func (s *Service) Count(ctx context.Context, collection, tenantID string) (int, error) {
	if err := s.validate(collection, tenantID); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, collection, tenantID)
}

func (s *Service) validate(collection, tenantID string) error {
	if tenantID == "" {
		return domain.ErrMissingTenant
	}
	if !schema.KnownCollection(collection) {
		return fmt.Errorf("collection %q: %w", collection, domain.ErrUnknownCollection)
	}
	return nil
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}
	return out
}
