package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/troismondes/gigdex/internal/domain"
	domdoc "github.com/troismondes/gigdex/internal/domain/document"
)

type stubRepo struct {
	docs map[string]domdoc.Document
}

func newStubRepo() *stubRepo {
	return &stubRepo{docs: map[string]domdoc.Document{}}
}

func (r *stubRepo) Upsert(_ context.Context, collection string, doc domdoc.Document) (bool, error) {
	key := collection + "/" + doc.ID()
	_, existed := r.docs[key]
	r.docs[key] = doc
	return !existed, nil
}

func (r *stubRepo) Get(_ context.Context, collection, id string) (domdoc.Document, error) {
	doc, ok := r.docs[collection+"/"+id]
	if !ok {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (r *stubRepo) Delete(_ context.Context, collection, id string) error {
	delete(r.docs, collection+"/"+id)
	return nil
}

func (r *stubRepo) List(_ context.Context, _, _, _ string, _ int) ([]domdoc.Document, string, error) {
	return nil, "", nil
}

func (r *stubRepo) Count(_ context.Context, _, _ string) (int, error) {
	return len(r.docs), nil
}

func newService(repo *stubRepo) *Service {
	s := New(repo)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "generated-id" }
	return s
}

func TestCreate_StampsTenantAndTimestamps(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	doc, err := svc.Create(context.Background(), "lieux", "org1", "", map[string]any{"nom": "Olympia"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "generated-id" {
		t.Errorf("id = %q", doc.ID())
	}
	if v, _ := doc.PathValue("entrepriseId"); v != "org1" {
		t.Errorf("entrepriseId = %v", v)
	}
	created, _ := doc.PathValue("createdAt")
	updated, _ := doc.PathValue("updatedAt")
	if created != updated || created == nil {
		t.Errorf("createdAt = %v, updatedAt = %v", created, updated)
	}
}

func TestCreate_MissingTenant(t *testing.T) {
	svc := newService(newStubRepo())
	_, err := svc.Create(context.Background(), "lieux", "", "", nil)
	if !errors.Is(err, domain.ErrMissingTenant) {
		t.Fatalf("err = %v, want ErrMissingTenant", err)
	}
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	if _, err := svc.Create(context.Background(), "lieux", "org1", "l1", map[string]any{"nom": "Olympia"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	svc.now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }
	doc, err := svc.Update(context.Background(), "lieux", "org1", "l1", map[string]any{"nom": "L'Olympia"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	created, _ := doc.PathValue("createdAt")
	updated, _ := doc.PathValue("updatedAt")
	if created == updated {
		t.Error("updatedAt should advance past createdAt")
	}
	if v, _ := doc.PathValue("nom"); v != "L'Olympia" {
		t.Errorf("nom = %v", v)
	}
}

func TestGet_TenantScoped(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	if _, err := svc.Create(context.Background(), "lieux", "org1", "l1", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Get(context.Background(), "lieux", "org2", "l1")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("cross-tenant read must 404, got %v", err)
	}
}

func TestDelete_TenantScoped(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	if _, err := svc.Create(context.Background(), "lieux", "org1", "l1", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "lieux", "org2", "l1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("cross-tenant delete must 404, got %v", err)
	}
	if err := svc.Delete(context.Background(), "lieux", "org1", "l1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestCreate_UnknownCollection(t *testing.T) {
	svc := newService(newStubRepo())
	_, err := svc.Create(context.Background(), "festivals", "org1", "", nil)
	if !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("err = %v, want ErrUnknownCollection", err)
	}
}
