package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/troismondes/gigdex/internal/domain"
	domsel "github.com/troismondes/gigdex/internal/domain/selection"
)

type stubRepo struct {
	byID map[string]domsel.Selection
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[string]domsel.Selection{}}
}

func (r *stubRepo) Save(_ context.Context, s domsel.Selection) error {
	r.byID[s.ID] = s
	return nil
}

func (r *stubRepo) Get(_ context.Context, tenantID, id string) (domsel.Selection, error) {
	s, ok := r.byID[id]
	if !ok || s.TenantID != tenantID {
		return domsel.Selection{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *stubRepo) Delete(_ context.Context, _, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *stubRepo) List(_ context.Context, tenantID string, _ int) ([]domsel.Selection, error) {
	var out []domsel.Selection
	for _, s := range r.byID {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newService(repo *stubRepo) *Service {
	s := New(repo)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "sel1" }
	return s
}

func TestCreateAndGet_Owner(t *testing.T) {
	svc := newService(newStubRepo())

	created, err := svc.Create(context.Background(), "org1", "u1", "tournee", []string{"c1"}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(context.Background(), "org1", "u1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "tournee" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestGet_PrivateHiddenFromOthers(t *testing.T) {
	svc := newService(newStubRepo())
	if _, err := svc.Create(context.Background(), "org1", "u1", "privee", nil, false); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "org1", "u2", "sel1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("private selection should be hidden, got %v", err)
	}
}

func TestGet_SharedVisibleToTeam(t *testing.T) {
	svc := newService(newStubRepo())
	if _, err := svc.Create(context.Background(), "org1", "u1", "partagee", nil, true); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "org1", "u2", "sel1"); err != nil {
		t.Fatalf("shared selection should be visible: %v", err)
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc := newService(newStubRepo())
	if _, err := svc.Create(context.Background(), "org1", "u1", "partagee", nil, true); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), "org1", "u2", "sel1", "volee", nil, false); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("non-owner update should fail, got %v", err)
	}

	got, err := svc.Update(context.Background(), "org1", "u1", "sel1", "", []string{"c9"}, true)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.Name != "partagee" {
		t.Errorf("empty name should keep the current one, got %q", got.Name)
	}
	if len(got.ContactIDs) != 1 || got.ContactIDs[0] != "c9" {
		t.Errorf("contactIds = %v", got.ContactIDs)
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc := newService(newStubRepo())
	if _, err := svc.Create(context.Background(), "org1", "u1", "partagee", nil, true); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), "org1", "u2", "sel1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("non-owner delete should fail, got %v", err)
	}
	if err := svc.Delete(context.Background(), "org1", "u1", "sel1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestList_FiltersVisibility(t *testing.T) {
	repo := newStubRepo()
	repo.byID["a"] = domsel.Selection{ID: "a", TenantID: "org1", UserID: "u1", Shared: false}
	repo.byID["b"] = domsel.Selection{ID: "b", TenantID: "org1", UserID: "u2", Shared: false}
	repo.byID["c"] = domsel.Selection{ID: "c", TenantID: "org1", UserID: "u2", Shared: true}
	svc := newService(repo)

	got, err := svc.List(context.Background(), "org1", "u1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want own + shared", len(got))
	}
	for _, s := range got {
		if s.ID == "b" {
			t.Error("another user's private selection leaked")
		}
	}
}
