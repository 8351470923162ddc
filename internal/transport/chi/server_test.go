package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/troismondes/gigdex/internal/domain"
	domdoc "github.com/troismondes/gigdex/internal/domain/document"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
	documentuc "github.com/troismondes/gigdex/internal/usecase/document"
	healthuc "github.com/troismondes/gigdex/internal/usecase/health"
	savedsearchuc "github.com/troismondes/gigdex/internal/usecase/savedsearch"
	searchuc "github.com/troismondes/gigdex/internal/usecase/search"
	selectionuc "github.com/troismondes/gigdex/internal/usecase/selection"
)

type stubSearchRepo struct {
	page domsearch.NativePage
	err  error
}

func (s *stubSearchRepo) Execute(
	_ context.Context, _, _ string, _ []domsearch.Classified, _ domsearch.Page, _ int,
) (domsearch.NativePage, error) {
	return s.page, s.err
}

func (s *stubSearchRepo) Count(context.Context, string, string, []domsearch.Classified) (int, error) {
	return len(s.page.Docs), s.err
}

type stubDocRepo struct {
	docs map[string]domdoc.Document
}

func (s *stubDocRepo) Upsert(_ context.Context, _ string, doc domdoc.Document) (bool, error) {
	created := s.docs[doc.ID()].ID() == ""
	s.docs[doc.ID()] = doc
	return created, nil
}

func (s *stubDocRepo) Get(_ context.Context, _, id string) (domdoc.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *stubDocRepo) Delete(_ context.Context, _, id string) error {
	delete(s.docs, id)
	return nil
}

func (s *stubDocRepo) List(context.Context, string, string, string, int) ([]domdoc.Document, string, error) {
	out := make([]domdoc.Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	return out, "", nil
}

func (s *stubDocRepo) Count(context.Context, string, string) (int, error) {
	return len(s.docs), nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T, searchRepo searchuc.Repository, docRepo documentuc.Repository) chirouter.Router {
	t.Helper()
	server := NewServer(
		searchuc.New(searchRepo),
		documentuc.New(docRepo),
		savedsearchuc.New(nil),
		selectionuc.New(nil),
		healthuc.New(stubPinger{}, nil, ""),
		zap.NewNop(),
		Limits{DefaultPageSize: 50, MaxPageSize: 200},
	)
	r := chirouter.NewRouter()
	server.Routes(r)
	return r
}

func doJSON(t *testing.T, r chirouter.Router, method, path, tenant string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if tenant != "" {
		req.Header.Set(headerTenant, tenant)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCollectionSearch_MissingTenant_400(t *testing.T) {
	r := newTestRouter(t, &stubSearchRepo{}, &stubDocRepo{docs: map[string]domdoc.Document{}})

	rr := doJSON(t, r, "POST", "/api/v1/collections/contacts/search", "", map[string]any{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codeMissingTenant {
		t.Errorf("code = %s, want %s", errResp.Code, codeMissingTenant)
	}
}

func TestCollectionSearch_UnknownCollection_404(t *testing.T) {
	r := newTestRouter(t, &stubSearchRepo{}, &stubDocRepo{docs: map[string]domdoc.Document{}})

	rr := doJSON(t, r, "POST", "/api/v1/collections/nope/search", "ent-1", map[string]any{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCollectionSearch_ReturnsPage(t *testing.T) {
	repo := &stubSearchRepo{page: domsearch.NativePage{
		Docs: []domdoc.Document{
			domdoc.New("c1", map[string]any{"nom": "Martin", "entrepriseId": "ent-1"}),
		},
	}}
	r := newTestRouter(t, repo, &stubDocRepo{docs: map[string]domdoc.Document{}})

	rr := doJSON(t, r, "POST", "/api/v1/collections/contacts/search", "ent-1", map[string]any{
		"criteria": []map[string]any{
			{"field": "nom", "operator": "equals", "value": "Martin"},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp SearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "c1" {
		t.Errorf("items = %+v, want one document c1", resp.Items)
	}
	if len(resp.AppliedCriteria) != 1 {
		t.Errorf("appliedCriteria = %d, want 1", len(resp.AppliedCriteria))
	}
	if resp.Pagination.HasMore {
		t.Error("hasMore = true for a short page")
	}
}

func TestDocumentCRUD_RoundTrip(t *testing.T) {
	r := newTestRouter(t, &stubSearchRepo{}, &stubDocRepo{docs: map[string]domdoc.Document{}})

	rr := doJSON(t, r, "POST", "/api/v1/collections/contacts/documents/", "ent-1", map[string]any{
		"id":     "c1",
		"fields": map[string]any{"nom": "Martin"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, "GET", "/api/v1/collections/contacts/documents/c1", "ent-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	var doc DocumentResponse
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Fields["nom"] != "Martin" {
		t.Errorf("nom = %v, want Martin", doc.Fields["nom"])
	}
	if doc.Fields["entrepriseId"] != "ent-1" {
		t.Errorf("entrepriseId = %v, want stamped tenant", doc.Fields["entrepriseId"])
	}

	rr = doJSON(t, r, "DELETE", "/api/v1/collections/contacts/documents/c1", "ent-1", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	rr = doJSON(t, r, "GET", "/api/v1/collections/contacts/documents/c1", "ent-1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rr.Code)
	}
}

func TestGetDocument_OtherTenant_404(t *testing.T) {
	docRepo := &stubDocRepo{docs: map[string]domdoc.Document{
		"c1": domdoc.New("c1", map[string]any{"entrepriseId": "ent-other"}),
	}}
	r := newTestRouter(t, &stubSearchRepo{}, docRepo)

	rr := doJSON(t, r, "GET", "/api/v1/collections/contacts/documents/c1", "ent-1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestHealthCheck_OK(t *testing.T) {
	r := newTestRouter(t, &stubSearchRepo{}, &stubDocRepo{docs: map[string]domdoc.Document{}})

	rr := doJSON(t, r, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestRenderContract_TemplateRequired(t *testing.T) {
	r := newTestRouter(t, &stubSearchRepo{}, &stubDocRepo{docs: map[string]domdoc.Document{}})

	rr := doJSON(t, r, "POST", "/api/v1/contrats/render", "ent-1", map[string]any{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestRenderContract_SubstitutesVariables(t *testing.T) {
	docRepo := &stubDocRepo{docs: map[string]domdoc.Document{
		"a1": domdoc.New("a1", map[string]any{"entrepriseId": "ent-1", "nom": "Les Ondes"}),
	}}
	r := newTestRouter(t, &stubSearchRepo{}, docRepo)

	rr := doJSON(t, r, "POST", "/api/v1/contrats/render", "ent-1", map[string]any{
		"template":  "Concert de {artiste_nom} ({inconnu})",
		"artisteId": "a1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp ContractRenderResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := "Concert de Les Ondes ({inconnu})"
	if resp.Rendered != want {
		t.Errorf("rendered = %q, want %q", resp.Rendered, want)
	}
}
