package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// DocumentRequest is the create/update body.
type DocumentRequest struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

// DocumentListResponse is a page of records.
type DocumentListResponse struct {
	Items      []DocumentResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
	Total      int                `json:"total"`
}

// listParams are the query parameters of a document listing.
type listParams struct {
	Cursor string
	Limit  int
}

func bindListParams(r *http.Request) (listParams, error) {
	var p listParams
	q := r.URL.Query()

	if q.Has("cursor") {
		if err := runtime.BindQueryParameter("form", true, false, "cursor", q, &p.Cursor); err != nil {
			return p, fmt.Errorf("parameter cursor: %w", err)
		}
	}
	if q.Has("limit") {
		if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
			return p, fmt.Errorf("parameter limit: %w", err)
		}
	}
	return p, nil
}

// CreateDocument handles POST /api/v1/collections/{collection}/documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	collection := chirouter.URLParam(r, "collection")

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := s.documents.Create(r.Context(), collection, tenantID(r), req.ID, req.Fields)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/collections/%s/documents/%s", collection, doc.ID()))
	writeJSON(w, http.StatusCreated, DocumentResponse{ID: doc.ID(), Fields: doc.Fields()})
}

// GetDocument handles GET /api/v1/collections/{collection}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	collection := chirouter.URLParam(r, "collection")
	id := chirouter.URLParam(r, "id")

	doc, err := s.documents.Get(r.Context(), collection, tenantID(r), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DocumentResponse{ID: doc.ID(), Fields: doc.Fields()})
}

// UpdateDocument handles PUT /api/v1/collections/{collection}/documents/{id}.
func (s *Server) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	collection := chirouter.URLParam(r, "collection")
	id := chirouter.URLParam(r, "id")

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := s.documents.Update(r.Context(), collection, tenantID(r), id, req.Fields)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DocumentResponse{ID: doc.ID(), Fields: doc.Fields()})
}

// DeleteDocument handles DELETE /api/v1/collections/{collection}/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	collection := chirouter.URLParam(r, "collection")
	id := chirouter.URLParam(r, "id")

	if err := s.documents.Delete(r.Context(), collection, tenantID(r), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /api/v1/collections/{collection}/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	collection := chirouter.URLParam(r, "collection")

	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	docs, nextCursor, err := s.documents.List(
		r.Context(), collection, tenantID(r), params.Cursor, s.clampPageSize(params.Limit),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DocumentListResponse{
		Items:      documentsToWire(docs),
		NextCursor: nextCursor,
		Total:      len(docs),
	})
}
