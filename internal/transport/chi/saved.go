package chi

import (
	"encoding/json"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/troismondes/gigdex/internal/domain/criterion"
	domss "github.com/troismondes/gigdex/internal/domain/savedsearch"
	domsel "github.com/troismondes/gigdex/internal/domain/selection"
	savedsearchuc "github.com/troismondes/gigdex/internal/usecase/savedsearch"
)

// SavedSearchRequest is the create body for a saved search.
type SavedSearchRequest struct {
	Name        string                `json:"nom"`
	Description string                `json:"description,omitempty"`
	Criteria    []criterion.Criterion `json:"criteres"`
	// Results, when present, is snapshotted with the search.
	Results domss.Snapshot `json:"resultats,omitempty"`
}

// SavedSearchResponse is a saved search on the wire.
type SavedSearchResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"nom"`
	Description string                `json:"description,omitempty"`
	Criteria    []criterion.Criterion `json:"criteres"`
	Results     domss.Snapshot        `json:"resultats,omitempty"`
	WithResults bool                  `json:"withResults"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// SelectionRequest is the create/update body for a selection.
type SelectionRequest struct {
	Name       string   `json:"nom"`
	ContactIDs []string `json:"contactIds"`
	Shared     bool     `json:"shared"`
}

// SelectionResponse is a selection on the wire.
type SelectionResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"nom"`
	ContactIDs []string  `json:"contactIds"`
	Shared     bool      `json:"shared"`
	Owner      bool      `json:"owner"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateSavedSearch handles POST /api/v1/saved-searches.
func (s *Server) CreateSavedSearch(w http.ResponseWriter, r *http.Request) {
	var req SavedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := s.savedSearches.Save(r.Context(), savedsearchuc.SaveInput{
		TenantID:    tenantID(r),
		UserID:      userID(r),
		Name:        req.Name,
		Description: req.Description,
		Criteria:    req.Criteria,
		Results:     req.Results,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, savedSearchToWire(saved))
}

// GetSavedSearch handles GET /api/v1/saved-searches/{id}.
func (s *Server) GetSavedSearch(w http.ResponseWriter, r *http.Request) {
	saved, err := s.savedSearches.Get(r.Context(), tenantID(r), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, savedSearchToWire(saved))
}

// DeleteSavedSearch handles DELETE /api/v1/saved-searches/{id}.
func (s *Server) DeleteSavedSearch(w http.ResponseWriter, r *http.Request) {
	if err := s.savedSearches.Delete(r.Context(), tenantID(r), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSavedSearches handles GET /api/v1/saved-searches.
func (s *Server) ListSavedSearches(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	searches, err := s.savedSearches.List(r.Context(), tenantID(r), userID(r), s.clampPageSize(params.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SavedSearchResponse, len(searches))
	for i, saved := range searches {
		items[i] = savedSearchToWire(saved)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// CreateSelection handles POST /api/v1/selections.
func (s *Server) CreateSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sel, err := s.selections.Create(r.Context(), tenantID(r), userID(r), req.Name, req.ContactIDs, req.Shared)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, selectionToWire(sel, userID(r)))
}

// GetSelection handles GET /api/v1/selections/{id}.
func (s *Server) GetSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selections.Get(r.Context(), tenantID(r), userID(r), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionToWire(sel, userID(r)))
}

// UpdateSelection handles PUT /api/v1/selections/{id}.
func (s *Server) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sel, err := s.selections.Update(
		r.Context(), tenantID(r), userID(r), chirouter.URLParam(r, "id"),
		req.Name, req.ContactIDs, req.Shared,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionToWire(sel, userID(r)))
}

// DeleteSelection handles DELETE /api/v1/selections/{id}.
func (s *Server) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.selections.Delete(r.Context(), tenantID(r), userID(r), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSelections handles GET /api/v1/selections.
func (s *Server) ListSelections(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	sels, err := s.selections.List(r.Context(), tenantID(r), userID(r), s.clampPageSize(params.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SelectionResponse, len(sels))
	for i, sel := range sels {
		items[i] = selectionToWire(sel, userID(r))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func savedSearchToWire(s domss.SavedSearch) SavedSearchResponse {
	return SavedSearchResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Criteria:    s.Criteria,
		Results:     s.Results,
		WithResults: s.WithResults,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func selectionToWire(sel domsel.Selection, userID string) SelectionResponse {
	return SelectionResponse{
		ID:         sel.ID,
		Name:       sel.Name,
		ContactIDs: sel.ContactIDs,
		Shared:     sel.Shared,
		Owner:      sel.UserID == userID,
		CreatedAt:  sel.CreatedAt,
		UpdatedAt:  sel.UpdatedAt,
	}
}
