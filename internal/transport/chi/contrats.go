package chi

import (
	"encoding/json"
	"net/http"

	"github.com/troismondes/gigdex/internal/contrat"
	"github.com/troismondes/gigdex/internal/domain/document"
)

// ContractRenderRequest names the records a contract template draws from.
// Every id is optional; a missing record leaves its variables at their
// placeholder values. Entreprise fields come inline because the issuing
// company is not a stored collection.
type ContractRenderRequest struct {
	Template    string         `json:"template"`
	Entreprise  map[string]any `json:"entreprise,omitempty"`
	ContactID   string         `json:"contactId,omitempty"`
	StructureID string         `json:"structureId,omitempty"`
	ArtisteID   string         `json:"artisteId,omitempty"`
	DateID      string         `json:"dateId,omitempty"`
	LieuID      string         `json:"lieuId,omitempty"`
}

// ContractRenderResponse is the substituted template plus the variable map
// used, so callers can show which placeholders resolved.
type ContractRenderResponse struct {
	Rendered  string            `json:"rendered"`
	Variables map[string]string `json:"variables"`
}

// RenderContract handles POST /api/v1/contrats/render.
func (s *Server) RenderContract(w http.ResponseWriter, r *http.Request) {
	var req ContractRenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Template == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "template is required")
		return
	}

	in := contrat.Input{Entreprise: document.New("", req.Entreprise)}
	refs := []struct {
		collection string
		id         string
		dst        *document.Document
	}{
		{"contacts", req.ContactID, &in.Contact},
		{"structures", req.StructureID, &in.Structure},
		{"artistes", req.ArtisteID, &in.Artiste},
		{"dates", req.DateID, &in.Date},
		{"lieux", req.LieuID, &in.Lieu},
	}
	for _, ref := range refs {
		if ref.id == "" {
			continue
		}
		doc, err := s.documents.Get(r.Context(), ref.collection, tenantID(r), ref.id)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		*ref.dst = doc
	}

	vars := contrat.Variables(in)
	writeJSON(w, http.StatusOK, ContractRenderResponse{
		Rendered:  contrat.Remplacer(req.Template, vars),
		Variables: vars,
	})
}
