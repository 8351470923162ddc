package chi

import (
	"encoding/json"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/document"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
	"github.com/troismondes/gigdex/internal/metrics"
	searchuc "github.com/troismondes/gigdex/internal/usecase/search"
)

// SearchRequest is the search body for one collection.
type SearchRequest struct {
	Criteria  []criterion.Criterion `json:"criteria"`
	OrderBy   string                `json:"orderBy,omitempty"`
	Ascending bool                  `json:"ascending,omitempty"`
	Cursor    string                `json:"cursor,omitempty"`
	PageSize  int                   `json:"pageSize,omitempty"`
}

// CrossSearchRequest fans the same criteria over several collections.
type CrossSearchRequest struct {
	Criteria    []criterion.Criterion `json:"criteria"`
	Collections []string              `json:"collections,omitempty"`
	PageSize    int                   `json:"pageSize,omitempty"`
}

// SearchResponse is the result envelope for one collection.
type SearchResponse struct {
	Items           []DocumentResponse    `json:"items"`
	Pagination      domsearch.Pagination  `json:"pagination"`
	AppliedCriteria []criterion.Criterion `json:"appliedCriteria"`
	Warnings        []domsearch.Warning   `json:"warnings,omitempty"`
}

// CrossSearchItem is one collection's slice of a cross-collection result.
type CrossSearchItem struct {
	Collection string          `json:"collection"`
	Result     *SearchResponse `json:"result,omitempty"`
	Error      *ErrorResponse  `json:"error,omitempty"`
}

// CrossSearchResponse groups per-collection results.
type CrossSearchResponse struct {
	Results []CrossSearchItem `json:"results"`
}

// DocumentResponse is a record on the wire: its id plus its fields.
type DocumentResponse struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// CollectionSearch handles POST /api/v1/collections/{collection}/search.
func (s *Server) CollectionSearch(w http.ResponseWriter, r *http.Request) {
	collection := chirouter.URLParam(r, "collection")

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.search.Execute(r.Context(), searchuc.Request{
		Collection: collection,
		TenantID:   tenantID(r),
		Criteria:   req.Criteria,
		Page: domsearch.Page{
			OrderBy:   req.OrderBy,
			Ascending: req.Ascending,
			Cursor:    req.Cursor,
		},
		PageSize: s.clampPageSize(req.PageSize),
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(collection, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	recordSearchMetrics(collection, result)
	writeJSON(w, http.StatusOK, searchResultToWire(result))
}

// CrossCollectionSearch handles POST /api/v1/search.
func (s *Server) CrossCollectionSearch(w http.ResponseWriter, r *http.Request) {
	var req CrossSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.search.ExecuteAcross(
		r.Context(), tenantID(r), req.Criteria, req.Collections, s.clampPageSize(req.PageSize),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := CrossSearchResponse{Results: make([]CrossSearchItem, 0, len(results))}
	for _, res := range results {
		item := CrossSearchItem{Collection: res.Collection}
		if res.Err != nil {
			item.Error = &ErrorResponse{Code: codeInternalError, Message: safeDomainMessage(res.Err)}
			metrics.SearchRequestsTotal.WithLabelValues(res.Collection, "error").Inc()
		} else {
			wire := searchResultToWire(res.Result)
			item.Result = &wire
			recordSearchMetrics(res.Collection, res.Result)
		}
		resp.Results = append(resp.Results, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

func searchResultToWire(result domsearch.Result) SearchResponse {
	return SearchResponse{
		Items:           documentsToWire(result.Data),
		Pagination:      result.Pagination,
		AppliedCriteria: result.AppliedCriteria,
		Warnings:        result.Warnings,
	}
}

func documentsToWire(docs []document.Document) []DocumentResponse {
	items := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		items[i] = DocumentResponse{ID: d.ID(), Fields: d.Fields()}
	}
	return items
}

func recordSearchMetrics(collection string, result domsearch.Result) {
	metrics.SearchRequestsTotal.WithLabelValues(collection, "ok").Inc()
	metrics.SearchPageDocs.WithLabelValues(collection).Observe(float64(len(result.Data)))
	for _, warning := range result.Warnings {
		metrics.SearchWarningsTotal.WithLabelValues(collection, string(warning.Kind)).Inc()
	}
}
