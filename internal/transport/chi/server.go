// Package chi exposes the HTTP API: search, documents, saved searches,
// selections, contract rendering, and operational endpoints.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/troismondes/gigdex/internal/domain"
	documentuc "github.com/troismondes/gigdex/internal/usecase/document"
	healthuc "github.com/troismondes/gigdex/internal/usecase/health"
	savedsearchuc "github.com/troismondes/gigdex/internal/usecase/savedsearch"
	searchuc "github.com/troismondes/gigdex/internal/usecase/search"
	selectionuc "github.com/troismondes/gigdex/internal/usecase/selection"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeMissingTenant     = "missing_tenant"
	codeUnknownCollection = "unknown_collection"
	codeNotFound          = "not_found"
	codeDocumentNotFound  = "document_not_found"
	codeInternalError     = "internal_error"
)

// Tenant and user propagate via headers, set by the gateway in front.
const (
	headerTenant = "X-Entreprise-Id"
	headerUser   = "X-User-Id"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Limits bounds request parameters.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server carries the HTTP handlers and their dependencies.
type Server struct {
	search        *searchuc.Service
	documents     *documentuc.Service
	savedSearches *savedsearchuc.Service
	selections    *selectionuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	limits        Limits
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	documents *documentuc.Service,
	savedSearches *savedsearchuc.Service,
	selections *selectionuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	limits Limits,
) *Server {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = searchuc.DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = 200
	}
	s := &Server{
		search:        search,
		documents:     documents,
		savedSearches: savedSearches,
		selections:    selections,
		health:        health,
		logger:        logger,
		limits:        limits,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMissingTenant, http.StatusBadRequest, codeMissingTenant),
		sentinelHandler(domain.ErrUnknownCollection, http.StatusNotFound, codeUnknownCollection),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes mounts every handler on the given router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chirouter.Router) {
		r.Post("/search", s.CrossCollectionSearch)

		r.Route("/collections/{collection}", func(r chirouter.Router) {
			r.Post("/search", s.CollectionSearch)

			r.Route("/documents", func(r chirouter.Router) {
				r.Get("/", s.ListDocuments)
				r.Post("/", s.CreateDocument)
				r.Get("/{id}", s.GetDocument)
				r.Put("/{id}", s.UpdateDocument)
				r.Delete("/{id}", s.DeleteDocument)
			})
		})

		r.Route("/saved-searches", func(r chirouter.Router) {
			r.Get("/", s.ListSavedSearches)
			r.Post("/", s.CreateSavedSearch)
			r.Get("/{id}", s.GetSavedSearch)
			r.Delete("/{id}", s.DeleteSavedSearch)
		})

		r.Route("/selections", func(r chirouter.Router) {
			r.Get("/", s.ListSelections)
			r.Post("/", s.CreateSelection)
			r.Get("/{id}", s.GetSelection)
			r.Put("/{id}", s.UpdateSelection)
			r.Delete("/{id}", s.DeleteSelection)
		})

		r.Post("/contrats/render", s.RenderContract)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func tenantID(r *http.Request) string {
	return r.Header.Get(headerTenant)
}

func userID(r *http.Request) string {
	return r.Header.Get(headerUser)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMissingTenant,
		domain.ErrUnknownCollection,
		domain.ErrDocumentNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func (s *Server) clampPageSize(requested int) int {
	if requested <= 0 {
		return s.limits.DefaultPageSize
	}
	if requested > s.limits.MaxPageSize {
		return s.limits.MaxPageSize
	}
	return requested
}
