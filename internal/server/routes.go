package server

import (
	"errors"
	"net/http"

	"github.com/kleinski/full-planes/internal/clients/amadeus"
	"github.com/kleinski/full-planes/internal/common"
	"github.com/kleinski/full-planes/internal/services/search"
)

// registerRoutes sets up all routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Web pages
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/search", s.handleSearchPage)
	mux.HandleFunc("/export/csv", s.handleExportCSV)

	// REST API
	mux.HandleFunc("/api/search", s.handleSearchAPI)
	mux.HandleFunc("/api/quota", s.handleQuota)

	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// statusForError maps search failures to HTTP status codes.
func statusForError(err error) (int, string) {
	var validationErr *search.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, "validation_error"
	}
	if errors.Is(err, search.ErrQuotaExceeded) {
		return http.StatusTooManyRequests, "quota_exceeded"
	}
	var authErr *amadeus.AuthError
	if errors.As(err, &authErr) {
		return http.StatusBadGateway, "auth_error"
	}
	var apiErr *amadeus.APIError
	if errors.As(err, &apiErr) {
		if apiErr.RateLimited {
			return http.StatusBadGateway, "rate_limit_exhausted"
		}
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusInternalServerError, "internal_error"
}
