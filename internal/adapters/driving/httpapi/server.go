// Package httpapi is the HTTP boundary of the export pipeline. It
// marshals requests to the core services and maps core errors to a
// fixed status-code vocabulary; it contains no business logic.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/devdev758/indiainflation/internal/core/domain"
	"github.com/devdev758/indiainflation/internal/core/ports/driving"
	"github.com/devdev758/indiainflation/internal/logger"
)

// exportCacheControl advertises a 1-hour freshness window with
// background revalidation.
const exportCacheControl = "public, max-age=3600, stale-while-revalidate=600"

// Server wires the core services to HTTP routes.
type Server struct {
	exports driving.ExportService
	catalog driving.CatalogService
	search  driving.SearchService
	mux     *http.ServeMux
}

// NewServer creates the API server over the core services.
func NewServer(exports driving.ExportService, catalog driving.CatalogService, search driving.SearchService) *Server {
	s := &Server{
		exports: exports,
		catalog: catalog,
		search:  search,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/exports/", s.handleExports)
	s.mux.HandleFunc("/api/exports", s.handleExports)
	s.mux.HandleFunc("/api/catalog", s.handleCatalog)
	s.mux.HandleFunc("/api/search", s.handleSearch)
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleExports dispatches /api/exports/{slug}[/download|/csv].
func (s *Server) handleExports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/exports"), "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, codeMissingSlug)
		return
	}

	parts := strings.Split(rest, "/")
	slug := parts[0]
	switch {
	case len(parts) == 1:
		s.serveExportJSON(w, r, slug)
	case len(parts) == 2 && parts[1] == "download":
		s.serveExportDownload(w, r, slug)
	case len(parts) == 2 && parts[1] == "csv":
		s.serveExportCSV(w, r, slug)
	default:
		writeError(w, http.StatusNotFound, codeNotFound)
	}
}

// serveExportJSON returns the canonical ItemExport JSON. The "cached"
// query flag (default true) bypasses the process-wide cache when false.
func (s *Server) serveExportJSON(w http.ResponseWriter, r *http.Request, slug string) {
	useCache := true
	if raw := r.URL.Query().Get("cached"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			useCache = parsed
		}
	}

	export, err := s.exports.Load(r.Context(), slug, useCache)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Cache-Control", exportCacheControl)
	writeJSON(w, export)
}

// serveExportDownload streams the compressed artifact unmodified,
// aborting the source read when the client disconnects.
func (s *Server) serveExportDownload(w http.ResponseWriter, r *http.Request, slug string) {
	stream, length, filename, err := s.exports.StreamForDownload(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if length >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	}

	if _, err := io.Copy(w, &contextReader{ctx: r.Context(), r: stream}); err != nil {
		// Headers are already out; all we can do is stop reading.
		logger.Debug("api: download of %s aborted: %v", slug, err)
	}
}

func (s *Server) serveExportCSV(w http.ResponseWriter, r *http.Request, slug string) {
	export, err := s.exports.Load(r.Context(), slug, true)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+slug+`.csv"`)
	_, _ = io.WriteString(w, s.exports.ToCSV(export))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed)
		return
	}

	rows, err := s.catalog.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"data": rows})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, codeMissingQuery)
		return
	}
	category := r.URL.Query().Get("type")

	results, err := s.search.Search(r.Context(), query, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, map[string]any{"data": results})
}

// writeJSON emits a JSON response body.
func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("api: encoding response: %v", err)
	}
}

// contextReader cancels an in-progress copy when the request context
// ends, propagating client disconnection to the source read.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
