package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/1911342723/jsonflat/internal/extract"
	"github.com/1911342723/jsonflat/internal/profile"
	"github.com/1911342723/jsonflat/internal/schema"
	"github.com/1911342723/jsonflat/internal/table"
)

type schemaRequest struct {
	Document string `json:"document"`
}

// extractRequest carries the document as a string so object key order
// survives transport.
type extractRequest struct {
	Document string   `json:"document"`
	Paths    []string `json:"paths"`
	Limit    int      `json:"limit"`
	Profile  bool     `json:"profile"`
}

type extractResponse struct {
	Columns  []table.Column          `json:"columns"`
	Rows     [][]string              `json:"rows"`
	RowCount int                     `json:"row_count"`
	Warning  string                  `json:"warning,omitempty"`
	Profile  []profile.ColumnProfile `json:"profile,omitempty"`
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	var req schemaRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if req.Document == "" {
		jsonError(w, "document is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	fields, err := s.engine.DiscoverSchema([]byte(req.Document))
	s.stats.Record("discover", time.Since(start))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if fields == nil {
		fields = []schema.FieldNode{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"fields": fields})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if req.Document == "" {
		jsonError(w, "document is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	tbl, err := s.engine.Extract([]byte(req.Document), req.Paths)
	s.stats.Record("extract", time.Since(start))

	var warning string
	switch {
	case errors.Is(err, extract.ErrNoRows):
		warning = "no rows extracted for the selected paths"
	case err != nil:
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := extractResponse{
		Columns:  tbl.Columns,
		Rows:     tbl.Rows,
		RowCount: len(tbl.Rows),
		Warning:  warning,
	}
	if req.Profile {
		// Profile the full result, not the preview slice.
		resp.Profile = profile.Profile(tbl)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.MaxPreviewRows
	}
	if limit > 0 && len(resp.Rows) > limit {
		resp.Rows = resp.Rows[:limit]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleExtractCSV(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	if req.Document == "" {
		jsonError(w, "document is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	tbl, err := s.engine.Extract([]byte(req.Document), req.Paths)
	s.stats.Record("csv", time.Since(start))
	if err != nil && !errors.Is(err, extract.ErrNoRows) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// An empty result still downloads, as a header-only file.
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.ExportFilename(time.Now())))
	w.Write(tbl.CSV())
}

// readJSON decodes a request body into dst, capped at the configured input
// limit. On failure it writes the error response and reports false.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
