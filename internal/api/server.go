package api

import (
	"log/slog"
	"net/http"

	"github.com/1911342723/jsonflat/internal/config"
	"github.com/1911342723/jsonflat/internal/extract"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for jsonflat.
type Server struct {
	router chi.Router
	engine *extract.Engine
	stats  *extract.OpStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(engine *extract.Engine, stats *extract.OpStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		engine: engine,
		stats:  stats,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/schema", s.handleSchema)
	r.Post("/api/extract", s.handleExtract)
	r.Post("/api/extract/csv", s.handleExtractCSV)
	r.Get("/api/stats/extract", s.handleExtractStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
