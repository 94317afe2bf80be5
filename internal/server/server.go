package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/planner"
	"github.com/claude/planforge/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	planner *planner.Planner
	catalog *catalog.Catalog
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. db may be nil when
// persistence is disabled; generation endpoints still work.
func New(db *storage.DB, pl *planner.Planner, cat *catalog.Catalog, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		planner: pl,
		catalog: cat,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Generation endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/plans", s.handleGeneratePlan)
		r.Post("/api/v1/preview", s.handlePreview)
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Get("/api/v1/rejections", s.handleListRejections)
	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/catalog/muscles", s.handleCatalogMuscles)
}

// MountMCP attaches the MCP transport handler under /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
