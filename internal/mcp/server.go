// Package mcp exposes plan generation over the Model Context Protocol so
// assistants can request plans, inspect the catalog, and browse history.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/planner"
	"github.com/claude/planforge/internal/storage"
)

// New creates an MCP server with all tools and resources registered. db
// may be nil when persistence is disabled; history tools then report an
// error instead of data.
func New(pl *planner.Planner, cat *catalog.Catalog, db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("PlanForge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("PlanForge resistance training plan generator. Generate deterministic weekly plans from a user profile, preview the resolved constraints, browse the exercise catalog, and look up previously generated plans."),
	)

	h := &handlers{planner: pl, catalog: cat, db: db, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGeneratePlan, Handler: h.generatePlan},
		server.ServerTool{Tool: toolPreviewConstraints, Handler: h.previewConstraints},
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
		server.ServerTool{Tool: toolGetCatalog, Handler: h.getCatalog},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalogResource},
		server.ServerResource{Resource: resRecentPlans, Handler: h.recentPlansResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	planner *planner.Planner
	catalog *catalog.Catalog
	db      *storage.DB
	log     *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"planforge://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Every exercise template with its primary muscle, movement pattern, role, and equipment"),
	mcp.WithMIMEType("application/json"),
)

var resRecentPlans = mcp.NewResource(
	"planforge://recent_plans",
	"Recent Plans",
	mcp.WithResourceDescription("The most recently generated training plans"),
	mcp.WithMIMEType("application/json"),
)
