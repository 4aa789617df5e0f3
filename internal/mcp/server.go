package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with the calculator tools and the RPE chart
// resource. When ds is non-nil the lift log tools are registered too.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("liftcalc", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("liftcalc strength calculator. Estimate one-rep maxes from weight, reps and RPE, prescribe loads for a target RPE, and work out barbell plate loading in kg or lb. Weights in the lift log are stored in kg."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolEstimate1RM, Handler: h.estimate1RM},
		server.ServerTool{Tool: toolPrescribeLoad, Handler: h.prescribeLoad},
		server.ServerTool{Tool: toolCalculatePlates, Handler: h.calculatePlates},
	)
	if ds != nil {
		s.AddTools(
			server.ServerTool{Tool: toolGetLiftSets, Handler: h.getLiftSets},
			server.ServerTool{Tool: toolGetBestEstimates, Handler: h.getBestEstimates},
			server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		)
	}

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRPETable, Handler: h.rpeTable},
		server.ServerResource{Resource: resPlateCatalog, Handler: h.plateCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRPETable = mcp.NewResource(
	"liftcalc://rpe_table",
	"RPE Table",
	mcp.WithResourceDescription("Percent of one-rep max for 1-12 reps at RPE 6-10 in half steps"),
	mcp.WithMIMEType("application/json"),
)

var resPlateCatalog = mcp.NewResource(
	"liftcalc://plate_catalog",
	"Plate Catalog",
	mcp.WithResourceDescription("Available plates and bar presets for kg and lb"),
	mcp.WithMIMEType("application/json"),
)
