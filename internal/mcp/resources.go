package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) rpeTable(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, map[string]any{
		"columns": rpe.Columns(),
		"rows":    rpe.Table(),
	})
}

func (h *handlers) plateCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog := make(map[plates.Unit]any, 2)
	for _, u := range []plates.Unit{plates.KG, plates.LB} {
		catalog[u] = map[string]any{
			"plates":       plates.Catalog(u),
			"bars":         plates.BarPresets(u),
			"default_bar":  plates.DefaultBar(u),
			"default_step": plates.DefaultRoundingStep(u),
		}
	}
	return jsonContents(req.Params.URI, catalog)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
