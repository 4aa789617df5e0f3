package mcp

import (
	"context"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/storage"
)

// DataSource abstracts the lift log for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryLiftSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LiftSet, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
