package alpha

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/strength"
)

// ErrMalformed is returned when the export cannot be parsed.
var ErrMalformed = errors.New("malformed export")

// SetInserter stores lift sets. *storage.DB satisfies it.
type SetInserter interface {
	InsertLiftSets(ctx context.Context, rows []models.LiftSet) (int64, error)
}

// Provider imports Alpha Progression CSV exports into the lift log.
type Provider struct {
	store SetInserter
	log   *slog.Logger
}

// NewProvider creates a new Alpha Progression import provider.
func NewProvider(store SetInserter, log *slog.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Ingest parses a CSV export and stores its working sets. Sets that fail
// validation are counted and skipped; sets already stored are skipped by
// their derived ID, so importing the same export twice inserts nothing new.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int, opts Options, now time.Time) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	inputs, result := ToLiftSets(sessions, opts)
	rows := make([]models.LiftSet, 0, len(inputs))
	for _, in := range inputs {
		row, err := strength.NewLiftSet(in, userID, now)
		if err != nil {
			result.SetsRejected++
			result.RejectedReasons = append(result.RejectedReasons, fmt.Sprintf("%s %s: %v", in.PerformedAt.Format("2006-01-02"), in.Exercise, err))
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) > 0 {
		inserted, err := p.store.InsertLiftSets(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("inserting sets: %w", err)
		}
		result.SetsInserted = inserted
		result.SetsSkipped = int64(len(rows)) - inserted
	}

	p.log.Info("alpha import",
		"sessions", result.Sessions,
		"received", result.SetsReceived,
		"inserted", result.SetsInserted,
		"rejected", result.SetsRejected,
	)
	return &result, nil
}
