package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/google/uuid"
)

// insertChunk keeps one INSERT under Postgres' 65535 bind parameter limit.
const insertChunk = 1000

// InsertLiftSets batch-inserts logged sets, skipping IDs already stored.
// Returns count inserted.
func (db *DB) InsertLiftSets(ctx context.Context, rows []models.LiftSet) (int64, error) {
	var total int64
	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		n, err := db.insertLiftSetChunk(ctx, rows[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (db *DB) insertLiftSetChunk(ctx context.Context, rows []models.LiftSet) (int64, error) {
	query := `INSERT INTO lift_sets (id, user_id, performed_at, exercise, weight_kg, reps, rpe) VALUES `
	args := make([]any, 0, len(rows)*7)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, r.ID, r.UserID, r.PerformedAt, r.Exercise, r.WeightKg, r.Reps, r.RPE)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting lift sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryLiftSets retrieves sets in a time range, newest first. exerciseFilter
// is a case-insensitive partial match; empty matches every exercise.
func (db *DB) QueryLiftSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LiftSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, performed_at, exercise, weight_kg, reps, rpe
		 FROM lift_sets
		 WHERE performed_at >= $1 AND performed_at < $2 AND user_id = $3
		   AND ($4::text = '' OR exercise ILIKE '%' || $4::text || '%')
		 ORDER BY performed_at DESC, exercise ASC`,
		start, end, userID, exerciseFilter)
	if err != nil {
		return nil, fmt.Errorf("querying lift sets: %w", err)
	}
	defer rows.Close()

	var result []models.LiftSet
	for rows.Next() {
		var r models.LiftSet
		if err := rows.Scan(&r.ID, &r.UserID, &r.PerformedAt, &r.Exercise, &r.WeightKg, &r.Reps, &r.RPE); err != nil {
			return nil, fmt.Errorf("scanning lift set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteLiftSet removes one set. Returns false if no such set exists for the user.
func (db *DB) DeleteLiftSet(ctx context.Context, id uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM lift_sets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting lift set: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
