package storage

import (
	"context"
	"fmt"
	"time"
)

// LiftStats holds aggregate statistics about a user's lift log.
type LiftStats struct {
	TotalSets   int64          `json:"total_sets"`
	RatedSets   int64          `json:"rated_sets"`
	TonnageKg   float64        `json:"tonnage_kg"`
	EarliestSet *time.Time     `json:"earliest_set"`
	LatestSet   *time.Time     `json:"latest_set"`
	ByExercise  []ExerciseStat `json:"by_exercise"`
}

// ExerciseStat holds summary stats for a single exercise.
type ExerciseStat struct {
	Exercise    string    `json:"exercise"`
	Sets        int64     `json:"sets"`
	Sessions    int64     `json:"sessions"`
	MaxWeightKg float64   `json:"max_weight_kg"`
	LastSet     time.Time `json:"last_set"`
}

// GetLiftStats returns aggregate statistics for a user's lift log.
func (db *DB) GetLiftStats(ctx context.Context, userID int) (*LiftStats, error) {
	stats := &LiftStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(rpe), COALESCE(SUM(weight_kg * reps), 0),
		 MIN(performed_at), MAX(performed_at)
		 FROM lift_sets WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.RatedSets, &stats.TonnageKg, &stats.EarliestSet, &stats.LatestSet)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise, COUNT(*), COUNT(DISTINCT (performed_at AT TIME ZONE 'UTC')::date),
		 MAX(weight_kg), MAX(performed_at)
		 FROM lift_sets
		 WHERE user_id = $1
		 GROUP BY exercise
		 ORDER BY COUNT(*) DESC, exercise`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sets by exercise: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Exercise, &s.Sets, &s.Sessions, &s.MaxWeightKg, &s.LastSet); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.ByExercise = append(stats.ByExercise, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
