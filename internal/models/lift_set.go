package models

import (
	"time"

	"github.com/google/uuid"
)

// LiftSet is a row of the lift_sets table: one working set of a barbell lift.
// RPE is nil when the lifter did not rate the set.
type LiftSet struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"-"`
	PerformedAt time.Time `json:"performed_at"`
	Exercise    string    `json:"exercise"`
	WeightKg    float64   `json:"weight_kg"`
	Reps        int       `json:"reps"`
	RPE         *float64  `json:"rpe,omitempty"`
}

// LiftSetInput is the JSON accepted when logging sets. Either RPE or RIR may
// be given; RPE wins when both are present. Importers set ID so re-sending
// the same set is a no-op.
type LiftSetInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	PerformedAt time.Time  `json:"performed_at"`
	Exercise    string     `json:"exercise"`
	WeightKg    float64    `json:"weight_kg"`
	Reps        int        `json:"reps"`
	RPE         *float64   `json:"rpe,omitempty"`
	RIR         *float64   `json:"rir,omitempty"`
}
