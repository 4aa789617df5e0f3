// Package strength scores logged sets with the RPE chart and summarises
// estimated maxes per exercise.
package strength

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/google/uuid"
)

var ErrInvalidSet = errors.New("invalid lift set")

// ScoredSet is a logged set with its estimated 1RM. E1RM is nil for sets
// without an RPE rating.
type ScoredSet struct {
	models.LiftSet
	PercentOf1RM *float64 `json:"percent_of_1rm,omitempty"`
	E1RM         *float64 `json:"e1rm,omitempty"`
}

// ExerciseBest is the heaviest estimated 1RM seen for one exercise.
type ExerciseBest struct {
	Exercise    string         `json:"exercise"`
	E1RM        float64        `json:"e1rm"`
	Set         models.LiftSet `json:"set"`
	ScoredSets  int            `json:"scored_sets"`
	TotalSets   int            `json:"total_sets"`
	TonnageKg   float64        `json:"tonnage_kg"`
	MaxWeightKg float64        `json:"max_weight_kg"`
}

// SessionBest holds one day's best estimate for a single exercise.
type SessionBest struct {
	Date        string  `json:"date"`
	E1RM        float64 `json:"e1rm"`
	TopWeightKg float64 `json:"top_weight_kg"`
	Sets        int     `json:"sets"`
}

// NewLiftSet validates input and converts it to a storable set. RIR is
// converted to RPE when no RPE is given. A zero PerformedAt defaults to now
// and a nil ID to a random one.
func NewLiftSet(in models.LiftSetInput, userID int, now time.Time) (models.LiftSet, error) {
	name := strings.TrimSpace(in.Exercise)
	if name == "" {
		return models.LiftSet{}, fmt.Errorf("%w: exercise is required", ErrInvalidSet)
	}
	if in.WeightKg < 0 {
		return models.LiftSet{}, fmt.Errorf("%w: weight_kg must not be negative", ErrInvalidSet)
	}
	if in.Reps <= 0 {
		return models.LiftSet{}, fmt.Errorf("%w: reps must be positive", ErrInvalidSet)
	}

	var r *float64
	switch {
	case in.RPE != nil:
		v := *in.RPE
		r = &v
	case in.RIR != nil:
		v := rpe.RPEFromRIR(*in.RIR)
		r = &v
	}
	if r != nil && (*r < 1 || *r > rpe.MaxRPE) {
		return models.LiftSet{}, fmt.Errorf("%w: rpe %.1f out of range 1-10", ErrInvalidSet, *r)
	}

	at := in.PerformedAt
	if at.IsZero() {
		at = now
	}
	id := uuid.New()
	if in.ID != nil {
		id = *in.ID
	}
	return models.LiftSet{
		ID:          id,
		UserID:      userID,
		PerformedAt: at,
		Exercise:    name,
		WeightKg:    in.WeightKg,
		Reps:        in.Reps,
		RPE:         r,
	}, nil
}

// Score returns the estimated 1RM of one set.
func Score(s models.LiftSet) (e1rm, pct float64, ok bool) {
	if s.RPE == nil {
		return 0, 0, false
	}
	reps := float64(s.Reps)
	e1rm, ok = rpe.Estimate1RM(s.WeightKg, reps, *s.RPE)
	if !ok {
		return 0, 0, false
	}
	pct, _ = rpe.PercentOf1RM(reps, *s.RPE)
	return e1rm, pct, true
}

// ScoreSets attaches the estimated 1RM to every set, preserving order.
func ScoreSets(sets []models.LiftSet) []ScoredSet {
	out := make([]ScoredSet, 0, len(sets))
	for _, s := range sets {
		ss := ScoredSet{LiftSet: s}
		if e1rm, pct, ok := Score(s); ok {
			ss.E1RM = &e1rm
			ss.PercentOf1RM = &pct
		}
		out = append(out, ss)
	}
	return out
}

// BestByExercise returns the best estimate per exercise, sorted by name.
// Exercises without any scorable set are omitted.
func BestByExercise(sets []models.LiftSet) []ExerciseBest {
	byName := make(map[string]*ExerciseBest)
	var names []string

	for _, s := range sets {
		key := strings.ToLower(s.Exercise)
		b, seen := byName[key]
		if !seen {
			b = &ExerciseBest{Exercise: s.Exercise}
			byName[key] = b
			names = append(names, key)
		}
		b.TotalSets++
		b.TonnageKg += s.WeightKg * float64(s.Reps)
		if s.WeightKg > b.MaxWeightKg {
			b.MaxWeightKg = s.WeightKg
		}

		e1rm, _, ok := Score(s)
		if !ok {
			continue
		}
		b.ScoredSets++
		if e1rm > b.E1RM {
			b.E1RM = e1rm
			b.Set = s
		}
	}

	sort.Strings(names)
	result := make([]ExerciseBest, 0, len(names))
	for _, n := range names {
		if b := byName[n]; b.ScoredSets > 0 {
			result = append(result, *b)
		}
	}
	return result
}

// Progression returns the best estimate per calendar day (UTC) for sets
// whose exercise matches exercise case-insensitively, oldest first.
func Progression(sets []models.LiftSet, exercise string) []SessionBest {
	want := strings.ToLower(strings.TrimSpace(exercise))
	byDay := make(map[string]*SessionBest)

	for _, s := range sets {
		if want != "" && !strings.Contains(strings.ToLower(s.Exercise), want) {
			continue
		}
		e1rm, _, ok := Score(s)
		if !ok {
			continue
		}
		day := s.PerformedAt.UTC().Format("2006-01-02")
		b, seen := byDay[day]
		if !seen {
			b = &SessionBest{Date: day}
			byDay[day] = b
		}
		b.Sets++
		if e1rm > b.E1RM {
			b.E1RM = e1rm
		}
		if s.WeightKg > b.TopWeightKg {
			b.TopWeightKg = s.WeightKg
		}
	}

	result := make([]SessionBest, 0, len(byDay))
	for _, b := range byDay {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
