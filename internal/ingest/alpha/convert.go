package alpha

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/models"
	"github.com/google/uuid"
)

// setNamespace seeds the name-based UUIDs of imported sets.
var setNamespace = uuid.MustParse("4b0e7a52-3f0c-4d5e-9a6b-2c1f8e9d7a31")

// Options controls which parsed sets become lift log entries.
type Options struct {
	// Equipment keeps only exercises whose equipment matches
	// case-insensitively, e.g. "Barbell". Empty keeps all.
	Equipment string
}

// ToLiftSets converts working sets to lift log input. Warmups and
// bodyweight-plus sets are skipped since their load is not the bar weight.
//
// Each set gets a UUID derived from session date, exercise and set number,
// and a timestamp offset by exercise and set number so sets keep their
// order within a session.
func ToLiftSets(sessions []Session, opts Options) ([]models.LiftSetInput, ingest.Result) {
	var out []models.LiftSetInput
	res := ingest.Result{Sessions: len(sessions)}

	for _, s := range sessions {
		for _, ex := range s.Exercises {
			keep := opts.Equipment == "" || strings.EqualFold(ex.Equipment, opts.Equipment)
			for _, set := range ex.Sets {
				switch {
				case set.IsWarmup:
					res.WarmupsSkipped++
					continue
				case set.IsBodyweightPlus:
					res.BodyweightSkipped++
					continue
				case !keep:
					res.FilteredOut++
					continue
				}

				id := setID(s.Date, ex, set.Number)
				out = append(out, models.LiftSetInput{
					ID:          &id,
					PerformedAt: s.Date.Add(time.Duration(ex.Number)*time.Minute + time.Duration(set.Number)*time.Second),
					Exercise:    ex.Name,
					WeightKg:    set.WeightKg,
					Reps:        set.Reps,
					RIR:         set.RIR,
				})
			}
		}
	}
	res.SetsReceived = len(out)
	return out, res
}

func setID(date time.Time, ex Exercise, setNumber int) uuid.UUID {
	key := fmt.Sprintf("%s|%d|%s|%d", date.Format(time.RFC3339), ex.Number, ex.Name, setNumber)
	return uuid.NewSHA1(setNamespace, []byte(key))
}
