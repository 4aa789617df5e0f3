package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/claude/liftcalc/internal/strength"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last days days.
func defaultTimeRange(startStr, endStr string, days int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolEstimate1RM = mcp.NewTool("estimate_1rm",
	mcp.WithDescription("Estimate a one-rep max from a set's weight, reps and RPE using an RPE percentage chart. Reps are clamped to 1-12 and RPE to 6-10; fractional values are interpolated."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted, any unit. The estimate is in the same unit.")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions performed")),
	mcp.WithNumber("rpe", mcp.Description("Rate of perceived exertion (6-10). Either rpe or rir is required.")),
	mcp.WithNumber("rir", mcp.Description("Reps in reserve, converted to RPE as 10 - rir")),
)

var toolPrescribeLoad = mcp.NewTool("prescribe_load",
	mcp.WithDescription("Work out the weight to use for a target reps and RPE given a one-rep max, rounded to a plate-friendly step."),
	mcp.WithNumber("one_rm", mcp.Required(), mcp.Description("Current one-rep max")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Target repetitions")),
	mcp.WithNumber("rpe", mcp.Required(), mcp.Description("Target RPE (6-10)")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to kg."), mcp.Enum("kg", "lb")),
	mcp.WithNumber("step", mcp.Description("Rounding step. Defaults to 0.5 kg or 1 lb.")),
)

var toolCalculatePlates = mcp.NewTool("calculate_plates",
	mcp.WithDescription("Work out the plates to load on each side of a barbell to reach a target total. Returns a per-side breakdown, the loading sequence and any shortfall the smallest plates cannot cover."),
	mcp.WithNumber("target", mcp.Required(), mcp.Description("Target total including bar and collars")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to kg."), mcp.Enum("kg", "lb")),
	mcp.WithNumber("bar", mcp.Description("Bar weight. Defaults to 20 kg or 45 lb.")),
	mcp.WithNumber("collars", mcp.Description("Combined collar weight. Defaults to 0.")),
	mcp.WithNumber("step", mcp.Description("Rounding step for the target. Defaults to 0.5 kg or 1 lb.")),
)

var toolGetLiftSets = mcp.NewTool("get_lift_sets",
	mcp.WithDescription("Query logged barbell sets with their estimated one-rep max. Weights are in kg."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'squat')")),
)

var toolGetBestEstimates = mcp.NewTool("get_best_estimates",
	mcp.WithDescription("Best estimated one-rep max per exercise with set counts and tonnage."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match)")),
)

var toolGetProgression = mcp.NewTool("get_e1rm_progression",
	mcp.WithDescription("Session-by-session best estimated one-rep max for one exercise."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match)")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

// --- Tool handlers ---

func (h *handlers) estimate1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	rating, err := req.RequireFloat("rpe")
	if err != nil {
		rir, rirErr := req.RequireFloat("rir")
		if rirErr != nil {
			return mcp.NewToolResultError("rpe or rir parameter is required"), nil
		}
		rating = rpe.RPEFromRIR(rir)
	}

	e1rm, ok := rpe.Estimate1RM(weight, reps, rating)
	if !ok {
		return mcp.NewToolResultError("no estimate: weight and reps must be positive"), nil
	}
	pct, _ := rpe.PercentOf1RM(reps, rating)

	return jsonResult(map[string]any{
		"weight":  weight,
		"reps":    reps,
		"rpe":     rating,
		"percent": pct,
		"e1rm":    e1rm,
	})
}

func (h *handlers) prescribeLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oneRM, err := req.RequireFloat("one_rm")
	if err != nil {
		return mcp.NewToolResultError("one_rm parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	rating, err := req.RequireFloat("rpe")
	if err != nil {
		return mcp.NewToolResultError("rpe parameter is required"), nil
	}
	unit, err := plates.ParseUnit(req.GetString("unit", string(plates.KG)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	step := req.GetFloat("step", plates.DefaultRoundingStep(unit))
	if step <= 0 {
		return mcp.NewToolResultError("step must be positive"), nil
	}

	weight, ok := rpe.LoadFor(oneRM, reps, rating)
	if !ok {
		return mcp.NewToolResultError("one_rm must be positive"), nil
	}
	pct, _ := rpe.PercentOf1RM(reps, rating)

	return jsonResult(map[string]any{
		"unit":           unit,
		"percent":        pct,
		"weight":         weight,
		"rounded_weight": plates.Round(weight, step),
	})
}

func (h *handlers) calculatePlates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireFloat("target")
	if err != nil {
		return mcp.NewToolResultError("target parameter is required"), nil
	}
	unit, err := plates.ParseUnit(req.GetString("unit", string(plates.KG)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := plates.DefaultConfig(unit)
	cfg.Target = target
	cfg.Bar = req.GetFloat("bar", cfg.Bar)
	cfg.Collars = req.GetFloat("collars", 0)
	cfg.RoundingStep = req.GetFloat("step", cfg.RoundingStep)

	load, err := plates.Compute(cfg)
	if err != nil && !errors.Is(err, plates.ErrInfeasible) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"load":      load,
		"exact":     load.Exact(),
		"shortfall": load.Shortfall(),
	})
}

func (h *handlers) getLiftSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), 7)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sets, err := h.ds.QueryLiftSets(ctx, start, end, uid, req.GetString("exercise", ""))
	if err != nil {
		h.log.Error("mcp get_lift_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return jsonResult(strength.ScoreSets(sets))
}

func (h *handlers) getBestEstimates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), 90)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sets, err := h.ds.QueryLiftSets(ctx, start, end, uid, req.GetString("exercise", ""))
	if err != nil {
		h.log.Error("mcp get_best_estimates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return jsonResult(strength.BestByExercise(sets))
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), 90)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	sets, err := h.ds.QueryLiftSets(ctx, start, end, uid, exercise)
	if err != nil {
		h.log.Error("mcp get_e1rm_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	return jsonResult(map[string]any{
		"exercise": exercise,
		"sessions": strength.Progression(sets, exercise),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
