// Package plates works out which plates to put on each side of a barbell
// to reach a target total.
package plates

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfig is returned for non-finite or non-positive inputs,
	// typically a form that is still being filled in.
	ErrInvalidConfig = errors.New("invalid plate configuration")
	// ErrInfeasible is returned when the target is below bar plus collars.
	ErrInfeasible = errors.New("target is lighter than bar and collars")
)

const (
	countEpsilon = 1e-9
	exactEpsilon = 1e-6

	// MaxPlatesPerSide caps how many of the heaviest plate a side may need,
	// which bounds both breakdown counts and the sequence length.
	MaxPlatesPerSide = 100
)

// Config describes one plate calculation.
type Config struct {
	Target       float64 `json:"target"`
	Bar          float64 `json:"bar"`
	Collars      float64 `json:"collars"` // both collars together
	RoundingStep float64 `json:"rounding_step"`
	Unit         Unit    `json:"unit"`
}

// DefaultConfig returns a config with the unit's default bar and rounding
// step and no collars.
func DefaultConfig(u Unit) Config {
	return Config{
		Bar:          DefaultBar(u),
		RoundingStep: DefaultRoundingStep(u),
		Unit:         u,
	}
}

// WithUnit switches the config to u, resetting bar and rounding step to the
// unit's defaults. Target and collars are kept as entered.
func (c Config) WithUnit(u Unit) Config {
	c.Unit = u
	c.Bar = DefaultBar(u)
	c.RoundingStep = DefaultRoundingStep(u)
	return c
}

// PlateCount is how many of one plate go on each side.
type PlateCount struct {
	Plate Plate `json:"plate"`
	Count int   `json:"count"`
}

// Load is the result of a plate calculation. All weights are in Unit.
type Load struct {
	Unit            Unit         `json:"unit"`
	Feasible        bool         `json:"feasible"`
	RoundedTarget   float64      `json:"rounded_target"`
	PerSide         float64      `json:"per_side"`
	PerSideAchieved float64      `json:"per_side_achieved"`
	TotalAchieved   float64      `json:"total_achieved"`
	Difference      float64      `json:"difference"`
	Residual        float64      `json:"residual"`
	Breakdown       []PlateCount `json:"breakdown"`
	Sequence        []Plate      `json:"sequence"`
}

// Exact reports whether the achieved total matches the rounded target.
func (l Load) Exact() bool {
	return l.Feasible && math.Abs(l.Difference) < exactEpsilon
}

// Shortfall returns how much lighter the achieved total is than the rounded
// target. It is zero for exact loads.
func (l Load) Shortfall() float64 {
	if l.Exact() || l.Difference > 0 {
		return 0
	}
	return -l.Difference
}

// Round rounds x to the nearest multiple of step, halves rounding up.
func Round(x, step float64) float64 {
	return math.Floor(x/step+0.5) * step
}

// Compute rounds cfg.Target to cfg.RoundingStep and fills each side of the
// bar greedily, largest plate first. Difference is TotalAchieved minus
// RoundedTarget: zero when exact, negative when the smallest plates cannot
// cover the remainder.
//
// ErrInfeasible comes with a Load carrying the rounded target and an empty
// breakdown so callers can still render "no plates".
func Compute(cfg Config) (Load, error) {
	if !finite(cfg.Target) || !finite(cfg.RoundingStep) || cfg.RoundingStep <= 0 {
		return Load{}, ErrInvalidConfig
	}
	if !finite(cfg.Bar) || cfg.Bar < 0 || !finite(cfg.Collars) || cfg.Collars < 0 {
		return Load{}, ErrInvalidConfig
	}
	catalog, ok := presets[cfg.Unit]
	if !ok {
		return Load{}, ErrInvalidConfig
	}

	rounded := Round(cfg.Target, cfg.RoundingStep)
	if !finite(rounded) {
		return Load{}, fmt.Errorf("%w: target does not round to a finite weight at step %g", ErrInvalidConfig, cfg.RoundingStep)
	}
	load := Load{
		Unit:          cfg.Unit,
		RoundedTarget: rounded,
		Breakdown:     []PlateCount{},
		Sequence:      []Plate{},
	}

	perSide := (load.RoundedTarget - cfg.Bar - cfg.Collars) / 2
	if perSide < 0 || !finite(perSide) {
		return load, ErrInfeasible
	}
	if heaviest := catalog.plates[0].Weight; perSide/heaviest > MaxPlatesPerSide {
		return Load{}, fmt.Errorf("%w: %g per side needs more than %d plates of %g", ErrInvalidConfig, perSide, MaxPlatesPerSide, heaviest)
	}
	load.Feasible = true
	load.PerSide = perSide

	remaining := perSide
	total := 0
	for _, p := range catalog.plates {
		n := int(math.Floor(remaining/p.Weight + countEpsilon))
		if n <= 0 {
			continue
		}
		total += n
		load.Breakdown = append(load.Breakdown, PlateCount{Plate: p, Count: n})
		remaining -= float64(n) * p.Weight
	}
	load.Sequence = make([]Plate, 0, total)
	for _, pc := range load.Breakdown {
		for range pc.Count {
			load.Sequence = append(load.Sequence, pc.Plate)
		}
	}

	load.Residual = remaining
	load.PerSideAchieved = perSide - remaining
	load.TotalAchieved = 2*load.PerSideAchieved + cfg.Bar + cfg.Collars
	load.Difference = load.TotalAchieved - load.RoundedTarget
	return load, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
