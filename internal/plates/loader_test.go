package plates

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func weights(pcs []PlateCount) map[float64]int {
	m := make(map[float64]int, len(pcs))
	for _, pc := range pcs {
		m[pc.Plate.Weight] = pc.Count
	}
	return m
}

// TestComputeExactLoads covers common gym totals that the catalogs can build
// exactly, checking the greedy per-side breakdown.
func TestComputeExactLoads(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantPerSide float64
		want        map[float64]int
	}{
		{
			name:        "140 kg on 20 kg bar",
			cfg:         Config{Target: 140, Bar: 20, RoundingStep: 0.5, Unit: KG},
			wantPerSide: 60,
			want:        map[float64]int{25: 2, 10: 1},
		},
		{
			name:        "100 kg on 20 kg bar",
			cfg:         Config{Target: 100, Bar: 20, RoundingStep: 0.5, Unit: KG},
			wantPerSide: 40,
			want:        map[float64]int{25: 1, 15: 1},
		},
		{
			name:        "collars counted once",
			cfg:         Config{Target: 150, Bar: 20, Collars: 5, RoundingStep: 0.5, Unit: KG},
			wantPerSide: 62.5,
			want:        map[float64]int{25: 2, 10: 1, 2.5: 1},
		},
		{
			name:        "fractional kg plates",
			cfg:         Config{Target: 63.5, Bar: 15, RoundingStep: 0.5, Unit: KG},
			wantPerSide: 24.25,
			want:        map[float64]int{20: 1, 2.5: 1, 1.25: 1, 0.5: 1},
		},
		{
			name:        "315 lb",
			cfg:         Config{Target: 315, Bar: 45, RoundingStep: 1, Unit: LB},
			wantPerSide: 135,
			want:        map[float64]int{45: 3},
		},
		{
			name:        "230 lb",
			cfg:         Config{Target: 230, Bar: 45, RoundingStep: 1, Unit: LB},
			wantPerSide: 92.5,
			want:        map[float64]int{45: 2, 2.5: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load, err := Compute(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !load.Feasible {
				t.Fatal("Feasible = false, want true")
			}
			if load.PerSideAchieved != tt.wantPerSide {
				t.Errorf("PerSideAchieved = %v, want %v", load.PerSideAchieved, tt.wantPerSide)
			}
			if got := weights(load.Breakdown); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("breakdown = %v, want %v", got, tt.want)
			}
			if !load.Exact() {
				t.Errorf("Exact() = false, difference %v", load.Difference)
			}
			if load.Shortfall() != 0 {
				t.Errorf("Shortfall() = %v, want 0", load.Shortfall())
			}
		})
	}
}

// TestComputeSequence verifies the flat plate strip lists each plate once per
// count, heaviest first.
func TestComputeSequence(t *testing.T) {
	load, err := Compute(Config{Target: 140, Bar: 20, RoundingStep: 0.5, Unit: KG})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []float64
	for _, p := range load.Sequence {
		got = append(got, p.Weight)
	}
	want := []float64{25, 25, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
	if load.Sequence[0].Color != "red" {
		t.Errorf("sequence[0].Color = %q, want red", load.Sequence[0].Color)
	}
}

// TestComputeBreakdownOrder verifies breakdown entries run heaviest to lightest.
func TestComputeBreakdownOrder(t *testing.T) {
	load, err := Compute(Config{Target: 197.5, Bar: 20, RoundingStep: 0.5, Unit: KG})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(load.Breakdown); i++ {
		if load.Breakdown[i].Plate.Weight >= load.Breakdown[i-1].Plate.Weight {
			t.Errorf("breakdown[%d] = %v not lighter than breakdown[%d] = %v",
				i, load.Breakdown[i].Plate.Weight, i-1, load.Breakdown[i-1].Plate.Weight)
		}
	}
}

// TestComputeResidual verifies that a remainder the smallest plate cannot
// cover is reported as a negative difference, not an error.
func TestComputeResidual(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		wantTotal     float64
		wantDiff      float64
		wantRemaining float64
	}{
		{
			name:          "kg finer than 0.25 plate",
			cfg:           Config{Target: 100.3, Bar: 20, RoundingStep: 0.1, Unit: KG},
			wantTotal:     100,
			wantDiff:      -0.3,
			wantRemaining: 0.15,
		},
		{
			name:          "lb odd pound",
			cfg:           Config{Target: 231, Bar: 45, RoundingStep: 1, Unit: LB},
			wantTotal:     230,
			wantDiff:      -1,
			wantRemaining: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load, err := Compute(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(load.TotalAchieved-tt.wantTotal) > 1e-9 {
				t.Errorf("TotalAchieved = %v, want %v", load.TotalAchieved, tt.wantTotal)
			}
			if math.Abs(load.Difference-tt.wantDiff) > 1e-9 {
				t.Errorf("Difference = %v, want %v", load.Difference, tt.wantDiff)
			}
			if math.Abs(load.Residual-tt.wantRemaining) > 1e-9 {
				t.Errorf("Residual = %v, want %v", load.Residual, tt.wantRemaining)
			}
			if load.Exact() {
				t.Error("Exact() = true, want false")
			}
			if math.Abs(load.Shortfall()+tt.wantDiff) > 1e-9 {
				t.Errorf("Shortfall() = %v, want %v", load.Shortfall(), -tt.wantDiff)
			}
		})
	}
}

// TestComputeBarOnly verifies that a target equal to bar plus collars needs
// no plates and is still an exact, valid load.
func TestComputeBarOnly(t *testing.T) {
	load, err := Compute(Config{Target: 25, Bar: 20, Collars: 5, RoundingStep: 0.5, Unit: KG})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(load.Breakdown) != 0 || len(load.Sequence) != 0 {
		t.Errorf("breakdown = %v, want empty", load.Breakdown)
	}
	if load.PerSideAchieved != 0 {
		t.Errorf("PerSideAchieved = %v, want 0", load.PerSideAchieved)
	}
	if !load.Exact() {
		t.Errorf("Exact() = false, difference %v", load.Difference)
	}
}

// TestComputeInfeasible verifies a target lighter than the bar is reported as
// infeasible with an empty breakdown.
func TestComputeInfeasible(t *testing.T) {
	load, err := Compute(Config{Target: 15, Bar: 20, RoundingStep: 0.5, Unit: KG})
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
	if load.Feasible {
		t.Error("Feasible = true, want false")
	}
	if len(load.Breakdown) != 0 {
		t.Errorf("breakdown = %v, want empty", load.Breakdown)
	}
	if load.RoundedTarget != 15 {
		t.Errorf("RoundedTarget = %v, want 15", load.RoundedTarget)
	}
	if load.Exact() {
		t.Error("Exact() = true for infeasible load")
	}
}

// TestComputeInvalid verifies that incomplete or nonsensical input is
// rejected with ErrInvalidConfig.
func TestComputeInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"nan target", Config{Target: math.NaN(), Bar: 20, RoundingStep: 0.5, Unit: KG}},
		{"inf target", Config{Target: math.Inf(1), Bar: 20, RoundingStep: 0.5, Unit: KG}},
		{"zero step", Config{Target: 100, Bar: 20, RoundingStep: 0, Unit: KG}},
		{"negative step", Config{Target: 100, Bar: 20, RoundingStep: -0.5, Unit: KG}},
		{"nan step", Config{Target: 100, Bar: 20, RoundingStep: math.NaN(), Unit: KG}},
		{"negative bar", Config{Target: 100, Bar: -20, RoundingStep: 0.5, Unit: KG}},
		{"negative collars", Config{Target: 100, Bar: 20, Collars: -1, RoundingStep: 0.5, Unit: KG}},
		{"unknown unit", Config{Target: 100, Bar: 20, RoundingStep: 0.5, Unit: "st"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compute(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestComputeLargeTargets verifies targets beyond what a bar can hold are
// rejected before any plate counting, however large the value.
func TestComputeLargeTargets(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"1e7 kg", Config{Target: 1e7, Bar: 20, RoundingStep: 0.5, Unit: KG}},
		{"1e30 kg", Config{Target: 1e30, Bar: 20, RoundingStep: 0.5, Unit: KG}},
		{"max float kg", Config{Target: math.MaxFloat64, Bar: 20, RoundingStep: 0.5, Unit: KG}},
		{"max float step 1", Config{Target: math.MaxFloat64, Bar: 20, RoundingStep: 1, Unit: KG}},
		{"1e9 lb", Config{Target: 1e9, Bar: 45, RoundingStep: 1, Unit: LB}},
		{"subnormal step", Config{Target: 100, Bar: 20, RoundingStep: 1e-320, Unit: KG}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load, err := Compute(tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if load.Feasible || len(load.Sequence) != 0 {
				t.Errorf("load = %+v, want empty", load)
			}
		})
	}
}

// TestComputePlateCap verifies the heaviest plate count limit is inclusive
// and the sequence matches the breakdown at the limit.
func TestComputePlateCap(t *testing.T) {
	top := kgPlates[0].Weight
	atCap := Config{Target: 20 + 2*top*MaxPlatesPerSide, Bar: 20, RoundingStep: 0.5, Unit: KG}
	load, err := Compute(atCap)
	if err != nil {
		t.Fatalf("at cap: unexpected error: %v", err)
	}
	if !load.Exact() || len(load.Sequence) != MaxPlatesPerSide {
		t.Errorf("at cap: exact = %v, sequence = %d, want exact %d", load.Exact(), len(load.Sequence), MaxPlatesPerSide)
	}

	over := atCap
	over.Target += 2 * top
	if _, err := Compute(over); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("over cap: err = %v, want ErrInvalidConfig", err)
	}
}

// TestComputeRoundsTarget verifies the target is snapped to the rounding
// step with halves rounding up.
func TestComputeRoundsTarget(t *testing.T) {
	tests := []struct {
		target, step, want float64
	}{
		{141.3, 0.5, 141.5},
		{141.2, 0.5, 141},
		{141.25, 0.5, 141.5},
		{101, 2.5, 100},
		{101.25, 2.5, 102.5},
		{137.4, 1, 137},
	}
	for _, tt := range tests {
		load, err := Compute(Config{Target: tt.target, Bar: 20, RoundingStep: tt.step, Unit: KG})
		if err != nil {
			t.Fatalf("Compute(target=%v, step=%v): %v", tt.target, tt.step, err)
		}
		if math.Abs(load.RoundedTarget-tt.want) > 1e-9 {
			t.Errorf("RoundedTarget(%v, %v) = %v, want %v", tt.target, tt.step, load.RoundedTarget, tt.want)
		}
	}
}

// TestComputeDeterministic verifies repeated calls give identical results.
func TestComputeDeterministic(t *testing.T) {
	cfg := Config{Target: 187.5, Bar: 15, Collars: 2.5, RoundingStep: 0.5, Unit: KG}
	first, err := Compute(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 20; i++ {
		got, _ := Compute(cfg)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("call %d = %+v, want %+v", i, got, first)
		}
	}
}

// TestComputeAchievedIdentity checks total = bar + collars + 2*per side and
// that the greedy pass never overshoots, across a sweep of targets.
func TestComputeAchievedIdentity(t *testing.T) {
	for target := 20.0; target <= 300; target += 0.75 {
		cfg := Config{Target: target, Bar: 20, Collars: 2.5, RoundingStep: 0.5, Unit: KG}
		load, err := Compute(cfg)
		if errors.Is(err, ErrInfeasible) {
			continue
		}
		if err != nil {
			t.Fatalf("Compute(%v): %v", target, err)
		}
		want := cfg.Bar + cfg.Collars + 2*load.PerSideAchieved
		if math.Abs(load.TotalAchieved-want) > 1e-9 {
			t.Errorf("target %v: TotalAchieved = %v, want %v", target, load.TotalAchieved, want)
		}
		if load.Difference > exactEpsilon {
			t.Errorf("target %v: Difference = %v overshoots", target, load.Difference)
		}
		for _, pc := range load.Breakdown {
			if pc.Count <= 0 {
				t.Errorf("target %v: count %d for plate %v", target, pc.Count, pc.Plate.Weight)
			}
		}
	}
}

// TestWithUnitResetsDefaults verifies switching unit resets bar and step to
// the new unit's defaults while keeping the entered target.
func TestWithUnitResetsDefaults(t *testing.T) {
	cfg := Config{Target: 100, Bar: 15, Collars: 5, RoundingStep: 2.5, Unit: KG}

	lb := cfg.WithUnit(LB)
	if lb.Bar != 45 || lb.RoundingStep != 1 || lb.Unit != LB {
		t.Errorf("WithUnit(LB) = %+v, want bar 45, step 1", lb)
	}
	if lb.Target != 100 || lb.Collars != 5 {
		t.Errorf("WithUnit(LB) changed target/collars: %+v", lb)
	}

	kg := lb.WithUnit(KG)
	if kg.Bar != 20 || kg.RoundingStep != 0.5 {
		t.Errorf("WithUnit(KG) = %+v, want bar 20, step 0.5", kg)
	}

	if d := DefaultConfig(LB); d.Bar != 45 || d.RoundingStep != 1 {
		t.Errorf("DefaultConfig(LB) = %+v", d)
	}
}
