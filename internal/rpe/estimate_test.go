package rpe

import (
	"math"
	"testing"
)

const tol = 1e-9

// TestPercentOf1RMGridPoints verifies that integer reps and on-column RPE
// values return the tabulated percentage without interpolation error.
func TestPercentOf1RMGridPoints(t *testing.T) {
	for i, row := range percentTable {
		reps := float64(i + 1)
		for j, rpe := range columns {
			got, ok := PercentOf1RM(reps, rpe)
			if !ok {
				t.Fatalf("PercentOf1RM(%v, %v): ok = false", reps, rpe)
			}
			if got != row[j] {
				t.Errorf("PercentOf1RM(%v, %v) = %v, want %v", reps, rpe, got, row[j])
			}
		}
	}
}

// TestPercentOf1RMKnownValues pins a few chart values used in coaching.
func TestPercentOf1RMKnownValues(t *testing.T) {
	cases := []struct {
		reps, rpe float64
		want      float64
	}{
		{1, 10, 1.000},
		{5, 8, 0.811},
		{3, 9, 0.892},
		{12, 6, 0.573},
		{8, 7.5, 0.723},
	}
	for _, tc := range cases {
		got, _ := PercentOf1RM(tc.reps, tc.rpe)
		if math.Abs(got-tc.want) > tol {
			t.Errorf("PercentOf1RM(%v, %v) = %v, want %v", tc.reps, tc.rpe, got, tc.want)
		}
	}
}

// TestPercentOf1RMInterpolation verifies bilinear interpolation between
// neighbouring reps and RPE columns.
func TestPercentOf1RMInterpolation(t *testing.T) {
	cases := []struct {
		name      string
		reps, rpe float64
		want      float64
	}{
		{"between rpe columns", 5, 8.25, (0.824 + 0.811) / 2},
		{"between rep rows", 5.5, 8, (0.811 + 0.786) / 2},
		{"quarter rpe step", 1, 9.875, 1.000 + (0.978-1.000)*0.25},
		// Midway between rows 2 and 3, each midway between RPE 10 and 9.5.
		{"both axes", 2.5, 9.75, ((0.955+0.939)/2 + (0.922+0.907)/2) / 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PercentOf1RM(tc.reps, tc.rpe)
			if !ok {
				t.Fatal("ok = false")
			}
			if math.Abs(got-tc.want) > tol {
				t.Errorf("PercentOf1RM(%v, %v) = %v, want %v", tc.reps, tc.rpe, got, tc.want)
			}
		})
	}
}

// TestPercentOf1RMMonotonic verifies that more reps never raise the
// percentage and higher RPE never lowers it across the whole domain.
func TestPercentOf1RMMonotonic(t *testing.T) {
	for reps := 1.0; reps <= 12; reps += 0.25 {
		prev := math.Inf(-1)
		for rpe := 6.0; rpe <= 10; rpe += 0.125 {
			got, _ := PercentOf1RM(reps, rpe)
			if got < prev-tol {
				t.Fatalf("PercentOf1RM(%v, %v) = %v decreased from %v", reps, rpe, got, prev)
			}
			prev = got
		}
	}
	for rpe := 6.0; rpe <= 10; rpe += 0.125 {
		prev := math.Inf(1)
		for reps := 1.0; reps <= 12; reps += 0.25 {
			got, _ := PercentOf1RM(reps, rpe)
			if got > prev+tol {
				t.Fatalf("PercentOf1RM(%v, %v) = %v increased from %v", reps, rpe, got, prev)
			}
			prev = got
		}
	}
}

// TestPercentOf1RMClamping verifies that out-of-range inputs behave as their
// nearest in-range value instead of being rejected.
func TestPercentOf1RMClamping(t *testing.T) {
	cases := []struct {
		reps, rpe           float64
		clampReps, clampRPE float64
	}{
		{0, 8, 1, 8},
		{-3, 11, 1, 10},
		{20, 5, 12, 6},
		{15, 9.5, 12, 9.5},
		{4, 4, 4, 6},
		{math.Inf(1), math.Inf(-1), 12, 6},
	}
	for _, tc := range cases {
		got, ok := PercentOf1RM(tc.reps, tc.rpe)
		want, _ := PercentOf1RM(tc.clampReps, tc.clampRPE)
		if !ok {
			t.Errorf("PercentOf1RM(%v, %v): ok = false", tc.reps, tc.rpe)
		}
		if got != want {
			t.Errorf("PercentOf1RM(%v, %v) = %v, want %v (clamped)", tc.reps, tc.rpe, got, want)
		}
	}
}

// TestPercentOf1RMNaN verifies NaN input yields the undefined result.
func TestPercentOf1RMNaN(t *testing.T) {
	if _, ok := PercentOf1RM(math.NaN(), 8); ok {
		t.Error("PercentOf1RM(NaN, 8): ok = true, want false")
	}
	if _, ok := PercentOf1RM(5, math.NaN()); ok {
		t.Error("PercentOf1RM(5, NaN): ok = true, want false")
	}
}

// TestEstimate1RM verifies the estimate equals weight divided by the
// chart percentage.
func TestEstimate1RM(t *testing.T) {
	cases := []struct {
		weight, reps, rpe float64
	}{
		{100, 5, 8},
		{140, 1, 10},
		{82.5, 8, 7.5},
		{60, 3.5, 9.25},
	}
	for _, tc := range cases {
		got, ok := Estimate1RM(tc.weight, tc.reps, tc.rpe)
		if !ok {
			t.Fatalf("Estimate1RM(%v, %v, %v): ok = false", tc.weight, tc.reps, tc.rpe)
		}
		pct, _ := PercentOf1RM(tc.reps, tc.rpe)
		if want := tc.weight / pct; math.Abs(got-want) > tol {
			t.Errorf("Estimate1RM(%v, %v, %v) = %v, want %v", tc.weight, tc.reps, tc.rpe, got, want)
		}
	}

	got, _ := Estimate1RM(100, 5, 8)
	if math.Abs(got-123.304562) > 1e-5 {
		t.Errorf("Estimate1RM(100, 5, 8) = %v, want ~123.3046", got)
	}
}

// TestEstimate1RMUndefined verifies every invalid input produces ok=false
// rather than a misleading number.
func TestEstimate1RMUndefined(t *testing.T) {
	cases := []struct {
		name              string
		weight, reps, rpe float64
	}{
		{"zero weight", 0, 5, 8},
		{"negative weight", -50, 5, 8},
		{"zero reps", 100, 0, 8},
		{"negative reps", 100, -2, 8},
		{"nan weight", math.NaN(), 5, 8},
		{"inf weight", math.Inf(1), 5, 8},
		{"nan reps", 100, math.NaN(), 8},
		{"nan rpe", 100, 5, math.NaN()},
		{"inf rpe", 100, 5, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, ok := Estimate1RM(tc.weight, tc.reps, tc.rpe); ok {
				t.Errorf("Estimate1RM(%v, %v, %v) = %v, want undefined", tc.weight, tc.reps, tc.rpe, got)
			}
		})
	}
}

// TestLoadForInvertsEstimate verifies that a prescription from an estimate
// returns the original working weight.
func TestLoadForInvertsEstimate(t *testing.T) {
	oneRM, _ := Estimate1RM(120, 6, 8.5)
	got, ok := LoadFor(oneRM, 6, 8.5)
	if !ok {
		t.Fatal("LoadFor: ok = false")
	}
	if math.Abs(got-120) > 1e-9 {
		t.Errorf("LoadFor(%v, 6, 8.5) = %v, want 120", oneRM, got)
	}
	if _, ok := LoadFor(0, 5, 8); ok {
		t.Error("LoadFor(0, 5, 8): ok = true, want false")
	}
}

// TestRPEFromRIR verifies the reps-in-reserve conversion.
func TestRPEFromRIR(t *testing.T) {
	cases := map[float64]float64{0: 10, 1: 9, 2.5: 7.5, 4: 6}
	for rir, want := range cases {
		if got := RPEFromRIR(rir); got != want {
			t.Errorf("RPEFromRIR(%v) = %v, want %v", rir, got, want)
		}
	}
}

// TestTableIsCopy verifies callers cannot mutate the reference data.
func TestTableIsCopy(t *testing.T) {
	rows := Table()
	if len(rows) != MaxReps {
		t.Fatalf("rows = %d, want %d", len(rows), MaxReps)
	}
	rows[0].Percents[0] = 0.5
	if percentTable[0][0] != 1.0 {
		t.Error("Table() exposed the underlying table")
	}
	cols := Columns()
	cols[0] = 0
	if columns[0] != 10 {
		t.Error("Columns() exposed the underlying columns")
	}
}
