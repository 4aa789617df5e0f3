// Package rpe estimates one-rep maxes from a set's weight, reps and
// rate of perceived exertion using a fixed percentage chart.
package rpe

import "math"

// PercentOf1RM returns the fraction of 1RM that a set of the given reps at
// the given RPE represents. Reps are clamped to [1,12] and RPE to [6,10]
// before lookup; fractional values are interpolated bilinearly between the
// surrounding table cells. ok is false only when either input is NaN.
func PercentOf1RM(reps, rpe float64) (pct float64, ok bool) {
	if math.IsNaN(reps) || math.IsNaN(rpe) {
		return 0, false
	}
	reps = clamp(reps, MinReps, MaxReps)
	rpe = clamp(rpe, MinRPE, MaxRPE)

	r0 := math.Floor(reps)
	r1 := math.Ceil(reps)
	rT := 0.0
	if r1 != r0 {
		rT = reps - r0
	}

	pos := columnPosition(rpe)
	c0 := int(math.Floor(pos))
	c1 := int(math.Ceil(pos))
	cT := pos - float64(c0)

	row0 := percentTable[int(r0)-1]
	row1 := percentTable[int(r1)-1]

	top := lerp(row0[c0], row0[c1], cT)
	bot := lerp(row1[c0], row1[c1], cT)
	return lerp(top, bot, rT), true
}

// Estimate1RM returns weight divided by PercentOf1RM(reps, rpe). ok is false
// when no estimate can be made: non-finite input, weight or reps not
// positive, or a non-positive percentage.
func Estimate1RM(weight, reps, rpe float64) (oneRM float64, ok bool) {
	if !finite(weight) || !finite(reps) || !finite(rpe) {
		return 0, false
	}
	if weight <= 0 || reps <= 0 {
		return 0, false
	}
	pct, ok := PercentOf1RM(reps, rpe)
	if !ok || pct <= 0 {
		return 0, false
	}
	return weight / pct, true
}

// LoadFor returns the working weight for a set of reps at rpe given a 1RM.
// ok is false when oneRM is not a positive finite number.
func LoadFor(oneRM, reps, rpe float64) (weight float64, ok bool) {
	if !finite(oneRM) || oneRM <= 0 || !finite(reps) || !finite(rpe) {
		return 0, false
	}
	pct, ok := PercentOf1RM(reps, rpe)
	if !ok {
		return 0, false
	}
	return oneRM * pct, true
}

// RPEFromRIR converts reps in reserve to RPE (RPE 10 = 0 reps left).
func RPEFromRIR(rir float64) float64 {
	return MaxRPE - rir
}

// columnPosition returns the fractional column index of rpe on the
// descending, unevenly spaced column axis.
func columnPosition(rpe float64) float64 {
	last := len(columns) - 1
	if rpe >= columns[0] {
		return 0
	}
	if rpe <= columns[last] {
		return float64(last)
	}
	for i, c := range columns {
		if rpe == c {
			return float64(i)
		}
	}
	for i := 0; i < last; i++ {
		hi, lo := columns[i], columns[i+1]
		if rpe < hi && rpe > lo {
			return float64(i) + (hi-rpe)/(hi-lo)
		}
	}
	return float64(last)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
