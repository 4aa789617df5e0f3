package plates

import (
	"fmt"
	"strings"
)

// Unit is the weight unit system of a bar, its plates and the target.
type Unit string

const (
	KG Unit = "kg"
	LB Unit = "lb"
)

// ParseUnit maps a user-supplied unit name to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs", "kilo", "kilos", "kilogram", "kilograms":
		return KG, nil
	case "lb", "lbs", "pound", "pounds":
		return LB, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u == KG || u == LB
}

// Plate is a single plate size in a catalog.
type Plate struct {
	Weight float64 `json:"weight"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
}

// kgPlates follows the competition color code for bumper and change plates.
var kgPlates = []Plate{
	{25, "25", "red"},
	{20, "20", "blue"},
	{15, "15", "yellow"},
	{10, "10", "green"},
	{5, "5", "white"},
	{2.5, "2.5", "red"},
	{1.25, "1.25", "silver"},
	{1, "1", "green"},
	{0.5, "0.5", "white"},
	{0.25, "0.25", "silver"},
}

var lbPlates = []Plate{
	{45, "45", "blue"},
	{35, "35", "yellow"},
	{25, "25", "green"},
	{10, "10", "white"},
	{5, "5", "red"},
	{2.5, "2.5", "black"},
	{1.25, "1.25", "silver"},
}

type preset struct {
	plates []Plate
	bars   []float64
	step   float64
}

var presets = map[Unit]preset{
	KG: {plates: kgPlates, bars: []float64{20, 15, 10}, step: 0.5},
	LB: {plates: lbPlates, bars: []float64{45, 35, 22}, step: 1},
}

// Catalog returns the plates available for u, heaviest first.
func Catalog(u Unit) []Plate {
	p, ok := presets[u]
	if !ok {
		return nil
	}
	out := make([]Plate, len(p.plates))
	copy(out, p.plates)
	return out
}

// BarPresets returns the bar weights offered for u. The first is the default.
func BarPresets(u Unit) []float64 {
	p, ok := presets[u]
	if !ok {
		return nil
	}
	out := make([]float64, len(p.bars))
	copy(out, p.bars)
	return out
}

// DefaultBar returns the standard men's bar for u: 20 kg or 45 lb.
func DefaultBar(u Unit) float64 {
	if p, ok := presets[u]; ok {
		return p.bars[0]
	}
	return 0
}

// DefaultRoundingStep returns the target rounding granularity for u.
func DefaultRoundingStep(u Unit) float64 {
	if p, ok := presets[u]; ok {
		return p.step
	}
	return 0
}

// IsBarPreset reports whether bar is one of the presets for u.
func IsBarPreset(u Unit, bar float64) bool {
	for _, b := range presets[u].bars {
		if b == bar {
			return true
		}
	}
	return false
}
