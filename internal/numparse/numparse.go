// Package numparse parses decimal numbers typed by users in either dot or
// comma notation.
package numparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned for blank input, typically a field not yet filled in.
	ErrEmpty = errors.New("empty number")
	// ErrNotFinite is returned for NaN or infinite values such as "NaN" or "Inf".
	ErrNotFinite = errors.New("number is not finite")
)

// ParseDecimal converts "102,5" or "102.5" to 102.5.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return f, nil
}

// ParseOptional is ParseDecimal that returns def for blank input.
func ParseOptional(s string, def float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseDecimal(s)
}
