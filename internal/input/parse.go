// Package input turns raw user entries into validated run parameters.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/epeers/varstress/internal/models"
)

var (
	ErrInvalidHorizon    = errors.New("invalid horizon")
	ErrUnknownConfidence = errors.New("unknown confidence option")
	ErrInvalidNAV        = errors.New("invalid net asset value")
)

// ParseHorizon resolves a horizon selection. A menu option ("1" for the first
// horizon) takes precedence over a literal day count.
func ParseHorizon(choice string, horizons []int) (int, error) {
	choice = strings.TrimSpace(choice)
	n, err := strconv.Atoi(choice)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidHorizon, choice)
	}
	if n >= 1 && n <= len(horizons) {
		return horizons[n-1], nil
	}
	if err := ValidateHorizon(n, horizons); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateHorizon checks that days is one of the selectable horizons.
func ValidateHorizon(days int, horizons []int) error {
	for _, h := range horizons {
		if h == days {
			return nil
		}
	}
	return fmt.Errorf("%w: %d days is not one of %v", ErrInvalidHorizon, days, horizons)
}

// ParseConfidence resolves a confidence selection by option ("1"), percentage
// ("99", "99%") or fraction ("0.99"). Unrecognized selections are rejected
// unless fallback is set, in which case the first level is returned and
// defaulted is true.
func ParseConfidence(choice string, levels []models.ConfidenceLevel, fallback bool) (cl models.ConfidenceLevel, defaulted bool, err error) {
	choice = strings.TrimSpace(choice)
	for _, l := range levels {
		if l.Option == choice {
			return l, false, nil
		}
	}

	if v, err := strconv.ParseFloat(strings.TrimSuffix(choice, "%"), 64); err == nil {
		if v > 1 {
			v /= 100
		}
		for _, l := range levels {
			if math.Abs(l.Level-v) < 1e-9 {
				return l, false, nil
			}
		}
	}

	if fallback && len(levels) > 0 {
		return levels[0], true, nil
	}
	return models.ConfidenceLevel{}, false, fmt.Errorf("%w: %q", ErrUnknownConfidence, choice)
}

// ParseNAV parses a net asset value, accepting an optional "R$" prefix.
func ParseNAV(raw string) (float64, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidNAV, raw)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: must be positive, got %q", ErrInvalidNAV, raw)
	}
	return v, nil
}

// ParseWeight parses a percent-of-NAV entry. ok is false for anything that
// should be dropped: blanks, non-numbers and non-positive values.
func ParseWeight(raw string) (v float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
