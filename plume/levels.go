package plume

import (
	"fmt"
	"math"
)

// DefaultLevels returns the canonical probability levels for an ensemble of
// n realizations: P10 always, P50 when more than two realizations exist,
// P90 when more than one does. With a single realization only P10 remains,
// since higher agreement fractions are meaningless.
func DefaultLevels(n int) []float64 {
	levels := []float64{0.1}
	if n > 2 {
		levels = append(levels, 0.5)
	}
	if n > 1 {
		levels = append(levels, 0.9)
	}
	return levels
}

// LevelID formats a probability level as a feature identifier: 0.1 -> "P10",
// 0.5 -> "P50". The percentage is rounded to one decimal before formatting
// so float artifacts like "P10.000000000000002" cannot appear, and a
// trailing ".0" is dropped for integral percentages.
func LevelID(level float64) string {
	pct := math.Round(level*1000) / 10
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("P%d", int(pct))
	}
	return fmt.Sprintf("P%.1f", pct)
}

// validLevel reports whether a level is a usable fraction.
func validLevel(level float64) bool {
	return level > 0 && level < 1
}
