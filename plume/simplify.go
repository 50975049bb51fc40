package plume

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplifier reduces a path to a tolerance while preserving its shape.
// Implementations must keep both endpoints exactly and never return fewer
// than 2 points for an input of 2 or more.
type Simplifier interface {
	Simplify(path Path, tolerance float64) Path
}

// DouglasPeucker simplifies paths with orb's Douglas-Peucker implementation.
type DouglasPeucker struct{}

// Simplify implements Simplifier. A tolerance of zero or less returns the
// path unchanged.
func (DouglasPeucker) Simplify(path Path, tolerance float64) Path {
	if tolerance <= 0 || len(path) < 3 {
		return path
	}

	ls := make(orb.LineString, len(path))
	for i, p := range path {
		ls[i] = orb.Point{p.X, p.Y}
	}

	simplified := simplify.DouglasPeucker(tolerance).Simplify(ls)
	result, ok := simplified.(orb.LineString)
	if !ok {
		return path
	}

	out := make(Path, len(result))
	for i, p := range result {
		out[i] = Point{X: p[0], Y: p[1]}
	}
	return out
}

// SimplifyTolerance derives the simplification tolerance from grid
// resolution: factor times the average physical cell size. Scaling to the
// grid keeps behavior resolution-independent.
func SimplifyTolerance(g Grid, factor float64) float64 {
	if factor <= 0 {
		return 0
	}
	return factor * g.MeanResolution()
}
