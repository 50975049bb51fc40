package plume

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// MaxPlumeDistance computes the maximum distance from a reference point
// (typically the injection location) to any present cell of a surface. A
// cell is present when its value is strictly greater than threshold;
// missing cells never contribute. Returns 0 when no cell is present.
//
// This is the per-realization scalar the extent-over-time chart consumes.
func MaxPlumeDistance(field ScalarField, threshold float64, origin Point) float64 {
	ref := orb.Point{origin.X, origin.Y}

	var maxDist float64
	for col := 0; col < field.Grid.NCol; col++ {
		for row := 0; row < field.Grid.NRow; row++ {
			v := field.At(col, row)
			if math.IsNaN(v) || v <= threshold {
				continue
			}
			w := field.Grid.World(float64(col), float64(row))
			d := planar.Distance(ref, orb.Point{w.X, w.Y})
			if d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

// ContourBound returns the bounding box of all features in a collection in
// world coordinates. The second return is false for an empty collection.
func ContourBound(fc *FeatureCollection) (orb.Bound, bool) {
	if fc == nil || len(fc.Features) == 0 {
		return orb.Bound{}, false
	}

	bound := orb.Bound{
		Min: orb.Point{math.MaxFloat64, math.MaxFloat64},
		Max: orb.Point{-math.MaxFloat64, -math.MaxFloat64},
	}
	any := false
	for _, f := range fc.Features {
		path := LineStringPath(f.Geometry)
		for _, p := range path {
			bound = bound.Extend(orb.Point{p.X, p.Y})
			any = true
		}
	}
	if !any {
		return orb.Bound{}, false
	}
	return bound, true
}
