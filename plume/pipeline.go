package plume

import (
	"fmt"
	"log"
	"math"
)

// Capability bundles the geometry strategies the pipeline needs: a contour
// tracer and a path simplifier. Modeling these as injected strategies lets
// hosts that cannot provide them degrade gracefully instead of failing.
type Capability struct {
	Tracer     ContourTracer
	Simplifier Simplifier
}

// DefaultCapability returns the production strategies: marching-squares
// tracing and Douglas-Peucker simplification.
func DefaultCapability() *Capability {
	return &Capability{
		Tracer:     MarchingSquares{},
		Simplifier: DouglasPeucker{},
	}
}

// Unavailable returns a null capability. Pipelines running with it produce
// empty feature collections rather than errors.
func Unavailable() *Capability {
	return &Capability{}
}

func (c *Capability) available() bool {
	return c != nil && c.Tracer != nil && c.Simplifier != nil
}

// Options configures one plume-extent computation.
type Options struct {
	// Smoothing is the Gaussian sigma in grid-cell units. Zero disables
	// smoothing.
	Smoothing float64

	// SimplifyFactor scales the simplification tolerance relative to the
	// average physical cell size. Zero disables simplification.
	SimplifyFactor float64

	// Levels overrides the probability level set. Nil selects
	// DefaultLevels for the realization count.
	Levels []float64

	// Geometry supplies the tracing and simplification strategies. Nil
	// selects DefaultCapability.
	Geometry *Capability
}

// DefaultOptions returns the standard settings: sigma 10 cells, simplify
// factor 1.2, canonical levels, full geometry capability.
func DefaultOptions() Options {
	return Options{
		Smoothing:      10.0,
		SimplifyFactor: 1.2,
	}
}

// PlumePolygons runs the full pipeline: per-realization presence counting,
// Gaussian smoothing, per-level contour extraction, world-coordinate
// mapping and simplification. The result is a feature collection with one
// LineString feature per (level, contour) pair, each identified by its
// level ("P10", "P50", "P90").
//
// Shape and input errors propagate to the caller. A missing geometry
// capability and degenerate masks are steady-state outcomes and yield a
// valid, possibly empty, collection.
func PlumePolygons(fields []ScalarField, threshold float64, opts Options) (*FeatureCollection, error) {
	count, err := CountPresence(fields, threshold)
	if err != nil {
		return nil, err
	}

	capability := opts.Geometry
	if capability == nil {
		capability = DefaultCapability()
	}
	if !capability.available() {
		log.Printf("[PIPELINE] geometry capability unavailable, returning empty collection")
		return NewFeatureCollection(), nil
	}

	n := len(fields)
	levels := opts.Levels
	if levels == nil {
		levels = DefaultLevels(n)
	}
	for _, level := range levels {
		if !validLevel(level) {
			return nil, fmt.Errorf("probability level %v outside (0, 1)", level)
		}
	}

	smoothed := Smooth(count, opts.Smoothing)
	tolerance := SimplifyTolerance(smoothed.Grid, opts.SimplifyFactor)

	fc := NewFeatureCollection()
	for _, level := range levels {
		iso := level * float64(n)
		for _, contour := range extractLevel(smoothed, iso, tolerance, capability) {
			fc.AddFeature(&Feature{
				Type:     "Feature",
				ID:       LevelID(level),
				Geometry: PathToLineString(contour),
				Properties: map[string]interface{}{
					"level":  level,
					"iso":    iso,
					"closed": contour.Closed(),
				},
			})
		}
	}
	return fc, nil
}

// extractLevel traces the mask field >= iso, maps traced pixel paths to
// world coordinates and simplifies them. Degenerate masks (no boundary)
// produce zero contours.
func extractLevel(field ScalarField, iso, tolerance float64, capability *Capability) []Path {
	mask, degenerate := maskAtLevel(field, iso)
	if degenerate {
		return nil
	}

	pixelPaths := capability.Tracer.Trace(mask, field.Grid.NCol, field.Grid.NRow)

	var contours []Path
	for _, pp := range pixelPaths {
		world := make(Path, len(pp))
		for i, p := range pp {
			world[i] = field.Grid.World(p.X, p.Y)
		}
		simplified := capability.Simplifier.Simplify(world, tolerance)
		if len(simplified) >= 2 {
			contours = append(contours, simplified)
		}
	}
	return contours
}

// maskAtLevel builds the binary mask field >= iso. The convention is
// greater-or-equal: a cell whose value lands exactly on the iso value is
// inside the plume. NaN cells are outside. The second return is true when
// the mask is entirely uniform, in which case no boundary exists.
func maskAtLevel(field ScalarField, iso float64) ([]bool, bool) {
	mask := make([]bool, len(field.Values))
	anyTrue, anyFalse := false, false
	for i, v := range field.Values {
		inside := !math.IsNaN(v) && v >= iso
		mask[i] = inside
		if inside {
			anyTrue = true
		} else {
			anyFalse = true
		}
	}
	return mask, !anyTrue || !anyFalse
}
