package plume

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch is returned when input surfaces do not share one grid shape.
var ErrShapeMismatch = errors.New("surface shape mismatch")

// ErrNoRealizations is returned when a pipeline is invoked with zero input
// surfaces. Probability levels are undefined for an empty ensemble.
var ErrNoRealizations = errors.New("no realizations supplied")

// ErrInvalidGrid is returned for grids that cannot host a contour.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid describes a regular 2-D sampling: origin, cell increments and cell
// counts. Columns run along the x axis, rows along the y axis, matching the
// column-major convention of the surface exports this package consumes.
type Grid struct {
	X0   float64 `json:"x0" yaml:"x0"`
	Y0   float64 `json:"y0" yaml:"y0"`
	DX   float64 `json:"dx" yaml:"dx"`
	DY   float64 `json:"dy" yaml:"dy"`
	NCol int     `json:"ncol" yaml:"ncol"`
	NRow int     `json:"nrow" yaml:"nrow"`
}

// Validate checks the grid invariants. A contour needs at least a 2x2
// neighborhood, and zero or negative increments make world mapping ambiguous.
func (g Grid) Validate() error {
	if g.DX <= 0 || g.DY <= 0 {
		return fmt.Errorf("%w: increments must be positive, got dx=%v dy=%v", ErrInvalidGrid, g.DX, g.DY)
	}
	if g.NCol < 2 || g.NRow < 2 {
		return fmt.Errorf("%w: need at least 2x2 cells, got %dx%d", ErrInvalidGrid, g.NCol, g.NRow)
	}
	return nil
}

// World maps fractional pixel indices (col, row) to world coordinates.
func (g Grid) World(col, row float64) Point {
	return Point{
		X: g.X0 + col*g.DX,
		Y: g.Y0 + row*g.DY,
	}
}

// MeanResolution is the average physical cell size, used to derive
// resolution-independent simplification tolerances.
func (g Grid) MeanResolution() float64 {
	return (math.Abs(g.DX) + math.Abs(g.DY)) / 2
}

// ScalarField is a 2-D array of values aligned to a Grid. Values are stored
// column-major: index = col*NRow + row. NaN marks missing cells.
type ScalarField struct {
	Grid   Grid
	Values []float64
}

// NewScalarField allocates a zero-valued field on the given grid.
func NewScalarField(g Grid) ScalarField {
	return ScalarField{
		Grid:   g,
		Values: make([]float64, g.NCol*g.NRow),
	}
}

// At returns the value at (col, row). No bounds checking; callers iterate
// within the grid dimensions.
func (f ScalarField) At(col, row int) float64 {
	return f.Values[col*f.Grid.NRow+row]
}

// Set stores a value at (col, row).
func (f *ScalarField) Set(col, row int, v float64) {
	f.Values[col*f.Grid.NRow+row] = v
}

// SameShape reports whether two fields share grid dimensions.
func (f ScalarField) SameShape(other ScalarField) bool {
	return f.Grid.NCol == other.Grid.NCol && f.Grid.NRow == other.Grid.NRow
}

// Point represents a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path represents a sequential list of points. A path whose first and last
// points are exactly equal is a closed ring.
type Path []Point

// Closed reports whether the path forms a closed ring.
func (p Path) Closed() bool {
	if len(p) < 3 {
		return false
	}
	return p[0] == p[len(p)-1]
}
