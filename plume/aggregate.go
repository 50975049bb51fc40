package plume

import (
	"fmt"
	"math"
)

// CountPresence aggregates per-realization surfaces into a presence-count
// field on the shared grid. A cell counts as present in a realization when
// its value is strictly greater than threshold. Missing cells (NaN) never
// count as present.
//
// All input fields must share one grid shape; a mismatch fails with
// ErrShapeMismatch rather than truncating or broadcasting. The result has
// integer values in [0, len(fields)].
func CountPresence(fields []ScalarField, threshold float64) (ScalarField, error) {
	if len(fields) == 0 {
		return ScalarField{}, ErrNoRealizations
	}

	ref := fields[0]
	if err := ref.Grid.Validate(); err != nil {
		return ScalarField{}, err
	}

	for i, f := range fields {
		if !ref.SameShape(f) {
			return ScalarField{}, fmt.Errorf("%w: surface %d is %dx%d, expected %dx%d",
				ErrShapeMismatch, i, f.Grid.NCol, f.Grid.NRow, ref.Grid.NCol, ref.Grid.NRow)
		}
		if len(f.Values) != f.Grid.NCol*f.Grid.NRow {
			return ScalarField{}, fmt.Errorf("%w: surface %d has %d values for a %dx%d grid",
				ErrShapeMismatch, i, len(f.Values), f.Grid.NCol, f.Grid.NRow)
		}
	}

	count := NewScalarField(ref.Grid)
	for _, f := range fields {
		for i, v := range f.Values {
			if !math.IsNaN(v) && v > threshold {
				count.Values[i]++
			}
		}
	}

	return count, nil
}
