package plume

import (
	"fmt"
	"sort"
)

// SurfaceSource supplies per-realization gridded surfaces for an ensemble.
// Implementations must return fields sharing one grid. A realization with
// no surface on disk is absent from the result, not a zero field; callers
// use the returned field count as the realization count N.
type SurfaceSource interface {
	Surfaces(ensemble string, attribute MapAttribute, realizations []int) ([]ScalarField, error)
}

// TableProvider supplies per-realization tabular data, used here only for
// the plume-extent-over-time chart. Each record carries the date stamp and
// the named scalar columns of one table row.
type TableProvider interface {
	RealizationRows(realization int, columns []string) ([]TableRow, error)
}

// TableRow is one dated row of per-realization table data.
type TableRow struct {
	Date   string
	Values map[string]float64
}

// ExtentPoint is one sample of the plume-extent time series: the maximum
// plume distance for one realization at one date.
type ExtentPoint struct {
	Date        string  `json:"date"`
	Realization int     `json:"realization"`
	Distance    float64 `json:"distance"`
}

// PlumeExtentSeries assembles the per-realization time series of maximum
// plume distance from a table provider. The column names the distance
// metric (e.g. "MAX_DISTANCE_SGAS"). Realizations are emitted in ascending
// order; within a realization, rows keep provider order.
func PlumeExtentSeries(tp TableProvider, realizations []int, column string) ([]ExtentPoint, error) {
	sorted := make([]int, len(realizations))
	copy(sorted, realizations)
	sort.Ints(sorted)

	var series []ExtentPoint
	for _, real := range sorted {
		rows, err := tp.RealizationRows(real, []string{column})
		if err != nil {
			return nil, fmt.Errorf("reading extent table for realization %d: %w", real, err)
		}
		for _, row := range rows {
			v, ok := row.Values[column]
			if !ok {
				continue
			}
			series = append(series, ExtentPoint{
				Date:        row.Date,
				Realization: real,
				Distance:    v,
			})
		}
	}
	return series, nil
}
