package plume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario: three realizations agree on one 2x2 block. With zero smoothing
// the count field is {0, 3}, so the default level isos 0.3, 1.5 and 2.7 all
// produce the identical mask and one contour each.
func TestPlumePolygonsAgreementBlock(t *testing.T) {
	g := testGrid(4, 4)
	fields := []ScalarField{
		blockField(g, 1, 1, 2, 2, 1.0),
		blockField(g, 1, 1, 2, 2, 1.0),
		blockField(g, 1, 1, 2, 2, 1.0),
	}

	fc, err := PlumePolygons(fields, 0.0, Options{Smoothing: 0, SimplifyFactor: 1.2})
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	ids := make(map[string]int)
	for _, f := range fc.Features {
		ids[f.ID]++

		path := LineStringPath(f.Geometry)
		require.GreaterOrEqual(t, len(path), 3)
		assert.True(t, path.Closed(), "feature %s should be a closed ring", f.ID)
		assert.Equal(t, true, f.Properties["closed"])

		// The contour encloses exactly the 2x2 block at cells 1..2.
		minX, minY, maxX, maxY := pathBounds(path)
		assert.GreaterOrEqual(t, minX, 0.5)
		assert.GreaterOrEqual(t, minY, 0.5)
		assert.LessOrEqual(t, maxX, 2.5)
		assert.LessOrEqual(t, maxY, 2.5)
	}
	assert.Equal(t, map[string]int{"P10": 1, "P50": 1, "P90": 1}, ids)
}

// Scenario: a single realization with the threshold above its maximum value
// produces an empty mask at every level.
func TestPlumePolygonsThresholdAboveMax(t *testing.T) {
	g := testGrid(5, 5)
	f := blockField(g, 1, 1, 3, 3, 2.0)

	fc, err := PlumePolygons([]ScalarField{f}, 10.0, Options{Smoothing: 0, SimplifyFactor: 1.2})
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Empty(t, fc.Features)
}

// Scenario: two realizations with disjoint blocks. At P10 (iso 0.2) both
// one-count regions contour separately; at P90 (iso 1.8) nothing qualifies.
func TestPlumePolygonsDisjointLobes(t *testing.T) {
	g := testGrid(10, 10)
	fields := []ScalarField{
		blockField(g, 1, 1, 2, 2, 1.0),
		blockField(g, 6, 6, 7, 7, 1.0),
	}

	fc, err := PlumePolygons(fields, 0.0, Options{Smoothing: 0, SimplifyFactor: 1.2})
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	for _, f := range fc.Features {
		assert.Equal(t, "P10", f.ID)
	}
}

func TestPlumePolygonsCapabilityUnavailable(t *testing.T) {
	g := testGrid(4, 4)
	fields := []ScalarField{blockField(g, 1, 1, 2, 2, 1.0)}

	fc, err := PlumePolygons(fields, 0.0, Options{Geometry: Unavailable()})
	require.NoError(t, err)
	require.NotNil(t, fc)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)

	// The degraded collection still marshals as well-formed GeoJSON.
	payload, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(payload))
}

func TestPlumePolygonsInputErrors(t *testing.T) {
	_, err := PlumePolygons(nil, 0.0, Options{})
	assert.ErrorIs(t, err, ErrNoRealizations)

	fields := []ScalarField{
		NewScalarField(testGrid(4, 4)),
		NewScalarField(testGrid(5, 4)),
	}
	_, err = PlumePolygons(fields, 0.0, Options{})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	valid := []ScalarField{blockField(testGrid(4, 4), 1, 1, 2, 2, 1.0)}
	_, err = PlumePolygons(valid, 0.0, Options{Levels: []float64{1.5}})
	assert.Error(t, err)
}

// For p1 < p2, the iso-region of p2 is a subset of the iso-region of p1.
func TestLevelMasksNested(t *testing.T) {
	g := testGrid(8, 8)
	fields := []ScalarField{
		blockField(g, 1, 1, 6, 6, 1.0),
		blockField(g, 2, 2, 5, 5, 1.0),
		blockField(g, 3, 3, 4, 4, 1.0),
	}

	count, err := CountPresence(fields, 0.0)
	require.NoError(t, err)
	smoothed := Smooth(count, 0.5)

	n := float64(len(fields))
	low, _ := maskAtLevel(smoothed, 0.1*n)
	mid, _ := maskAtLevel(smoothed, 0.5*n)
	high, _ := maskAtLevel(smoothed, 0.9*n)

	for i := range low {
		if mid[i] {
			assert.True(t, low[i], "cell %d in P50 region but not P10", i)
		}
		if high[i] {
			assert.True(t, mid[i], "cell %d in P90 region but not P50", i)
		}
	}
}

func TestPlumePolygonsWithSmoothing(t *testing.T) {
	g := testGrid(12, 12)
	fields := []ScalarField{blockField(g, 5, 5, 6, 6, 1.0)}

	fc, err := PlumePolygons(fields, 0.0, Options{Smoothing: 1.0, SimplifyFactor: 0.5})
	require.NoError(t, err)
	require.NotEmpty(t, fc.Features)
	for _, f := range fc.Features {
		path := LineStringPath(f.Geometry)
		assert.True(t, path.Closed(), "smoothed central blob should stay closed")
	}
}

func TestPlumePolygonsWorldCoordinates(t *testing.T) {
	g := Grid{X0: 1000, Y0: 2000, DX: 50, DY: 25, NCol: 6, NRow: 6}
	f := NewScalarField(g)
	for c := 2; c <= 3; c++ {
		for r := 2; r <= 3; r++ {
			f.Set(c, r, 1.0)
		}
	}

	fc, err := PlumePolygons([]ScalarField{f}, 0.0, Options{Smoothing: 0, SimplifyFactor: 0})
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	path := LineStringPath(fc.Features[0].Geometry)
	minX, minY, maxX, maxY := pathBounds(path)
	assert.InDelta(t, 1000+1.5*50, minX, 1e-9)
	assert.InDelta(t, 1000+3.5*50, maxX, 1e-9)
	assert.InDelta(t, 2000+1.5*25, minY, 1e-9)
	assert.InDelta(t, 2000+3.5*25, maxY, 1e-9)
}

func TestPlumePolygonsChainTracer(t *testing.T) {
	g := testGrid(8, 8)
	fields := []ScalarField{blockField(g, 2, 2, 5, 5, 1.0)}

	opts := Options{
		Smoothing:      0,
		SimplifyFactor: 0,
		Geometry:       &Capability{Tracer: BoundaryChain{}, Simplifier: DouglasPeucker{}},
	}
	fc, err := PlumePolygons(fields, 0.0, opts)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	path := LineStringPath(fc.Features[0].Geometry)
	assert.True(t, path.Closed())
}
