package plume

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderCollection() *FeatureCollection {
	fc := NewFeatureCollection()
	f := NewFeature(PathToLineString(Path{
		{X: 100, Y: 100},
		{X: 300, Y: 100},
		{X: 300, Y: 250},
		{X: 100, Y: 100},
	}), nil)
	f.ID = "P10"
	fc.AddFeature(f)
	return fc
}

func TestRenderSVG(t *testing.T) {
	g := Grid{X0: 0, Y0: 0, DX: 50, DY: 50, NCol: 10, NRow: 10}
	r := NewVectorRenderer(g)

	var buf bytes.Buffer
	require.NoError(t, r.RenderSVG(renderCollection(), &buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"), "output should be an SVG document")
	assert.True(t, strings.Contains(out, "</svg>"), "SVG document should be closed")
}

func TestRenderSVGEmptyCollection(t *testing.T) {
	r := NewVectorRenderer(Grid{X0: 0, Y0: 0, DX: 1, DY: 1, NCol: 2, NRow: 2})

	var buf bytes.Buffer
	err := r.RenderSVG(NewFeatureCollection(), &buf)
	require.Error(t, err)

	err = r.RenderSVG(nil, &buf)
	assert.Error(t, err)
}

func TestVectorRenderPNG(t *testing.T) {
	g := Grid{X0: 0, Y0: 0, DX: 50, DY: 50, NCol: 10, NRow: 10}
	r := NewVectorRenderer(g)
	// World units are meters here; at 300 DPI the default canvas would be
	// enormous, so use a coarse raster resolution for the test.
	r.Resolution = 0.01

	var buf bytes.Buffer
	require.NoError(t, r.RenderPNG(renderCollection(), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
	assert.Greater(t, img.Bounds().Dy(), 0)
}

func TestNewVectorRendererDefaults(t *testing.T) {
	g := Grid{X0: 0, Y0: 0, DX: 100, DY: 50, NCol: 10, NRow: 10}
	r := NewVectorRenderer(g)

	assert.Equal(t, 150.0, r.Padding)
	assert.InDelta(t, 18.75, r.StrokeWidth, 1e-12)
}
