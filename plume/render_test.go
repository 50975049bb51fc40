package plume

import (
	"bytes"
	"image/png"
	"math"
	"testing"
)

func TestRasterRenderPNGDimensions(t *testing.T) {
	g := Grid{X0: 0, Y0: 0, DX: 1, DY: 1, NCol: 6, NRow: 4}
	field := NewScalarField(g)
	field.Set(2, 2, 3.0)
	field.Set(3, 2, math.NaN())

	fc := NewFeatureCollection()
	f := NewFeature(PathToLineString(Path{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 3}, {X: 1, Y: 1}}), nil)
	f.ID = "P10"
	fc.AddFeature(f)

	r := NewRasterRenderer()
	var buf bytes.Buffer
	if err := r.RenderPNG(field, fc, &buf); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 6*r.Scale || bounds.Dy() != 4*r.Scale {
		t.Errorf("image size %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), 6*r.Scale, 4*r.Scale)
	}
}

func TestRasterRenderPNGNilCollection(t *testing.T) {
	field := NewScalarField(testGrid(3, 3))

	var buf bytes.Buffer
	if err := NewRasterRenderer().RenderPNG(field, nil, &buf); err != nil {
		t.Fatalf("nil collection should render heatmap only: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("decoding output: %v", err)
	}
}

func TestRasterRenderPNGInvalidGrid(t *testing.T) {
	field := ScalarField{Grid: Grid{NCol: 0, NRow: 3, DX: 1, DY: 1}}

	var buf bytes.Buffer
	err := NewRasterRenderer().RenderPNG(field, nil, &buf)
	if err == nil {
		t.Fatal("expected error for invalid grid")
	}
}

func TestRasterRenderPNGScaleFloor(t *testing.T) {
	field := NewScalarField(testGrid(3, 3))
	r := &RasterRenderer{Scale: 0}

	var buf bytes.Buffer
	if err := r.RenderPNG(field, nil, &buf); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 3 {
		t.Errorf("scale 0 should clamp to 1 pixel per cell, got %v", img.Bounds())
	}
}

func TestHeatColor(t *testing.T) {
	if c := heatColor(math.NaN(), 5); c.R != 0xcc || c.G != 0xcc || c.B != 0xcc {
		t.Errorf("NaN should render grey, got %v", c)
	}
	if c := heatColor(0, 5); c.R != 0xff || c.G != 0xff || c.B != 0xff {
		t.Errorf("zero should render white, got %v", c)
	}
	if c := heatColor(3, 0); c.R != 0xff || c.G != 0xff {
		t.Errorf("zero max should render white, got %v", c)
	}
	full := heatColor(5, 5)
	if full.R >= 0xff || full.B != 0xff {
		t.Errorf("max value should be saturated blue, got %v", full)
	}
}
