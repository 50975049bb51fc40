package plume

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RasterRenderer draws a smoothed count field as a PNG heatmap with the
// extracted contours overlaid. This is developer preview tooling; the
// dashboard map layer consumes the GeoJSON directly.
type RasterRenderer struct {
	Scale   int  // pixels per grid cell, minimum 1
	Labeled bool // draw level IDs at contour start points
}

// NewRasterRenderer creates a renderer with default settings.
func NewRasterRenderer() *RasterRenderer {
	return &RasterRenderer{Scale: 8, Labeled: true}
}

var levelColors = map[string]color.RGBA{
	"P10": {R: 0x2b, G: 0x8c, B: 0xbe, A: 0xff},
	"P50": {R: 0xf5, G: 0x9e, B: 0x1c, A: 0xff},
	"P90": {R: 0xd7, G: 0x30, B: 0x27, A: 0xff},
}

var defaultContourColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// RenderPNG writes the heatmap and contour overlay as a PNG.
func (r *RasterRenderer) RenderPNG(field ScalarField, fc *FeatureCollection, w io.Writer) error {
	if err := field.Grid.Validate(); err != nil {
		return err
	}

	scale := r.Scale
	if scale < 1 {
		scale = 1
	}

	g := field.Grid
	img := image.NewRGBA(image.Rect(0, 0, g.NCol*scale, g.NRow*scale))

	// Value range for the color ramp. NaN cells render as grey.
	maxVal := 0.0
	for _, v := range field.Values {
		if !math.IsNaN(v) && v > maxVal {
			maxVal = v
		}
	}

	for col := 0; col < g.NCol; col++ {
		for row := 0; row < g.NRow; row++ {
			c := heatColor(field.At(col, row), maxVal)
			for dx := 0; dx < scale; dx++ {
				for dy := 0; dy < scale; dy++ {
					img.Set(col*scale+dx, row*scale+dy, c)
				}
			}
		}
	}

	if fc != nil {
		for _, f := range fc.Features {
			path := LineStringPath(f.Geometry)
			if len(path) < 2 {
				continue
			}
			c, ok := levelColors[f.ID]
			if !ok {
				c = defaultContourColor
			}
			r.drawPath(img, g, path, scale, c)
			if r.Labeled && f.ID != "" {
				px, py := r.toImage(g, path[0], scale)
				drawLabel(img, px+3, py-3, f.ID, c)
			}
		}
	}

	return png.Encode(w, img)
}

// toImage maps a world coordinate back to image pixel coordinates.
func (r *RasterRenderer) toImage(g Grid, p Point, scale int) (int, int) {
	col := (p.X - g.X0) / g.DX
	row := (p.Y - g.Y0) / g.DY
	return int(math.Round(col * float64(scale))), int(math.Round(row * float64(scale)))
}

// drawPath draws the polyline segment by segment with a simple DDA walk.
func (r *RasterRenderer) drawPath(img *image.RGBA, g Grid, path Path, scale int, c color.RGBA) {
	for i := 0; i+1 < len(path); i++ {
		x0, y0 := r.toImage(g, path[i], scale)
		x1, y1 := r.toImage(g, path[i+1], scale)

		steps := int(math.Max(math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0))))
		if steps == 0 {
			img.Set(x0, y0, c)
			continue
		}
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			x := int(math.Round(float64(x0) + t*float64(x1-x0)))
			y := int(math.Round(float64(y0) + t*float64(y1-y0)))
			img.Set(x, y, c)
		}
	}
}

// heatColor maps a count value to a white-to-blue ramp. NaN renders grey.
func heatColor(v, maxVal float64) color.RGBA {
	if math.IsNaN(v) {
		return color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	}
	if maxVal <= 0 {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	t := v / maxVal
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	// White (t=0) to saturated blue (t=1).
	rch := uint8(255 - t*200)
	gch := uint8(255 - t*160)
	return color.RGBA{R: rch, G: gch, B: 0xff, A: 0xff}
}

// drawLabel renders text at the given pixel position using the fixed-size
// basic font.
func drawLabel(img *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
