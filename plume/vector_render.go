package plume

import (
	"fmt"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// VectorRenderer renders a contour collection as vector graphics (SVG or
// rasterized PNG). Coordinates are world units; the drawing is padded by
// Padding on all sides.
type VectorRenderer struct {
	Padding     float64           // padding in world units
	StrokeWidth float64           // contour stroke width in world units
	Resolution  canvas.Resolution // resolution for PNG output
}

// NewVectorRenderer creates a vector renderer with default settings. The
// grid is used to derive sensible world-unit defaults.
func NewVectorRenderer(g Grid) *VectorRenderer {
	res := g.MeanResolution()
	return &VectorRenderer{
		Padding:     2 * res,
		StrokeWidth: res / 4,
		Resolution:  canvas.DPI(300),
	}
}

// canvasRenderer is the subset both svg and rasterizer renderers implement.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderSVG writes the contour collection as an SVG to the provided writer.
func (r *VectorRenderer) RenderSVG(fc *FeatureCollection, w io.Writer) error {
	bound, ok := ContourBound(fc)
	if !ok {
		return fmt.Errorf("empty feature collection, nothing to render")
	}

	width := (bound.Max[0] - bound.Min[0]) + 2*r.Padding
	height := (bound.Max[1] - bound.Min[1]) + 2*r.Padding

	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer, fc, bound.Min[0], bound.Min[1], width, height)
	if err := svgRenderer.Close(); err != nil {
		return err
	}
	return nil
}

// RenderPNG rasterizes the contour collection and writes it as a PNG.
func (r *VectorRenderer) RenderPNG(fc *FeatureCollection, w io.Writer) error {
	bound, ok := ContourBound(fc)
	if !ok {
		return fmt.Errorf("empty feature collection, nothing to render")
	}

	width := (bound.Max[0] - bound.Min[0]) + 2*r.Padding
	height := (bound.Max[1] - bound.Min[1]) + 2*r.Padding

	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, fc, bound.Min[0], bound.Min[1], width, height)
	return png.Encode(w, rast)
}

// renderToCanvas draws the collection onto a canvas renderer (shared logic
// for SVG and PNG output).
func (r *VectorRenderer) renderToCanvas(renderer canvasRenderer, fc *FeatureCollection, minX, minY, width, height float64) {
	// White background.
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	toCanvas := func(p Point) (float64, float64) {
		return (p.X - minX) + r.Padding, (p.Y - minY) + r.Padding
	}

	for _, f := range fc.Features {
		path := LineStringPath(f.Geometry)
		if len(path) < 2 {
			continue
		}

		style := canvas.DefaultStyle
		style.Fill = canvas.Paint{Color: canvas.Transparent}
		col, ok := levelColors[f.ID]
		if !ok {
			col = defaultContourColor
		}
		style.Stroke = canvas.Paint{Color: col}
		style.StrokeWidth = r.StrokeWidth

		cp := &canvas.Path{}
		for i, pt := range path {
			cx, cy := toCanvas(pt)
			if i == 0 {
				cp.MoveTo(cx, cy)
			} else {
				cp.LineTo(cx, cy)
			}
		}
		if path.Closed() {
			cp.Close()
		}
		renderer.RenderPath(cp, style, canvas.Identity)
	}
}
