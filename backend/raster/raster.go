/*
Package raster is a software preview backend for package paint. It
implements the 2D capabilities of a backend (lines, points, ellipse and
rectangle outlines) by filling outline polygons with an anti-aliasing
rasterizer from golang.org/x/image/vector.

Quads, meshes, text and textures are not supported; the painter skips them
for this backend. Dashed lines are drawn solid.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/skyclip/paint"
	"github.com/npillmayer/skyclip/polygon"
	"golang.org/x/image/vector"
)

// tracer traces with key 'skyclip.raster'.
func tracer() tracing.Trace {
	return tracing.Select("skyclip.raster")
}

// ellipseSegments is the number of line segments of an ellipse outline.
const ellipseSegments = 64

// Canvas paints into an RGBA image.
type Canvas struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	scale  float64
	frames int
}

// New creates a canvas of the given pixel size.
func New(width, height int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		z:     vector.NewRasterizer(width, height),
		scale: 1,
	}
}

// Image returns the canvas image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Frames returns the number of finished frames.
func (c *Canvas) Frames() int {
	return c.frames
}

// Prepare clears the canvas, resizing it if the window size changed.
func (c *Canvas) Prepare(width, height, scale float64, cullFlipped bool) {
	if scale > 0 {
		c.scale = scale
	}
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if b := c.img.Bounds(); b.Dx() != w || b.Dy() != h {
		tracer().Debugf("canvas resized to %d×%d", w, h)
		c.img = image.NewRGBA(image.Rect(0, 0, w, h))
		c.z = vector.NewRasterizer(w, h)
		return
	}
	clear(c.img.Pix)
}

// Finish ends a frame.
func (c *Canvas) Finish() {
	c.frames++
}

// Line strokes a polyline with the painter's line width and color.
func (c *Canvas) Line(p *paint.Painter, line []r2.Point) {
	w := c.lineWidth(p)
	for i := 1; i < len(line); i++ {
		c.segment(line[i-1], line[i], w, p.Color)
	}
}

// Line2D strokes a straight line.
func (c *Canvas) Line2D(p *paint.Painter, p1, p2 r2.Point) {
	c.segment(p1, p2, c.lineWidth(p), p.Color)
}

// Points2D fills a disc of radius Size for every point. The point color is
// modulated by the painter's color.
func (c *Canvas) Points2D(p *paint.Painter, points []paint.Point) {
	for _, pt := range points {
		disc := ellipse(pt.Pos, r2.Point{X: pt.Size, Y: pt.Size}, 0)
		c.fill(polygon.FromPoints(disc), p.Color.Mul(pt.Color))
	}
}

// Ellipse2D strokes an ellipse outline.
func (c *Canvas) Ellipse2D(p *paint.Painter, pos, size r2.Point, angle float64) {
	c.Line(p, ellipse(pos, size, angle))
}

// Rect2D strokes a rectangle outline, size being the half extents.
func (c *Canvas) Rect2D(p *paint.Painter, pos, size r2.Point, angle float64) {
	s, co := math.Sincos(angle)
	ax := r2.Point{X: co, Y: s}.Mul(size.X)
	ay := r2.Point{X: -s, Y: co}.Mul(size.Y)
	corners := []r2.Point{
		pos.Sub(ax).Sub(ay), pos.Add(ax).Sub(ay),
		pos.Add(ax).Add(ay), pos.Sub(ax).Add(ay),
		pos.Sub(ax).Sub(ay),
	}
	c.Line(p, corners)
}

func (c *Canvas) lineWidth(p *paint.Painter) float64 {
	return math.Max(1, p.LinesWidth*c.scale)
}

// ellipse returns a closed polyline around an ellipse with semi axes size,
// rotated by angle.
func ellipse(pos, size r2.Point, angle float64) []r2.Point {
	s, co := math.Sincos(angle)
	pts := make([]r2.Point, ellipseSegments+1)
	for i := range pts {
		t := 2 * math.Pi * float64(i%ellipseSegments) / ellipseSegments
		x, y := size.X*math.Cos(t), size.Y*math.Sin(t)
		pts[i] = pos.Add(r2.Point{X: co*x - s*y, Y: s*x + co*y})
	}
	return pts
}

// segment fills the rectangle around the line from a to b.
func (c *Canvas) segment(a, b r2.Point, width float64, col paint.Color) {
	d := b.Sub(a)
	if d.Norm() == 0 {
		return
	}
	n := d.Ortho().Normalize().Mul(width / 2)
	c.fill(polygon.FromPoints([]r2.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}), col)
}

// fill rasterizes the part of pg inside the canvas.
func (c *Canvas) fill(pg *polygon.Polygon, col paint.Color) {
	if col[3] <= 0 {
		return
	}
	b := c.img.Bounds()
	window := polygon.Box(r2.Point{X: 0, Y: 0}, r2.Point{X: float64(b.Dx()), Y: float64(b.Dy())})
	if !pg.Bounds().Intersects(window.Bounds()) {
		return
	}
	src := image.NewUniform(toNRGBA(col))
	for _, part := range window.Intersection(pg) {
		if part.N() < 3 {
			continue
		}
		c.z.Reset(b.Dx(), b.Dy())
		start := part.Pt(0)
		c.z.MoveTo(float32(start.X), float32(start.Y))
		for i := 1; i < part.N(); i++ {
			q := part.Pt(i)
			c.z.LineTo(float32(q.X), float32(q.Y))
		}
		c.z.ClosePath()
		c.z.Draw(c.img, b, src, image.Point{})
	}
}

func toNRGBA(col paint.Color) color.NRGBA {
	ch := func(x float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
	}
	return color.NRGBA{R: ch(col[0]), G: ch(col[1]), B: ch(col[2]), A: ch(col[3])}
}

var (
	_ paint.Preparer         = &Canvas{}
	_ paint.Finisher         = &Canvas{}
	_ paint.LinePainter      = &Canvas{}
	_ paint.Line2DPainter    = &Canvas{}
	_ paint.PointsPainter    = &Canvas{}
	_ paint.Ellipse2DPainter = &Canvas{}
	_ paint.Rect2DPainter    = &Canvas{}
)
