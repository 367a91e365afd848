package paint

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/polygon"
	"github.com/npillmayer/skyclip/projection"
	"github.com/npillmayer/skyclip/uvmap"
)

// Prepare starts a frame of the given window size and pixel scale. It
// resets the uv transforms of the texture slots.
func (p *Painter) Prepare(width, height, scale float64) {
	for i := range p.textures {
		p.textures[i].uv = skyclip.Identity()
	}
	if b, ok := p.Backend.(Preparer); ok {
		b.Prepare(width, height, scale, projection.CullFlipped(p.Proj))
	}
}

// Finish ends a frame.
func (p *Painter) Finish() {
	if b, ok := p.Backend.(Finisher); ok {
		b.Finish()
	}
}

// Points2D paints point sprites.
func (p *Painter) Points2D(points []Point) {
	if b, ok := p.Backend.(PointsPainter); ok && len(points) > 0 {
		b.Points2D(p, points)
	}
}

// Quad paints the curved quad m (in frame f), textured with the color
// texture if one is bound. Nothing is painted while the texture is
// loading or if the color is fully transparent.
func (p *Painter) Quad(f frame.Frame, m uvmap.Map, gridSize int) {
	if tex := p.textures[TexColor].tex; tex != nil && !tex.Load() {
		return
	}
	if p.Color[3] == 0 {
		return
	}
	// TODO: split the projection when the quad crosses a discontinuity
	if b, ok := p.Backend.(QuadPainter); ok {
		b.Quad(p, f, gridSize, m)
	}
}

// Text paints text at window position pos.
func (p *Painter) Text(text string, pos r2.Point, align Align, effects TextEffects, size float64,
	color Color, angle float64) {
	//
	if b, ok := p.Backend.(TextPainter); ok {
		b.Text(text, pos, align, effects, size, color, angle)
	}
}

// TextBounds returns the window rectangle text would occupy. It returns
// false if the backend cannot measure text.
func (p *Painter) TextBounds(text string, pos r2.Point, align Align, effects TextEffects,
	size float64) (r2.Rect, bool) {
	//
	if b, ok := p.Backend.(TextMeasurer); ok {
		return b.TextBounds(text, pos, align, effects, size), true
	}
	return r2.EmptyRect(), false
}

// fullUV are the uv coordinates of a whole texture.
var fullUV = [4]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}

// Texture paints a texture sprite of window size size at pos. uv selects
// the corners of the texture part; nil means the whole texture. The color
// is modulated by the painter's color. Nothing is painted while the
// texture is loading.
func (p *Painter) Texture(tex Texture, uv []r2.Point, pos r2.Point, size float64, color Color, angle float64) {
	if !tex.Load() {
		return
	}
	corners := fullUV
	if uv != nil {
		if !p.assert(len(uv) == 4, "texture needs 4 uv corners, have %d", len(uv)) {
			return
		}
		copy(corners[:], uv)
	}
	if b, ok := p.Backend.(TexturePainter); ok {
		b.Texture(tex, corners, pos, size, p.Color.Mul(color), angle)
	}
}

// Mesh paints an indexed mesh with vertices in frame f. boundingCap must
// contain all vertices; the mesh is skipped if the cap is clipped.
func (p *Painter) Mesh(f frame.Frame, mode MeshMode, verts []r3.Vector, indices []uint16, boundingCap s2.Cap) {
	if len(indices) == 0 || p.IsCapClipped(f, boundingCap) {
		return
	}
	// TODO: paint twice, once per side, if the cap crosses a discontinuity
	if b, ok := p.Backend.(MeshPainter); ok {
		local := p.Derive()
		b.Mesh(&local, f, mode, verts, indices)
	}
}

// === 2D shapes =============================================================

// EllipseTransform returns the transform of a unit circle into an
// axis-parallel ellipse at window position pos with semi axes size.
func EllipseTransform(pos, size r2.Point) skyclip.AT {
	return skyclip.Scaling(size.X, size.Y).Combine(skyclip.Translation(pos))
}

// RectTransform returns the transform of the square [-1,1]² into an
// axis-parallel rectangle with top left corner pos and the given size.
func RectTransform(pos, size r2.Point) skyclip.AT {
	return skyclip.Scaling(size.X/2, size.Y/2).Combine(skyclip.Translation(pos.Add(size.Mul(0.5))))
}

// Ellipse2D paints the image of the unit circle under m. With dashes > 0
// the outline is dashed, dashes being the dash length in pixels. The
// returned point is the top-most of a few points on the ellipse, a
// position for a label.
func (p *Painter) Ellipse2D(m skyclip.AT, dashes float64) (labelPos r2.Point) {
	if !p.assert(m.IsValid(), "ellipse needs an affine transform") {
		return r2.Point{}
	}
	ax, ay := m.Column(0), m.Column(1)
	a2, b2 := ax.Dot(ax), ay.Dot(ay)
	stripes := 0.0
	if dashes > 0 {
		perimeter := 2 * math.Pi * math.Sqrt((a2+b2)/2)
		stripes = perimeter / dashes
	}
	local := p.Derive(WithLinesStripes(stripes))
	if b, ok := p.Backend.(Ellipse2DPainter); ok {
		size := r2.Point{X: math.Sqrt(a2), Y: math.Sqrt(b2)}
		b.Ellipse2D(&local, m.Column(2), size, math.Atan2(ax.Y, ax.X))
	}
	labelPos = r2.Point{Y: math.MaxFloat64}
	for i := 0; i < 16; i++ {
		s, c := math.Sincos(float64(i) * math.Pi / 8)
		q := m.Transform(r2.Point{X: c, Y: s})
		if q.Y < labelPos.Y {
			labelPos = q
		}
	}
	return labelPos
}

// Rect2D paints the image of the square [-1,1]² under m, unless it misses
// the window.
func (p *Painter) Rect2D(m skyclip.AT) {
	if !p.assert(m.IsValid(), "rect needs an affine transform") {
		return
	}
	outline := polygon.Box(r2.Point{X: -1, Y: -1}, r2.Point{X: 1, Y: 1}).Transform(m)
	if !p.window().Overlaps(outline) {
		tracer().Debugf("rect %s outside of window", outline)
		return
	}
	if b, ok := p.Backend.(Rect2DPainter); ok {
		ax, ay := m.Column(0), m.Column(1)
		size := r2.Point{X: ax.Norm(), Y: ay.Norm()}
		b.Rect2D(p, m.Column(2), size, math.Atan2(ax.Y, ax.X))
	}
}

// Line2D paints the image under m of the line from p1 to p2.
func (p *Painter) Line2D(m skyclip.AT, p1, p2 r2.Point) {
	if !p.assert(m.IsValid(), "line needs an affine transform") {
		return
	}
	if b, ok := p.Backend.(Line2DPainter); ok {
		b.Line2D(p, m.Transform(p1), m.Transform(p2))
	}
}
