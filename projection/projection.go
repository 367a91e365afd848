// Package projection maps view-frame directions to window coordinates and
// back.
//
// A projection works in three spaces:
//
//	view:   3D vectors in the view frame, the viewer looks along -z
//	clip:   homogeneous 4D coordinates; the visible volume is -w ≤ x,y,z ≤ w
//	window: pixels, origin at the top left corner, y pointing down
//
// Normalized device coordinates (NDC) sit between clip and window space:
// NDC = clip.xy / clip.w, and the window spans [-1…1] in both axes.
//
// Some projections have a seam where neighbouring directions map far apart
// on screen (the date-line of a cylindrical map). These implement the
// optional Discontinuous interface; clients have to test for it.
package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/skyclip"
)

// tracer writes to trace with key 'skyclip.projection'
func tracer() tracing.Trace {
	return tracing.Select("skyclip.projection")
}

// Flags modify how a projection is applied.
type Flags uint

const (
	// FlipHorizontal mirrors the window horizontally.
	FlipHorizontal Flags = 1 << iota
	// FlipVertical mirrors the window vertically.
	FlipVertical
	// AlreadyNormalized tells a projection that a direction has unit length.
	AlreadyNormalized
	// ToWindowSpace requests window pixels instead of NDC.
	ToWindowSpace
)

// Projection is the interface every projection implements.
type Projection interface {
	// WindowSize returns width and height of the window in pixels.
	WindowSize() r2.Point
	// Flags returns the projection's own flags (flips).
	Flags() Flags
	// ToClip maps a view-frame vector to clip coordinates. It reports false
	// if v cannot be projected, e.g. because it lies behind the viewer; the
	// returned coordinates are still the best available guess and may be
	// used for conservative clipping, but not for drawing.
	ToClip(v skyclip.Vec4, normalized bool) (skyclip.Vec4, bool)
	// Backward maps NDC to a normalized view-frame direction. It reports
	// false where the inverse is not defined; the direction is then invalid.
	Backward(ndc r2.Point) (r3.Vector, bool)
}

// Discontinuous is implemented by projections with a seam.
type Discontinuous interface {
	// IntersectDiscontinuity reports whether the great-circle segment between
	// view-frame directions a and b crosses the seam.
	IntersectDiscontinuity(a, b r3.Vector) bool
}

// DiscontinuityOf returns the discontinuity capability of p, or nil.
func DiscontinuityOf(p Projection) Discontinuous {
	if d, ok := p.(Discontinuous); ok {
		return d
	}
	return nil
}

// ProjectClip maps a view-frame vector to clip coordinates, honouring the
// AlreadyNormalized flag.
func ProjectClip(p Projection, flags Flags, v skyclip.Vec4) (skyclip.Vec4, bool) {
	return p.ToClip(v, flags&AlreadyNormalized != 0)
}

// Project maps a view-frame vector to NDC, or to window pixels if flags
// contain ToWindowSpace. A false result means "do not draw"; the point is
// not a usable position in that case.
func Project(p Projection, flags Flags, v skyclip.Vec4) (r2.Point, bool) {
	c, ok := ProjectClip(p, flags, v)
	if c[3] == 0 || c.HasNaN() {
		return r2.Point{}, false
	}
	ndc := r2.Point{X: c[0] / c[3], Y: c[1] / c[3]}
	if flags&ToWindowSpace != 0 {
		return NDCToWindow(p, ndc), ok
	}
	return ndc, ok
}

// Unproject maps a window point to a normalized view-frame direction.
func Unproject(p Projection, win r2.Point) (r3.Vector, bool) {
	v, ok := p.Backward(WindowToNDC(p, win))
	if !ok {
		tracer().Debugf("no inverse projection at window point %v", win)
	}
	return v, ok
}

// WindowToNDC converts window pixels to normalized device coordinates.
func WindowToNDC(p Projection, win r2.Point) r2.Point {
	size := p.WindowSize()
	return r2.Point{
		X: win.X/size.X*2 - 1,
		Y: 1 - win.Y/size.Y*2,
	}
}

// NDCToWindow converts normalized device coordinates to window pixels.
func NDCToWindow(p Projection, ndc r2.Point) r2.Point {
	size := p.WindowSize()
	return r2.Point{
		X: skyclip.Zap((ndc.X + 1) / 2 * size.X),
		Y: skyclip.Zap((1 - ndc.Y) / 2 * size.Y),
	}
}

// CullFlipped is a predicate: does p mirror the window along exactly one
// axis, turning front faces into back faces?
func CullFlipped(p Projection) bool {
	f := p.Flags()
	return (f&FlipHorizontal != 0) != (f&FlipVertical != 0)
}

// === Shared state ==========================================================

// base carries what all projections share: the window and the scaling from
// projection plane units to NDC.
type base struct {
	window  r2.Point
	flags   Flags
	scaling r2.Point // projection plane units per NDC unit
}

func newBase(fovy, width, height float64, flags Flags, planeRadius func(float64) float64) base {
	sy := planeRadius(fovy / 2)
	return base{
		window:  r2.Point{X: width, Y: height},
		flags:   flags,
		scaling: r2.Point{X: sy * width / height, Y: sy},
	}
}

func (b *base) WindowSize() r2.Point {
	return b.window
}

func (b *base) Flags() Flags {
	return b.flags
}

// SetFlags replaces the flip flags.
func (b *base) SetFlags(flags Flags) {
	b.flags = flags & (FlipHorizontal | FlipVertical)
}

// Resize sets a new window size, keeping the vertical field of view.
func (b *base) Resize(width, height float64) {
	b.scaling.X = b.scaling.Y * width / height
	b.window = r2.Point{X: width, Y: height}
}

func (b *base) flipSigns() r2.Point {
	s := r2.Point{X: 1, Y: 1}
	if b.flags&FlipHorizontal != 0 {
		s.X = -1
	}
	if b.flags&FlipVertical != 0 {
		s.Y = -1
	}
	return s
}

// toNDC scales plane coordinates to NDC and applies flips.
func (b *base) toNDC(plane r2.Point) r2.Point {
	s := b.flipSigns()
	return r2.Point{X: s.X * plane.X / b.scaling.X, Y: s.Y * plane.Y / b.scaling.Y}
}

// toPlane undoes toNDC.
func (b *base) toPlane(ndc r2.Point) r2.Point {
	s := b.flipSigns()
	return r2.Point{X: s.X * ndc.X * b.scaling.X, Y: s.Y * ndc.Y * b.scaling.Y}
}

func unit(v skyclip.Vec4, normalized bool) r3.Vector {
	if normalized {
		return v.XYZ()
	}
	return v.XYZ().Normalize()
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
