// Package uvmap deals with parametric maps from the unit square to the
// sphere. A map describes a curved quad; the painter uses it to clip, to
// subdivide and to draw borders of sky tiles and planet tiles.
//
// Every map carries an order, its level of subdivision. Subdividing a map
// splits it into four children of order+1, covering the quadrants
//
//	0: [0,½]×[0,½]   1: [½,1]×[0,½]   2: [0,½]×[½,1]   3: [½,1]×[½,1]
package uvmap

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/skyclip"
)

// tracer writes to trace with key 'skyclip.uvmap'
func tracer() tracing.Trace {
	return tracing.Select("skyclip.uvmap")
}

// Map is a parametric quad on the sphere.
type Map interface {
	// Map evaluates the map at uv ∈ [0,1]². The result is a direction
	// (w = 0) or a position (w = 1).
	Map(uv r2.Point) skyclip.Vec4
	// Order is the level of subdivision.
	Order() int
	// BoundingCap returns a cap containing the directions of all points of
	// the quad.
	BoundingCap() s2.Cap
	// Grid evaluates the map on a (size+1)×(size+1) regular grid, u varying
	// fastest. Grid(1) returns the four corners (0,0), (1,0), (0,1), (1,1).
	Grid(size int) []skyclip.Vec4
	// Subdivide splits the quad into its four children.
	Subdivide() [4]Map
}

// boundarySamples is the number of samples per edge when bounding a quad.
const boundarySamples = 8

// boundMargin widens sampled bounds to cover the curvature between samples.
const boundMargin = 0.02

// grid implements Map.Grid for any map.
func grid(m Map, size int) []skyclip.Vec4 {
	if size < 1 {
		size = 1
	}
	pts := make([]skyclip.Vec4, 0, (size+1)*(size+1))
	for j := 0; j <= size; j++ {
		for i := 0; i <= size; i++ {
			uv := r2.Point{X: float64(i) / float64(size), Y: float64(j) / float64(size)}
			pts = append(pts, m.Map(uv))
		}
	}
	return pts
}

// boundingCap implements Map.BoundingCap by sampling the border of the quad
// and widening the result a little.
func boundingCap(m Map) s2.Cap {
	center := m.Map(r2.Point{X: 0.5, Y: 0.5}).XYZ().Normalize()
	maxSep := 0.0
	for i := 0; i < boundarySamples; i++ {
		t := float64(i) / boundarySamples
		for _, uv := range [4]r2.Point{{X: t}, {X: 1, Y: t}, {X: 1 - t, Y: 1}, {Y: 1 - t}} {
			p := m.Map(uv).XYZ()
			maxSep = math.Max(maxSep, skyclip.Separation(center, p))
		}
	}
	radius := maxSep*(1+boundMargin) + skyclip.Epsilon
	if radius >= math.Pi {
		return s2.FullCap()
	}
	return s2.CapFromCenterAngle(s2.Point{Vector: center}, s1.Angle(radius))
}

// === Function maps =========================================================

// Func is a map backed by a plain function over the unit square. Children
// of a Func evaluate the same function on a sub-rectangle.
type Func struct {
	F     func(uv r2.Point) skyclip.Vec4
	order int
	u0    r2.Point // lower-left corner of the sub-rectangle
	size  float64  // edge length of the sub-rectangle
}

var _ Map = &Func{}

// NewFunc creates a map from f, with the given order.
func NewFunc(f func(uv r2.Point) skyclip.Vec4, order int) *Func {
	return &Func{F: f, order: order, size: 1}
}

// Map evaluates the function.
func (m *Func) Map(uv r2.Point) skyclip.Vec4 {
	return m.F(m.u0.Add(uv.Mul(m.size)))
}

// Order returns the level of subdivision.
func (m *Func) Order() int {
	return m.order
}

// BoundingCap samples the border of the quad.
func (m *Func) BoundingCap() s2.Cap {
	return boundingCap(m)
}

// Grid evaluates the function on a regular grid.
func (m *Func) Grid(size int) []skyclip.Vec4 {
	return grid(m, size)
}

// Subdivide splits the sub-rectangle into quadrants.
func (m *Func) Subdivide() [4]Map {
	var children [4]Map
	half := m.size / 2
	for i := range children {
		offset := r2.Point{X: float64(i & 1), Y: float64(i >> 1)}.Mul(half)
		children[i] = &Func{F: m.F, order: m.order + 1, u0: m.u0.Add(offset), size: half}
	}
	return children
}

// GreatCircle returns a function map whose u-parameter runs along the
// shorter great-circle arc from a to b (v is ignored). a and b must be
// normalized and must not be antipodal.
func GreatCircle(a, b r3.Vector) *Func {
	omega := skyclip.Separation(a, b)
	sinOmega := math.Sin(omega)
	return NewFunc(func(uv r2.Point) skyclip.Vec4 {
		if skyclip.Is0(sinOmega) {
			return skyclip.V4(a, 0)
		}
		t := uv.X
		ka := math.Sin((1-t)*omega) / sinOmega
		kb := math.Sin(t*omega) / sinOmega
		return skyclip.V4(a.Mul(ka).Add(b.Mul(kb)), 0)
	}, 0)
}

// CapBorder returns a function map whose u-parameter runs once around the
// border circle of cap c, counter-clockwise seen from outside (v is
// ignored).
func CapBorder(c s2.Cap) *Func {
	center := skyclip.CapCenter(c)
	sinR, cosR := math.Sincos(c.Radius().Radians())
	e1 := center.Ortho()
	e2 := center.Cross(e1)
	return NewFunc(func(uv r2.Point) skyclip.Vec4 {
		s, co := math.Sincos(2 * math.Pi * uv.X)
		p := center.Mul(cosR).Add(e1.Mul(sinR * co)).Add(e2.Mul(sinR * s))
		return skyclip.V4(p, 0)
	}, 0)
}
