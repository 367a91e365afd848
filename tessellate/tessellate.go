/*
Package tessellate samples parametric curves into window-space polylines.

A curve is a function over t ∈ [0,1]. Every sampler evaluates the curve
exactly at t = 0 and t = 1, so the first and the last vertex of a polyline
are the curve's endpoints, bit for bit.

Uniform sampling is what the painter uses for lines with a fixed split
count. Adaptive sampling refines a segment as long as the curve's midpoint
deviates from the segment's midpoint by more than a tolerance, which suits
curves whose projected speed changes a lot (near the poles of a cylindrical
map, say).
*/
package tessellate

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'skyclip.tessellate'
func tracer() tracing.Trace {
	return tracing.Select("skyclip.tessellate")
}

// CurveFunc maps a curve parameter t ∈ [0,1] to a point in window space.
type CurveFunc func(t float64) r2.Point

// MaxDepth limits the recursion of Adaptive.
const MaxDepth = 16

// Uniform samples fn at split+1 equidistant parameters. A split below 1 is
// treated as 1.
func Uniform(fn CurveFunc, split int) []r2.Point {
	if split < 1 {
		split = 1
	}
	pts := make([]r2.Point, split+1)
	for i := 0; i < split; i++ {
		pts[i] = fn(float64(i) / float64(split))
	}
	pts[split] = fn(1)
	return pts
}

// Adaptive samples fn by recursive bisection. A segment [t0,t1] is accepted
// once the curve point at its parameter midpoint lies within tolerance
// (in window pixels) of the midpoint of the chord. Recursion stops at
// maxDepth levels; values outside [1, MaxDepth] are clamped.
//
// Segments with non-finite endpoints are not refined.
func Adaptive(fn CurveFunc, tolerance float64, maxDepth int) []r2.Point {
	if maxDepth < 1 {
		maxDepth = 1
	} else if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	p0, p1 := fn(0), fn(1)
	a := adaptive{fn: fn, tol2: tolerance * tolerance, maxDepth: maxDepth}
	pts := []r2.Point{p0}
	pts = a.appendSegment(pts, 0, p0, 1, p1, 0)
	tracer().Debugf("adaptive tessellation: %d vertices", len(pts))
	return pts
}

type adaptive struct {
	fn       CurveFunc
	tol2     float64
	maxDepth int
}

// appendSegment appends the vertices of segment (t0,t1], excluding p0.
func (a *adaptive) appendSegment(pts []r2.Point, t0 float64, p0 r2.Point, t1 float64, p1 r2.Point,
	depth int) []r2.Point {
	//
	if depth >= a.maxDepth || !finite(p0) || !finite(p1) {
		return append(pts, p1)
	}
	tm := (t0 + t1) / 2
	pm := a.fn(tm)
	chordMid := p0.Add(p1).Mul(0.5)
	d := pm.Sub(chordMid)
	// at depth 0 the curve might be symmetric enough to fool the midpoint
	// test (a full circle), so always split once
	if depth > 0 && finite(pm) && d.Dot(d) <= a.tol2 {
		return append(pts, p1)
	}
	pts = a.appendSegment(pts, t0, p0, tm, pm, depth+1)
	return a.appendSegment(pts, tm, pm, t1, p1, depth+1)
}

func finite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
