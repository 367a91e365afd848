/*
Package polygon builds simple window-space polygons and tests them against
each other. The painter uses it to decide whether rotated 2D shapes (labels,
rectangles, marker outlines) touch the window at all.

Polygons are built with a small builder:

	pg := NullPolygon().Knot(r2.Point{X: 0, Y: 0}).Knot(r2.Point{X: 1, Y: 3}).Cycle()

Boolean operations are delegated to polyclip-go.
*/
package polygon

import (
	"bytes"
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/skyclip"
)

// L writes to trace with key 'skyclip.polygon'
func L() tracing.Trace {
	return tracing.Select("skyclip.polygon")
}

// Polygon is a sequence of knots in window space. A polygon is usable for
// tests only after Cycle has closed it.
type Polygon struct {
	knots  []r2.Point
	closed bool
}

// NullPolygon starts an empty polygon.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex.
func (pg *Polygon) Knot(p r2.Point) *Polygon {
	if pg.closed {
		L().Errorf("cannot add knot %v to a closed polygon", p)
		return pg
	}
	pg.knots = append(pg.knots, p)
	return pg
}

// Cycle closes the polygon. A repeated first knot at the end is dropped.
func (pg *Polygon) Cycle() *Polygon {
	if n := len(pg.knots); n > 1 && pg.knots[0] == pg.knots[n-1] {
		pg.knots = pg.knots[:n-1]
	}
	pg.closed = true
	return pg
}

// Box creates a closed, axis-parallel rectangle from two opposite corners.
func Box(a, b r2.Point) *Polygon {
	r := r2.RectFromPoints(a, b)
	return NullPolygon().
		Knot(r.Lo()).
		Knot(r2.Point{X: r.X.Hi, Y: r.Y.Lo}).
		Knot(r.Hi()).
		Knot(r2.Point{X: r.X.Lo, Y: r.Y.Hi}).
		Cycle()
}

// FromPoints creates a closed polygon with the given vertices.
func FromPoints(pts []r2.Point) *Polygon {
	pg := NullPolygon()
	for _, p := range pts {
		pg.Knot(p)
	}
	return pg.Cycle()
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.knots)
}

// Pt returns knot i, modulo N.
func (pg *Polygon) Pt(i int) r2.Point {
	n := len(pg.knots)
	return pg.knots[((i%n)+n)%n]
}

// IsCycle is a predicate: has the polygon been closed?
func (pg *Polygon) IsCycle() bool {
	return pg.closed
}

// Transform returns a new polygon with every knot mapped through at.
func (pg *Polygon) Transform(at skyclip.AT) *Polygon {
	t := &Polygon{knots: make([]r2.Point, len(pg.knots)), closed: pg.closed}
	for i, p := range pg.knots {
		t.knots[i] = at.Transform(p)
	}
	return t
}

// Bounds returns the axis-parallel bounding rectangle.
func (pg *Polygon) Bounds() r2.Rect {
	return r2.RectFromPoints(pg.knots...)
}

// Area returns the signed area; positive for counter-clockwise knots in a
// y-up coordinate system.
func (pg *Polygon) Area() float64 {
	a := 0.0
	for i := range pg.knots {
		p, q := pg.Pt(i), pg.Pt(i+1)
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Contains is a predicate: is p inside the closed polygon?
func (pg *Polygon) Contains(p r2.Point) bool {
	if !pg.closed || len(pg.knots) < 3 {
		return false
	}
	return pg.contour().Contains(polyclip.Point{X: p.X, Y: p.Y})
}

// Overlaps is a predicate: do the interiors of two closed polygons
// intersect?
func (pg *Polygon) Overlaps(other *Polygon) bool {
	if !pg.closed || !other.closed {
		L().Errorf("overlap test on open polygon")
		return false
	}
	if len(pg.knots) < 3 || len(other.knots) < 3 {
		return false
	}
	if !pg.Bounds().Intersects(other.Bounds()) {
		return false
	}
	for _, p := range pg.knots {
		if other.Contains(p) {
			return true
		}
	}
	for _, p := range other.knots {
		if pg.Contains(p) {
			return true
		}
	}
	// edges may still cross (think of a plus sign)
	return len(pg.Intersection(other)) > 0
}

// Intersection returns the polygons making up the intersection of pg and
// other.
func (pg *Polygon) Intersection(other *Polygon) []*Polygon {
	return pg.construct(polyclip.INTERSECTION, other)
}

// Union returns the polygons making up the union of pg and other.
func (pg *Polygon) Union(other *Polygon) []*Polygon {
	return pg.construct(polyclip.UNION, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) []*Polygon {
	subject := polyclip.Polygon{pg.contour()}
	clipping := polyclip.Polygon{other.contour()}
	result := subject.Construct(op, clipping)
	pgs := make([]*Polygon, 0, len(result))
	for _, c := range result {
		if len(c) < 3 {
			continue
		}
		r := NullPolygon()
		for _, p := range c {
			r.Knot(r2.Point{X: p.X, Y: p.Y})
		}
		pgs = append(pgs, r.Cycle())
	}
	return pgs
}

func (pg *Polygon) contour() polyclip.Contour {
	c := make(polyclip.Contour, len(pg.knots))
	for i, p := range pg.knots {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

// AsString returns a readable representation, "(x,y) -- (x,y) -- cycle".
func AsString(pg *Polygon) string {
	var buf bytes.Buffer
	for i, p := range pg.knots {
		if i > 0 {
			buf.WriteString(" -- ")
		}
		buf.WriteString(fmt.Sprintf("(%.4g,%.4g)", p.X, p.Y))
	}
	if pg.closed {
		buf.WriteString(" -- cycle")
	}
	return buf.String()
}

func (pg *Polygon) String() string {
	return AsString(pg)
}
