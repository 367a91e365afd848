package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip"
)

// Mercator is the conformal cylindrical projection around the view frame's
// y-axis. Longitude 0 is the viewing direction; the seam (longitude ±180°)
// lies behind the viewer. Mercator implements Discontinuous.
type Mercator struct {
	base
}

var (
	_ Projection    = &Mercator{}
	_ Discontinuous = &Mercator{}
)

// maxLatitude keeps the projected latitude finite.
const maxLatitude = math.Pi/2 - 1e-9

func mercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + lat/2))
}

// NewMercator creates a Mercator projection with vertical field of view
// fovy (radians, < π). The horizontal extent follows from the window aspect
// ratio; where it exceeds ±180° the window shows nothing.
func NewMercator(fovy, width, height float64) *Mercator {
	return &Mercator{base: newBase(fovy, width, height, 0, mercatorY)}
}

// ToClip maps v to clip coordinates with w = 1. The poles cannot be
// projected.
func (p *Mercator) ToClip(v skyclip.Vec4, normalized bool) (skyclip.Vec4, bool) {
	u := unit(v, normalized)
	ok := true
	lon := math.Atan2(u.X, -u.Z)
	lat := math.Asin(math.Max(-1, math.Min(1, u.Y)))
	if math.Abs(lat) > maxLatitude {
		lat, ok = math.Copysign(maxLatitude, lat), false
	}
	ndc := p.toNDC(r2.Point{X: lon, Y: mercatorY(lat)})
	return skyclip.Vec4{ndc.X, ndc.Y, 0, 1}, ok
}

// Backward maps NDC to a direction. Window points beyond ±180° of longitude
// have no inverse.
func (p *Mercator) Backward(ndc r2.Point) (r3.Vector, bool) {
	plane := p.toPlane(ndc)
	if math.Abs(plane.X) > math.Pi || !finite(plane.Y) {
		return r3.Vector{}, false
	}
	lat := math.Atan(math.Sinh(plane.Y))
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(plane.X)
	return r3.Vector{X: cosLat * sinLon, Y: sinLat, Z: -cosLat * cosLon}, true
}

// IntersectDiscontinuity reports whether the segment a–b crosses the
// half-plane x = 0, z > 0 behind the viewer.
func (p *Mercator) IntersectDiscontinuity(a, b r3.Vector) bool {
	if a.X*b.X > 0 || a.X == b.X {
		return false
	}
	t := a.X / (a.X - b.X)
	z := a.Z + t*(b.Z-a.Z)
	return z > 0
}
