package paint

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/projection"
)

// Project maps pos (in frame f) to window coordinates. If atInfinity is
// set, pos is a normalized direction, otherwise a position. With clipFirst
// the point is first tested against the clip caps.
//
// A false result means "do not draw". Projecting through a model transform
// is not supported; the painter's transform must be the identity.
func (p *Painter) Project(f frame.Frame, pos r3.Vector, atInfinity, clipFirst bool) (r2.Point, bool) {
	if !p.assert(p.Transform.IsIdentity(), "project needs an identity transform") {
		return r2.Point{}, false
	}
	v := p.Obs.Convert(f, frame.View, atInfinity, pos)
	// positions are tested as seen from the observer
	if clipFirst && p.IsPointClippedFast(frame.View, v, atInfinity) {
		return r2.Point{}, false
	}
	flags := projection.ToWindowSpace
	w := 1.0
	if atInfinity {
		flags |= projection.AlreadyNormalized
		w = 0
	}
	return projection.Project(p.Proj, flags, skyclip.V4(v, w))
}

// Unproject maps a window point to a normalized direction in frame f. A
// false result means the projection has no inverse at win; the direction
// must not be used then.
func (p *Painter) Unproject(f frame.Frame, win r2.Point) (r3.Vector, bool) {
	v, ok := projection.Unproject(p.Proj, win)
	if !ok {
		return v, false
	}
	return p.Obs.Convert(frame.View, f, true, v), true
}

// projectDirection projects a direction in frame f to the window, ignoring
// failure.
func (p *Painter) projectDirection(f frame.Frame, v r3.Vector) r2.Point {
	v = p.Obs.Convert(f, frame.View, true, v.Normalize())
	win, _ := projection.Project(p.Proj, projection.AlreadyNormalized|projection.ToWindowSpace, skyclip.V4(v, 0))
	return win
}

// ProjectEllipse computes the window-space ellipse of a sky ellipse.
//
// The ellipse is centered at right ascension ra and declination de (in
// frame f), its major axis sizeX and minor axis sizeY are angular diameters
// and angle is the position angle of the major axis. A NaN sizeY makes the
// ellipse a circle; a NaN angle is treated as 0. All values in radians.
//
// The result holds the window position, the window size (full axes) and
// the window angle of the major axis.
func (p *Painter) ProjectEllipse(f frame.Frame, ra, de, angle, sizeX, sizeY float64) (pos, size r2.Point, winAngle float64) {
	if !p.assert(!math.IsNaN(ra) && !math.IsNaN(de) && !math.IsNaN(sizeX),
		"ellipse with undefined center or size") {
		return
	}
	if math.IsNaN(sizeY) {
		sizeY = sizeX
	} else if math.IsNaN(angle) {
		angle = 0
	}
	x := r3.Vector{X: 1}
	orient := skyclip.Identity3().RotZ(ra).RotY(-de)
	pos = p.projectDirection(f, orient.MulVec(x))
	if sizeX == 0 {
		return pos, r2.Point{}, 0
	}
	if !math.IsNaN(angle) {
		orient = orient.RotX(-angle)
	}
	// ends of the semi axes: the major axis lies along the local y-axis,
	// the minor one along the local z-axis
	a := p.projectDirection(f, orient.RotZ(sizeX/2).MulVec(x)).Sub(pos)
	b := p.projectDirection(f, orient.RotX(-math.Pi/2).RotZ(sizeY/2).MulVec(x)).Sub(pos)
	if !math.IsNaN(angle) {
		winAngle = math.Atan2(a.Y, a.X)
	}
	return pos, r2.Point{X: 2 * a.Norm(), Y: 2 * b.Norm()}, winAngle
}
