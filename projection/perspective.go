package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip"
)

// DefaultNear is the distance of the near clipping plane, in AU.
const DefaultNear = 1e-8

// Perspective is a rectilinear (gnomonic) projection with an infinitely
// distant far plane. Great circles stay straight lines; it cannot show
// anything at or behind 90° from the viewing direction.
type Perspective struct {
	base
	Near float64 // near clipping plane distance
}

var _ Projection = &Perspective{}

// NewPerspective creates a perspective projection with vertical field of
// view fovy (radians, < π) for a window of the given size.
func NewPerspective(fovy, width, height float64) *Perspective {
	return &Perspective{
		base: newBase(fovy, width, height, 0, math.Tan),
		Near: DefaultNear,
	}
}

// ToClip maps v to clip coordinates. Positions with w = 1 and directions
// with w = 0 are both valid; normalization does not matter.
func (p *Perspective) ToClip(v skyclip.Vec4, normalized bool) (skyclip.Vec4, bool) {
	s := p.flipSigns()
	w := -v[2]
	c := skyclip.Vec4{
		s.X * v[0] / p.scaling.X,
		s.Y * v[1] / p.scaling.Y,
		-v[2] - 2*p.Near*v[3],
		w,
	}
	return c, w > 0
}

// Backward maps NDC to a direction. Every point of the window has an inverse.
func (p *Perspective) Backward(ndc r2.Point) (r3.Vector, bool) {
	plane := p.toPlane(ndc)
	return r3.Vector{X: plane.X, Y: plane.Y, Z: -1}.Normalize(), true
}
