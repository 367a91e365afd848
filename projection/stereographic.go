package projection

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip"
)

// Stereographic is the conformal azimuthal projection from the point
// opposite the viewing direction. It can show almost the whole sphere and
// has no seam; only the antipode of the viewing direction is singular.
type Stereographic struct {
	base
}

var _ Projection = &Stereographic{}

func stereoRadius(theta float64) float64 {
	return 2 * math.Tan(theta/2)
}

// NewStereographic creates a stereographic projection with vertical field of
// view fovy (radians, < 2π).
func NewStereographic(fovy, width, height float64) *Stereographic {
	return &Stereographic{base: newBase(fovy, width, height, 0, stereoRadius)}
}

// ToClip maps v to clip coordinates with w = 1. Directions too close to the
// antipode cannot be projected.
func (p *Stereographic) ToClip(v skyclip.Vec4, normalized bool) (skyclip.Vec4, bool) {
	u := unit(v, normalized)
	ok := true
	denom := 1 - u.Z
	if denom < skyclip.Epsilon {
		denom, ok = skyclip.Epsilon, false
	}
	ndc := p.toNDC(r2.Point{X: 2 * u.X / denom, Y: 2 * u.Y / denom})
	return skyclip.Vec4{ndc.X, ndc.Y, 0, 1}, ok
}

// Backward maps NDC to a direction. Every point of the window has an inverse.
func (p *Stereographic) Backward(ndc r2.Point) (r3.Vector, bool) {
	plane := p.toPlane(ndc)
	rho2 := plane.Dot(plane)
	d := 4 + rho2
	return r3.Vector{X: 4 * plane.X / d, Y: 4 * plane.Y / d, Z: (rho2 - 4) / d}, true
}
