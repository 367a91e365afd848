package paint

import (
	"github.com/golang/geo/s2"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/uvmap"
)

// clipPlanes are the six half-spaces of the clip volume -w ≤ x,y,z ≤ w.
// A point is inside a plane if the dot product is ≤ 0.
var clipPlanes = [6]skyclip.Vec4{
	{-1, 0, 0, -1}, {1, 0, 0, -1},
	{0, -1, 0, -1}, {0, 1, 0, -1},
	{0, 0, -1, -1}, {0, 0, 1, -1},
}

// isClipped is a predicate: are all points in clip coordinates outside one
// of the clip planes?
func isClipped(pts []skyclip.Vec4) bool {
	for _, plane := range clipPlanes {
		outside := true
		for _, c := range pts {
			if plane[0]*c[0]+plane[1]*c[1]+plane[2]*c[2]+plane[3]*c[3] <= 0 {
				outside = false
				break
			}
		}
		if outside {
			return true
		}
	}
	return false
}

// IsQuadClipped is a predicate: is the curved quad m (in frame f) certainly
// invisible?
//
// outside tells that m is seen from outside of a convex body, as the tiles
// of a sky survey are. Otherwise m is part of the surface of a body, e.g. a
// planet tile positioned by the painter's transform, and back-facing tiles
// are culled too.
//
// Quads of order below 2 are too distorted for a corner test. Sky tiles are
// then only tested with their bounding cap; surface tiles are subdivided
// and clipped only if all of their children are.
func (p *Painter) IsQuadClipped(f frame.Frame, m uvmap.Map, outside bool) bool {
	return p.isQuadClipped(f, m, outside, 0)
}

// IsHealpixClipped is IsQuadClipped for a HEALPix tile. Sky tiles
// (outside) are evaluated as directions, surface tiles as positions on the
// unit sphere. An invalid pixel is reported as not clipped.
func (p *Painter) IsHealpixClipped(f frame.Frame, order, pix int, outside bool) bool {
	if !p.assert(uvmap.ValidPixel(order, pix), "invalid healpix pixel %d at order %d", pix, order) {
		return false
	}
	return p.IsQuadClipped(f, uvmap.NewHealpix(order, pix, outside), outside)
}

func (p *Painter) isQuadClipped(f frame.Frame, m uvmap.Map, outside bool, depth int) bool {
	order := m.Order()
	if outside {
		bc := m.BoundingCap()
		center := p.Transform.MulDir(skyclip.CapCenter(bc))
		p.assert(skyclip.IsNormalized(center), "quad transform must not scale")
		bc = s2.CapFromCenterAngle(s2.Point{Vector: center.Normalize()}, bc.Radius())
		if p.IsCapClipped(f, bc) {
			return true
		}
		if order < 2 {
			return false
		}
	}
	if order < 2 {
		if depth >= p.config.QuadMaxDepth {
			tracer().Debugf("quad subdivision stopped at depth %d, order %d", depth, order)
			return false
		}
		for _, child := range m.Subdivide() {
			if !p.isQuadClipped(f, child, outside, depth+1) {
				return false
			}
		}
		return true
	}

	corners := m.Grid(1)
	var clip [4]skyclip.Vec4
	for i, corner := range corners[:4] {
		v := p.Transform.MulVec4(corner)
		v = p.Obs.ConvertV4(f, frame.View, v)
		clip[i], _ = p.Proj.ToClip(v, false)
		if clip[i].HasNaN() {
			tracer().Debugf("quad corner %d cannot be projected", i)
			return false
		}
	}
	if isClipped(clip[:]) {
		return true
	}

	if !outside && order > 1 {
		return p.isBackFacing(f, corners[:4])
	}
	return false
}

// isBackFacing is a predicate: do the normals of all corners of a surface
// tile point away from the viewer? The direction from the viewer to the
// body center is the translation of the painter's transform.
func (p *Painter) isBackFacing(f frame.Frame, corners []skyclip.Vec4) bool {
	direction := p.Transform.Translation()
	if direction.Norm2() == 0 {
		return false // the viewer sits at the body center
	}
	direction = p.Obs.Convert(f, frame.View, true, direction.Normalize())
	for _, corner := range corners {
		normal := p.Transform.MulDir(corner.XYZ()).Normalize()
		normal = p.Obs.Convert(f, frame.View, true, normal)
		if normal.Dot(direction) < 0 {
			return false
		}
	}
	return true
}
