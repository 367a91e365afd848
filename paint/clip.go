package paint

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/polygon"
)

// ClipInfo approximates the viewport in one reference frame.
type ClipInfo struct {
	// BoundingCap contains every direction visible in the window.
	BoundingCap s2.Cap
	// SideCaps are half-spaces, one per window edge, each containing the
	// viewport. Only valid if SideCapCount is 4.
	SideCaps [4]s2.Cap
	// SideCapCount is 4, or 0 if the viewport spans more than a hemisphere.
	SideCapCount int
	// SkyCap contains everything above the horizon, with a small margin.
	SkyCap s2.Cap
}

// UpdateClipInfo recomputes the clip descriptors of all frames. Call it
// whenever the projection or the observer change.
func (p *Painter) UpdateClipInfo() {
	for _, f := range frame.Frames() {
		p.computeViewportCap(f)
		p.computeSkyCap(f)
	}
}

func (p *Painter) computeViewportCap(f frame.Frame) {
	info := &p.ClipInfo[f]
	info.SideCapCount = 0
	size := p.Proj.WindowSize()
	w, h := size.X, size.Y
	center, ok := p.Unproject(f, r2.Point{X: w / 2, Y: h / 2})
	if !ok || !skyclip.IsNormalized(center) {
		tracer().Errorf("cannot unproject window center in frame %s", f)
		info.BoundingCap = s2.FullCap()
		return
	}
	var corners [4]r3.Vector
	maxSep := 0.0
	singular := false
	for i, win := range [4]r2.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}} {
		corners[i], ok = p.Unproject(f, win)
		if !ok {
			singular = true
			continue
		}
		maxSep = math.Max(maxSep, skyclip.Separation(center, corners[i]))
	}
	if singular {
		maxSep = math.Pi
	}
	info.BoundingCap = skyclip.CapFromCos(center, math.Cos(maxSep))
	if maxSep > math.Pi/2 {
		return
	}
	cpt := s2.Point{Vector: center}
	for i := range corners {
		n := corners[i].Cross(corners[(i+1)%4]).Normalize()
		side := skyclip.CapFromCos(n, 0)
		if !side.ContainsPoint(cpt) {
			side = skyclip.CapFromCos(n.Mul(-1), 0)
		}
		info.SideCaps[i] = side
	}
	info.SideCapCount = 4
}

func (p *Painter) computeSkyCap(f frame.Frame) {
	zenith := p.Obs.Convert(frame.Observed, f, true, r3.Vector{Z: 1})
	p.ClipInfo[f].SkyCap = skyclip.CapFromCos(zenith, math.Cos(math.Pi/2+p.config.SkyCapMargin))
}

// === Visibility tests ======================================================

// IsCapClipped is a predicate: is cap c (in frame f) certainly invisible?
func (p *Painter) IsCapClipped(f frame.Frame, c s2.Cap) bool {
	info := &p.ClipInfo[f]
	if !info.BoundingCap.Intersects(c) {
		return true
	}
	if p.Flags&HideBelowHorizon != 0 && !info.SkyCap.Intersects(c) {
		return true
	}
	for i := 0; i < info.SideCapCount; i++ {
		if !info.SideCaps[i].Intersects(c) {
			return true
		}
	}
	return false
}

// IsPointClippedFast is a predicate: is the direction v (in frame f)
// certainly invisible? The test only uses the clip caps and therefore
// ignores what the projection does in detail.
func (p *Painter) IsPointClippedFast(f frame.Frame, v r3.Vector, normalized bool) bool {
	if !normalized {
		v = v.Normalize()
	}
	pt := s2.Point{Vector: v}
	info := &p.ClipInfo[f]
	if !info.BoundingCap.ContainsPoint(pt) {
		return true
	}
	if p.Flags&HideBelowHorizon != 0 && !info.SkyCap.ContainsPoint(pt) {
		return true
	}
	for i := 0; i < info.SideCapCount; i++ {
		if !info.SideCaps[i].ContainsPoint(pt) {
			return true
		}
	}
	return false
}

// Is2DPointInWindow is a predicate: does the window contain pt (borders
// included)?
func (p *Painter) Is2DPointInWindow(pt r2.Point) bool {
	size := p.Proj.WindowSize()
	return pt.X >= 0 && pt.X <= size.X && pt.Y >= 0 && pt.Y <= size.Y
}

// Is2DCircleClipped is a predicate: does a circle miss the window?
func (p *Painter) Is2DCircleClipped(center r2.Point, radius float64) bool {
	size := p.Proj.WindowSize()
	half := size.Mul(0.5)
	dx := math.Abs(center.X - half.X)
	dy := math.Abs(center.Y - half.Y)
	if dx > half.X+radius || dy > half.Y+radius {
		return true
	}
	if dx <= half.X || dy <= half.Y {
		return false
	}
	cx, cy := dx-half.X, dy-half.Y
	return cx*cx+cy*cy > radius*radius
}

// Is2DPolygonClipped is a predicate: does a window-space polygon miss the
// window?
func (p *Painter) Is2DPolygonClipped(pts []r2.Point) bool {
	if len(pts) < 3 {
		tracer().Debugf("degenerate polygon with %d points", len(pts))
		for _, pt := range pts {
			if p.Is2DPointInWindow(pt) {
				return false
			}
		}
		return true
	}
	return !p.window().Overlaps(polygon.FromPoints(pts))
}

func (p *Painter) window() *polygon.Polygon {
	return polygon.Box(r2.Point{}, p.Proj.WindowSize())
}
