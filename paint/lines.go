package paint

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/projection"
	"github.com/npillmayer/skyclip/tessellate"
	"github.com/npillmayer/skyclip/uvmap"
)

// adaptiveLineDepth bounds the refinement of LinesAdaptive.
const adaptiveLineDepth = 10

// lineCurve returns the window-space curve of a line from line[0] to
// line[1] in frame f. If m is given, the line's x and y are uv
// coordinates of m; otherwise the line is interpolated linearly in frame
// space. Points are projected as directions.
func (p *Painter) lineCurve(f frame.Frame, line [2]skyclip.Vec4, m uvmap.Map) tessellate.CurveFunc {
	return func(t float64) r2.Point {
		return p.projectDirection4(f, line[0].Mix(line[1], t), m)
	}
}

// viewDirection takes a line vertex through the uv map, the transform and
// the frame conversion.
func (p *Painter) viewDirection(f frame.Frame, pos skyclip.Vec4, m uvmap.Map) r3.Vector {
	if m != nil {
		pos = m.Map(r2.Point{X: pos[0], Y: pos[1]})
	}
	pos = p.Transform.MulVec4(pos)
	return p.Obs.Convert(f, frame.View, true, pos.XYZ().Normalize())
}

func (p *Painter) projectDirection4(f frame.Frame, pos skyclip.Vec4, m uvmap.Map) r2.Point {
	v := p.viewDirection(f, pos, m)
	win, _ := projection.Project(p.Proj, projection.AlreadyNormalized|projection.ToWindowSpace, skyclip.V4(v, 0))
	return win
}

// crossesDiscontinuity is a predicate: does the line cross a seam of the
// projection?
func (p *Painter) crossesDiscontinuity(f frame.Frame, line [2]skyclip.Vec4, m uvmap.Map) bool {
	d := projection.DiscontinuityOf(p.Proj)
	if d == nil {
		return false
	}
	return d.IntersectDiscontinuity(p.viewDirection(f, line[0], m), p.viewDirection(f, line[1], m))
}

// TessellateLine samples a line into a window-space polyline of split
// segments. With SkipDiscontinuous set, a line crossing a seam of the
// projection is dropped and nil is returned; lines are not split at seams.
func (p *Painter) TessellateLine(f frame.Frame, line [2]skyclip.Vec4, m uvmap.Map, split int, flags LineFlags) []r2.Point {
	p.assert(flags&^SkipDiscontinuous == 0, "unknown line flags %d", flags)
	if flags&SkipDiscontinuous != 0 && p.crossesDiscontinuity(f, line, m) {
		tracer().Debugf("line %v to %v crosses a discontinuity", line[0], line[1])
		return nil
	}
	return tessellate.Uniform(p.lineCurve(f, line, m), split)
}

// Lines paints line segments, given as consecutive pairs of vertices in
// frame f. See TessellateLine for the meaning of m, split and flags.
func (p *Painter) Lines(f frame.Frame, lines []skyclip.Vec4, m uvmap.Map, split int, flags LineFlags) error {
	return p.paintLines(f, lines, m, flags, func(line [2]skyclip.Vec4) []r2.Point {
		return tessellate.Uniform(p.lineCurve(f, line, m), split)
	})
}

// LinesAdaptive is Lines with adaptive sampling: segments are refined
// until they deviate less than tolerance pixels from the curve.
func (p *Painter) LinesAdaptive(f frame.Frame, lines []skyclip.Vec4, m uvmap.Map, tolerance float64, flags LineFlags) error {
	return p.paintLines(f, lines, m, flags, func(line [2]skyclip.Vec4) []r2.Point {
		return tessellate.Adaptive(p.lineCurve(f, line, m), tolerance, adaptiveLineDepth)
	})
}

func (p *Painter) paintLines(f frame.Frame, lines []skyclip.Vec4, m uvmap.Map, flags LineFlags,
	sample func([2]skyclip.Vec4) []r2.Point) error {
	//
	if !f.Valid() {
		return fmt.Errorf("cannot paint lines in %s: %w", f, ErrFrameNotSupported)
	}
	if len(lines)%2 != 0 {
		return fmt.Errorf("%d vertices: %w", len(lines), ErrOddLineVertices)
	}
	p.assert(flags&^SkipDiscontinuous == 0, "unknown line flags %d", flags)
	backend, ok := p.Backend.(LinePainter)
	if !ok {
		return nil
	}
	for i := 0; i < len(lines); i += 2 {
		line := [2]skyclip.Vec4{lines[i], lines[i+1]}
		if flags&SkipDiscontinuous != 0 && p.crossesDiscontinuity(f, line, m) {
			continue
		}
		backend.Line(p, sample(line))
	}
	return nil
}

// quadBorders are the four sides of the uv square, counter-clockwise.
var quadBorders = [4][2]skyclip.Vec4{
	{{0, 0, 0, 0}, {1, 0, 0, 0}},
	{{1, 0, 0, 0}, {1, 1, 0, 0}},
	{{1, 1, 0, 0}, {0, 1, 0, 0}},
	{{0, 1, 0, 0}, {0, 0, 0, 0}},
}

// QuadContour paints the borders of quad m selected by mask: bit i stands
// for side i of the uv square, starting with v = 0 and going
// counter-clockwise. A mask of 15 paints the full outline.
func (p *Painter) QuadContour(f frame.Frame, m uvmap.Map, split int, mask uint) error {
	lines := make([]skyclip.Vec4, 0, 8)
	for i, border := range quadBorders {
		if mask&(1<<i) != 0 {
			lines = append(lines, border[0], border[1])
		}
	}
	return p.Lines(f, lines, m, split, 0)
}

// TileContour paints the outline of a HEALPix tile. An invalid pixel
// paints nothing.
func (p *Painter) TileContour(f frame.Frame, order, pix, split int) error {
	if !p.assert(uvmap.ValidPixel(order, pix), "invalid healpix pixel %d at order %d", pix, order) {
		return nil
	}
	return p.QuadContour(f, uvmap.NewHealpix(order, pix, false), split, 15)
}

// Cap paints the border circle of cap c (in frame f), unless the cap lies
// outside the viewport. The circle is painted as two halves; a half
// crossing a seam of the projection is skipped.
func (p *Painter) Cap(f frame.Frame, c s2.Cap, split int) error {
	if !f.Valid() {
		return fmt.Errorf("cannot paint cap in %s: %w", f, ErrFrameNotSupported)
	}
	if !p.ClipInfo[f].BoundingCap.Intersects(c) {
		return nil
	}
	halves := []skyclip.Vec4{{0, 0, 0, 0}, {0.5, 0, 0, 0}, {0.5, 0, 0, 0}, {1, 0, 0, 0}}
	return p.Lines(f, halves, uvmap.CapBorder(c), (split+1)/2, SkipDiscontinuous)
}
