package paint

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/uvmap"
)

// recorder is a backend implementing every capability. It records calls.
type recorder struct {
	prepared    []bool // cullFlipped per Prepare
	finished    int
	points      [][]Point
	quads       []uvmap.Map
	lines       [][]r2.Point
	meshes      []*Painter
	texts       []string
	textures    []Color
	textureUV   [][4]r2.Point
	ellipses    []shape2D
	rects       []shape2D
	lines2D     [][2]r2.Point
	boundsCalls int
}

type shape2D struct {
	painter   *Painter
	stripes   float64
	pos, size r2.Point
	angle     float64
}

func (r *recorder) Prepare(width, height, scale float64, cullFlipped bool) {
	r.prepared = append(r.prepared, cullFlipped)
}

func (r *recorder) Finish() {
	r.finished++
}

func (r *recorder) Points2D(p *Painter, points []Point) {
	r.points = append(r.points, points)
}

func (r *recorder) Quad(p *Painter, f frame.Frame, gridSize int, m uvmap.Map) {
	r.quads = append(r.quads, m)
}

func (r *recorder) Line(p *Painter, line []r2.Point) {
	r.lines = append(r.lines, line)
}

func (r *recorder) Mesh(p *Painter, f frame.Frame, mode MeshMode, verts []r3.Vector, indices []uint16) {
	r.meshes = append(r.meshes, p)
}

func (r *recorder) Text(text string, pos r2.Point, align Align, effects TextEffects, size float64,
	color Color, angle float64) {
	r.texts = append(r.texts, text)
}

func (r *recorder) TextBounds(text string, pos r2.Point, align Align, effects TextEffects, size float64) r2.Rect {
	r.boundsCalls++
	w := float64(len(text)) * size / 2
	return r2.RectFromPoints(pos, pos.Add(r2.Point{X: w, Y: size}))
}

func (r *recorder) Texture(tex Texture, uv [4]r2.Point, pos r2.Point, size float64, color Color, angle float64) {
	r.textures = append(r.textures, color)
	r.textureUV = append(r.textureUV, uv)
}

func (r *recorder) Ellipse2D(p *Painter, pos, size r2.Point, angle float64) {
	r.ellipses = append(r.ellipses, shape2D{painter: p, stripes: p.LinesStripes, pos: pos, size: size, angle: angle})
}

func (r *recorder) Rect2D(p *Painter, pos, size r2.Point, angle float64) {
	r.rects = append(r.rects, shape2D{painter: p, pos: pos, size: size, angle: angle})
}

func (r *recorder) Line2D(p *Painter, p1, p2 r2.Point) {
	r.lines2D = append(r.lines2D, [2]r2.Point{p1, p2})
}

var (
	_ Preparer         = &recorder{}
	_ Finisher         = &recorder{}
	_ PointsPainter    = &recorder{}
	_ QuadPainter      = &recorder{}
	_ LinePainter      = &recorder{}
	_ MeshPainter      = &recorder{}
	_ TextPainter      = &recorder{}
	_ TextMeasurer     = &recorder{}
	_ TexturePainter   = &recorder{}
	_ Ellipse2DPainter = &recorder{}
	_ Rect2DPainter    = &recorder{}
	_ Line2DPainter    = &recorder{}
)

// fakeTexture is ready once loaded is set.
type fakeTexture struct {
	loaded bool
	calls  int
}

func (t *fakeTexture) Load() bool {
	t.calls++
	return t.loaded
}
