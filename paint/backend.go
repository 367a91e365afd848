package paint

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/uvmap"
)

// Backend capabilities. A backend implements any subset of them; the
// painter checks each one before use.

// Preparer starts a frame.
type Preparer interface {
	Prepare(width, height, scale float64, cullFlipped bool)
}

// Finisher ends a frame.
type Finisher interface {
	Finish()
}

// PointsPainter draws 2D point sprites.
type PointsPainter interface {
	Points2D(p *Painter, points []Point)
}

// QuadPainter draws a textured curved quad, evaluated on a grid of
// gridSize×gridSize cells.
type QuadPainter interface {
	Quad(p *Painter, f frame.Frame, gridSize int, m uvmap.Map)
}

// LinePainter draws a window-space polyline.
type LinePainter interface {
	Line(p *Painter, line []r2.Point)
}

// MeshPainter draws an indexed mesh given in frame coordinates.
type MeshPainter interface {
	Mesh(p *Painter, f frame.Frame, mode MeshMode, verts []r3.Vector, indices []uint16)
}

// TextPainter draws text.
type TextPainter interface {
	Text(text string, pos r2.Point, align Align, effects TextEffects, size float64, color Color, angle float64)
}

// TextMeasurer computes the window-space bounds text would occupy.
type TextMeasurer interface {
	TextBounds(text string, pos r2.Point, align Align, effects TextEffects, size float64) r2.Rect
}

// TexturePainter draws a texture sprite.
type TexturePainter interface {
	Texture(tex Texture, uv [4]r2.Point, pos r2.Point, size float64, color Color, angle float64)
}

// Ellipse2DPainter draws an ellipse outline in window space.
type Ellipse2DPainter interface {
	Ellipse2D(p *Painter, pos, size r2.Point, angle float64)
}

// Rect2DPainter draws a rectangle outline in window space. size holds the
// half extents.
type Rect2DPainter interface {
	Rect2D(p *Painter, pos, size r2.Point, angle float64)
}

// Line2DPainter draws a straight window-space line.
type Line2DPainter interface {
	Line2D(p *Painter, p1, p2 r2.Point)
}

// Point is a 2D point sprite.
type Point struct {
	Pos   r2.Point
	Size  float64
	Color Color
}

// MeshMode tells how mesh indices are grouped.
type MeshMode int

// Mesh modes.
const (
	MeshTriangles MeshMode = iota // every three indices form a triangle
	MeshLines                     // every two indices form a line segment
)

// Align is a text alignment, a combination of a horizontal and a vertical
// flag.
type Align uint

// Alignment flags. AlignLeft, AlignCenter and AlignRight place the text
// horizontally relative to its position, the others vertically.
const (
	AlignLeft Align = 1 << iota
	AlignCenter
	AlignRight
	AlignTop
	AlignMiddle
	AlignBottom
	AlignBaseline // position is on the text's baseline
)

// TextEffects select text decorations.
type TextEffects uint

// Text effects, to be or-ed together.
const (
	TextUppercase TextEffects = 1 << iota // render in capitals
	TextBold
	TextSmallCaps
	TextDemibold
	TextSpaced // wider letter spacing
)

// === Textures ==============================================================

// Texture is an image the backend can draw. Loading is asynchronous; Load
// reports whether the texture is ready and starts loading otherwise.
type Texture interface {
	Load() bool
}

// TextureSlot selects one of the painter's texture bindings.
type TextureSlot int

const (
	TexColor TextureSlot = iota
	TexNormal
	TextureSlots
)

type textureBinding struct {
	tex Texture
	uv  skyclip.AT // treated as immutable, shared by derived painters
}

// SetTexture binds tex to slot. uv selects the part of the texture to use;
// nil means the whole texture. A slot can be bound once per painter; bind
// textures on a derived painter.
func (p *Painter) SetTexture(slot TextureSlot, tex Texture, uv skyclip.AT) {
	if !p.assert(slot >= 0 && slot < TextureSlots, "invalid texture slot %d", slot) {
		return
	}
	if !p.assert(p.textures[slot].tex == nil, "texture slot %d already bound", slot) {
		return
	}
	if uv == nil {
		uv = skyclip.Identity()
	}
	p.textures[slot] = textureBinding{tex: tex, uv: uv}
}

// BoundTexture returns the texture bound to slot and its uv transform.
func (p *Painter) BoundTexture(slot TextureSlot) (Texture, skyclip.AT) {
	if slot < 0 || slot >= TextureSlots {
		return nil, nil
	}
	b := p.textures[slot]
	return b.tex, b.uv
}
