/*
Package paint is the geometric front end of a sky renderer. It decides
which primitives can possibly be visible before any pixel work happens, and
it moves geometry through the frame and projection pipeline into window
space.

A Painter bundles what a draw call needs: backend, projection, observer,
model transform, color, flags and texture slots, plus one clip descriptor
(ClipInfo) per reference frame. The descriptors are rebuilt by
UpdateClipInfo whenever the projection or the observer change; afterwards
they are read-only for the rest of the frame.

All visibility tests are conservative: a primitive reported as clipped is
guaranteed to be invisible, but a visible-looking primitive may still end
up without a single pixel on screen.

Backends are plain values. Each drawing capability is a small interface
(LinePainter, QuadPainter, …); a backend implements whatever subset it
supports and the painter silently skips the others.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package paint

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/skyclip"
	"github.com/npillmayer/skyclip/frame"
	"github.com/npillmayer/skyclip/projection"
)

// tracer writes to trace with key 'skyclip.paint'
func tracer() tracing.Trace {
	return tracing.Select("skyclip.paint")
}

// Errors returned by batch operations.
var (
	ErrOddLineVertices   = errors.New("line vertices must come in pairs")
	ErrFrameNotSupported = errors.New("frame not supported")
)

// Config holds settings which are fixed for the lifetime of a painter.
type Config struct {
	// Debug turns violated caller contracts into panics. Otherwise they are
	// traced and the offending operation does nothing.
	Debug bool
	// QuadMaxDepth bounds the recursive subdivision of low-order quads.
	QuadMaxDepth int
	// SkyCapMargin is how far below the horizon (radians) the sky cap
	// reaches.
	SkyCapMargin float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		QuadMaxDepth: 4,
		SkyCapMargin: 1 * skyclip.Deg2Rad,
	}
}

// Flags control what a painter draws.
type Flags uint

const (
	// HideBelowHorizon culls everything below the sky cap.
	HideBelowHorizon Flags = 1 << iota
)

// LineFlags modify line painting.
type LineFlags uint

const (
	// SkipDiscontinuous drops lines crossing a projection seam.
	SkipDiscontinuous LineFlags = 1 << iota
)

// Color is an RGBA color with components in [0…1].
type Color [4]float64

// White is the neutral color.
var White = Color{1, 1, 1, 1}

// Mul multiplies two colors component-wise.
func (c Color) Mul(d Color) Color {
	return Color{c[0] * d[0], c[1] * d[1], c[2] * d[2], c[3] * d[3]}
}

// Painter is the render context of a draw batch.
//
// Painters are values: Derive creates an independent copy with local
// overrides. Backend, projection and observer are shared collaborators and
// are never modified by the painter.
type Painter struct {
	Backend   any
	Proj      projection.Projection
	Obs       *frame.Observer
	Transform skyclip.Mat4 // model transform applied before frame conversion
	Color     Color
	Flags     Flags

	LinesWidth   float64
	LinesStripes float64 // number of dashes; 0 for solid lines

	ClipInfo [frame.Count]ClipInfo

	textures [TextureSlots]textureBinding
	config   Config
}

// NewPainter creates a painter with identity transform and white color.
// Clip descriptors are computed at once.
func NewPainter(backend any, proj projection.Projection, obs *frame.Observer, config Config) *Painter {
	if config.QuadMaxDepth <= 0 {
		config.QuadMaxDepth = DefaultConfig().QuadMaxDepth
	}
	p := &Painter{
		Backend:    backend,
		Proj:       proj,
		Obs:        obs,
		Transform:  skyclip.Identity4(),
		Color:      White,
		LinesWidth: 1,
		config:     config,
	}
	p.UpdateClipInfo()
	return p
}

// Config returns the painter's configuration.
func (p *Painter) Config() Config {
	return p.config
}

// === Derived painters ======================================================

// Option is a local override applied by Derive.
type Option func(*Painter)

// WithColor sets the color.
func WithColor(c Color) Option {
	return func(p *Painter) { p.Color = c }
}

// WithTransform sets the model transform.
func WithTransform(m skyclip.Mat4) Option {
	return func(p *Painter) { p.Transform = m }
}

// WithFlags sets the painter flags.
func WithFlags(f Flags) Option {
	return func(p *Painter) { p.Flags = f }
}

// WithLinesWidth sets the line width.
func WithLinesWidth(w float64) Option {
	return func(p *Painter) { p.LinesWidth = w }
}

// WithLinesStripes sets the number of dashes.
func WithLinesStripes(n float64) Option {
	return func(p *Painter) { p.LinesStripes = n }
}

// Derive returns a copy of p with opts applied. The copy owns all of its
// fields; changing it never affects p.
func (p *Painter) Derive(opts ...Option) Painter {
	c := *p
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// assert checks a caller contract. In debug mode a violation panics,
// otherwise it is traced and false is returned.
func (p *Painter) assert(cond bool, format string, args ...interface{}) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if p.config.Debug {
		panic("paint: " + msg)
	}
	tracer().Errorf("paint: %s", msg)
	return false
}
