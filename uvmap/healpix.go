package uvmap

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/skyclip"
)

// Healpix is a map over one pixel of a HEALPix tessellation in the nested
// scheme. u runs along the face's x-axis, v along its y-axis.
type Healpix struct {
	order int
	pix   int
	face  int
	ix    int // pixel coordinates within the face
	iy    int
	nside float64

	// AtInfinity makes the map return directions (w = 0), as needed for sky
	// surveys. Otherwise points are positions on the unit sphere (w = 1),
	// e.g. the surface of a planet.
	AtInfinity bool
}

var _ Map = &Healpix{}

// Ring indices and longitude offsets of the twelve base faces.
var (
	jrll = [12]float64{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
	jpll = [12]float64{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
)

// NPix returns the number of pixels of a HEALPix tessellation at order.
func NPix(order int) int {
	return 12 << (2 * order)
}

// ValidPixel is a predicate: is pix a pixel index at order?
func ValidPixel(order, pix int) bool {
	return order >= 0 && order < 30 && pix >= 0 && pix < NPix(order)
}

// NewHealpix creates the map for pixel pix at the given order. It panics if
// pix is not a valid pixel index.
func NewHealpix(order, pix int, atInfinity bool) *Healpix {
	if !ValidPixel(order, pix) {
		panic(fmt.Sprintf("invalid healpix pixel %d at order %d", pix, order))
	}
	npface := 1 << (2 * order)
	ipf := pix & (npface - 1)
	return &Healpix{
		order:      order,
		pix:        pix,
		face:       pix >> (2 * order),
		ix:         compressBits(ipf),
		iy:         compressBits(ipf >> 1),
		nside:      float64(int(1) << order),
		AtInfinity: atInfinity,
	}
}

// compressBits collects the even bits of v.
func compressBits(v int) int {
	r := 0
	for i := 0; v != 0; i++ {
		r |= (v & 1) << i
		v >>= 2
	}
	return r
}

// Pix returns the pixel index.
func (h *Healpix) Pix() int {
	return h.pix
}

// Face returns the base face (0…11) the pixel lies on.
func (h *Healpix) Face() int {
	return h.face
}

// Order returns the HEALPix order.
func (h *Healpix) Order() int {
	return h.order
}

// Map evaluates the pixel at uv.
func (h *Healpix) Map(uv r2.Point) skyclip.Vec4 {
	x := (float64(h.ix) + uv.X) / h.nside
	y := (float64(h.iy) + uv.Y) / h.nside
	v := xyf2vec(x, y, h.face)
	if h.AtInfinity {
		return skyclip.V4(v.Vector, 0)
	}
	return skyclip.V4(v.Vector, 1)
}

// BoundingCap samples the border of the pixel.
func (h *Healpix) BoundingCap() s2.Cap {
	return boundingCap(h)
}

// Grid evaluates the pixel on a regular grid.
func (h *Healpix) Grid(size int) []skyclip.Vec4 {
	return grid(h, size)
}

// Subdivide returns the four nested children of the pixel.
func (h *Healpix) Subdivide() [4]Map {
	var children [4]Map
	for i := range children {
		children[i] = NewHealpix(h.order+1, h.pix*4+i, h.AtInfinity)
	}
	return children
}

func (h *Healpix) String() string {
	return fmt.Sprintf("healpix(%d,%d)", h.order, h.pix)
}

// xyf2vec converts continuous face coordinates x, y ∈ [0,1] on face f to a
// direction.
func xyf2vec(x, y float64, f int) s2.Point {
	jr := jrll[f] - x - y
	var nr, z, sth float64
	haveSth := false
	switch {
	case jr < 1:
		nr = jr
		tmp := nr * nr / 3
		z = 1 - tmp
		if z > 0.99 {
			sth, haveSth = math.Sqrt(tmp*(2-tmp)), true
		}
	case jr > 3:
		nr = 4 - jr
		tmp := nr * nr / 3
		z = tmp - 1
		if z < -0.99 {
			sth, haveSth = math.Sqrt(tmp*(2-tmp)), true
		}
	default:
		nr = 1
		z = (2 - jr) * 2 / 3
	}
	tmp := jpll[f]*nr + x - y
	if tmp < 0 {
		tmp += 8
	}
	if tmp >= 8 {
		tmp -= 8
	}
	phi := 0.0
	if nr >= 1e-15 {
		phi = math.Pi / 4 * tmp / nr
	}
	if !haveSth {
		sth = math.Sqrt((1 - z) * (1 + z))
	}
	sinPhi, cosPhi := math.Sincos(phi)
	return s2.PointFromCoords(sth*cosPhi, sth*sinPhi, z)
}
