package uvmap

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/skyclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plane maps the unit square to a patch around +x, so uv can be read back.
func plane(uv r2.Point) skyclip.Vec4 {
	return skyclip.V4(r3.Vector{X: 1, Y: uv.X, Z: uv.Y}, 0)
}

func TestGridCorners(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := NewFunc(plane, 0)
	g := m.Grid(1)
	require.Len(t, g, 4)
	assert.Equal(t, plane(r2.Point{}), g[0])
	assert.Equal(t, plane(r2.Point{X: 1}), g[1])
	assert.Equal(t, plane(r2.Point{Y: 1}), g[2])
	assert.Equal(t, plane(r2.Point{X: 1, Y: 1}), g[3])
	assert.Len(t, m.Grid(4), 25)
	assert.Len(t, m.Grid(0), 4, "grid size is at least 1")
}

func TestFuncSubdivide(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := NewFunc(plane, 0)
	children := m.Subdivide()
	for i, c := range children {
		assert.Equal(t, 1, c.Order())
		u0 := r2.Point{X: float64(i&1) / 2, Y: float64(i>>1) / 2}
		assert.Equal(t, plane(u0), c.Map(r2.Point{}), "child %d", i)
		assert.Equal(t, plane(u0.Add(r2.Point{X: .5, Y: .5})), c.Map(r2.Point{X: 1, Y: 1}), "child %d", i)
	}
	grand := children[3].Subdivide()[0]
	assert.Equal(t, 2, grand.Order())
	assert.Equal(t, plane(r2.Point{X: .5, Y: .5}), grand.Map(r2.Point{}))
}

func TestBoundingCapContainsSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := NewFunc(plane, 0)
	c := m.BoundingCap()
	for _, v := range m.Grid(10) {
		assert.True(t, c.ContainsPoint(s2.Point{Vector: v.XYZ().Normalize()}), "%v outside", v)
	}
	assert.False(t, c.ContainsPoint(s2.Point{Vector: r3.Vector{X: -1}}))
}

func TestGreatCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := r3.Vector{X: 1}
	b := r3.Vector{Y: 1}
	gc := GreatCircle(a, b)
	assert.InDelta(t, 0, a.Sub(gc.Map(r2.Point{}).XYZ()).Norm(), 1e-15)
	assert.InDelta(t, 0, b.Sub(gc.Map(r2.Point{X: 1}).XYZ()).Norm(), 1e-15)
	mid := gc.Map(r2.Point{X: .5}).XYZ()
	assert.InDelta(t, 1.0, mid.Norm(), 1e-12)
	assert.InDelta(t, math.Pi/4, skyclip.Separation(a, mid), 1e-12)
	assert.Equal(t, 0.0, mid.Z)
}

func TestCapBorder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := skyclip.CapFromCos(r3.Vector{Z: 1}, math.Cos(0.3))
	border := CapBorder(c)
	for _, u := range []float64{0, .1, .25, .6, 1} {
		p := border.Map(r2.Point{X: u}).XYZ()
		assert.InDelta(t, 1.0, p.Norm(), 1e-12)
		assert.InDelta(t, 0.3, skyclip.Separation(r3.Vector{Z: 1}, p), 1e-9)
	}
}

func TestHealpixBaseCenters(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 12, NPix(0))
	assert.Equal(t, 48, NPix(1))
	center := func(pix int) r3.Vector {
		return NewHealpix(0, pix, true).Map(r2.Point{X: .5, Y: .5}).XYZ()
	}
	// face 4 is centered on the equator at longitude 0
	assert.InDelta(t, 0, center(4).Sub(r3.Vector{X: 1}).Norm(), 1e-12)
	// face 0 is a northern face centered at longitude 45°
	c0 := center(0)
	assert.InDelta(t, 2.0/3, c0.Z, 1e-12)
	assert.InDelta(t, c0.X, c0.Y, 1e-12)
	// face 8 mirrors it in the south
	assert.InDelta(t, -2.0/3, center(8).Z, 1e-12)
}

func TestHealpixTiles(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for pix := 0; pix < NPix(1); pix++ {
		h := NewHealpix(1, pix, false)
		assert.Equal(t, pix/4, h.Face())
		c := h.BoundingCap()
		for _, v := range h.Grid(4) {
			assert.Equal(t, 1.0, v[3], "surface tiles are positions")
			assert.True(t, skyclip.IsNormalized(v.XYZ()))
			assert.True(t, c.ContainsPoint(s2.Point{Vector: v.XYZ()}), "pix %d: %v outside bounding cap", pix, v)
		}
		for _, child := range h.Subdivide() {
			assert.Equal(t, 2, child.Order())
			mid := child.Map(r2.Point{X: .5, Y: .5}).XYZ()
			assert.True(t, c.ContainsPoint(s2.Point{Vector: mid}), "child of %d outside parent", pix)
		}
	}
}

func TestHealpixNestedCorners(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	parent := NewHealpix(2, 77, true)
	assert.Equal(t, 0.0, parent.Map(r2.Point{})[3])
	children := parent.Subdivide()
	// the child with the parent's lower corner shares that corner
	assertVec := func(want, got skyclip.Vec4) {
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-12)
		}
	}
	assertVec(parent.Map(r2.Point{}), children[0].Map(r2.Point{}))
	assertVec(parent.Map(r2.Point{X: 1, Y: 1}), children[3].Map(r2.Point{X: 1, Y: 1}))
	assertVec(parent.Map(r2.Point{X: .5, Y: .5}), children[0].Map(r2.Point{X: 1, Y: 1}))
}

func TestHealpixInvalidPixel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Panics(t, func() { NewHealpix(0, 12, true) })
	assert.Panics(t, func() { NewHealpix(-1, 0, true) })
	assert.True(t, ValidPixel(0, 11))
	assert.True(t, ValidPixel(3, NPix(3)-1))
	assert.False(t, ValidPixel(2, 999))
	assert.False(t, ValidPixel(0, -1))
	assert.False(t, ValidPixel(30, 0), "order overflows the pixel count")
}
