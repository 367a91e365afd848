package skyclip

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if Zap(a) != 0 {
		t.Errorf("Expected zapped a to be 0, is %g", Zap(a))
	}
	if !Is1(1 + a) {
		t.Errorf("Expected 1+a to be one, is not")
	}
}

func TestCapPointContainment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dirs := []r3.Vector{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: -1},
		r3.Vector{X: 1, Y: 2, Z: 3}.Normalize(),
		r3.Vector{X: -0.3, Y: 0.1, Z: 0.7}.Normalize(),
	}
	for _, d := range dirs {
		c := CapFromCos(d, 1)
		assert.True(t, c.ContainsPoint(s2.Point{Vector: d}), "zero-radius cap must contain its center %v", d)
		d2 := r3.Vector{X: d.X + 0.01, Y: d.Y - 0.02, Z: d.Z}.Normalize()
		assert.False(t, c.ContainsPoint(s2.Point{Vector: d2}), "zero-radius cap must exclude %v", d2)
	}
}

func TestCapCosRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	center := r3.Vector{X: 0, Y: 0, Z: 1}
	for _, cos := range []float64{1, 0.9, 0.5, 0, -0.0174, -0.5, -1} {
		c := CapFromCos(center, cos)
		assert.InDelta(t, cos, CapCos(c), 1e-12)
	}
	assert.True(t, CapFromCos(center, -1).IsFull())
	hemi := CapFromCos(center, 0)
	assert.True(t, hemi.ContainsPoint(s2.Point{Vector: r3.Vector{X: 1, Y: 0, Z: 0}}))
	assert.False(t, hemi.ContainsPoint(s2.Point{Vector: r3.Vector{X: 1, Y: 0, Z: -0.01}.Normalize()}))
}

func TestSeparation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	x := r3.Vector{X: 1}
	y := r3.Vector{Y: 2}
	assert.InDelta(t, math.Pi/2, Separation(x, y), 1e-12)
	assert.InDelta(t, math.Pi, Separation(x, x.Mul(-3)), 1e-12)
}

func TestMat3Rotations(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := Identity3().RotZ(math.Pi / 2)
	v := m.MulVec(r3.Vector{X: 1})
	assert.True(t, v.ApproxEqual(r3.Vector{Y: 1}), "Rz(90°)·x = %v", v)
	mt := m.Transpose().Mul(m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, mt[i][j], 1e-12)
		}
	}
}

func TestMat4(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.True(t, Identity4().IsIdentity())
	noisy := Identity4()
	noisy[0][0], noisy[1][3] = 1+1e-12, -1e-12
	assert.True(t, noisy.IsIdentity(), "identity within ε")
	m := Translation4(r3.Vector{X: 1, Y: 2, Z: 3}).Mul(Scaling4(2))
	assert.False(t, m.IsIdentity())
	p := m.MulVec4(Vec4{1, 1, 1, 1})
	assert.Equal(t, Vec4{3, 4, 5, 1}, p)
	d := m.MulVec4(Vec4{1, 1, 1, 0})
	assert.Equal(t, Vec4{2, 2, 2, 0}, d, "directions must not be translated")
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, m.Translation())
}

func TestVec4Mix(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a, b := Vec4{0, 0, 0, 1}, Vec4{2, 4, 6, 1}
	assert.Equal(t, a, a.Mix(b, 0))
	assert.Equal(t, b, a.Mix(b, 1))
	assert.Equal(t, Vec4{1, 2, 3, 1}, a.Mix(b, 0.5))
	assert.True(t, Vec4{0, math.NaN(), 0, 0}.HasNaN())
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Translation(r2.Point{X: -1, Y: -1}).Transform(r2.Point{X: 1, Y: 1})
	if !Is0(p.X) || !Is0(p.Y) {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is %v", p)
	}
	p = Rotation(180 * Deg2Rad).Combine(Translation(r2.Point{X: 1})).Transform(r2.Point{X: 1})
	if !Is0(p.X) || !Is0(p.Y) {
		t.Errorf("Expected result to be origin, is %v", p)
	}
}

func TestATColumns(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := Scaling(2, 3).Combine(Translation(r2.Point{X: 10, Y: 20}))
	assert.True(t, m.IsValid())
	assert.Equal(t, r2.Point{X: 2}, m.Column(0))
	assert.Equal(t, r2.Point{Y: 3}, m.Column(1))
	assert.Equal(t, r2.Point{X: 10, Y: 20}, m.Column(2))
	assert.False(t, AT{1, 2}.IsValid())
}
