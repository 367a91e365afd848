package tessellate

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// circle is a curve whose evaluation at 1 does not reproduce the value at
// 0 bit for bit.
func circle(t float64) r2.Point {
	s, c := math.Sincos(2 * math.Pi * t)
	return r2.Point{X: 400 + 100*c, Y: 300 + 100*s}
}

func parabola(t float64) r2.Point {
	return r2.Point{X: t * 1000, Y: 1000 * t * t}
}

func TestUniformEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, split := range []int{1, 2, 3, 7, 64} {
		pts := Uniform(circle, split)
		require.Len(t, pts, split+1)
		assert.Equal(t, circle(0), pts[0])
		assert.Equal(t, circle(1), pts[split])
	}
	assert.Len(t, Uniform(circle, 0), 2)
	assert.Len(t, Uniform(circle, -3), 2)
}

func TestUniformSpacing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	line := func(t float64) r2.Point { return r2.Point{X: 10 * t, Y: -5 * t} }
	pts := Uniform(line, 4)
	for i, p := range pts {
		assert.InDelta(t, 2.5*float64(i), p.X, 1e-12)
		assert.InDelta(t, -1.25*float64(i), p.Y, 1e-12)
	}
}

func TestAdaptiveEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, fn := range []CurveFunc{circle, parabola} {
		pts := Adaptive(fn, 0.5, 10)
		require.True(t, len(pts) >= 3)
		assert.Equal(t, fn(0), pts[0])
		assert.Equal(t, fn(1), pts[len(pts)-1])
	}
}

func TestAdaptiveTolerance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	coarse := Adaptive(parabola, 10, 12)
	fine := Adaptive(parabola, 0.1, 12)
	assert.True(t, len(fine) > len(coarse), "finer tolerance must refine more")
	// a straight line needs no refinement beyond the first split
	line := func(t float64) r2.Point { return r2.Point{X: t, Y: 2 * t} }
	assert.Len(t, Adaptive(line, 0.01, 12), 3)
}

func TestAdaptiveDepthCap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := Adaptive(parabola, 0, 3)
	assert.Len(t, pts, 9)
	assert.Len(t, Adaptive(parabola, 0, 100), 1<<MaxDepth+1)
}

func TestAdaptiveNaN(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	broken := func(t float64) r2.Point {
		if t > 0.5 {
			return r2.Point{X: math.NaN(), Y: math.NaN()}
		}
		return r2.Point{X: t, Y: t * t}
	}
	pts := Adaptive(broken, 0.001, 8)
	assert.Equal(t, r2.Point{}, pts[0])
	assert.True(t, math.IsNaN(pts[len(pts)-1].X))
}
