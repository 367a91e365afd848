package frame

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/skyclip"
	"github.com/stretchr/testify/assert"
)

const d2r = skyclip.Deg2Rad

func testObserver() *Observer {
	obs := NewObserver(48*d2r, 37*d2r, 120*d2r, 30*d2r)
	obs.Position = r3.Vector{X: 0.3, Y: -0.9, Z: 0.1}
	obs.Update()
	return obs
}

func assertVecInDelta(t *testing.T, want, got r3.Vector, delta float64, msg ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msg...)
	assert.InDelta(t, want.Y, got.Y, delta, msg...)
	assert.InDelta(t, want.Z, got.Z, delta, msg...)
}

func TestFrameNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "VIEW", View.String())
	assert.Equal(t, "Frame(9)", Frame(9).String())
	assert.Len(t, Frames(), int(Count))
	assert.False(t, Count.Valid())
}

func TestDirectionNormPreserved(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	obs := testObserver()
	v := r3.Vector{X: 0.2, Y: -0.5, Z: 0.7}.Normalize()
	for _, from := range Frames() {
		for _, to := range Frames() {
			w := obs.Convert(from, to, true, v)
			assert.InDelta(t, 1.0, w.Norm(), 1e-12, "%s → %s", from, to)
		}
	}
}

func TestConversionComposes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	obs := testObserver()
	v := r3.Vector{X: 1.5, Y: 0.25, Z: -2}
	for _, isDir := range []bool{true, false} {
		for _, a := range Frames() {
			for _, b := range Frames() {
				for _, c := range Frames() {
					direct := obs.Convert(a, c, isDir, v)
					chained := obs.Convert(b, c, isDir, obs.Convert(a, b, isDir, v))
					assertVecInDelta(t, direct, chained, 1e-9, "%s → %s → %s", a, b, c)
				}
			}
		}
	}
}

func TestZenithAndPole(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	lat := 48 * d2r
	obs := NewObserver(lat, 1.234, 0, 0)
	pole := obs.Convert(ICRF, Observed, true, r3.Vector{Z: 1})
	// the celestial pole stands above the northern horizon at altitude = latitude
	assertVecInDelta(t, r3.Vector{X: math.Cos(lat), Z: math.Sin(lat)}, pole, 1e-12)
	// a star on the meridian at the equator culminates in the south
	s, c := math.Sincos(obs.SiderealTime)
	meridian := obs.Convert(ICRF, Observed, true, r3.Vector{X: c, Y: s})
	assertVecInDelta(t, r3.Vector{X: -math.Sin(lat), Z: math.Cos(lat)}, meridian, 1e-12)
}

func TestViewLooksAlongMinusZ(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, tc := range []struct{ az, alt float64 }{
		{0, 0}, {90 * d2r, 10 * d2r}, {200 * d2r, -30 * d2r}, {0, 90 * d2r},
	} {
		obs := NewObserver(0.5, 0.5, tc.az, tc.alt)
		center := obs.Convert(View, Observed, true, r3.Vector{Z: -1})
		want := r3.Vector{
			X: math.Cos(tc.alt) * math.Cos(tc.az),
			Y: -math.Cos(tc.alt) * math.Sin(tc.az),
			Z: math.Sin(tc.alt),
		}
		assertVecInDelta(t, want, center, 1e-12, "az=%g alt=%g", tc.az, tc.alt)
		up := obs.Convert(View, Observed, true, r3.Vector{Y: 1})
		assert.True(t, up.Z >= -1e-12, "screen up must not point below the horizon")
	}
}

func TestPositionsShiftOrigin(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	obs := testObserver()
	// the observer sits at the origin of the observed frame
	p := obs.Convert(ICRF, Observed, false, obs.Position)
	assertVecInDelta(t, r3.Vector{}, p, 1e-12)
	// but directions ignore the shift
	d := obs.Convert(ICRF, Observed, true, obs.Position)
	assert.InDelta(t, obs.Position.Norm(), d.Norm(), 1e-12)
}

func TestConvertV4(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	obs := testObserver()
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	dir := obs.ConvertV4(ICRF, View, skyclip.V4(v, 0))
	assert.Equal(t, 0.0, dir[3])
	assertVecInDelta(t, obs.Convert(ICRF, View, true, v), dir.XYZ(), 1e-12)
	pos := obs.ConvertV4(ICRF, View, skyclip.V4(v.Mul(2), 2))
	assertVecInDelta(t, obs.Convert(ICRF, View, false, v), pos.XYZ().Mul(1/pos[3]), 1e-12)
}

func TestConvertBatch(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	obs := testObserver()
	in := []r3.Vector{{X: 1}, {Y: 1}, {X: 1, Y: 1, Z: 1}}
	for _, isDir := range []bool{true, false} {
		batch := append([]r3.Vector(nil), in...)
		obs.ConvertBatch(Galactic, View, isDir, batch)
		for i, v := range in {
			assertVecInDelta(t, obs.Convert(Galactic, View, isDir, v), batch[i], 1e-12)
		}
	}
}

func TestGalacticCenter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	obs := testObserver()
	// galactic center: RA 266.405°, Dec -28.936°
	ra, de := 266.405*d2r, -28.936*d2r
	gc := r3.Vector{X: math.Cos(de) * math.Cos(ra), Y: math.Cos(de) * math.Sin(ra), Z: math.Sin(de)}
	g := obs.Convert(ICRF, Galactic, true, gc)
	assertVecInDelta(t, r3.Vector{X: 1}, g, 1e-3)
}
