package frame

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/npillmayer/skyclip"
)

// Obliquity of the ecliptic at J2000, in radians.
const obliquity = 23.4392911 * skyclip.Deg2Rad

// icrfToGalactic is the IAU rotation from equatorial to galactic coordinates.
var icrfToGalactic = skyclip.Mat3{
	{-0.0548755604162154, -0.8734370902348850, -0.4838350155487132},
	{+0.4941094278755837, -0.4448296299600112, +0.7469822444972189},
	{-0.8676661490190047, -0.1980763734312015, +0.4559837761750669},
}

// Observer holds everything needed to convert vectors between frames: where
// the observer is, which way the sky is turned and where the viewer looks.
//
// All angles are in radians. After changing any field, call Update to
// recompute the conversion matrices; conversions use the matrices of the
// last Update only.
type Observer struct {
	Latitude     float64   // geographic latitude
	SiderealTime float64   // local apparent sidereal time
	Azimuth      float64   // viewing direction, from north toward east
	Altitude     float64   // viewing direction, above the horizon
	Roll         float64   // rotation of the view around the viewing direction
	Position     r3.Vector // barycentric position in ICRF, in AU

	toICRF [Count]skyclip.Mat3 // rotation frame → ICRF
}

// NewObserver creates an observer at the barycenter looking at the given
// azimuth and altitude.
func NewObserver(latitude, siderealTime, azimuth, altitude float64) *Observer {
	obs := &Observer{
		Latitude:     latitude,
		SiderealTime: siderealTime,
		Azimuth:      azimuth,
		Altitude:     altitude,
	}
	obs.Update()
	return obs
}

// Update recomputes the rotation matrices between frames.
func (obs *Observer) Update() {
	obs.toICRF[ICRF] = skyclip.Identity3()
	// ecliptic → equatorial: rotate around the vernal equinox
	obs.toICRF[Ecliptic] = skyclip.Identity3().RotX(obliquity)
	obs.toICRF[Galactic] = icrfToGalactic.Transpose()
	observedToICRF := obs.icrfToObserved().Transpose()
	obs.toICRF[Observed] = observedToICRF
	obs.toICRF[View] = observedToICRF.Mul(obs.observedToView().Transpose())
	tracer().Debugf("observer updated: lat=%.4f lst=%.4f az=%.4f alt=%.4f",
		obs.Latitude, obs.SiderealTime, obs.Azimuth, obs.Altitude)
}

// The equatorial frame is first turned by the sidereal time, so that the
// meridian lies in the xz-plane, then tilted by the latitude.
func (obs *Observer) icrfToObserved() skyclip.Mat3 {
	sinLat, cosLat := math.Sincos(obs.Latitude)
	hourAngle := skyclip.Identity3().RotZ(-obs.SiderealTime)
	// columns: images of the meridian point, the east point and the pole
	tilt := skyclip.Mat3{
		{-sinLat, 0, cosLat},
		{0, -1, 0},
		{cosLat, 0, sinLat},
	}
	return tilt.Mul(hourAngle)
}

// Rows are the screen axes expressed in the observed frame: right, up and
// the backward viewing direction.
func (obs *Observer) observedToView() skyclip.Mat3 {
	sinAz, cosAz := math.Sincos(obs.Azimuth)
	sinAlt, cosAlt := math.Sincos(obs.Altitude)
	forward := r3.Vector{X: cosAlt * cosAz, Y: -cosAlt * sinAz, Z: sinAlt}
	right := r3.Vector{X: -sinAz, Y: -cosAz, Z: 0}
	up := r3.Vector{X: -sinAlt * cosAz, Y: sinAlt * sinAz, Z: cosAlt}
	m := skyclip.Mat3{
		{right.X, right.Y, right.Z},
		{up.X, up.Y, up.Z},
		{-forward.X, -forward.Y, -forward.Z},
	}
	if obs.Roll != 0 {
		m = skyclip.Identity3().RotZ(-obs.Roll).Mul(m)
	}
	return m
}

// Rotation returns the rotation matrix from frame `from` to frame `to`.
func (obs *Observer) Rotation(from, to Frame) skyclip.Mat3 {
	return obs.toICRF[to].Transpose().Mul(obs.toICRF[from])
}

// Convert converts a vector from one frame to another. If isDirection is
// set, v is treated as a direction and only rotated; otherwise v is a
// position in AU and the origin shift between barycenter and observer is
// applied as well.
func (obs *Observer) Convert(from, to Frame, isDirection bool, v r3.Vector) r3.Vector {
	if from == to {
		return v
	}
	if !from.Valid() || !to.Valid() {
		tracer().Errorf("cannot convert between %s and %s", from, to)
		return v
	}
	v = obs.toICRF[from].MulVec(v)
	if !isDirection && from.observerCentered() {
		v = v.Add(obs.Position)
	}
	if !isDirection && to.observerCentered() {
		v = v.Sub(obs.Position)
	}
	return obs.toICRF[to].Transpose().MulVec(v)
}

// ConvertV4 converts a homogeneous vector. W = 0 is converted as a
// direction, everything else as a position (scaled by w).
func (obs *Observer) ConvertV4(from, to Frame, v skyclip.Vec4) skyclip.Vec4 {
	if v[3] == 0 {
		return skyclip.V4(obs.Convert(from, to, true, v.XYZ()), 0)
	}
	p := obs.Convert(from, to, false, v.XYZ().Mul(1/v[3]))
	return skyclip.V4(p.Mul(v[3]), v[3])
}

// ConvertBatch converts vs in place and returns it.
func (obs *Observer) ConvertBatch(from, to Frame, isDirection bool, vs []r3.Vector) []r3.Vector {
	if from == to {
		return vs
	}
	rot := obs.Rotation(from, to)
	for i, v := range vs {
		if isDirection {
			vs[i] = rot.MulVec(v)
		} else {
			vs[i] = obs.Convert(from, to, false, v)
		}
	}
	return vs
}
