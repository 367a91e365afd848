/*
Package skyclip implements the numeric base for a sky painter: epsilon
predicates, homogeneous vectors and matrices, 2D affine transformations and
helpers around spherical caps.

Directions are represented by r3.Vector, window points by r2.Point and caps
by s2.Cap, all from github.com/golang/geo. A cap is usually talked about in
terms of the cosine of its half-angle, which is what CapFromCos and CapCos
translate to and from.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package skyclip

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'skyclip'
func tracer() tracing.Trace {
	return tracing.Select("skyclip")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
const Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// NormEpsilon is the tolerance for a vector to count as normalized.
var NormEpsilon float64 = 0.000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// IsNormalized is a predicate: has v unit length (within NormEpsilon) ?
func IsNormalized(v r3.Vector) bool {
	return math.Abs(v.Norm2()-1) <= NormEpsilon
}

// === Caps ==================================================================

// CapFromCos creates a cap around center, with the cosine of its angular
// radius given. cos = 1 is a single point, cos = 0 a hemisphere and cos = -1
// the full sphere. Center must be normalized.
func CapFromCos(center r3.Vector, cos float64) s2.Cap {
	if cos <= -1 {
		return s2.CapFromCenterChordAngle(s2.Point{Vector: center}, s1.StraightChordAngle)
	}
	if cos > 1 {
		cos = 1
	}
	return s2.CapFromCenterHeight(s2.Point{Vector: center}, 1-cos)
}

// CapCos returns the cosine of the angular radius of a cap.
func CapCos(c s2.Cap) float64 {
	return 1 - c.Height()
}

// CapCenter returns the center direction of a cap.
func CapCenter(c s2.Cap) r3.Vector {
	return c.Center().Vector
}

// Separation returns the great-circle angle between two directions, in
// radians. Neither needs to be normalized.
func Separation(a, b r3.Vector) float64 {
	return a.Angle(b).Radians()
}

// === Homogeneous Vectors ===================================================

// Vec4 is a homogeneous vector. W = 0 denotes a direction (a point at
// infinity), W = 1 a position.
type Vec4 [4]float64

// V4 creates a homogeneous vector from a 3D vector and w.
func V4(v r3.Vector, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// XYZ drops the w component.
func (v Vec4) XYZ() r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Mix interpolates linearly between v and w, t in [0…1].
func (v Vec4) Mix(w Vec4, t float64) Vec4 {
	var o Vec4
	for i := range o {
		o[i] = v[i]*(1-t) + w[i]*t
	}
	return o
}

// HasNaN is a predicate: does any component of v hold NaN ?
func (v Vec4) HasNaN() bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2]) || math.IsNaN(v[3])
}

// Debug Stringer for a homogeneous vector.
func (v Vec4) String() string {
	return fmt.Sprintf("(%g,%g,%g|%g)", v[0], v[1], v[2], v[3])
}

// === 3×3 Matrices ==========================================================

// Mat3 is a 3×3 matrix, row-major. Mainly used for rotations between
// reference frames.
type Mat3 [3][3]float64

// Identity3 returns the identity rotation.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns m × n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var o Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o[row][col] = m[row][0]*n[0][col] + m[row][1]*n[1][col] + m[row][2]*n[2][col]
		}
	}
	return o
}

// MulVec returns m × v.
func (m Mat3) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix, which is the inverse for rotations.
func (m Mat3) Transpose() Mat3 {
	var o Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o[row][col] = m[col][row]
		}
	}
	return o
}

// RotX returns m × Rx(a), i.e. a rotation around the x-axis applied before m.
func (m Mat3) RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return m.Mul(Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}})
}

// RotY returns m × Ry(a).
func (m Mat3) RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return m.Mul(Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}})
}

// RotZ returns m × Rz(a).
func (m Mat3) RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return m.Mul(Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}})
}

// === 4×4 Matrices ==========================================================

// Mat4 is a homogeneous 4×4 transform, row-major. The translation lives in
// the last column.
type Mat4 [4][4]float64

// Identity4 returns the identity transform.
func Identity4() Mat4 {
	return Mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Translation4 returns a transform moving the origin to t.
func Translation4(t r3.Vector) Mat4 {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = t.X, t.Y, t.Z
	return m
}

// Scaling4 returns a uniform scaling transform.
func Scaling4(s float64) Mat4 {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = s, s, s
	return m
}

// IsIdentity is a predicate: is m the identity transform ?
func (m Mat4) IsIdentity() bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if row == col && !Is1(m[row][col]) || row != col && !Is0(m[row][col]) {
				return false
			}
		}
	}
	return true
}

// Mul returns m × n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var o Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row][k] * n[k][col]
			}
			o[row][col] = sum
		}
	}
	return o
}

// MulVec4 returns m × v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var o Vec4
	for row := 0; row < 4; row++ {
		o[row] = m[row][0]*v[0] + m[row][1]*v[1] + m[row][2]*v[2] + m[row][3]*v[3]
	}
	return o
}

// MulDir applies the linear part of m to a direction (no translation).
func (m Mat4) MulDir(v r3.Vector) r3.Vector {
	return m.MulVec4(V4(v, 0)).XYZ()
}

// Translation returns the translation column of m.
func (m Mat4) Translation() r3.Vector {
	return r3.Vector{X: m[0][3], Y: m[1][3], Z: m[2][3]}
}

// === Affine Transformations ================================================

// AT is a 2D affine transform, a matrix type used for transforming window
// space points.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p r2.Point) AT {
	m := Identity()
	m.set(0, 2, p.X)
	m.set(1, 2, p.Y)
	return m
}

// Scaling transform. Scale x by sx and y by sy.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one: first m, then n. Returns a
// new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 3)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	return c
}

// Transform a 2D-point. The argument is unchanged and a new point is returned.
func (m AT) Transform(p r2.Point) r2.Point {
	c := m.multiplyVector([]float64{p.X, p.Y, 1.0})
	return r2.Point{X: c[0], Y: c[1]}
}

// Column returns the upper two entries of column col. Columns 0 and 1 are
// the images of the unit axes, column 2 is the translation.
func (m AT) Column(col int) r2.Point {
	return r2.Point{X: m.get(0, col), Y: m.get(1, col)}
}

// IsValid checks if this is a correctly initialized transform.
func (m AT) IsValid() bool {
	if len(m) != 9 {
		tracer().Errorf("affine transform has %d entries", len(m))
		return false
	}
	return true
}
