package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrices throughout the engine are mgl32.Mat4 values. The row-vector element
// Mij used by the camera formulas lives at flat index (i-1)*4 + (j-1), which puts
// the translation in elements 12, 13 and 14. Because the storage is identical, a
// row-vector product A × B is computed as B.Mul4(A), and transforming a point v by
// M is M.Mul4x1(v).

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - degrees: angle in degrees
//
// Returns:
//   - float32: angle in radians
func DegToRad(degrees float32) float32 {
	return degrees * (math32.Pi / 180.0)
}

// Element returns the row-vector element Mij of m, with 1-based row and column.
//
// Parameters:
//   - m: the matrix to read
//   - row: row index in [1, 4]
//   - col: column index in [1, 4]
//
// Returns:
//   - float32: the element value
func Element(m mgl32.Mat4, row, col int) float32 {
	return m[(row-1)*4+(col-1)]
}

// OrthoOffCenterLH builds a left-handed off-center orthographic projection mapping
// depth [near, far] onto [0, 1].
//
// Parameters:
//   - left, right: horizontal extents of the view box
//   - bottom, top: vertical extents of the view box
//   - near, far: depth range
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func OrthoOffCenterLH(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	zRange := 1.0 / (far - near)

	var m mgl32.Mat4
	m[0] = 2.0 / (right - left)
	m[5] = 2.0 / (top - bottom)
	m[10] = zRange
	m[12] = (left + right) / (left - right)
	m[13] = (top + bottom) / (bottom - top)
	m[14] = -near * zRange
	m[15] = 1
	return m
}

// PerspectiveFovLH builds a left-handed perspective projection mapping depth
// [near, far] onto [0, 1]. The w component of a transformed point receives its
// view-space z.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspectX: horizontal aspect ratio divisor
//   - near, far: depth range
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func PerspectiveFovLH(fovY, aspectX, near, far float32) mgl32.Mat4 {
	yScale := 1.0 / math32.Tan(fovY*0.5)
	q := far / (far - near)

	var m mgl32.Mat4
	m[0] = yScale / aspectX
	m[5] = yScale
	m[10] = q
	m[11] = 1
	m[14] = -q * near
	return m
}

// LookAtLH builds a left-handed look-at matrix for an eye at eye looking toward
// target. The basis is zAxis = normalize(target-eye), xAxis = normalize(up × zAxis),
// yAxis = zAxis × xAxis. It reports false when the look direction has zero length or
// is parallel to up, in which case the returned matrix is the identity.
//
// Parameters:
//   - eye: viewer position
//   - target: point being looked at
//   - up: up direction
//
// Returns:
//   - mgl32.Mat4: the look-at matrix
//   - bool: false if the basis is degenerate
func LookAtLH(eye, target, up mgl32.Vec3) (mgl32.Mat4, bool) {
	zAxis := target.Sub(eye)
	if zAxis.Len() == 0 {
		return mgl32.Ident4(), false
	}
	zAxis = zAxis.Normalize()

	xAxis := up.Cross(zAxis)
	if xAxis.Len() == 0 {
		return mgl32.Ident4(), false
	}
	xAxis = xAxis.Normalize()
	yAxis := zAxis.Cross(xAxis)

	var m mgl32.Mat4
	m[0], m[1], m[2], m[3] = xAxis[0], yAxis[0], zAxis[0], 0
	m[4], m[5], m[6], m[7] = xAxis[1], yAxis[1], zAxis[1], 0
	m[8], m[9], m[10], m[11] = xAxis[2], yAxis[2], zAxis[2], 0
	m[12] = -xAxis.Dot(eye)
	m[13] = -yAxis.Dot(eye)
	m[14] = -zAxis.Dot(eye)
	m[15] = 1
	return m, true
}

// YawPitchRoll builds a quaternion from yaw (Y axis), pitch (X axis) and roll (Z axis)
// angles in radians. Roll is applied first, then pitch, then yaw.
//
// Parameters:
//   - yaw, pitch, roll: rotation angles in radians
//
// Returns:
//   - mgl32.Quat: the orientation quaternion
func YawPitchRoll(yaw, pitch, roll float32) mgl32.Quat {
	sy, cy := math32.Sin(yaw*0.5), math32.Cos(yaw*0.5)
	sp, cp := math32.Sin(pitch*0.5), math32.Cos(pitch*0.5)
	sr, cr := math32.Sin(roll*0.5), math32.Cos(roll*0.5)

	return mgl32.Quat{
		W: cy*cp*cr + sy*sp*sr,
		V: mgl32.Vec3{
			cy*sp*cr + sy*cp*sr,
			sy*cp*cr - cy*sp*sr,
			cy*cp*sr - sy*sp*cr,
		},
	}
}

// TransformCoordinate transforms the point v (w = 1) by m without dividing by the
// resulting w, which is returned alongside so the caller can decide how to handle it.
//
// Parameters:
//   - v: the point to transform
//   - m: the transform
//
// Returns:
//   - mgl32.Vec3: the transformed x, y, z
//   - float32: the transformed w
func TransformCoordinate(v mgl32.Vec3, m mgl32.Mat4) (mgl32.Vec3, float32) {
	r := m.Mul4x1(v.Vec4(1))
	return r.Vec3(), r[3]
}

// Invert returns the inverse of m. If m is singular, or its determinant is not a
// finite number, the identity is returned with ok set to false.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - mgl32.Mat4: the inverse matrix
//   - bool: false if m could not be inverted
func Invert(m mgl32.Mat4) (mgl32.Mat4, bool) {
	det := m.Det()
	if det == 0 || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return mgl32.Ident4(), false
	}
	return m.Inv(), true
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func IsFinite(v ...float32) bool {
	for _, f := range v {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}
