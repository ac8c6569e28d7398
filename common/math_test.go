package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d", i)
	}
}

func TestElement(t *testing.T) {
	m := mgl32.Translate3D(7, 8, 9)
	assert.Equal(t, float32(7), Element(m, 4, 1))
	assert.Equal(t, float32(8), Element(m, 4, 2))
	assert.Equal(t, float32(9), Element(m, 4, 3))
	assert.Equal(t, float32(1), Element(m, 4, 4))
}

func TestOrthoOffCenterLH(t *testing.T) {
	m := OrthoOffCenterLH(0, 800, 600, 0, 0, 1)

	assert.InDelta(t, 2.0/800, Element(m, 1, 1), tol)
	assert.InDelta(t, -2.0/600, Element(m, 2, 2), tol)
	assert.InDelta(t, 1, Element(m, 3, 3), tol)
	assert.InDelta(t, -1, Element(m, 4, 1), tol)
	assert.InDelta(t, 1, Element(m, 4, 2), tol)
	assert.InDelta(t, 0, Element(m, 4, 3), tol)

	// Upper left of the box maps to the upper left of clip space.
	v, w := TransformCoordinate(mgl32.Vec3{0, 0, 0}, m)
	assert.Equal(t, float32(1), w)
	assertVec3InDelta(t, mgl32.Vec3{-1, 1, 0}, v, tol)

	v, _ = TransformCoordinate(mgl32.Vec3{800, 600, 1}, m)
	assertVec3InDelta(t, mgl32.Vec3{1, -1, 1}, v, tol)
}

func TestPerspectiveFovLH(t *testing.T) {
	fov := DegToRad(90)
	m := PerspectiveFovLH(fov, 2, 1, 101)

	assert.InDelta(t, 0.5, Element(m, 1, 1), tol)
	assert.InDelta(t, 1, Element(m, 2, 2), tol)
	assert.InDelta(t, 101.0/100.0, Element(m, 3, 3), tol)
	assert.Equal(t, float32(1), Element(m, 3, 4))
	assert.InDelta(t, -101.0/100.0, Element(m, 4, 3), tol)
	assert.Equal(t, float32(0), Element(m, 4, 4))

	// Near plane maps to depth 0, far plane to depth 1.
	v, w := TransformCoordinate(mgl32.Vec3{0, 0, 1}, m)
	assert.InDelta(t, 0, v[2]/w, tol)
	v, w = TransformCoordinate(mgl32.Vec3{0, 0, 101}, m)
	assert.InDelta(t, 1, v[2]/w, tol)
}

func TestLookAtLH(t *testing.T) {
	eye := mgl32.Vec3{3, 4, -10}
	target := mgl32.Vec3{1, 0, 5}

	m, ok := LookAtLH(eye, target, mgl32.Vec3{0, 1, 0})
	require.True(t, ok)

	// The target ends up straight ahead on +Z.
	v, _ := TransformCoordinate(target, m)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, target.Sub(eye).Len()}, v, 1e-4)

	// The eye ends up at the origin.
	v, _ = TransformCoordinate(eye, m)
	assertVec3InDelta(t, mgl32.Vec3{}, v, 1e-4)
}

func TestLookAtLHDegenerate(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 3}

	_, ok := LookAtLH(eye, eye, mgl32.Vec3{0, 1, 0})
	assert.False(t, ok, "zero-length look direction")

	_, ok = LookAtLH(eye, eye.Add(mgl32.Vec3{0, 5, 0}), mgl32.Vec3{0, 1, 0})
	assert.False(t, ok, "look direction parallel to up")
}

func TestYawPitchRoll(t *testing.T) {
	q := YawPitchRoll(DegToRad(90), 0, 0)
	half := math32.Sqrt(2) / 2
	assert.InDelta(t, half, q.W, tol)
	assertVec3InDelta(t, mgl32.Vec3{0, half, 0}, q.V, tol)

	// Roll only rotates about Z.
	q = YawPitchRoll(0, 0, DegToRad(90))
	assertVec3InDelta(t, mgl32.Vec3{0, 0, half}, q.V, tol)

	// Combined angles still give a unit quaternion.
	q = YawPitchRoll(DegToRad(30), DegToRad(-45), DegToRad(120))
	assert.InDelta(t, 1, q.Len(), tol)
}

func TestInvert(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	inv, ok := Invert(m)
	require.True(t, ok)
	assert.True(t, m.Mul4(inv).ApproxEqualThreshold(mgl32.Ident4(), tol))

	_, ok = Invert(mgl32.Mat4{})
	assert.False(t, ok)

	_, ok = Invert(OrthoOffCenterLH(0, 0, 0, 0, 0, 1))
	assert.False(t, ok, "zero-sized view box")
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1, -2, 0))
	assert.False(t, IsFinite(1, math32.NaN()))
	assert.False(t, IsFinite(math32.Inf(1)))
}

func TestCoalesceAndClamp(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, float32(1), Clamp(float32(0.2), 1, 5))
	assert.Equal(t, 5, Clamp(9, 1, 5))
}

func TestRectangleF(t *testing.T) {
	r := RectangleF{X: -400, Y: -300, Width: 800, Height: 600}
	assert.Equal(t, float32(400), r.Right())
	assert.Equal(t, float32(300), r.Bottom())
	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(-400, -300))
	assert.False(t, r.Contains(400, 0))
	assert.True(t, Size2{Width: 0, Height: 10}.Empty())
	assert.Equal(t, Size2F{Width: 3, Height: 4}, Size2{Width: 3, Height: 4}.ToSize2F())
}
