package camera

import (
	"testing"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectiveDefaults(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})

	assert.Equal(t, float32(0.1), cam.MinimumDepth())
	assert.Equal(t, float32(1000), cam.MaximumDepth())
	assert.Equal(t, DefaultFov, cam.Fov())
	assert.Equal(t, mgl32.QuatIdent(), cam.Rotation())
	assert.Equal(t, common.RectangleF{X: -1, Y: -1, Width: 2, Height: 2}, cam.ViewableRegion())
}

func TestPerspectiveProjection(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})
	p := cam.ProjectionMatrix()

	yScale := 1 / math32.Tan(common.DegToRad(22.5))
	assert.InDelta(t, yScale, common.Element(p, 2, 2), tol)
	assert.InDelta(t, yScale/(800.0/600.0), common.Element(p, 1, 1), tol)
	assert.InDelta(t, 1000.0/999.9, common.Element(p, 3, 3), tol)
	assert.InDelta(t, 1, common.Element(p, 3, 4), tol)
	assert.InDelta(t, -0.1*1000.0/999.9, common.Element(p, 4, 3), tol)
}

func TestPerspectiveFovIsMonotonic(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})

	previous := float32(math32.Inf(1))
	for _, fov := range []float32{10, 30, 60, 90, 120, 170} {
		cam.SetFov(fov)
		m22 := common.Element(cam.ProjectionMatrix(), 2, 2)
		assert.Less(t, m22, previous, "fov %v", fov)
		previous = m22
	}
}

func TestPerspectiveSettersMarkChanges(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})

	cam.DiscardChanges()
	cam.SetFov(60)
	assert.Equal(t, ChangeProjection, cam.Changes())

	cam.DiscardChanges()
	cam.RotateEuler(10, 0, 0)
	assert.Equal(t, ChangeView|ChangeRotation, cam.Changes())

	cam.DiscardChanges()
	cam.RotateEuler(10, 0, 0)
	assert.Equal(t, ChangeNone, cam.Changes())

	cam.RotateAxis(mgl32.Vec3{}, 45)
	assert.Equal(t, ChangeNone, cam.Changes(), "zero axis is ignored")
}

func TestPerspectiveClearsAllViewBits(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})
	cam.ViewMatrix()
	assert.Equal(t, ChangeProjection, cam.Changes(), "scale has no meaning for a perspective view")
}

func TestPerspectiveRotateAxis(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})
	cam.RotateAxis(mgl32.Vec3{0, 2, 0}, 90)

	expected := mgl32.HomogRotate3D(common.DegToRad(90), mgl32.Vec3{0, 1, 0})
	assertMat4InDelta(t, expected, cam.ViewMatrix(), 1e-5)
}

func TestPerspectiveRotationForms(t *testing.T) {
	euler := NewPerspectiveCamera(common.Size2F{Width: 1, Height: 1})
	euler.RotateEuler(90, 0, 0)
	q := euler.Rotation()
	assert.InDelta(t, math32.Cos(math32.Pi/4), q.W, tol)
	assert.InDelta(t, math32.Sin(math32.Pi/4), q.V.Y(), tol)

	axis := NewPerspectiveCamera(common.Size2F{Width: 1, Height: 1})
	axis.RotateAxis(mgl32.Vec3{0, 1, 0}, 90)
	assert.True(t, axis.Rotation().ApproxEqualThreshold(q.Conjugate(), tol))

	matrix := NewPerspectiveCamera(common.Size2F{Width: 1, Height: 1})
	matrix.AssignRotationMatrix(mgl32.HomogRotate3DY(common.DegToRad(90)))
	assert.True(t, matrix.Rotation().ApproxEqualThreshold(axis.Rotation(), tol))
}

func TestPerspectiveLookAt(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600}, WithPosition(10, 0, 0))
	require.NoError(t, cam.LookAt(mgl32.Vec3{}, mgl32.Vec3{}))

	v := cam.ViewMatrix()
	origin := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 10}, origin.Vec3(), tol)

	// The rotation block is orthonormal.
	rot := v.Mat3()
	for i := range 3 {
		assert.InDelta(t, 1, rot.Col(i).Len(), tol)
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 0, rot.Col(i).Dot(rot.Col(j)), tol)
		}
	}

	up := v.Mul4x1(mgl32.Vec4{0, 1, 0, 0})
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, up.Vec3(), tol)
}

func TestPerspectiveLookAtDegenerate(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600}, WithPosition(1, 2, 3))
	cam.RotateEuler(30, 0, 0)
	before := cam.Rotation()
	cam.DiscardChanges()

	assert.ErrorIs(t, cam.LookAt(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}), ErrDegenerateLookAt)
	assert.ErrorIs(t, cam.LookAt(mgl32.Vec3{1, 7, 3}, mgl32.Vec3{0, 1, 0}), ErrDegenerateLookAt)
	assert.Equal(t, before, cam.Rotation())
	assert.Equal(t, ChangeNone, cam.Changes())
}

func TestPerspectiveProjectUnproject(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600}, WithPosition(0, 0, -10))

	screen, err := cam.Unproject(mgl32.Vec3{}, true)
	require.NoError(t, err)
	assertVec3InDelta(t, mgl32.Vec3{400, 300, 0}, screen, 1e-2)

	world, err := cam.Project(mgl32.Vec3{400, 300, 0}, true)
	require.NoError(t, err)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -9.9}, world, 1e-3)
}

func TestPerspectiveUnprojectZeroW(t *testing.T) {
	cam := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600})

	_, err := cam.Unproject(mgl32.Vec3{1, 0, 0}, true)
	assert.ErrorIs(t, err, ErrInvalidProjection)
}
