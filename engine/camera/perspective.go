package camera

import (
	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFov is the vertical field of view, in degrees, given to new perspective cameras.
const DefaultFov float32 = 45.0

// PerspectiveCamera is a 3D camera with a field-of-view projection and a quaternion orientation.
type PerspectiveCamera interface {
	Camera

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// SetFov sets the vertical field of view in degrees. Marks Projection as changed.
	//
	// Parameters:
	//   - degrees: the new field of view, expected in (0, 180)
	SetFov(degrees float32)

	// Rotation returns the orientation quaternion.
	Rotation() mgl32.Quat

	// SetRotation replaces the orientation quaternion. Marks View and Rotation as changed.
	//
	// Parameters:
	//   - q: the new orientation
	SetRotation(q mgl32.Quat)

	// RotateEuler sets the orientation from yaw, pitch and roll in degrees.
	//
	// Parameters:
	//   - yaw: rotation around Y in degrees
	//   - pitch: rotation around X in degrees
	//   - roll: rotation around Z in degrees
	RotateEuler(yaw, pitch, roll float32)

	// RotateAxis sets the orientation to a rotation of degrees around axis.
	// A zero-length axis leaves the orientation unchanged.
	//
	// Parameters:
	//   - axis: the rotation axis, need not be normalized
	//   - degrees: the rotation angle
	RotateAxis(axis mgl32.Vec3, degrees float32)

	// AssignRotationMatrix sets the orientation from the rotation part of m.
	//
	// Parameters:
	//   - m: a matrix whose upper 3x3 is a rotation
	AssignRotationMatrix(m mgl32.Mat4)

	// LookAt orients the camera toward a world-space point. A zero up vector means +Y.
	//
	// Parameters:
	//   - target: the point to look at
	//   - up: the up direction
	//
	// Returns:
	//   - error: ErrDegenerateLookAt if target equals the position or the direction is parallel to up
	LookAt(target, up mgl32.Vec3) error
}

var _ PerspectiveCamera = &perspectiveCamera{}

type perspectiveCamera struct {
	*cameraBase

	fov      float32
	rotation mgl32.Quat

	rotationMatrix    mgl32.Mat4
	translationMatrix mgl32.Mat4
}

// NewPerspectiveCamera creates a perspective camera. The default depth range is [0.1, 1000],
// the field of view is DefaultFov and the orientation is the identity.
// Panics if viewDimensions is negative or not finite.
//
// Parameters:
//   - viewDimensions: logical size of the view area
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - PerspectiveCamera: the new camera
func NewPerspectiveCamera(viewDimensions common.Size2F, options ...CameraBuilderOption) PerspectiveCamera {
	b := newCameraBuilder(0.1, 1000, options)

	c := &perspectiveCamera{
		fov:               b.fov,
		rotation:          b.rotation,
		rotationMatrix:    mgl32.Ident4(),
		translationMatrix: mgl32.Ident4(),
	}
	c.cameraBase = newCameraBase("perspective_camera", viewDimensions, b, c)
	return c
}

func (c *perspectiveCamera) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *perspectiveCamera) SetFov(degrees float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fov == degrees {
		return
	}
	c.fov = degrees
	c.changes |= ChangeProjection
}

func (c *perspectiveCamera) Rotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *perspectiveCamera) SetRotation(q mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRotationLocked(q)
}

func (c *perspectiveCamera) RotateEuler(yaw, pitch, roll float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRotationLocked(common.YawPitchRoll(common.DegToRad(yaw), common.DegToRad(pitch), common.DegToRad(roll)))
}

func (c *perspectiveCamera) RotateAxis(axis mgl32.Vec3, degrees float32) {
	if axis.Len() == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRotationLocked(mgl32.QuatRotate(common.DegToRad(degrees), axis.Normalize()).Conjugate())
}

func (c *perspectiveCamera) AssignRotationMatrix(m mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRotationLocked(mgl32.Mat4ToQuat(m).Conjugate())
}

func (c *perspectiveCamera) LookAt(target, up mgl32.Vec3) error {
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := common.LookAtLH(c.position, target, up)
	if !ok {
		return ErrDegenerateLookAt
	}
	c.setRotationLocked(mgl32.Mat4ToQuat(m).Conjugate())
	return nil
}

// setRotationLocked stores q and marks View and Rotation as changed if it differs.
// Caller must hold the mutex.
func (c *perspectiveCamera) setRotationLocked(q mgl32.Quat) {
	if c.rotation == q {
		return
	}
	c.rotation = q
	c.changes |= ChangeView | ChangeRotation
}

// updateViewMatrix composes view = translation × rotationᵀ, rebuilding only what changed.
// Perspective cameras have no zoom, so a Scale bit is simply dropped.
func (c *perspectiveCamera) updateViewMatrix(view *mgl32.Mat4) {
	if c.changes.Has(ChangeRotation) {
		c.rotationMatrix = c.rotation.Mat4().Transpose()
	}
	if c.changes.Has(ChangePosition) {
		c.translationMatrix = mgl32.Translate3D(-c.position.X(), -c.position.Y(), -c.position.Z())
	}
	if c.changes.Any(ChangePosition | ChangeRotation) {
		*view = c.rotationMatrix.Mul4(c.translationMatrix)
	}
	c.changes &^= ChangePosition | ChangeRotation | ChangeScale
}

func (c *perspectiveCamera) updateProjectionMatrix(projection *mgl32.Mat4) {
	aspect := c.aspectRatioLocked()
	*projection = common.PerspectiveFovLH(common.DegToRad(c.fov), aspect.X(), c.minDepth, c.maxDepth)
}

func (c *perspectiveCamera) viewableRegion() common.RectangleF {
	return common.RectangleF{X: -1, Y: -1, Width: 2, Height: 2}
}
