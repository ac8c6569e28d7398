package camera

import (
	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/go-gl/mathgl/mgl32"
)

// OrthographicCamera is a 2D camera with no perspective foreshortening.
// Its view is built from the position, a rotation around Z and a zoom.
type OrthographicCamera interface {
	Camera

	// Angle returns the rotation around Z in degrees.
	Angle() float32

	// SetAngle sets the rotation around Z in degrees. Marks View and Rotation as changed.
	//
	// Parameters:
	//   - degrees: the new angle
	SetAngle(degrees float32)

	// Zoom returns the zoom factors.
	Zoom() mgl32.Vec2

	// SetZoom sets the zoom factors. Marks View and Scale as changed.
	//
	// Parameters:
	//   - zoom: the new zoom factors
	SetZoom(zoom mgl32.Vec2)

	// Anchor returns the projection anchor.
	Anchor() mgl32.Vec2

	// SetAnchor sets the fraction of the view left of and above the origin.
	// (0, 0) puts the origin at the top-left corner, (0.5, 0.5) at the centre.
	// Marks Projection as changed.
	//
	// Parameters:
	//   - anchor: the new anchor
	SetAnchor(anchor mgl32.Vec2)
}

var _ OrthographicCamera = &orthographicCamera{}

type orthographicCamera struct {
	*cameraBase

	angle  float32
	zoom   mgl32.Vec2
	anchor mgl32.Vec2

	scaleMatrix       mgl32.Mat4
	rotationMatrix    mgl32.Mat4
	translationMatrix mgl32.Mat4
}

// NewOrthographicCamera creates an orthographic camera. The default depth range is [0, 1],
// zoom is (1, 1) and the anchor is (0, 0).
// Panics if viewDimensions is negative or not finite.
//
// Parameters:
//   - viewDimensions: logical size of the view area
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - OrthographicCamera: the new camera
func NewOrthographicCamera(viewDimensions common.Size2F, options ...CameraBuilderOption) OrthographicCamera {
	b := newCameraBuilder(0, 1, options)

	c := &orthographicCamera{
		angle:             b.angle,
		zoom:              b.zoom,
		anchor:            b.anchor,
		scaleMatrix:       mgl32.Ident4(),
		rotationMatrix:    mgl32.Ident4(),
		translationMatrix: mgl32.Ident4(),
	}
	c.cameraBase = newCameraBase("orthographic_camera", viewDimensions, b, c)
	return c
}

func (c *orthographicCamera) Angle() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.angle
}

func (c *orthographicCamera) SetAngle(degrees float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.angle == degrees {
		return
	}
	c.angle = degrees
	c.changes |= ChangeView | ChangeRotation
}

func (c *orthographicCamera) Zoom() mgl32.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *orthographicCamera) SetZoom(zoom mgl32.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.zoom == zoom {
		return
	}
	c.zoom = zoom
	c.changes |= ChangeView | ChangeScale
}

func (c *orthographicCamera) Anchor() mgl32.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor
}

func (c *orthographicCamera) SetAnchor(anchor mgl32.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.anchor == anchor {
		return
	}
	c.anchor = anchor
	c.changes |= ChangeProjection
}

// updateViewMatrix rebuilds only the sub-matrices whose bits are set and composes
// view = translation × rotationᵀ × scale.
func (c *orthographicCamera) updateViewMatrix(view *mgl32.Mat4) {
	if !c.changes.Any(ChangePosition | ChangeScale | ChangeRotation) {
		return
	}

	if c.changes.Has(ChangeScale) {
		c.scaleMatrix = mgl32.Scale3D(c.zoom.X(), c.zoom.Y(), 1)
	}
	if c.changes.Has(ChangeRotation) {
		c.rotationMatrix = mgl32.HomogRotate3DZ(common.DegToRad(c.angle)).Transpose()
	}
	if c.changes.Has(ChangePosition) {
		c.translationMatrix = mgl32.Translate3D(-c.position.X(), -c.position.Y(), 0)
	}

	*view = c.scaleMatrix.Mul4(c.rotationMatrix).Mul4(c.translationMatrix)
	c.changes &^= ChangePosition | ChangeScale | ChangeRotation
}

func (c *orthographicCamera) updateProjectionMatrix(projection *mgl32.Mat4) {
	w, h := c.viewDimensions.Width, c.viewDimensions.Height
	left := -c.anchor.X() * w
	top := -c.anchor.Y() * h
	*projection = common.OrthoOffCenterLH(left, w+left, h+top, top, c.minDepth, c.maxDepth)
}

func (c *orthographicCamera) viewableRegion() common.RectangleF {
	w, h := c.viewDimensions.Width, c.viewDimensions.Height
	return common.RectangleF{X: -w * c.anchor.X(), Y: -h * c.anchor.Y(), Width: w, Height: h}
}
