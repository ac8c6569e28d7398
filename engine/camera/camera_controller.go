package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitController drives a PerspectiveCamera around a pivot point using spherical
// coordinates (radius, azimuth, elevation). Every change is pushed to the camera
// through SetPosition and LookAt, so the camera's change mask reflects it.
type OrbitController interface {
	// Camera returns the camera being driven.
	//
	// Returns:
	//   - PerspectiveCamera: the controlled camera
	Camera() PerspectiveCamera

	// Pivot returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space pivot
	Pivot() mgl32.Vec3

	// SetPivot sets the look-at point and recomputes the camera position.
	//
	// Parameters:
	//   - pivot: world-space coordinates
	SetPivot(pivot mgl32.Vec3)

	// Zoom adjusts the orbit radius. Positive delta moves closer to the pivot.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// OrbitLeft rotates the camera left around the pivot by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the pivot by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Drag orbits by a mouse movement, scaled by the mouse sensitivity.
	//
	// Parameters:
	//   - dx, dy: cursor movement in pixels
	Drag(dx, dy float32)

	// Radius returns the current distance from the pivot.
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the configured bounds.
	//
	// Parameters:
	//   - radius: new distance from the pivot
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle in radians.
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// SetElevation sets the vertical angle in radians, clamped to the configured bounds.
	SetElevation(elevation float32)

	// PanRight translates camera and pivot along the camera's right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanRight(delta float32)

	// PanUp translates camera and pivot along the camera's up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanUp(delta float32)

	// PanForward translates camera and pivot along the look direction.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanForward(delta float32)
}

// PlanarController drives an OrthographicCamera with 2D pan, zoom and rotation.
type PlanarController interface {
	// Camera returns the camera being driven.
	//
	// Returns:
	//   - OrthographicCamera: the controlled camera
	Camera() OrthographicCamera

	// Pan moves the camera by a screen-space offset. The offset is rotated by the
	// camera angle and divided by the zoom so content follows the cursor.
	//
	// Parameters:
	//   - dx, dy: offset in screen units, scaled by the pan speed
	Pan(dx, dy float32)

	// ZoomBy changes the uniform zoom, clamped to the configured bounds.
	//
	// Parameters:
	//   - delta: zoom change scaled by the zoom speed
	ZoomBy(delta float32)

	// Rotate adds degrees to the camera angle.
	Rotate(degrees float32)

	// Reset returns the camera to the origin with unit zoom and no rotation.
	Reset()
}
