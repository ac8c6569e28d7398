package camera

import (
	"github.com/Carmen-Shannon/gorgon/engine/target"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraBuilder collects construction options before a camera variant is built.
// Options that do not apply to the variant being built are ignored.
type cameraBuilder struct {
	name                string
	position            mgl32.Vec3
	minDepth            float32
	maxDepth            float32
	target              target.Ref
	allowUpdateOnResize bool

	// orthographic
	anchor mgl32.Vec2
	zoom   mgl32.Vec2
	angle  float32

	// perspective
	fov      float32
	rotation mgl32.Quat
}

type CameraBuilderOption func(*cameraBuilder)

// newCameraBuilder returns a builder holding the defaults for a variant with the given depth range.
func newCameraBuilder(minDepth, maxDepth float32, options []CameraBuilderOption) *cameraBuilder {
	b := &cameraBuilder{
		minDepth:            minDepth,
		maxDepth:            maxDepth,
		allowUpdateOnResize: true,
		zoom:                mgl32.Vec2{1, 1},
		fov:                 DefaultFov,
		rotation:            mgl32.QuatIdent(),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// WithName sets the camera name. A blank name is replaced by a generated one.
//
// Parameters:
//   - name: the camera name
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera name
func WithName(name string) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.name = name
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.position = mgl32.Vec3{x, y, z}
	}
}

// WithDepthRange sets the minimum and maximum depth. The maximum is clamped to at least 1.
//
// Parameters:
//   - minDepth: near end of the depth range
//   - maxDepth: far end of the depth range
//
// Returns:
//   - CameraBuilderOption: a function that sets the depth range
func WithDepthRange(minDepth, maxDepth float32) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.minDepth = minDepth
		b.maxDepth = maxDepth
	}
}

// WithTarget binds the camera to a render target at construction.
//
// Parameters:
//   - ref: weak reference to the render target
//
// Returns:
//   - CameraBuilderOption: a function that binds the target
func WithTarget(ref target.Ref) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.target = ref
	}
}

// WithAllowUpdateOnResize controls whether the engine may resize the camera's view
// dimensions when its target resizes. Defaults to true.
func WithAllowUpdateOnResize(allow bool) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.allowUpdateOnResize = allow
	}
}

// WithAnchor sets the orthographic anchor, the fraction of the view that sits left of and above the origin.
//
// Parameters:
//   - x, y: anchor components, typically in [0, 1]
//
// Returns:
//   - CameraBuilderOption: a function that sets the anchor
func WithAnchor(x, y float32) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.anchor = mgl32.Vec2{x, y}
	}
}

// WithZoom sets the orthographic zoom factors.
func WithZoom(x, y float32) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.zoom = mgl32.Vec2{x, y}
	}
}

// WithAngle sets the orthographic rotation around Z, in degrees.
func WithAngle(degrees float32) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.angle = degrees
	}
}

// WithFov sets the perspective vertical field of view in degrees.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.fov = degrees
	}
}

// WithRotation sets the perspective orientation quaternion.
func WithRotation(q mgl32.Quat) CameraBuilderOption {
	return func(b *cameraBuilder) {
		b.rotation = q
	}
}
