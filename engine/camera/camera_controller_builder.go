package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// controllerConfig holds the tunables shared by orbit and planar controllers.
type controllerConfig struct {
	pivot mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	minZoom float32
	maxZoom float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

// CameraControllerOption is a functional option for configuring a controller.
type CameraControllerOption func(*controllerConfig)

func newOrbitConfig(options []CameraControllerOption) *controllerConfig {
	cfg := &controllerConfig{
		radius:    250.0,
		elevation: math32.Pi / 6,

		minRadius:    20.0,
		maxRadius:    2000.0,
		minElevation: 0.05,
		maxElevation: math32.Pi/2 - 0.1,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        15.0,
		panSpeed:         1.0,
	}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func newPlanarConfig(options []CameraControllerOption) *controllerConfig {
	cfg := &controllerConfig{
		minZoom:   0.1,
		maxZoom:   10.0,
		zoomSpeed: 0.1,
		panSpeed:  1.0,
	}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

// WithRadius sets the initial orbit radius (distance from the pivot).
//
// Parameters:
//   - radius: distance from the pivot
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.radius = radius
	}
}

// WithRadiusLimits sets the orbit radius bounds.
func WithRadiusLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.minRadius = minRadius
		cfg.maxRadius = maxRadius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.elevation = elevation
	}
}

// WithPivot sets the orbit look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the pivot
//
// Returns:
//   - CameraControllerOption: functional option to set the pivot
func WithPivot(x, y, z float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.pivot = mgl32.Vec3{x, y, z}
	}
}

// WithOrbitSpeed sets the keyboard orbit step in radians.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the radians per pixel applied by Drag.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom multiplier.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan multiplier.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.panSpeed = speed
	}
}

// WithZoomLimits sets the planar zoom bounds.
//
// Parameters:
//   - minZoom: smallest allowed zoom factor
//   - maxZoom: largest allowed zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom bounds
func WithZoomLimits(minZoom, maxZoom float32) CameraControllerOption {
	return func(cfg *controllerConfig) {
		cfg.minZoom = minZoom
		cfg.maxZoom = maxZoom
	}
}
