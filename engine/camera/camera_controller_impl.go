package camera

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// orbitController is the OrbitController implementation. Orbit methods modify the
// spherical coordinates and recompute the position; pan methods translate both the
// position and the pivot, preserving the orbit relationship.
type orbitController struct {
	mu     *sync.Mutex
	camera PerspectiveCamera
	cfg    controllerConfig

	position mgl32.Vec3
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates a controller that orbits cam around a pivot.
// The camera is positioned and oriented immediately. Panics if cam is nil.
//
// Parameters:
//   - cam: the perspective camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam PerspectiveCamera, options ...CameraControllerOption) OrbitController {
	if cam == nil {
		panic("camera: NewOrbitController requires a non-nil camera")
	}

	cfg := newOrbitConfig(options)
	cfg.radius = common.Clamp(cfg.radius, cfg.minRadius, cfg.maxRadius)
	cfg.elevation = common.Clamp(cfg.elevation, cfg.minElevation, cfg.maxElevation)

	oc := &orbitController{
		mu:     &sync.Mutex{},
		camera: cam,
		cfg:    *cfg,
	}
	oc.updatePosition()
	return oc
}

// --- internal helpers ---

// updatePosition recomputes the position from spherical coordinates and pushes it to the camera.
// Caller must hold the mutex.
func (oc *orbitController) updatePosition() {
	sinElev, cosElev := math32.Sincos(oc.cfg.elevation)
	sinAzim, cosAzim := math32.Sincos(oc.cfg.azimuth)

	oc.position = oc.cfg.pivot.Add(mgl32.Vec3{
		oc.cfg.radius * cosElev * sinAzim,
		oc.cfg.radius * sinElev,
		oc.cfg.radius * cosElev * cosAzim,
	})
	oc.apply()
}

// apply moves the camera to the controller's position and aims it at the pivot.
// Caller must hold the mutex.
func (oc *orbitController) apply() {
	oc.camera.SetPosition(oc.position)
	if err := oc.camera.LookAt(oc.cfg.pivot, worldUp); err != nil {
		log.Printf("camera: orbit controller for %q could not aim camera: %v", oc.camera.Name(), err)
	}
}

// localAxes returns the camera's right, up and forward axes consistent with LookAt.
// All three are zero if position and pivot coincide.
// Caller must hold the mutex.
func (oc *orbitController) localAxes() (right, up, forward mgl32.Vec3) {
	forward = oc.cfg.pivot.Sub(oc.position)
	if forward.Len() < 1e-8 {
		return
	}
	forward = forward.Normalize()

	right = worldUp.Cross(forward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = forward.Cross(right)
	return right, up, forward
}

// pan translates position and pivot along axis.
// Caller must hold the mutex.
func (oc *orbitController) pan(axis mgl32.Vec3, delta float32) {
	offset := axis.Mul(delta * oc.cfg.panSpeed)
	oc.cfg.pivot = oc.cfg.pivot.Add(offset)
	oc.position = oc.position.Add(offset)
	oc.apply()
}

func (oc *orbitController) Camera() PerspectiveCamera {
	return oc.camera
}

func (oc *orbitController) Pivot() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.cfg.pivot
}

func (oc *orbitController) SetPivot(pivot mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.pivot = pivot
	oc.updatePosition()
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.radius = common.Clamp(oc.cfg.radius-delta*oc.cfg.zoomSpeed, oc.cfg.minRadius, oc.cfg.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) OrbitLeft() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.azimuth -= oc.cfg.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitRight() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.azimuth += oc.cfg.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.elevation = min(oc.cfg.elevation+oc.cfg.orbitSpeed, oc.cfg.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) OrbitDown() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.elevation = max(oc.cfg.elevation-oc.cfg.orbitSpeed, oc.cfg.minElevation)
	oc.updatePosition()
}

func (oc *orbitController) Drag(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.azimuth += dx * oc.cfg.mouseSensitivity
	oc.cfg.elevation = common.Clamp(oc.cfg.elevation+dy*oc.cfg.mouseSensitivity, oc.cfg.minElevation, oc.cfg.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.cfg.radius
}

func (oc *orbitController) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.radius = common.Clamp(radius, oc.cfg.minRadius, oc.cfg.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.cfg.azimuth
}

func (oc *orbitController) SetAzimuth(azimuth float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.azimuth = azimuth
	oc.updatePosition()
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.cfg.elevation
}

func (oc *orbitController) SetElevation(elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.cfg.elevation = common.Clamp(elevation, oc.cfg.minElevation, oc.cfg.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) PanRight(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	right, _, _ := oc.localAxes()
	oc.pan(right, delta)
}

func (oc *orbitController) PanUp(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	_, up, _ := oc.localAxes()
	oc.pan(up, delta)
}

func (oc *orbitController) PanForward(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	_, _, forward := oc.localAxes()
	oc.pan(forward, delta)
}

// planarController is the PlanarController implementation.
type planarController struct {
	mu     *sync.Mutex
	camera OrthographicCamera
	cfg    controllerConfig
}

var _ PlanarController = &planarController{}

// NewPlanarController creates a controller for 2D navigation of cam. Panics if cam is nil.
//
// Parameters:
//   - cam: the orthographic camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - PlanarController: the newly created controller
func NewPlanarController(cam OrthographicCamera, options ...CameraControllerOption) PlanarController {
	if cam == nil {
		panic("camera: NewPlanarController requires a non-nil camera")
	}
	return &planarController{
		mu:     &sync.Mutex{},
		camera: cam,
		cfg:    *newPlanarConfig(options),
	}
}

func (pc *planarController) Camera() OrthographicCamera {
	return pc.camera
}

func (pc *planarController) Pan(dx, dy float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	zoom := pc.camera.Zoom()
	if zoom.X() == 0 || zoom.Y() == 0 {
		return
	}
	local := mgl32.Vec2{dx / zoom.X(), dy / zoom.Y()}.Mul(pc.cfg.panSpeed)
	offset := mgl32.Rotate2D(common.DegToRad(pc.camera.Angle())).Mul2x1(local)

	pc.camera.SetPosition(pc.camera.Position().Add(offset.Vec3(0)))
}

func (pc *planarController) ZoomBy(delta float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	z := common.Clamp(pc.camera.Zoom().X()+delta*pc.cfg.zoomSpeed, pc.cfg.minZoom, pc.cfg.maxZoom)
	pc.camera.SetZoom(mgl32.Vec2{z, z})
}

func (pc *planarController) Rotate(degrees float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.camera.SetAngle(pc.camera.Angle() + degrees)
}

func (pc *planarController) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.camera.SetPosition(mgl32.Vec3{})
	pc.camera.SetZoom(mgl32.Vec2{1, 1})
	pc.camera.SetAngle(0)
}
