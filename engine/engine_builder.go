package engine

import "github.com/Carmen-Shannon/gorgon/engine/camera"

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithHost sets the window (or other host) the engine runs on.
// Without a host the engine runs headless until Quit is called.
//
// Parameters:
//   - h: the host, typically a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithCamera adds a camera during engine construction, binding it to the host if it has no target.
//
// Parameters:
//   - cam: the camera to add
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.pendingCameras = append(e.pendingCameras, cam)
	}
}

// WithCollection replaces the engine's camera collection.
func WithCollection(c camera.Collection) EngineBuilderOption {
	return func(e *engine) {
		e.cameras = c
	}
}

// WithRefreshWorkers sets how many goroutines refresh camera matrices each frame.
// Ignored when WithCollection is used.
func WithRefreshWorkers(workers int) EngineBuilderOption {
	return func(e *engine) {
		e.workers = workers
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameLimit(fps)
	}
}
