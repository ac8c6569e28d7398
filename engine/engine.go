package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/Carmen-Shannon/gorgon/engine/camera"
	"github.com/Carmen-Shannon/gorgon/engine/profiler"
	"github.com/Carmen-Shannon/gorgon/engine/target"
)

// Host is the windowing surface the engine runs on. window.Window satisfies it.
type Host interface {
	target.RenderTarget

	// RenderTarget returns a weak reference to the host's render target.
	RenderTarget() target.Ref

	// SetResizeCallback registers the function called when the host's framebuffer is resized.
	SetResizeCallback(callback func(width, height int))

	// ProcessMessages runs the host's message loop, blocking until it closes.
	ProcessMessages()
}

// engine implements the Engine interface.
// Coordinates the tick, render and host threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	host Host

	cameras        camera.Collection
	pendingCameras []camera.Camera
	workers        int

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the cameras and runs the tick loop, the render loop and the host message loop.
type Engine interface {
	// Host returns the host the engine runs on, or nil when headless.
	//
	// Returns:
	//   - Host: the host instance
	Host() Host

	// Cameras returns the engine's camera collection.
	//
	// Returns:
	//   - camera.Collection: the cameras refreshed every render frame
	Cameras() camera.Collection

	// AddCamera adds cam to the collection. A camera with no render target is bound to the host's.
	//
	// Parameters:
	//   - cam: the camera to add
	//
	// Returns:
	//   - error: camera.ErrNilCamera or camera.ErrDuplicateName
	AddCamera(cam camera.Camera) error

	// RemoveCamera removes the named camera and reports whether it was present.
	RemoveCamera(name string) bool

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for input handling and camera movement.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame, after camera matrices are refreshed.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the engine loops and blocks until the host closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (host, cameras, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.cameras == nil {
		var collectionOptions []camera.CollectionOption
		if e.workers > 0 {
			collectionOptions = append(collectionOptions, camera.WithWorkers(e.workers))
		}
		e.cameras = camera.NewCollection(collectionOptions...)
	}

	for _, cam := range e.pendingCameras {
		if err := e.AddCamera(cam); err != nil {
			log.Printf("engine: could not add camera: %v", err)
		}
	}
	e.pendingCameras = nil

	if e.host != nil {
		e.host.SetResizeCallback(e.handleResize)
	}

	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) Cameras() camera.Collection {
	return e.cameras
}

func (e *engine) AddCamera(cam camera.Camera) error {
	if cam == nil {
		return camera.ErrNilCamera
	}
	if err := e.cameras.Add(cam); err != nil {
		return err
	}
	if e.host != nil && cam.Target() == nil {
		cam.SetTarget(e.host.RenderTarget())
	}
	return nil
}

func (e *engine) RemoveCamera(name string) bool {
	return e.cameras.Remove(name)
}

// handleResize gives every camera that allows it the host's new pixel size as its view dimensions.
func (e *engine) handleResize(width, height int) {
	size := common.Size2{Width: width, Height: height}
	if size.Empty() {
		// Minimized windows report 0x0; keep the last usable dimensions.
		return
	}

	updated := 0
	for _, cam := range e.cameras.Cameras() {
		if !cam.AllowUpdateOnResize() {
			continue
		}
		cam.SetViewDimensions(size.ToSize2F())
		updated++
	}
	log.Printf("engine: resized to %dx%d, updated %d camera(s)", width, height, updated)
}

func (e *engine) Run() {
	e.handle()
	if e.host != nil {
		e.host.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the engine and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each frame refreshes every dirty camera, then calls the render callback.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.cameras.Refresh()

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled.Load() && e.profiler != nil {
				e.profiler.Tick(e.matrixUpdates())
			}

			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// matrixUpdates sums the matrix rebuild counters of every camera.
func (e *engine) matrixUpdates() uint64 {
	var total uint64
	for _, cam := range e.cameras.Cameras() {
		total += cam.Stats().Total()
	}
	return total
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// Non-blocking send; replace a pending value if the channel is full.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameLimit(fps)
}

// tickInterval converts a rate to a tick period, treating fps <= 0 as 60.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameLimit converts a frame cap to a minimum frame duration, 0 meaning uncapped.
func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
