// Package renderer presents frames to a window surface and keeps one camera uniform
// buffer per tracked camera in sync with the camera's matrices.
package renderer

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/gorgon/engine/camera"
	"github.com/Carmen-Shannon/gorgon/engine/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// DrawFunc records draw commands into the frame's render pass.
// buffers holds the uniform buffer of every tracked camera, in tracking order.
type DrawFunc func(pass *wgpu.RenderPassEncoder, buffers []*uniform.Buffer)

// Renderer owns the GPU device and the window surface.
type Renderer interface {
	// Device returns the GPU device, for pipeline and bind group creation.
	Device() *wgpu.Device

	// Queue returns the device queue.
	Queue() *wgpu.Queue

	// SurfaceFormat returns the configured surface texture format.
	SurfaceFormat() wgpu.TextureFormat

	// Resize reconfigures the surface. Sizes with a zero dimension are ignored.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SetClearColor sets the color the frame is cleared to.
	SetClearColor(color wgpu.Color)

	// Track allocates a uniform buffer for cam. Tracking a camera twice returns the existing buffer.
	//
	// Parameters:
	//   - cam: the camera to mirror on the GPU
	//
	// Returns:
	//   - *uniform.Buffer: the camera's uniform buffer
	//   - error: camera.ErrNilCamera or a GPU allocation error
	Track(cam camera.Camera) (*uniform.Buffer, error)

	// Untrack releases the named camera's uniform buffer and reports whether it was tracked.
	Untrack(name string) bool

	// Frame syncs every tracked uniform buffer, clears the surface, runs draw and presents.
	//
	// Parameters:
	//   - draw: records draw commands; may be nil to only clear
	//
	// Returns:
	//   - int: the number of uniform buffers uploaded this frame
	//   - error: if the surface texture cannot be acquired or the commands cannot be encoded
	Frame(draw DrawFunc) (int, error)

	// Release frees every GPU resource held by the renderer.
	Release()
}

type renderer struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	clearColor    wgpu.Color
	configured    bool

	buffers []*uniform.Buffer
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for surfaceDescriptor and configures the surface.
// Must be called from the thread that owns the window.
//
// Parameters:
//   - surfaceDescriptor: the window surface, from window.Window.SurfaceDescriptor
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: functional options for presentation
//
// Returns:
//   - Renderer: the new renderer
//   - error: if no adapter or device is available
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	runtime.LockOSThread()

	r := &renderer{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, opt := range options {
		opt(r)
	}

	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	a, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}
	r.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	r.device = d
	r.queue = d.GetQueue()

	r.Resize(width, height)
	return r, nil
}

func (r *renderer) Device() *wgpu.Device {
	return r.device
}

func (r *renderer) Queue() *wgpu.Queue {
	return r.queue
}

func (r *renderer) SurfaceFormat() wgpu.TextureFormat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surfaceFormat
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	r.configured = true
}

func (r *renderer) SetClearColor(color wgpu.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
}

func (r *renderer) Track(cam camera.Camera) (*uniform.Buffer, error) {
	if cam == nil {
		return nil, camera.ErrNilCamera
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := indexOf(r.buffers, cam.Name()); i >= 0 {
		return r.buffers[i], nil
	}

	buf, err := uniform.New(r.device, r.queue, cam)
	if err != nil {
		return nil, err
	}
	r.buffers = append(r.buffers, buf)
	return buf, nil
}

func (r *renderer) Untrack(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := indexOf(r.buffers, name)
	if i < 0 {
		return false
	}
	r.buffers[i].Release()
	r.buffers = append(r.buffers[:i], r.buffers[i+1:]...)
	return true
}

func (r *renderer) Frame(draw DrawFunc) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.configured {
		return 0, fmt.Errorf("renderer: surface not configured")
	}

	uploads := syncAll(r.buffers)

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return uploads, err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return uploads, err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return uploads, err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})
	if draw != nil {
		draw(pass, append([]*uniform.Buffer(nil), r.buffers...))
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return uploads, err
	}
	defer commandBuffer.Release()

	r.queue.Submit(commandBuffer)
	r.surface.Present()
	return uploads, nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, buf := range r.buffers {
		buf.Release()
	}
	r.buffers = nil

	if r.queue != nil {
		r.queue.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.surface != nil {
		r.surface.Release()
	}
	r.instance.Release()
}

// syncAll uploads every stale buffer and returns how many were written.
func syncAll(buffers []*uniform.Buffer) int {
	uploads := 0
	for _, buf := range buffers {
		if buf.Sync() {
			uploads++
		}
	}
	return uploads
}

// indexOf finds the buffer whose camera has the given name, ignoring case.
func indexOf(buffers []*uniform.Buffer, name string) int {
	for i, buf := range buffers {
		if strings.EqualFold(buf.Camera().Name(), name) {
			return i
		}
	}
	return -1
}

// wgpuPresentMode maps a PresentMode to the surface present mode.
func wgpuPresentMode(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeVSync:
		return wgpu.PresentModeFifo
	default:
		return wgpu.PresentModeImmediate
	}
}
