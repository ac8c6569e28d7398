// Package uniform mirrors camera matrices into GPU uniform buffers.
package uniform

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/gorgon/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// Buffer is a GPU uniform buffer holding one camera's GPUCameraUniform.
// Sync uploads new data only when the camera's matrices have changed since the last upload.
type Buffer struct {
	mu *sync.Mutex

	cam    camera.Camera
	buffer *wgpu.Buffer
	write  func(data []byte)

	uploaded    bool
	uploadedAt  uint64 // camera Stats().Total() at the last upload
	uploadCount uint64
}

// New allocates a uniform buffer on device for cam and uploads the current matrices.
//
// Parameters:
//   - device: the GPU device
//   - queue: the queue used for uploads
//   - cam: the camera to mirror
//
// Returns:
//   - *Buffer: the new buffer
//   - error: if the GPU buffer cannot be created
func New(device *wgpu.Device, queue *wgpu.Queue, cam camera.Camera) (*Buffer, error) {
	if device == nil || queue == nil {
		panic("uniform: New requires a non-nil device and queue")
	}
	if cam == nil {
		return nil, camera.ErrNilCamera
	}

	var layout camera.GPUCameraUniform
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            cam.Name() + " Camera Uniform",
		Size:             uint64(layout.Size()),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("uniform: create buffer for %q: %w", cam.Name(), err)
	}

	b := NewWithWriter(cam, func(data []byte) {
		queue.WriteBuffer(buf, 0, data)
	})
	b.buffer = buf
	b.Sync()
	return b, nil
}

// NewWithWriter returns a Buffer that hands each upload to write instead of a GPU queue,
// for offscreen targets and recording. The first Sync always writes.
func NewWithWriter(cam camera.Camera, write func(data []byte)) *Buffer {
	return &Buffer{
		mu:    &sync.Mutex{},
		cam:   cam,
		write: write,
	}
}

// Camera returns the mirrored camera.
func (b *Buffer) Camera() camera.Camera {
	return b.cam
}

// GPUBuffer returns the underlying GPU buffer for bind group creation.
func (b *Buffer) GPUBuffer() *wgpu.Buffer {
	return b.buffer
}

// Uploads returns how many times data has been written to the GPU.
func (b *Buffer) Uploads() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploadCount
}

// NeedsUpload reports whether the GPU copy is stale: never uploaded, the camera has a
// pending View or Projection change, or a matrix was rebuilt since the last upload.
//
// Returns:
//   - bool: true if Sync would upload
func (b *Buffer) NeedsUpload() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.needsUploadLocked()
}

func (b *Buffer) needsUploadLocked() bool {
	if !b.uploaded {
		return true
	}
	if b.cam.Changes().Any(camera.ChangeView | camera.ChangeProjection) {
		return true
	}
	return b.cam.Stats().Total() != b.uploadedAt
}

// Sync uploads the camera's view-projection matrix and position if the GPU copy is stale.
//
// Returns:
//   - bool: true if data was written
func (b *Buffer) Sync() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.needsUploadLocked() {
		return false
	}

	u := camera.NewGPUCameraUniform(b.cam)
	b.write(u.Marshal())
	b.uploaded = true
	b.uploadedAt = b.cam.Stats().Total()
	b.uploadCount++
	return true
}

// Release frees the GPU buffer.
func (b *Buffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
