package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned copy of a camera's matrices.
// Size: 80 bytes.
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: view × projection (mat4x4<f32>)
	CameraPosition [3]float32  // offset 64: world-space camera position (vec3<f32>)
	_pad           float32     // offset 76: padding to 80 bytes
}

// NewGPUCameraUniform snapshots cam's current view-projection matrix and position.
// Reading the matrices refreshes them, so the camera's View and Projection bits are cleared.
//
// Parameters:
//   - cam: the camera to snapshot
//
// Returns:
//   - GPUCameraUniform: the uniform data
func NewGPUCameraUniform(cam Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:       cam.ViewProjectionMatrix(),
		CameraPosition: cam.Position(),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, f := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, f := range g.CameraPosition {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(f))
	}
	return buf
}
