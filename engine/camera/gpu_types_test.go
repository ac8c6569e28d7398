package camera

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUCameraUniformLayout(t *testing.T) {
	var u GPUCameraUniform
	assert.Equal(t, 80, u.Size())
	assert.True(t, strings.Contains(GPUCameraUniformSource, "view_proj: mat4x4<f32>"))
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	cam := NewOrthographicCamera(common.Size2F{Width: 800, Height: 600}, WithPosition(100, 50, 3))
	u := NewGPUCameraUniform(cam)

	assert.Equal(t, ChangeNone, cam.Changes())
	assert.Equal(t, [3]float32{100, 50, 3}, u.CameraPosition)

	vp := cam.ViewProjectionMatrix()
	buf := u.Marshal()
	require.Len(t, buf, 80)

	for i := range 16 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		assert.Equal(t, vp[i], got, "element %d", i)
	}
	assert.Equal(t, float32(50), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[76:]))
}
