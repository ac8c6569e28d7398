package window

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnspawnedWindowDefaults(t *testing.T) {
	w := newEngineWindow(WithTitle("viewer"), WithSize(640, 480))

	assert.Equal(t, "viewer", w.Title())
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestHandleResize(t *testing.T) {
	w := newEngineWindow()

	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) {
		gotW, gotH = width, height
	})
	w.handleResize(1920, 1080)

	assert.Equal(t, 1920, gotW)
	assert.Equal(t, 1080, gotH)
	assert.Equal(t, 1920, w.Width())
	assert.Equal(t, 1080, w.Height())
}

func TestRenderTargetRef(t *testing.T) {
	w := newEngineWindow(WithSize(800, 600))
	ref := w.RenderTarget()

	require.True(t, ref.Alive())
	width, height, ok := ref.Size()
	assert.True(t, ok)
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)
	assert.True(t, ref.Same(w.RenderTarget()))

	w.handleResize(1024, 768)
	width, _, _ = ref.Size()
	assert.Equal(t, 1024, width)
	runtime.KeepAlive(w)
}
