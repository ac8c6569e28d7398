package camera

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionAddGetRemove(t *testing.T) {
	c := NewCollection(WithWorkers(2))

	primary := NewOrthographicCamera(common.Size2F{Width: 800, Height: 600}, WithName("Main"))
	overlay := NewPerspectiveCamera(common.Size2F{Width: 800, Height: 600}, WithName("overlay"))

	require.NoError(t, c.Add(primary))
	require.NoError(t, c.Add(overlay))
	assert.ErrorIs(t, c.Add(nil), ErrNilCamera)
	assert.ErrorIs(t, c.Add(NewOrthographicCamera(common.Size2F{}, WithName("MAIN"))), ErrDuplicateName)

	got, ok := c.Get("main")
	require.True(t, ok)
	assert.Same(t, primary, got)
	assert.True(t, c.Contains("OVERLAY"))
	assert.Equal(t, []string{"Main", "overlay"}, c.Names())
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove("mAiN"))
	assert.False(t, c.Remove("main"))
	assert.Equal(t, []Camera{overlay}, c.Cameras())

	_, ok = c.Get("main")
	assert.False(t, ok)
}

func TestCollectionRefresh(t *testing.T) {
	c := NewCollection(WithWorkers(4))

	cams := make([]OrthographicCamera, 10)
	for i := range cams {
		cams[i] = NewOrthographicCamera(common.Size2F{Width: 800, Height: 600}, WithName(fmt.Sprintf("cam%d", i)))
		require.NoError(t, c.Add(cams[i]))
	}

	refreshed := c.Refresh()
	assert.Len(t, refreshed, 10)
	for _, cam := range cams {
		assert.Equal(t, ChangeNone, cam.Changes())
		assert.Equal(t, Stats{ViewUpdates: 1, ProjectionUpdates: 1}, cam.Stats())
	}

	assert.Empty(t, c.Refresh(), "nothing pending")

	cams[3].SetPosition(mgl32.Vec3{1, 2, 0})
	cams[7].SetAnchor(mgl32.Vec2{0.5, 0.5})
	refreshed = c.Refresh()
	require.Len(t, refreshed, 2)
	assert.Equal(t, "cam3", refreshed[0].Name())
	assert.Equal(t, "cam7", refreshed[1].Name())
	assert.Equal(t, uint64(2), cams[3].Stats().ViewUpdates)
	assert.Equal(t, uint64(2), cams[7].Stats().ProjectionUpdates)
}
