package target

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type surface struct {
	name          string
	width, height int
	_             [64]byte
}

func (s *surface) Width() int  { return s.width }
func (s *surface) Height() int { return s.height }

func TestZeroRef(t *testing.T) {
	var r Ref
	assert.True(t, r.IsZero())
	assert.False(t, r.Alive())
	assert.Nil(t, r.Get())
	_, _, ok := r.Size()
	assert.False(t, ok)

	var nilSurface *surface
	assert.True(t, Weak(nilSurface).IsZero())
}

func TestWeakResolvesLiveTarget(t *testing.T) {
	s := &surface{name: "swap chain", width: 1280, height: 720}
	r := Weak(s)

	require.True(t, r.Alive())
	w, h, ok := r.Size()
	assert.True(t, ok)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	s.width = 640
	assert.Equal(t, 640, r.Get().Width(), "ref observes the live object")

	assert.True(t, r.Same(Weak(s)))
	assert.False(t, r.Same(Weak(&surface{name: "other"})))
	runtime.KeepAlive(s)
}

func TestWeakDoesNotKeepTargetAlive(t *testing.T) {
	r := func() Ref {
		s := &surface{name: "offscreen", width: 320, height: 200}
		return Weak(s)
	}()

	runtime.GC()
	runtime.GC()

	assert.False(t, r.Alive())
	assert.Nil(t, r.Get())
	assert.False(t, r.IsZero(), "a collected target still leaves a bound ref")
}
