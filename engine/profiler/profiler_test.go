package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestProfiler() (*Profiler, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	p := NewProfiler()
	p.clock = clock.Now
	p.lastTime = clock.now
	return p, clock
}

func TestTickReportsOncePerInterval(t *testing.T) {
	p, clock := newTestProfiler()

	for i := range 59 {
		clock.now = clock.now.Add(10 * time.Millisecond)
		assert.False(t, p.Tick(uint64(i*2)), "tick %d", i)
	}
	assert.Equal(t, Report{}, p.Last())

	clock.now = clock.now.Add(410 * time.Millisecond)
	assert.True(t, p.Tick(120))

	r := p.Last()
	assert.InDelta(t, 60, r.FPS, 1e-9)
	assert.InDelta(t, 120, r.MatrixUpdatesPerSecond, 1e-9)
	assert.Greater(t, r.SysMB, 0.0)
}

func TestTickMatrixRateUsesIntervalDelta(t *testing.T) {
	p, clock := newTestProfiler()

	p.Tick(1000)
	clock.now = clock.now.Add(time.Second)
	assert.True(t, p.Tick(1000))
	assert.Equal(t, 0.0, p.Last().MatrixUpdatesPerSecond)

	clock.now = clock.now.Add(2 * time.Second)
	assert.True(t, p.Tick(1050))
	assert.InDelta(t, 25, p.Last().MatrixUpdatesPerSecond, 1e-9)
}
