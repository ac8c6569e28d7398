package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Report is the set of statistics computed at the end of one profiling interval.
type Report struct {
	// FPS is the rendered frames per second.
	FPS float64
	// MatrixUpdatesPerSecond is the rate of camera view/projection rebuilds.
	MatrixUpdatesPerSecond float64
	// HeapMB is the live heap size.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in MB/s.
	AllocRateMB float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// LastPauseUs and MaxPauseUs are the latest and largest GC pauses in the interval.
	LastPauseUs uint64
	MaxPauseUs  uint64
	// SysMB is the memory obtained from the OS.
	SysMB float64
}

// Profiler tracks frame rate, camera matrix rebuilds and memory statistics.
// Outputs stats to the log once per interval.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// matrixUpdates is the cumulative rebuild count reported at the start of the interval.
	matrixUpdates    uint64
	hasMatrixUpdates bool

	last  Report
	clock func() time.Time
}

// NewProfiler creates a new Profiler that reports once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
		clock:          time.Now,
	}
}

// Tick should be called once per rendered frame.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - matrixUpdates: the cumulative number of camera matrix rebuilds so far
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(matrixUpdates uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.hasMatrixUpdates {
		p.matrixUpdates = matrixUpdates
		p.hasMatrixUpdates = true
	}

	p.frameCount++
	currentTime := p.clock()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	seconds := elapsed.Seconds()
	r := Report{
		FPS: float64(p.frameCount) / seconds,
	}
	if matrixUpdates >= p.matrixUpdates {
		r.MatrixUpdatesPerSecond = float64(matrixUpdates-p.matrixUpdates) / seconds
	}

	runtime.ReadMemStats(&p.memStats)
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	r.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	r.GCCount = p.memStats.NumGC
	if r.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		r.LastPauseUs = p.memStats.PauseNs[(r.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if r.GCCount-startIdx > 256 {
			startIdx = r.GCCount - 256
		}
		for i := startIdx; i < r.GCCount; i++ {
			r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Camera updates: %.1f/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.MatrixUpdatesPerSecond, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)

	p.last = r
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.matrixUpdates = matrixUpdates
	return true
}

// Last returns the most recent report, or the zero Report if none has been produced.
func (p *Profiler) Last() Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
