package camera

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Collection holds cameras keyed by name, case-insensitively, in insertion order.
// It is safe for concurrent use.
type Collection interface {
	// Add inserts cam.
	//
	// Parameters:
	//   - cam: the camera to add
	//
	// Returns:
	//   - error: ErrNilCamera or ErrDuplicateName
	Add(cam Camera) error

	// Get returns the camera with the given name.
	//
	// Parameters:
	//   - name: the camera name, compared case-insensitively
	//
	// Returns:
	//   - Camera: the camera, or nil
	//   - bool: false if no camera has that name
	Get(name string) (Camera, bool)

	// Remove deletes the camera with the given name and reports whether it was present.
	Remove(name string) bool

	// Contains reports whether a camera with the given name is present.
	Contains(name string) bool

	// Len returns the number of cameras.
	Len() int

	// Names returns the camera names in insertion order.
	Names() []string

	// Cameras returns the cameras in insertion order.
	Cameras() []Camera

	// Refresh recomputes the pending matrices of every camera whose View or Projection
	// bit is set. Cameras are refreshed in parallel, one task per camera.
	//
	// Returns:
	//   - []Camera: the cameras that were refreshed, in insertion order
	Refresh() []Camera
}

// CollectionOption is a functional option for configuring a Collection.
type CollectionOption func(*collection)

// WithWorkers sets how many goroutines Refresh may use. Values below 1 are treated as 1.
//
// Parameters:
//   - workers: maximum number of worker goroutines
//
// Returns:
//   - CollectionOption: functional option to set the worker count
func WithWorkers(workers int) CollectionOption {
	return func(c *collection) {
		c.workers = max(workers, 1)
	}
}

type collection struct {
	mu *sync.Mutex

	byKey   map[string]Camera
	ordered []Camera

	// pool runs one refresh task per dirty camera. Workers idle-exit between frames.
	pool    worker.DynamicWorkerPool
	workers int
}

var _ Collection = &collection{}

// NewCollection creates an empty camera collection.
//
// Parameters:
//   - options: variadic list of CollectionOption functions
//
// Returns:
//   - Collection: the new collection
func NewCollection(options ...CollectionOption) Collection {
	c := &collection{
		mu:      &sync.Mutex{},
		byKey:   make(map[string]Camera),
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(c)
	}
	c.pool = worker.NewDynamicWorkerPool(c.workers, 256, 1*time.Second)
	return c
}

func collectionKey(name string) string {
	return strings.ToLower(name)
}

func (c *collection) Add(cam Camera) error {
	if cam == nil {
		return ErrNilCamera
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := collectionKey(cam.Name())
	if _, exists := c.byKey[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, cam.Name())
	}
	c.byKey[key] = cam
	c.ordered = append(c.ordered, cam)
	return nil
}

func (c *collection) Get(name string) (Camera, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cam, ok := c.byKey[collectionKey(name)]
	return cam, ok
}

func (c *collection) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := collectionKey(name)
	cam, ok := c.byKey[key]
	if !ok {
		return false
	}
	delete(c.byKey, key)
	for i, existing := range c.ordered {
		if existing == cam {
			c.ordered = append(c.ordered[:i], c.ordered[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection) Contains(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.byKey[collectionKey(name)]
	return ok
}

func (c *collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ordered)
}

func (c *collection) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.ordered))
	for i, cam := range c.ordered {
		names[i] = cam.Name()
	}
	return names
}

func (c *collection) Cameras() []Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Camera(nil), c.ordered...)
}

func (c *collection) Refresh() []Camera {
	var dirty []Camera
	for _, cam := range c.Cameras() {
		if cam.Changes().Any(ChangeView | ChangeProjection) {
			dirty = append(dirty, cam)
		}
	}
	if len(dirty) == 0 {
		return nil
	}

	// A WaitGroup is the per-frame barrier; the pool's own Wait blocks until workers idle-exit.
	var wg sync.WaitGroup
	for id, cam := range dirty {
		wg.Add(1)
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				cam.ViewMatrix()
				cam.ProjectionMatrix()
				return nil, nil
			},
		})
	}
	wg.Wait()

	return dirty
}
