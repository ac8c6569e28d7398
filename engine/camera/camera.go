package camera

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/Carmen-Shannon/gorgon/engine/target"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount is an atomic counter used to generate unique names for cameras created without one.
var cameraCount atomic.Uint64

// Stats counts how many times each matrix has actually been rebuilt.
type Stats struct {
	// ViewUpdates is the number of view matrix recomputations.
	ViewUpdates uint64
	// ProjectionUpdates is the number of projection matrix recomputations.
	ProjectionUpdates uint64
}

// Total returns the sum of view and projection updates.
func (s Stats) Total() uint64 {
	return s.ViewUpdates + s.ProjectionUpdates
}

// Camera defines the behaviour shared by orthographic and perspective cameras.
// Matrices are computed lazily: setters only record what changed, and the next call to
// ViewMatrix or ProjectionMatrix rebuilds the matrix if, and only if, its change bit is set.
// All methods are safe for concurrent use.
type Camera interface {
	// Name returns the camera's identifier.
	//
	// Returns:
	//   - string: the camera name
	Name() string

	// Changes returns the attributes changed since the matrices were last computed.
	//
	// Returns:
	//   - Change: the current change mask
	Changes() Change

	// DiscardChanges clears the change mask without recomputing anything.
	// Use it only when the cached matrices are known to be valid.
	DiscardChanges()

	// Position returns the world-space camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera. Marks View and Position as changed.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// ViewDimensions returns the logical size of the view area.
	//
	// Returns:
	//   - common.Size2F: the view dimensions
	ViewDimensions() common.Size2F

	// SetViewDimensions sets the logical size of the view area. Marks Projection as changed.
	//
	// Parameters:
	//   - dimensions: the new view dimensions
	SetViewDimensions(dimensions common.Size2F)

	// MinimumDepth returns the near end of the depth range.
	//
	// Returns:
	//   - float32: the minimum depth
	MinimumDepth() float32

	// SetMinimumDepth sets the near end of the depth range. Marks Projection as changed.
	//
	// Parameters:
	//   - depth: the new minimum depth
	SetMinimumDepth(depth float32)

	// MaximumDepth returns the far end of the depth range.
	//
	// Returns:
	//   - float32: the maximum depth, never less than 1
	MaximumDepth() float32

	// SetMaximumDepth sets the far end of the depth range, clamped to at least 1.
	// Marks Projection as changed.
	//
	// Parameters:
	//   - depth: the new maximum depth
	SetMaximumDepth(depth float32)

	// Target returns the bound render target, or nil if none is bound or it has been collected.
	//
	// Returns:
	//   - target.RenderTarget: the live target or nil
	Target() target.RenderTarget

	// SetTarget binds the camera to a render target without owning it.
	// Binding a new target marks everything as changed; binding a zero or dead
	// reference unbinds the camera and clears the change mask.
	//
	// Parameters:
	//   - ref: weak reference to the render target
	SetTarget(ref target.Ref)

	// TargetWidth returns the bound target's width, or the view width if no target is alive.
	//
	// Returns:
	//   - int: width in pixels
	TargetWidth() int

	// TargetHeight returns the bound target's height, or the view height if no target is alive.
	//
	// Returns:
	//   - int: height in pixels
	TargetHeight() int

	// AspectRatio returns (w/h, 1) when the target is at least as wide as it is tall, otherwise (1, h/w).
	// The bound target's pixel size is used when available, the view dimensions otherwise.
	//
	// Returns:
	//   - mgl32.Vec2: the horizontal and vertical aspect ratio
	AspectRatio() mgl32.Vec2

	// AllowUpdateOnResize returns whether the engine may resize ViewDimensions when the target resizes.
	//
	// Returns:
	//   - bool: true if automatic resizing is allowed
	AllowUpdateOnResize() bool

	// SetAllowUpdateOnResize sets whether the engine may resize ViewDimensions when the target resizes.
	//
	// Parameters:
	//   - allow: true to allow automatic resizing
	SetAllowUpdateOnResize(allow bool)

	// ViewableRegion returns the region of camera space visible at minimum depth.
	//
	// Returns:
	//   - common.RectangleF: the viewable region
	ViewableRegion() common.RectangleF

	// ViewMatrix returns the view matrix, recomputing it first if View is marked as changed.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix, recomputing it first if Projection is marked as changed.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns view × projection, refreshing both as needed.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Project converts a screen position (pixels, origin top-left, Y down) into camera space
	// using the current target size.
	//
	// Parameters:
	//   - screen: the screen position; Z is ignored
	//   - includeView: true to undo the view transform as well as the projection
	//
	// Returns:
	//   - mgl32.Vec3: the world-space (or view-space) position
	//   - error: ErrInvalidProjection if the transform cannot be inverted
	Project(screen mgl32.Vec3, includeView bool) (mgl32.Vec3, error)

	// ProjectSize is Project with an explicit target size.
	ProjectSize(screen mgl32.Vec3, targetSize common.Size2, includeView bool) (mgl32.Vec3, error)

	// Unproject converts a world-space position into screen pixels using the current target size.
	// With includeView false only the view matrix is applied.
	//
	// Parameters:
	//   - world: the world-space position
	//   - includeView: true to apply view × projection, false for the view matrix alone
	//
	// Returns:
	//   - mgl32.Vec3: the screen position, Z is always 0
	//   - error: ErrInvalidProjection if the result has no valid homogeneous w
	Unproject(world mgl32.Vec3, includeView bool) (mgl32.Vec3, error)

	// UnprojectSize is Unproject with an explicit target size.
	UnprojectSize(world mgl32.Vec3, targetSize common.Size2, includeView bool) (mgl32.Vec3, error)

	// Frustum returns the culling planes of the current view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: the frustum planes
	Frustum() common.Frustum

	// Stats returns how many times each matrix has been rebuilt.
	//
	// Returns:
	//   - Stats: the rebuild counters
	Stats() Stats
}

// matrixUpdater is implemented by each camera variant. The methods are called with the
// camera mutex held and must read and write fields directly.
type matrixUpdater interface {
	// updateViewMatrix rebuilds view from the fine-grained change bits and clears them.
	updateViewMatrix(view *mgl32.Mat4)
	// updateProjectionMatrix rebuilds projection.
	updateProjectionMatrix(projection *mgl32.Mat4)
	// viewableRegion returns the variant's viewable region.
	viewableRegion() common.RectangleF
}

// cameraBase holds the state shared by every camera variant and owns the
// change-mask-gated recomputation of the cached matrices.
type cameraBase struct {
	mu *sync.Mutex

	name    string
	changes Change

	position       mgl32.Vec3
	viewDimensions common.Size2F
	minDepth       float32
	maxDepth       float32

	target              target.Ref
	allowUpdateOnResize bool

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	stats            Stats

	updater matrixUpdater
}

// newCameraBase validates the view dimensions and builds the shared camera state.
// Panics if the dimensions are negative or not finite.
func newCameraBase(kind string, viewDimensions common.Size2F, b *cameraBuilder, updater matrixUpdater) *cameraBase {
	if viewDimensions.Width < 0 || viewDimensions.Height < 0 || !common.IsFinite(viewDimensions.Width, viewDimensions.Height) {
		panic(fmt.Sprintf("camera: invalid view dimensions %vx%v", viewDimensions.Width, viewDimensions.Height))
	}

	generated := kind + "_" + strconv.FormatUint(cameraCount.Add(1)-1, 10)

	return &cameraBase{
		mu:                  &sync.Mutex{},
		name:                common.Coalesce(strings.TrimSpace(b.name), generated),
		changes:             ChangeAll,
		position:            b.position,
		viewDimensions:      viewDimensions,
		minDepth:            b.minDepth,
		maxDepth:            max(b.maxDepth, 1.0),
		target:              b.target,
		allowUpdateOnResize: b.allowUpdateOnResize,
		viewMatrix:          mgl32.Ident4(),
		projectionMatrix:    mgl32.Ident4(),
		updater:             updater,
	}
}

func (b *cameraBase) Name() string {
	return b.name
}

func (b *cameraBase) Changes() Change {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changes
}

func (b *cameraBase) DiscardChanges() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = ChangeNone
}

func (b *cameraBase) Position() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

func (b *cameraBase) SetPosition(position mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.position == position {
		return
	}
	b.position = position
	b.changes |= ChangeView | ChangePosition
}

func (b *cameraBase) ViewDimensions() common.Size2F {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewDimensions
}

func (b *cameraBase) SetViewDimensions(dimensions common.Size2F) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.viewDimensions == dimensions {
		return
	}
	b.viewDimensions = dimensions
	b.changes |= ChangeProjection
}

func (b *cameraBase) MinimumDepth() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.minDepth
}

func (b *cameraBase) SetMinimumDepth(depth float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.minDepth == depth {
		return
	}
	b.minDepth = depth
	b.changes |= ChangeProjection
}

func (b *cameraBase) MaximumDepth() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxDepth
}

func (b *cameraBase) SetMaximumDepth(depth float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	depth = max(depth, 1.0)
	if b.maxDepth == depth {
		return
	}
	b.maxDepth = depth
	b.changes |= ChangeProjection
}

func (b *cameraBase) Target() target.RenderTarget {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target.Get()
}

func (b *cameraBase) SetTarget(ref target.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := ref.Get()
	if b.target.Get() == next {
		return
	}
	if next == nil {
		b.target = target.Ref{}
		b.changes = ChangeNone
		return
	}
	b.target = ref
	b.changes |= ChangeAll
}

func (b *cameraBase) TargetWidth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.targetSizeLocked().Width
}

func (b *cameraBase) TargetHeight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.targetSizeLocked().Height
}

func (b *cameraBase) AspectRatio() mgl32.Vec2 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.aspectRatioLocked()
}

func (b *cameraBase) AllowUpdateOnResize() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allowUpdateOnResize
}

func (b *cameraBase) SetAllowUpdateOnResize(allow bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allowUpdateOnResize = allow
}

func (b *cameraBase) ViewableRegion() common.RectangleF {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updater.viewableRegion()
}

func (b *cameraBase) ViewMatrix() mgl32.Mat4 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewMatrixLocked()
}

func (b *cameraBase) ProjectionMatrix() mgl32.Mat4 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.projectionMatrixLocked()
}

func (b *cameraBase) ViewProjectionMatrix() mgl32.Mat4 {
	b.mu.Lock()
	defer b.mu.Unlock()
	view := b.viewMatrixLocked()
	return b.projectionMatrixLocked().Mul4(view)
}

func (b *cameraBase) Project(screen mgl32.Vec3, includeView bool) (mgl32.Vec3, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.projectLocked(screen, b.targetSizeLocked(), includeView)
}

func (b *cameraBase) ProjectSize(screen mgl32.Vec3, targetSize common.Size2, includeView bool) (mgl32.Vec3, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.projectLocked(screen, targetSize, includeView)
}

func (b *cameraBase) Unproject(world mgl32.Vec3, includeView bool) (mgl32.Vec3, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unprojectLocked(world, b.targetSizeLocked(), includeView)
}

func (b *cameraBase) UnprojectSize(world mgl32.Vec3, targetSize common.Size2, includeView bool) (mgl32.Vec3, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unprojectLocked(world, targetSize, includeView)
}

func (b *cameraBase) Frustum() common.Frustum {
	b.mu.Lock()
	defer b.mu.Unlock()
	view := b.viewMatrixLocked()
	return common.ExtractFrustumFromMatrix(b.projectionMatrixLocked().Mul4(view))
}

func (b *cameraBase) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// --- internal helpers ---

// viewMatrixLocked rebuilds the view matrix if View is set, then clears View.
// Caller must hold the mutex.
func (b *cameraBase) viewMatrixLocked() mgl32.Mat4 {
	if b.changes.Has(ChangeView) {
		b.updater.updateViewMatrix(&b.viewMatrix)
		b.stats.ViewUpdates++
		b.changes &^= ChangeView
	}
	return b.viewMatrix
}

// projectionMatrixLocked rebuilds the projection matrix if Projection is set, then clears Projection.
// Caller must hold the mutex.
func (b *cameraBase) projectionMatrixLocked() mgl32.Mat4 {
	if b.changes.Has(ChangeProjection) {
		b.updater.updateProjectionMatrix(&b.projectionMatrix)
		b.stats.ProjectionUpdates++
		b.changes &^= ChangeProjection
	}
	return b.projectionMatrix
}

// refreshForTransformLocked brings both matrices up to date for a one-off transform and
// then restores the coarse View/Projection bits that were set before, so a renderer
// watching Changes still sees that its uploaded copy is stale.
// Caller must hold the mutex.
func (b *cameraBase) refreshForTransformLocked() (view, projection mgl32.Mat4) {
	pending := b.changes & (ChangeView | ChangeProjection)
	view = b.viewMatrixLocked()
	projection = b.projectionMatrixLocked()
	b.changes |= pending
	return view, projection
}

// projectLocked maps a screen position through the inverse (view ×) projection.
// Caller must hold the mutex.
func (b *cameraBase) projectLocked(screen mgl32.Vec3, size common.Size2, includeView bool) (mgl32.Vec3, error) {
	if size.Empty() {
		return mgl32.Vec3{}, fmt.Errorf("%w: empty target size %dx%d", ErrInvalidProjection, size.Width, size.Height)
	}

	view, projection := b.refreshForTransformLocked()

	transform := projection
	if includeView {
		transform = projection.Mul4(view)
	}
	inverse, ok := common.Invert(transform)
	if !ok {
		return mgl32.Vec3{}, fmt.Errorf("%w: transform is not invertible", ErrInvalidProjection)
	}

	relative := mgl32.Vec3{
		2.0*screen.X()/float32(size.Width) - 1.0,
		1.0 - 2.0*screen.Y()/float32(size.Height),
		0,
	}

	result, w := common.TransformCoordinate(relative, inverse)
	return divideW(result, w)
}

// unprojectLocked maps a world position through (view ×) projection into screen pixels.
// Caller must hold the mutex.
func (b *cameraBase) unprojectLocked(world mgl32.Vec3, size common.Size2, includeView bool) (mgl32.Vec3, error) {
	if size.Empty() {
		return mgl32.Vec3{}, fmt.Errorf("%w: empty target size %dx%d", ErrInvalidProjection, size.Width, size.Height)
	}

	view, projection := b.refreshForTransformLocked()

	transform := view
	if includeView {
		transform = projection.Mul4(view)
	}

	clip, w := common.TransformCoordinate(world, transform)
	clip, err := divideW(clip, w)
	if err != nil {
		return mgl32.Vec3{}, err
	}

	return mgl32.Vec3{
		(clip.X() + 1.0) * 0.5 * float32(size.Width),
		(1.0 - clip.Y()) * 0.5 * float32(size.Height),
		0,
	}, nil
}

// targetSizeLocked returns the live target's size, falling back to the view dimensions.
// Caller must hold the mutex.
func (b *cameraBase) targetSizeLocked() common.Size2 {
	if w, h, ok := b.target.Size(); ok {
		return common.Size2{Width: w, Height: h}
	}
	return common.Size2{Width: int(b.viewDimensions.Width), Height: int(b.viewDimensions.Height)}
}

// aspectRatioLocked computes the aspect ratio from the live target or the view dimensions.
// An empty size yields (1, 1).
// Caller must hold the mutex.
func (b *cameraBase) aspectRatioLocked() mgl32.Vec2 {
	width, height := b.viewDimensions.Width, b.viewDimensions.Height
	if w, h, ok := b.target.Size(); ok {
		width, height = float32(w), float32(h)
	}
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{1, 1}
	}
	if width >= height {
		return mgl32.Vec2{width / height, 1}
	}
	return mgl32.Vec2{1, height / width}
}

// divideW applies the homogeneous divide. Orthographic transforms leave w at 1.
func divideW(v mgl32.Vec3, w float32) (mgl32.Vec3, error) {
	if w == 0 || !common.IsFinite(w) {
		return mgl32.Vec3{}, fmt.Errorf("%w: homogeneous w is %v", ErrInvalidProjection, w)
	}
	if w != 1 {
		v = v.Mul(1.0 / w)
	}
	return v, nil
}
