// Package target defines the render target collaborator consumed by cameras and a
// non-owning reference to it.
package target

import "weak"

// RenderTarget is anything with a pixel size that a camera can be bound to, such as
// a window's swap chain or an offscreen texture.
type RenderTarget interface {
	// Width returns the current width in pixels.
	Width() int

	// Height returns the current height in pixels.
	Height() int
}

// Ref is a weak reference to a RenderTarget. Holding a Ref never keeps the target
// alive: once the target is collected, Get returns nil.
// The zero Ref refers to nothing.
type Ref struct {
	// key is the weak.Pointer the Ref was built from, kept as a comparable identity.
	key     any
	resolve func() RenderTarget
}

// Weak builds a Ref to the target pointed at by p. A nil p yields the zero Ref.
//
// Parameters:
//   - p: pointer to the render target
//
// Returns:
//   - Ref: a weak reference to the target
func Weak[T any, P interface {
	*T
	RenderTarget
}](p P) Ref {
	if p == nil {
		return Ref{}
	}
	wp := weak.Make((*T)(p))
	return Ref{
		key: wp,
		resolve: func() RenderTarget {
			if v := wp.Value(); v != nil {
				return P(v)
			}
			return nil
		},
	}
}

// Get returns the target, or nil if the Ref is zero or the target has been collected.
// The returned value is a strong reference; callers should not retain it.
func (r Ref) Get() RenderTarget {
	if r.resolve == nil {
		return nil
	}
	return r.resolve()
}

// Alive reports whether the target can still be resolved.
func (r Ref) Alive() bool {
	return r.Get() != nil
}

// IsZero reports whether the Ref was never bound to a target.
func (r Ref) IsZero() bool {
	return r.key == nil
}

// Same reports whether both refs were built from the same target pointer.
func (r Ref) Same(other Ref) bool {
	return r.key == other.key
}

// Size returns the target's pixel size, or ok=false if no live target is bound.
//
// Returns:
//   - width, height: the target size in pixels
//   - ok: false if the target is gone
func (r Ref) Size() (width, height int, ok bool) {
	t := r.Get()
	if t == nil {
		return 0, 0, false
	}
	return t.Width(), t.Height(), true
}
