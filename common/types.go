// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Size2 is an integer width/height pair, typically a render target size in pixels.
type Size2 struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is zero or negative.
func (s Size2) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Size2F is a floating point width/height pair, used for camera view dimensions.
type Size2F struct {
	Width  float32
	Height float32
}

// ToSize2F converts an integer size to a floating point size.
func (s Size2) ToSize2F() Size2F {
	return Size2F{Width: float32(s.Width), Height: float32(s.Height)}
}

// RectangleF is an axis-aligned rectangle defined by its upper left corner and its size.
type RectangleF struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Right returns the X coordinate of the right edge.
func (r RectangleF) Right() float32 {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge.
func (r RectangleF) Bottom() float32 {
	return r.Y + r.Height
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
//
// Parameters:
//   - x, y: the point to test
//
// Returns:
//   - bool: true if the point is inside
func (r RectangleF) Contains(x, y float32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
