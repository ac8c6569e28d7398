package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// DistanceTo returns the signed distance from the plane to p. Positive values are
// on the side the normal points to.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix
// whose clip-space depth range is [0, 1].
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	// Clip = viewProj.Mul4x1(v), so clip row i is (m[i], m[4+i], m[8+i], m[12+i]).
	row := func(i int) (mgl32.Vec3, float32) {
		return mgl32.Vec3{viewProj[i], viewProj[4+i], viewProj[8+i]}, viewProj[12+i]
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	f.Planes[FrustumLeft] = Plane{Normal: r3.Add(r0), Distance: d3 + d0}
	f.Planes[FrustumRight] = Plane{Normal: r3.Sub(r0), Distance: d3 - d0}
	f.Planes[FrustumBottom] = Plane{Normal: r3.Add(r1), Distance: d3 + d1}
	f.Planes[FrustumTop] = Plane{Normal: r3.Sub(r1), Distance: d3 - d1}
	// z >= 0 in clip space, so the near plane is row 2 on its own.
	f.Planes[FrustumNear] = Plane{Normal: r2, Distance: d2}
	f.Planes[FrustumFar] = Plane{Normal: r3.Sub(r2), Distance: d3 - d2}

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// ContainsPoint reports whether pt lies inside or on every plane of the frustum.
//
// Parameters:
//   - pt: the world-space point to test
//
// Returns:
//   - bool: true if the point is inside the frustum
func (f *Frustum) ContainsPoint(pt mgl32.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceTo(pt) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere overlaps the frustum. The test is
// conservative: spheres near frustum corners may report true while being outside.
//
// Parameters:
//   - center: world-space sphere center
//   - radius: sphere radius
//
// Returns:
//   - bool: true if the sphere may be visible
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := math32.Sqrt(p.Normal.Dot(p.Normal))

	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}
