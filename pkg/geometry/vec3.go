// Package geometry provides the vector and matrix algebra used by the
// software rendering pipeline: 3D vectors, fixed-size and arbitrary-size
// square matrices, homogeneous columns, and a triangle primitive with
// precomputed barycentric basis.
package geometry

import "math"

// Vec3 is a 3D vector. It doubles as an RGB color triple in [0,255]
// per channel inside the shading stage.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean norm.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. A zero vector divides
// through to non-finite components; callers own that case.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	return Vec3{v.X / n, v.Y / n, v.Z / n}
}
