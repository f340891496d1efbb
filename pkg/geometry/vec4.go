package geometry

// Vec4 is a 4x1 homogeneous column vector.
type Vec4 [4]float64

// Homogeneous lifts a 3D point into homogeneous coordinates with w = 1.
func Homogeneous(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 performs the perspective divide back to a 3D point. A w of zero
// divides through under IEEE rules and yields non-finite components.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}
