package geometry

import "math"

// Mat4 is a 4x4 matrix in row-major order: element (r,c) lives at m[r*4+c].
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Viewport returns the transform mapping the unit cube's x,y from [-1,1]
// into the pixel rectangle at (x, y) with the given width and height,
// leaving z untouched for depth interpolation.
func Viewport(x, y, width, height float64) Mat4 {
	return Mat4{
		width / 2, 0, 0, x + width/2,
		0, height / 2, 0, y + height/2,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Dim returns 4.
func (m Mat4) Dim() int { return 4 }

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float64 { return m[r*4+c] }

// Mul returns the matrix product m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var res Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			res[r*4+c] = m.At(r, 0)*other.At(0, c) +
				m.At(r, 1)*other.At(1, c) +
				m.At(r, 2)*other.At(2, c) +
				m.At(r, 3)*other.At(3, c)
		}
	}
	return res
}

// MulVec4 returns the column vector m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var res Vec4
	for r := 0; r < 4; r++ {
		res[r] = m.At(r, 0)*v[0] + m.At(r, 1)*v[1] + m.At(r, 2)*v[2] + m.At(r, 3)*v[3]
	}
	return res
}

// cofactor returns the signed 3x3 minor for element (r,c).
func (m Mat4) cofactor(r, c int) float64 {
	var sub Mat3
	i := 0
	for rr := 0; rr < 4; rr++ {
		if rr == r {
			continue
		}
		for cc := 0; cc < 4; cc++ {
			if cc == c {
				continue
			}
			sub[i] = m.At(rr, cc)
			i++
		}
	}
	minor := sub.Det()
	if (r+c)%2 == 1 {
		return -minor
	}
	return minor
}

// Det returns the determinant by cofactor expansion along row 0.
func (m Mat4) Det() float64 {
	return m.At(0, 0)*m.cofactor(0, 0) +
		m.At(0, 1)*m.cofactor(0, 1) +
		m.At(0, 2)*m.cofactor(0, 2) +
		m.At(0, 3)*m.cofactor(0, 3)
}

// Invert returns the inverse as the adjugate divided by the determinant.
// ok is false when the determinant magnitude is below the pivot threshold.
func (m Mat4) Invert() (Mat4, bool) {
	det := m.Det()
	if math.Abs(det) < minPivot {
		return Mat4{}, false
	}
	var res Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			res[c*4+r] = m.cofactor(r, c) / det
		}
	}
	return res, true
}
