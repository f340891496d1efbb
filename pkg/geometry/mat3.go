package geometry

import "math"

// Mat3 is a 3x3 matrix in row-major order: element (r,c) lives at m[r*3+c].
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Dim returns 3.
func (m Mat3) Dim() int { return 3 }

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float64 { return m[r*3+c] }

// Mul returns the matrix product m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var res Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			res[r*3+c] = m.At(r, 0)*other.At(0, c) +
				m.At(r, 1)*other.At(1, c) +
				m.At(r, 2)*other.At(2, c)
		}
	}
	return res
}

// sub3 lists the two rows or columns that remain after removing an index.
var sub3 = [3][2]int{{1, 2}, {0, 2}, {0, 1}}

// cofactor returns the signed 2x2 minor for element (r,c).
func (m Mat3) cofactor(r, c int) float64 {
	rs, cs := sub3[r], sub3[c]
	minor := m.At(rs[0], cs[0])*m.At(rs[1], cs[1]) - m.At(rs[0], cs[1])*m.At(rs[1], cs[0])
	if (r+c)%2 == 1 {
		return -minor
	}
	return minor
}

// Det returns the determinant by cofactor expansion along row 0.
func (m Mat3) Det() float64 {
	return m.At(0, 0)*m.cofactor(0, 0) +
		m.At(0, 1)*m.cofactor(0, 1) +
		m.At(0, 2)*m.cofactor(0, 2)
}

// Invert returns the inverse as the adjugate divided by the determinant.
// ok is false when the determinant magnitude is below the pivot threshold.
func (m Mat3) Invert() (Mat3, bool) {
	det := m.Det()
	if math.Abs(det) < minPivot {
		return Mat3{}, false
	}
	var res Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			res[c*3+r] = m.cofactor(r, c) / det
		}
	}
	return res, true
}
