package geometry

import "math"

// MatN is an n x n matrix in row-major order for arbitrary n. Determinant
// and inversion run Gaussian elimination with partial pivoting, so MatN is
// the general path behind the SquareMatrix capability; Mat3 and Mat4 are
// the closed-form fixed-size shortcuts.
type MatN struct {
	n    int
	data []float64
}

// NewMatN wraps data as an n x n matrix. The slice is retained, not
// copied. Panics when len(data) != n*n.
func NewMatN(n int, data []float64) MatN {
	if len(data) != n*n {
		panic("geometry: matrix data length does not match dimension")
	}
	return MatN{n: n, data: data}
}

// IdentityN returns the n x n identity matrix.
func IdentityN(n int) MatN {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return MatN{n: n, data: data}
}

// MatNFrom copies any square matrix into a MatN, giving the fixed sizes
// access to the elimination-based determinant and inversion.
func MatNFrom(m SquareMatrix) MatN {
	n := m.Dim()
	data := make([]float64, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data[r*n+c] = m.At(r, c)
		}
	}
	return MatN{n: n, data: data}
}

// Dim returns the matrix dimension.
func (m MatN) Dim() int { return m.n }

// At returns the element at row r, column c.
func (m MatN) At(r, c int) float64 { return m.data[r*m.n+c] }

// Set stores v at row r, column c.
func (m MatN) Set(r, c int, v float64) { m.data[r*m.n+c] = v }

// Mul returns the matrix product m * other. Panics when dimensions differ.
func (m MatN) Mul(other MatN) MatN {
	if m.n != other.n {
		panic("geometry: matrix dimension mismatch")
	}
	res := MatN{n: m.n, data: make([]float64, m.n*m.n)}
	for r := 0; r < m.n; r++ {
		for c := 0; c < m.n; c++ {
			var sum float64
			for k := 0; k < m.n; k++ {
				sum += m.At(r, k) * other.At(k, c)
			}
			res.Set(r, c, sum)
		}
	}
	return res
}

// Det returns the determinant via Gaussian elimination. At each pivot
// column a negligible diagonal entry triggers a search of the rows below
// for a usable pivot; a swap negates the accumulated product, and if no
// row qualifies the matrix is singular and the determinant is zero.
func (m MatN) Det() float64 {
	n := m.n
	det := 1.0

	w := workMatrix{rows: n, cols: n, data: append([]float64(nil), m.data...)}
	for i := 0; i < n-1; i++ {
		if math.Abs(w.at(i, i)) < minPivot {
			pivotRow := i
			for j := i + 1; j < n; j++ {
				if math.Abs(w.at(j, i)) >= minPivot {
					pivotRow = j
					break
				}
			}
			if pivotRow == i {
				return 0
			}
			w.swapRows(i, pivotRow)
			det = -det
		}

		pivot := w.at(i, i)
		det *= pivot

		for j := i + 1; j < n; j++ {
			w.subtractScaled(j, i, w.at(j, i)/pivot)
		}
	}

	return det * w.at(n-1, n-1)
}

// Invert runs Gauss-Jordan elimination on the augmented [M | I] matrix.
// ok is false when the matrix is singular. On success the returned matrix
// is freshly allocated.
func (m MatN) Invert() (MatN, bool) {
	n := m.n

	aug := augmented(m)
	for i := 0; i < n; i++ {
		if math.Abs(aug.at(i, i)) < minPivot {
			pivotRow := i
			for j := i + 1; j < n; j++ {
				if math.Abs(aug.at(j, i)) >= minPivot {
					pivotRow = j
					break
				}
			}
			if pivotRow == i {
				return MatN{}, false
			}
			aug.swapRows(i, pivotRow)
		}

		aug.scaleRow(i, 1/aug.at(i, i))

		for j := 0; j < n; j++ {
			if j != i {
				aug.subtractScaled(j, i, aug.at(j, i))
			}
		}
	}

	res := MatN{n: n, data: make([]float64, n*n)}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			res.Set(r, c, aug.at(r, c+n))
		}
	}
	return res, true
}
