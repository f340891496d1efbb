package geometry

// minPivot is the magnitude below which a pivot or determinant is treated
// as zero. It is the smallest positive normal float64.
const minPivot = 0x1p-1022

// SquareMatrix is the capability shared by all square matrix types.
// Mat3 and Mat4 answer determinant and inversion with closed-form
// cofactors; MatN uses Gaussian elimination and can carry any size,
// including copies of the fixed sizes made with MatNFrom.
type SquareMatrix interface {
	// Dim returns the matrix dimension n.
	Dim() int
	// At returns the element at row r, column c.
	At(r, c int) float64
}

// workMatrix is a mutable rows x cols grid supporting the row operations
// of Gaussian elimination. It backs MatN determinant and inversion.
type workMatrix struct {
	rows, cols int
	data       []float64
}

// augmented builds the n x 2n matrix [M | I] for Gauss-Jordan inversion.
func augmented(m SquareMatrix) workMatrix {
	n := m.Dim()
	w := workMatrix{rows: n, cols: 2 * n, data: make([]float64, 2*n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w.data[i*2*n+j] = m.At(i, j)
		}
		w.data[i*2*n+n+i] = 1
	}
	return w
}

func (w workMatrix) at(r, c int) float64 {
	return w.data[r*w.cols+c]
}

func (w workMatrix) set(r, c int, v float64) {
	w.data[r*w.cols+c] = v
}

func (w workMatrix) swapRows(r1, r2 int) {
	for c := 0; c < w.cols; c++ {
		w.data[r1*w.cols+c], w.data[r2*w.cols+c] = w.data[r2*w.cols+c], w.data[r1*w.cols+c]
	}
}

func (w workMatrix) scaleRow(r int, s float64) {
	for c := 0; c < w.cols; c++ {
		w.data[r*w.cols+c] *= s
	}
}

// subtractScaled subtracts s times the source row from the target row.
func (w workMatrix) subtractScaled(target, source int, s float64) {
	for c := 0; c < w.cols; c++ {
		w.data[target*w.cols+c] -= s * w.data[source*w.cols+c]
	}
}
