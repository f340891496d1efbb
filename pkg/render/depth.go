package render

import "math"

// depthEmpty compares as farther away than any real depth value.
const depthEmpty = -math.MaxFloat64

// DepthBuffer stores one depth value per pixel, row-major by x + width*y.
// The convention is fixed: larger values are nearer to the camera. The
// buffer is allocated once per session and reset once per frame.
type DepthBuffer struct {
	width int
	data  []float64
}

// NewDepthBuffer allocates a buffer with every cell empty.
func NewDepthBuffer(res Resolution) *DepthBuffer {
	b := &DepthBuffer{
		width: res.Width,
		data:  make([]float64, res.Width*res.Height),
	}
	b.Reset()
	return b
}

// Reset marks every cell empty again.
func (b *DepthBuffer) Reset() {
	for i := range b.data {
		b.data[i] = depthEmpty
	}
}

// At returns the stored depth at (x, y).
func (b *DepthBuffer) At(x, y int) float64 {
	return b.data[x+b.width*y]
}

// Store writes z at (x, y) if it is strictly nearer than the stored
// value and reports whether it won the depth test. Equal depths lose.
func (b *DepthBuffer) Store(x, y int, z float64) bool {
	i := x + b.width*y
	if b.data[i] < z {
		b.data[i] = z
		return true
	}
	return false
}
