package geometry

import "math"

// Triangle is an immutable triangle that precomputes its barycentric
// basis at construction, so repeated point queries against the same
// triangle cost a handful of multiplications each.
type Triangle struct {
	p1, p2, p3 Vec3

	v0, v1 Vec3

	d00, d01, d11 float64

	det float64
}

// NewTriangle builds a triangle from three points. A degenerate
// (collinear) triangle is permitted; its det is zero and every
// barycentric query against it reports no containment.
func NewTriangle(p1, p2, p3 Vec3) Triangle {
	v0 := p2.Sub(p1)
	v1 := p3.Sub(p1)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)

	return Triangle{
		p1: p1, p2: p2, p3: p3,
		v0: v0, v1: v1,
		d00: d00, d01: d01, d11: d11,
		det: d00*d11 - d01*d01,
	}
}

// Vertices returns the corner points in construction order.
func (t Triangle) Vertices() [3]Vec3 {
	return [3]Vec3{t.p1, t.p2, t.p3}
}

// Barycentric resolves p against the triangle. ok is false when either
// computed coordinate is NaN or falls outside [0,1]; a zero det feeds
// NaN through the division and is rejected by the same check, which is
// the only degeneracy handling required. On success the weights are
// returned in vertex order and sum to 1.
func (t Triangle) Barycentric(p Vec3) ([3]float64, bool) {
	v2 := p.Sub(t.p1)

	d02 := t.v0.Dot(v2)
	d12 := t.v1.Dot(v2)

	v := (d02*t.d11 - t.d01*d12) / t.det
	if math.IsNaN(v) || v < 0 || v > 1 {
		return [3]float64{}, false
	}

	w := (t.d00*d12 - d02*t.d01) / t.det
	if math.IsNaN(w) || w < 0 || w > 1 {
		return [3]float64{}, false
	}

	return [3]float64{1 - v - w, v, w}, true
}
