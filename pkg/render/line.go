package render

import (
	"math"

	"github.com/mkarpov/tinysr/pkg/geometry"
	"github.com/mkarpov/tinysr/pkg/mesh"
)

// RenderLine draws a line from (x0, y0) to (x1, y1) in the canvas's
// current color using integer Bresenham stepping. Steep lines are
// transposed so the loop always advances along the longer axis, and
// endpoints are reordered so it always advances left to right.
func (r *Renderer) RenderLine(c Canvas, x0, y0, x1, y1 int) error {
	steep := abs(x0-x1) < abs(y0-y1)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0

	iy := -1
	if y1 > y0 {
		iy = 1
	}

	derr2 := abs(dy) * 2
	err2 := 0

	for x, y := x0, y0; x <= x1; x++ {
		if steep {
			if err := c.DrawPoint(float64(y), float64(x)); err != nil {
				return err
			}
		} else {
			if err := c.DrawPoint(float64(x), float64(y)); err != nil {
				return err
			}
		}

		err2 += derr2
		if err2 > dx {
			y += iy
			err2 -= dx * 2
		}
	}
	return nil
}

// WireFace draws the edges of a face in the canvas's current color,
// using the same screen transform as RenderFace. Faces without exactly
// three vertices are skipped, as are faces whose projection is not
// finite (a vertex on the camera plane divides by w=0).
func (r *Renderer) WireFace(c Canvas, face mesh.Face, viewport, projection geometry.Mat4) error {
	if len(face.Vertices) != 3 {
		return nil
	}

	pts := transformVertices(face.Vertices, viewport, projection)
	for _, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return nil
		}
	}

	for i := 0; i < 3; i++ {
		a, b := pts[i], pts[(i+1)%3]
		if err := r.RenderLine(c, lineCoord(a.X), lineCoord(a.Y), lineCoord(b.X), lineCoord(b.Y)); err != nil {
			return err
		}
	}
	return nil
}

// lineCoord converts a finite screen coordinate to an endpoint pixel,
// clamped so the float-to-int conversion stays defined.
func lineCoord(v float64) int {
	const bound = 1 << 24
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return int(v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
