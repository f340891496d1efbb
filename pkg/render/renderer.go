package render

import (
	"math"

	"github.com/mkarpov/tinysr/pkg/geometry"
	"github.com/mkarpov/tinysr/pkg/mesh"
)

var (
	white = geometry.Vec3{X: 255, Y: 255, Z: 255}

	// Per-corner fallback colors for faces without usable normals.
	flatColors = [3]geometry.Vec3{
		{X: 255},
		{Y: 255},
		{Z: 255},
	}
)

// Renderer owns the depth buffer and turns faces into pixels on a Canvas.
// It is not safe for concurrent use; the frame loop drives it from a
// single goroutine.
type Renderer struct {
	res   Resolution
	depth *DepthBuffer
}

// New builds a renderer for the given surface size.
func New(res Resolution) *Renderer {
	return &Renderer{
		res:   res,
		depth: NewDepthBuffer(res),
	}
}

// ResetDepth empties the depth buffer. The frame loop calls this once
// per frame after the draw pass.
func (r *Renderer) ResetDepth() {
	r.depth.Reset()
}

// RenderFace transforms a face into screen space and rasterizes it.
// Faces without exactly three vertices are skipped. Faces carrying three
// normals are lit per vertex with white scaled by dot(light, normal);
// the face is skipped unless all three intensities are positive. Faces
// without normals fall back to fixed red, green, and blue corners.
func (r *Renderer) RenderFace(c Canvas, light geometry.Vec3, face mesh.Face, viewport, projection geometry.Mat4) error {
	if len(face.Vertices) != 3 {
		return nil
	}

	pts := transformVertices(face.Vertices, viewport, projection)
	tri := geometry.NewTriangle(pts[0], pts[1], pts[2])

	if len(face.Normals) != 3 {
		return r.RenderTriangle(c, tri, flatColors)
	}

	var colors [3]geometry.Vec3
	for i, n := range face.Normals {
		intensity := light.Dot(n)
		// The comparison also rejects NaN from degenerate normals.
		if !(intensity > 0) {
			return nil
		}
		colors[i] = white.Scale(intensity)
	}
	return r.RenderTriangle(c, tri, colors)
}

// RenderTriangle rasterizes a screen-space triangle, interpolating the
// per-vertex colors barycentrically and clamping each channel to [0,255].
func (r *Renderer) RenderTriangle(c Canvas, tri geometry.Triangle, colors [3]geometry.Vec3) error {
	return r.renderTriangle(c, tri, func(bcs [3]float64) Color {
		var mixed geometry.Vec3
		for i, color := range colors {
			mixed = mixed.Add(color.Scale(bcs[i]))
		}
		return RGB(channel(mixed.X), channel(mixed.Y), channel(mixed.Z))
	})
}

// renderTriangle walks the clamped integer bounding box of the triangle
// and draws every contained pixel that wins the depth test, colored by
// colorFn from its barycentric weights.
func (r *Renderer) renderTriangle(c Canvas, tri geometry.Triangle, colorFn func([3]float64) Color) error {
	verts := tri.Vertices()

	minX, minY := r.res.Width-1, r.res.Height-1
	maxX, maxY := 0, 0
	for _, v := range verts {
		minX = max(0, min(minX, pixelCoord(v.X)))
		minY = max(0, min(minY, pixelCoord(v.Y)))
		maxX = min(r.res.Width-1, max(maxX, pixelCoord(v.X)))
		maxY = min(r.res.Height-1, max(maxY, pixelCoord(v.Y)))
	}

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			bcs, ok := tri.Barycentric(geometry.Vec3{X: float64(x), Y: float64(y)})
			if !ok {
				continue
			}

			z := verts[0].Z*bcs[0] + verts[1].Z*bcs[1] + verts[2].Z*bcs[2]
			if !r.depth.Store(x, y, z) {
				continue
			}

			if err := c.SetColor(colorFn(bcs)); err != nil {
				return err
			}
			if err := c.DrawPoint(float64(x), float64(y)); err != nil {
				return err
			}
		}
	}
	return nil
}

func transformVertices(vertices []geometry.Vec3, viewport, projection geometry.Mat4) [3]geometry.Vec3 {
	transform := viewport.Mul(projection)

	var pts [3]geometry.Vec3
	for i := 0; i < 3; i++ {
		pts[i] = transform.MulVec4(geometry.Homogeneous(vertices[i])).Vec3()
	}
	return pts
}

// pixelCoord converts a screen coordinate to a non-negative pixel index,
// saturating like a float-to-unsigned cast: negatives and NaN become 0.
func pixelCoord(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

// channel clamps an interpolated color channel to [0,255]. NaN becomes 0.
func channel(v float64) uint8 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
