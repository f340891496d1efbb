package render

import (
	"errors"
	"math"
	"testing"

	"github.com/mkarpov/tinysr/pkg/geometry"
	"github.com/mkarpov/tinysr/pkg/mesh"
)

// recordingCanvas captures draw calls so tests can assert on the exact
// pixels a render pass produced.
type recordingCanvas struct {
	color        Color
	points       map[[2]int]Color
	order        [][2]int
	failSetColor bool
	failDrawAt   int
	drawCalls    int
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{points: make(map[[2]int]Color)}
}

func (c *recordingCanvas) SetColor(col Color) error {
	if c.failSetColor {
		return errors.New("set color failed")
	}
	c.color = col
	return nil
}

func (c *recordingCanvas) Clear() error {
	c.points = make(map[[2]int]Color)
	c.order = nil
	return nil
}

func (c *recordingCanvas) DrawPoint(x, y float64) error {
	c.drawCalls++
	if c.failDrawAt != 0 && c.drawCalls == c.failDrawAt {
		return errors.New("draw point failed")
	}
	p := [2]int{int(x), int(y)}
	c.points[p] = c.color
	c.order = append(c.order, p)
	return nil
}

func (c *recordingCanvas) Present() {}

func flatRed([3]float64) Color { return RGB(255, 0, 0) }

func TestRenderTriangleFillsInterior(t *testing.T) {
	r := New(Resolution{Width: 20, Height: 20})
	canvas := newRecordingCanvas()

	tri := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1},
		geometry.Vec3{X: 10, Y: 1},
		geometry.Vec3{X: 1, Y: 10},
	)
	if err := r.renderTriangle(canvas, tri, flatRed); err != nil {
		t.Fatalf("renderTriangle() error = %v", err)
	}

	if len(canvas.order) == 0 {
		t.Fatal("no pixels drawn for an on-screen triangle")
	}
	if _, ok := canvas.points[[2]int{2, 2}]; !ok {
		t.Error("interior pixel (2,2) not drawn")
	}
	if _, ok := canvas.points[[2]int{15, 15}]; ok {
		t.Error("pixel (15,15) outside the triangle was drawn")
	}
	for _, p := range canvas.order {
		if p[0] < 1 || p[0] > 10 || p[1] < 1 || p[1] > 10 {
			t.Errorf("pixel %v drawn outside the bounding box", p)
		}
	}
}

func TestRenderTriangleOffscreenDrawsNothing(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})

	tests := []struct {
		name    string
		p1, p2  geometry.Vec3
		p3      geometry.Vec3
	}{
		{
			name: "fully left of the screen",
			p1:   geometry.Vec3{X: -5, Y: -5},
			p2:   geometry.Vec3{X: -3, Y: -2},
			p3:   geometry.Vec3{X: -4, Y: -4},
		},
		{
			name: "fully beyond the far corner",
			p1:   geometry.Vec3{X: 50, Y: 50},
			p2:   geometry.Vec3{X: 60, Y: 50},
			p3:   geometry.Vec3{X: 50, Y: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := newRecordingCanvas()
			tri := geometry.NewTriangle(tt.p1, tt.p2, tt.p3)
			if err := r.renderTriangle(canvas, tri, flatRed); err != nil {
				t.Fatalf("renderTriangle() error = %v", err)
			}
			if len(canvas.order) != 0 {
				t.Errorf("drew %d pixels for an off-screen triangle", len(canvas.order))
			}
		})
	}
}

func TestRenderTriangleDegenerateDrawsNothing(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})
	canvas := newRecordingCanvas()

	// Collinear vertices span a zero-area triangle.
	tri := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1},
		geometry.Vec3{X: 3, Y: 3},
		geometry.Vec3{X: 5, Y: 5},
	)
	if err := r.renderTriangle(canvas, tri, flatRed); err != nil {
		t.Fatalf("renderTriangle() error = %v", err)
	}
	if len(canvas.order) != 0 {
		t.Errorf("drew %d pixels for a degenerate triangle", len(canvas.order))
	}
}

func TestRenderTriangleOcclusion(t *testing.T) {
	near := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1, Z: 5},
		geometry.Vec3{X: 8, Y: 1, Z: 5},
		geometry.Vec3{X: 1, Y: 8, Z: 5},
	)
	far := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1, Z: 1},
		geometry.Vec3{X: 8, Y: 1, Z: 1},
		geometry.Vec3{X: 1, Y: 8, Z: 1},
	)
	nearColor := func([3]float64) Color { return RGB(255, 0, 0) }
	farColor := func([3]float64) Color { return RGB(0, 0, 255) }
	probe := [2]int{2, 2}

	t.Run("far then near", func(t *testing.T) {
		r := New(Resolution{Width: 10, Height: 10})
		canvas := newRecordingCanvas()
		if err := r.renderTriangle(canvas, far, farColor); err != nil {
			t.Fatalf("far pass error = %v", err)
		}
		if err := r.renderTriangle(canvas, near, nearColor); err != nil {
			t.Fatalf("near pass error = %v", err)
		}
		if got := canvas.points[probe]; got != RGB(255, 0, 0) {
			t.Errorf("probe pixel = %v, want the near color", got)
		}
	})

	t.Run("near then far", func(t *testing.T) {
		r := New(Resolution{Width: 10, Height: 10})
		canvas := newRecordingCanvas()
		if err := r.renderTriangle(canvas, near, nearColor); err != nil {
			t.Fatalf("near pass error = %v", err)
		}
		drawn := len(canvas.order)
		if err := r.renderTriangle(canvas, far, farColor); err != nil {
			t.Fatalf("far pass error = %v", err)
		}
		if got := canvas.points[probe]; got != RGB(255, 0, 0) {
			t.Errorf("probe pixel = %v, want the near color", got)
		}
		if len(canvas.order) != drawn {
			t.Errorf("far pass drew %d pixels behind the near triangle", len(canvas.order)-drawn)
		}
	})
}

func TestRenderTriangleEqualDepthLoses(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})
	canvas := newRecordingCanvas()

	tri := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1, Z: 2},
		geometry.Vec3{X: 8, Y: 1, Z: 2},
		geometry.Vec3{X: 1, Y: 8, Z: 2},
	)
	if err := r.renderTriangle(canvas, tri, flatRed); err != nil {
		t.Fatalf("first pass error = %v", err)
	}
	drawn := len(canvas.order)

	blue := func([3]float64) Color { return RGB(0, 0, 255) }
	if err := r.renderTriangle(canvas, tri, blue); err != nil {
		t.Fatalf("second pass error = %v", err)
	}
	if len(canvas.order) != drawn {
		t.Errorf("second pass at equal depth drew %d pixels", len(canvas.order)-drawn)
	}
	if got := canvas.points[[2]int{2, 2}]; got != RGB(255, 0, 0) {
		t.Errorf("probe pixel = %v, want the first color", got)
	}
}

func TestRenderTriangleInterpolatesColors(t *testing.T) {
	r := New(Resolution{Width: 20, Height: 20})
	canvas := newRecordingCanvas()

	tri := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1},
		geometry.Vec3{X: 10, Y: 1},
		geometry.Vec3{X: 1, Y: 10},
	)
	colors := [3]geometry.Vec3{{X: 255}, {Y: 255}, {Z: 255}}
	if err := r.RenderTriangle(canvas, tri, colors); err != nil {
		t.Fatalf("RenderTriangle() error = %v", err)
	}

	// Barycentric weights at a vertex are exactly one-hot, so the vertex
	// pixels carry the pure corner colors.
	checks := []struct {
		at   [2]int
		want Color
	}{
		{[2]int{1, 1}, RGB(255, 0, 0)},
		{[2]int{10, 1}, RGB(0, 255, 0)},
		{[2]int{1, 10}, RGB(0, 0, 255)},
	}
	for _, c := range checks {
		got, ok := canvas.points[c.at]
		if !ok {
			t.Errorf("vertex pixel %v not drawn", c.at)
			continue
		}
		if got != c.want {
			t.Errorf("pixel %v = %v, want %v", c.at, got, c.want)
		}
	}
}

func TestRenderTriangleErrorPropagation(t *testing.T) {
	tri := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1},
		geometry.Vec3{X: 8, Y: 1},
		geometry.Vec3{X: 1, Y: 8},
	)

	t.Run("set color", func(t *testing.T) {
		r := New(Resolution{Width: 10, Height: 10})
		canvas := newRecordingCanvas()
		canvas.failSetColor = true
		if err := r.renderTriangle(canvas, tri, flatRed); err == nil {
			t.Error("renderTriangle() swallowed the canvas error")
		}
	})

	t.Run("draw point", func(t *testing.T) {
		r := New(Resolution{Width: 10, Height: 10})
		canvas := newRecordingCanvas()
		canvas.failDrawAt = 3
		if err := r.renderTriangle(canvas, tri, flatRed); err == nil {
			t.Error("renderTriangle() swallowed the canvas error")
		}
	})
}

func flatFace(z float64) mesh.Face {
	return mesh.Face{
		Vertices: []geometry.Vec3{
			{X: 1, Y: 1, Z: z},
			{X: 8, Y: 1, Z: z},
			{X: 1, Y: 8, Z: z},
		},
	}
}

func TestRenderFaceFallbackColors(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})
	canvas := newRecordingCanvas()
	light := geometry.Vec3{Z: 1}

	// Identity transforms keep the vertices in screen space.
	err := r.RenderFace(canvas, light, flatFace(0), geometry.Identity4(), geometry.Identity4())
	if err != nil {
		t.Fatalf("RenderFace() error = %v", err)
	}

	checks := []struct {
		at   [2]int
		want Color
	}{
		{[2]int{1, 1}, RGB(255, 0, 0)},
		{[2]int{8, 1}, RGB(0, 255, 0)},
		{[2]int{1, 8}, RGB(0, 0, 255)},
	}
	for _, c := range checks {
		got, ok := canvas.points[c.at]
		if !ok {
			t.Errorf("vertex pixel %v not drawn", c.at)
			continue
		}
		if got != c.want {
			t.Errorf("pixel %v = %v, want %v", c.at, got, c.want)
		}
	}
}

func TestRenderFaceLitWhite(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})
	canvas := newRecordingCanvas()
	light := geometry.Vec3{Z: 1}

	face := flatFace(0)
	face.Normals = []geometry.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}

	err := r.RenderFace(canvas, light, face, geometry.Identity4(), geometry.Identity4())
	if err != nil {
		t.Fatalf("RenderFace() error = %v", err)
	}

	got, ok := canvas.points[[2]int{1, 1}]
	if !ok {
		t.Fatal("vertex pixel (1,1) not drawn")
	}
	if want := RGB(255, 255, 255); got != want {
		t.Errorf("lit vertex pixel = %v, want %v", got, want)
	}
}

func TestRenderFaceSkipsUnlit(t *testing.T) {
	light := geometry.Vec3{Z: 1}
	toward := geometry.Vec3{Z: 1}
	away := geometry.Vec3{Z: -1}
	askew := geometry.Vec3{X: 1}
	bad := geometry.Vec3{Z: math.NaN()}

	tests := []struct {
		name    string
		normals []geometry.Vec3
	}{
		{"all facing away", []geometry.Vec3{away, away, away}},
		{"one facing away", []geometry.Vec3{toward, toward, away}},
		{"one perpendicular", []geometry.Vec3{toward, toward, askew}},
		{"not-a-number normal", []geometry.Vec3{toward, toward, bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Resolution{Width: 10, Height: 10})
			canvas := newRecordingCanvas()
			face := flatFace(0)
			face.Normals = tt.normals

			err := r.RenderFace(canvas, light, face, geometry.Identity4(), geometry.Identity4())
			if err != nil {
				t.Fatalf("RenderFace() error = %v", err)
			}
			if len(canvas.order) != 0 {
				t.Errorf("drew %d pixels for a face the light cannot reach", len(canvas.order))
			}
		})
	}
}

func TestRenderFaceSkipsNonTriangles(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})
	canvas := newRecordingCanvas()
	light := geometry.Vec3{Z: 1}

	quad := mesh.Face{
		Vertices: []geometry.Vec3{
			{X: 1, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 8}, {X: 1, Y: 8},
		},
	}
	err := r.RenderFace(canvas, light, quad, geometry.Identity4(), geometry.Identity4())
	if err != nil {
		t.Fatalf("RenderFace() error = %v", err)
	}
	if len(canvas.order) != 0 {
		t.Errorf("drew %d pixels for a four-vertex face", len(canvas.order))
	}
}

func TestRenderFaceFullPipeline(t *testing.T) {
	res := Resolution{Width: 100, Height: 100}
	r := New(res)
	canvas := newRecordingCanvas()
	light := geometry.Vec3{Z: 1}

	viewport := geometry.Viewport(
		float64(res.Width)/8, float64(res.Height)/8,
		float64(res.Width)*3/4, float64(res.Height)*3/4,
	)
	projection := geometry.Identity4()
	projection[14] = -1.0 / 3.0

	// Model-space triangle on the z=0 plane keeps the homogeneous w at 1,
	// so the screen positions follow from the viewport alone:
	// x' = 37.5*x + 50, y' = 37.5*y + 50.
	face := mesh.Face{
		Vertices: []geometry.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 0.5, Y: 0, Z: 0},
			{X: 0, Y: 0.5, Z: 0},
		},
	}
	if err := r.RenderFace(canvas, light, face, viewport, projection); err != nil {
		t.Fatalf("RenderFace() error = %v", err)
	}

	if len(canvas.order) == 0 {
		t.Fatal("no pixels drawn through the full transform")
	}
	if _, ok := canvas.points[[2]int{50, 50}]; !ok {
		t.Error("projected vertex pixel (50,50) not drawn")
	}
	if _, ok := canvas.points[[2]int{55, 55}]; !ok {
		t.Error("interior pixel (55,55) not drawn")
	}
	if got := r.depth.At(55, 55); math.Abs(got) > 1e-9 {
		t.Errorf("depth at (55,55) = %v, want about 0", got)
	}
}

func TestResetDepthAllowsRedraw(t *testing.T) {
	r := New(Resolution{Width: 10, Height: 10})
	canvas := newRecordingCanvas()

	tri := geometry.NewTriangle(
		geometry.Vec3{X: 1, Y: 1, Z: 2},
		geometry.Vec3{X: 8, Y: 1, Z: 2},
		geometry.Vec3{X: 1, Y: 8, Z: 2},
	)
	if err := r.renderTriangle(canvas, tri, flatRed); err != nil {
		t.Fatalf("first frame error = %v", err)
	}
	drawn := len(canvas.order)

	r.ResetDepth()
	if err := r.renderTriangle(canvas, tri, flatRed); err != nil {
		t.Fatalf("second frame error = %v", err)
	}
	if len(canvas.order) != 2*drawn {
		t.Errorf("second frame drew %d pixels, want %d", len(canvas.order)-drawn, drawn)
	}
}
