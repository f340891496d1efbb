// Package render rasterizes screen-space triangles into a drawing
// surface with barycentric shading and depth testing, plus a Bresenham
// line primitive for wireframe output. The drawing surface is abstracted
// behind the Canvas interface so the same pipeline serves an SDL window
// and in-memory test canvases.
package render

// Resolution is the pixel size of the drawing surface and depth buffer.
type Resolution struct {
	Width, Height int
}

// Color is an RGBA color with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Canvas is the drawing-surface collaborator. Draw calls use the current
// color set by SetColor. Errors from any call are fatal to the frame
// that issued them.
type Canvas interface {
	// SetColor sets the current draw color.
	SetColor(c Color) error
	// Clear fills the whole surface with the current color.
	Clear() error
	// DrawPoint draws a single pixel; coordinates may be sub-pixel.
	DrawPoint(x, y float64) error
	// Present flips the finished frame to the screen.
	Present()
}
