// Package window handles SDL2 window and renderer creation.
package window

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/mkarpov/tinysr/internal/logger"
	"github.com/mkarpov/tinysr/pkg/render"
)

func init() {
	// SDL video calls must be made from the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Window wraps an SDL2 window and its 2D renderer. It implements
// render.Canvas, so the rasterizer draws straight into the window's
// back buffer.
type Window struct {
	config      Config
	sdlWindow   *sdl.Window
	sdlRenderer *sdl.Renderer
	res         render.Resolution
}

// New creates a centered window with a hardware-accelerated 2D renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{config: cfg}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.sdlRenderer, err = sdl.CreateRenderer(w.sdlWindow, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	// A fullscreen desktop window takes the display size rather than
	// the requested one, so ask the renderer what it draws into.
	outW, outH, err := w.sdlRenderer.GetOutputSize()
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("SDL_GetRendererOutputSize failed: %w", err)
	}
	w.res = render.Resolution{Width: int(outW), Height: int(outH)}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", w.res.Width),
		zap.Int("height", w.res.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)

	return w, nil
}

// Close tears down the renderer, the window, and SDL itself.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.sdlRenderer != nil {
		_ = w.sdlRenderer.Destroy()
		w.sdlRenderer = nil
	}
	if w.sdlWindow != nil {
		_ = w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}
	sdl.Quit()
}

// Size returns the drawable resolution.
func (w *Window) Size() render.Resolution {
	return w.res
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// SetColor sets the color used by Clear and DrawPoint.
func (w *Window) SetColor(c render.Color) error {
	return w.sdlRenderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

// Clear fills the back buffer with the current color.
func (w *Window) Clear() error {
	return w.sdlRenderer.Clear()
}

// DrawPoint plots a single point at the given screen position.
func (w *Window) DrawPoint(x, y float64) error {
	return w.sdlRenderer.DrawPointF(float32(x), float32(y))
}

// Present displays the composed frame.
func (w *Window) Present() {
	w.sdlRenderer.Present()
}

// Pixels reads the back buffer as tightly packed RGBA rows, top-down.
// Call it before Present; afterwards the buffer contents are undefined.
func (w *Window) Pixels() ([]byte, error) {
	pitch := w.res.Width * 4
	buf := make([]byte, pitch*w.res.Height)
	err := w.sdlRenderer.ReadPixels(nil, uint32(sdl.PIXELFORMAT_ABGR8888), unsafe.Pointer(&buf[0]), pitch)
	if err != nil {
		return nil, fmt.Errorf("SDL_RenderReadPixels failed: %w", err)
	}
	return buf, nil
}
