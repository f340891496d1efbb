// Package viewer implements the interactive model viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/mkarpov/tinysr/internal/config"
	"github.com/mkarpov/tinysr/internal/engine/camera"
	"github.com/mkarpov/tinysr/internal/engine/debug"
	"github.com/mkarpov/tinysr/internal/engine/input"
	"github.com/mkarpov/tinysr/internal/engine/window"
	"github.com/mkarpov/tinysr/internal/logger"
	"github.com/mkarpov/tinysr/pkg/geometry"
	"github.com/mkarpov/tinysr/pkg/mesh"
	"github.com/mkarpov/tinysr/pkg/render"
)

var (
	black = render.RGB(0, 0, 0)
	white = render.RGB(255, 255, 255)
)

// Viewer owns the window and redraws one model until quit.
type Viewer struct {
	cfg       *config.Config
	model     *mesh.Mesh
	window    *window.Window
	renderer  *render.Renderer
	input     *input.Input
	dolly     *camera.Dolly
	capture   *debug.Capture
	viewport  geometry.Mat4
	light     geometry.Vec3
	wireframe bool
	running   bool
}

// New loads the model and brings up a window around it.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("loading model", zap.String("path", cfg.Scene.Model))
	model, err := mesh.LoadFile(cfg.Scene.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("model loaded", zap.Int("faces", len(model.Faces)))

	v := &Viewer{
		cfg:       cfg,
		model:     model,
		light:     cfg.Scene.Light.Normalize(),
		wireframe: cfg.Scene.Wireframe,
	}

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	v.window.SetTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, filepath.Base(cfg.Scene.Model)))

	res := v.window.Size()
	v.renderer = render.New(res)

	// The model occupies the middle three quarters of the screen.
	v.viewport = geometry.Viewport(
		float64(res.Width)/8, float64(res.Height)/8,
		float64(res.Width)*3/4, float64(res.Height)*3/4,
	)

	v.input = input.New()
	cam := cfg.Scene.Camera
	v.dolly = camera.New(cam.Distance, cam.MinDistance, cam.MaxDistance, cam.ZoomStep)
	v.capture = &debug.Capture{Dir: cfg.Capture.Dir, Format: cfg.Capture.Format}

	return v, nil
}

// Run drives the frame loop until the window closes or Escape is
// pressed. The model is redrawn from scratch every frame so camera
// moves take effect immediately.
func (v *Viewer) Run() error {
	v.running = true
	timer := debug.NewFrameTimer()

	logger.Info("starting viewer loop",
		zap.Int("faces", len(v.model.Faces)),
		zap.Bool("wireframe", v.wireframe),
	)

	for v.running {
		if err := v.renderFrame(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.renderer.ResetDepth()

		if v.input.Update() {
			v.running = false
		}
		v.handleEvents(v.input.Events())
		if !v.running {
			break
		}

		v.window.Present()

		if rate, ok := timer.Tick(); ok {
			logger.Debug("frame rate", zap.Float64("fps", rate))
		}
	}

	return nil
}

// Close releases the window and SDL.
func (v *Viewer) Close() {
	if v.window != nil {
		v.window.Close()
	}
}

// renderFrame clears to black and rasterizes every face with the
// current camera distance.
func (v *Viewer) renderFrame() error {
	if err := v.window.SetColor(black); err != nil {
		return err
	}
	if err := v.window.Clear(); err != nil {
		return err
	}

	projection := v.dolly.Projection()

	if v.wireframe {
		if err := v.window.SetColor(white); err != nil {
			return err
		}
		for _, face := range v.model.Faces {
			if err := v.renderer.WireFace(v.window, face, v.viewport, projection); err != nil {
				return err
			}
		}
		return nil
	}

	for _, face := range v.model.Faces {
		if err := v.renderer.RenderFace(v.window, v.light, face, v.viewport, projection); err != nil {
			return err
		}
	}
	return nil
}

func (v *Viewer) handleEvents(events []input.Event) {
	for _, event := range events {
		switch event.Type {
		case input.EventScroll:
			v.dolly.Zoom(event.ScrollY)
			logger.Debug("camera moved", zap.Float64("distance", v.dolly.Distance))
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_W:
		v.wireframe = !v.wireframe
		logger.Info("wireframe toggled", zap.Bool("on", v.wireframe))
	case sdl.SCANCODE_F12:
		v.snap()
	}
}

// snap captures the frame drawn by renderFrame, before Present.
func (v *Viewer) snap() {
	res := v.window.Size()
	pixels, err := v.window.Pixels()
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}

	path, err := v.capture.Snap(pixels, res.Width, res.Height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot written", zap.String("path", path))
}
