// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/mkarpov/tinysr/pkg/geometry"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// SceneConfig holds the model and how it is presented.
type SceneConfig struct {
	Model     string        `yaml:"model"`
	Wireframe bool          `yaml:"wireframe"`
	Light     geometry.Vec3 `yaml:"light"`
	Camera    CameraConfig  `yaml:"camera"`
}

// CameraConfig holds the dolly limits. Distances are in model units
// along the view axis.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	ZoomStep    float64 `yaml:"zoom_step"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "tinysr",
			Width:      1024,
			Height:     768,
			Fullscreen: false,
		},
		Scene: SceneConfig{
			Model:     "",
			Wireframe: false,
			Light:     geometry.Vec3{Z: 1},
			Camera: CameraConfig{
				Distance:    3,
				MinDistance: 2,
				MaxDistance: 5,
				ZoomStep:    0.25,
			},
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Validate reports the first setting the viewer cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", c.Window.Width, c.Window.Height)
	}
	if c.Scene.Light == (geometry.Vec3{}) {
		return fmt.Errorf("scene light vector is zero")
	}
	cam := c.Scene.Camera
	if cam.MinDistance <= 0 {
		return fmt.Errorf("camera min_distance %v is not positive", cam.MinDistance)
	}
	if cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("camera max_distance %v is below min_distance %v", cam.MaxDistance, cam.MinDistance)
	}
	if cam.Distance < cam.MinDistance || cam.Distance > cam.MaxDistance {
		return fmt.Errorf("camera distance %v is outside [%v, %v]", cam.Distance, cam.MinDistance, cam.MaxDistance)
	}
	if cam.ZoomStep <= 0 {
		return fmt.Errorf("camera zoom_step %v is not positive", cam.ZoomStep)
	}
	switch c.Capture.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("capture format %q is not png or bmp", c.Capture.Format)
	}
	return nil
}
