// Package debug provides developer-facing capture and timing helpers.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Capture writes frames grabbed from the window to disk.
type Capture struct {
	Dir    string
	Format string // "png" or "bmp"
}

// Snap encodes RGBA pixel rows as an image file named after the current
// time and returns the written path. Rows are expected top-down with a
// pitch of width*4, as the window reads them back.
func (c *Capture) Snap(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating capture dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	path := c.filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := c.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, nil
}

func (c *Capture) filename() string {
	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("tinysr_%s.%s", timestamp, c.ext())
	if c.Dir != "" {
		return filepath.Join(c.Dir, name)
	}
	return name
}

func (c *Capture) encode(w io.Writer, img image.Image) error {
	switch c.Format {
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

func (c *Capture) ext() string {
	if c.Format == "bmp" {
		return "bmp"
	}
	return "png"
}
