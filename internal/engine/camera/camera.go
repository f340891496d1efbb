// Package camera provides the viewer's camera model.
package camera

import (
	"github.com/mkarpov/tinysr/pkg/geometry"
)

// Dolly slides the camera along the view axis between a near and a far
// stop. The model stays centered; only the projection distance changes.
type Dolly struct {
	Distance    float64
	MinDistance float64
	MaxDistance float64
	Step        float64
}

// New creates a dolly with the given starting distance and limits.
func New(distance, minDistance, maxDistance, step float64) *Dolly {
	return &Dolly{
		Distance:    distance,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		Step:        step,
	}
}

// Zoom moves the camera one step per scroll event and clamps at the
// stops. Only the scroll direction matters, not its magnitude.
// Scrolling up moves away from the model.
func (d *Dolly) Zoom(dy int32) {
	switch {
	case dy > 0:
		d.Distance += d.Step
	case dy < 0:
		d.Distance -= d.Step
	}
	if d.Distance < d.MinDistance {
		d.Distance = d.MinDistance
	}
	if d.Distance > d.MaxDistance {
		d.Distance = d.MaxDistance
	}
}

// Projection returns the perspective matrix for the current distance.
// A point at depth z scales by 1/(1 - z/Distance).
func (d *Dolly) Projection() geometry.Mat4 {
	m := geometry.Identity4()
	m[14] = -1 / d.Distance
	return m
}
