package debug

import "time"

// FrameTimer measures the frame rate over one-second windows.
type FrameTimer struct {
	frames int
	last   time.Time
}

// NewFrameTimer starts a timer at the current instant.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Tick counts one frame. Once a second or more has elapsed it returns
// the measured rate and true, then starts a new window.
func (t *FrameTimer) Tick() (float64, bool) {
	t.frames++

	elapsed := time.Since(t.last)
	if elapsed < time.Second {
		return 0, false
	}

	rate := float64(t.frames) / elapsed.Seconds()
	t.frames = 0
	t.last = time.Now()
	return rate, true
}
