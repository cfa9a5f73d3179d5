// Package clock provides monotonic time sources for the frame loop engine.
// All clocks report seconds elapsed since Start as a float64 and are
// guaranteed non-decreasing while running. Loops only ever read a clock;
// the manual and scaled variants add explicit control methods for tests
// and time dilation.
package clock

import "time"

// Clock is a monotonic time source. Now returns seconds since Start.
// Implementations never panic; a clock that cannot determine time
// degrades to a zero-based counter.
type Clock interface {
	// Now returns the current reading in seconds. Readings are
	// non-decreasing while the clock runs.
	Now() float64

	// Start resets the zero point. Calling Start again rebases the
	// clock so Now counts from the new moment.
	Start()
}

// RealClock reads the host monotonic clock. Deltas derived from it are
// immune to wall-clock adjustments because time.Time subtraction uses
// the monotonic reading.
type RealClock struct {
	start time.Time
}

// NewRealClock creates a started real clock.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// Now returns seconds since Start.
func (c *RealClock) Now() float64 {
	if c.start.IsZero() {
		// Never started: degrade to a zero counter rather than
		// reporting a huge delta against the epoch.
		c.start = time.Now()
		return 0
	}
	return time.Since(c.start).Seconds()
}

// Start rebases the clock to the current moment.
func (c *RealClock) Start() {
	c.start = time.Now()
}

// ManualClock advances only via Advance. Used for deterministic tests
// and headless stepping. A time scale can pre-scale advanced deltas.
type ManualClock struct {
	current   float64
	timeScale float64
}

// NewManualClock creates a manual clock at reading zero with scale 1.
func NewManualClock() *ManualClock {
	return &ManualClock{timeScale: 1}
}

// Now returns the current manual reading.
func (c *ManualClock) Now() float64 {
	return c.current
}

// Start resets the reading to zero.
func (c *ManualClock) Start() {
	c.current = 0
}

// Advance moves the clock forward by delta seconds, scaled by the
// clock's time scale. Negative deltas are ignored to preserve
// monotonicity.
func (c *ManualClock) Advance(delta float64) {
	if delta < 0 {
		return
	}
	c.current += delta * c.timeScale
}

// SetTimeScale changes the multiplier applied to Advance deltas.
// Non-positive scales freeze the clock.
func (c *ManualClock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.timeScale = scale
}

// TimeScale returns the current advance multiplier.
func (c *ManualClock) TimeScale() float64 {
	return c.timeScale
}
