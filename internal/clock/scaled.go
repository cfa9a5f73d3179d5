package clock

// ScaledClock wraps another Clock and applies a time scale to its
// readings without discontinuities: changing the scale while running
// recomputes an internal offset so Now never jumps. Pausing freezes
// Now at the pause-moment value; resuming re-derives the offset so the
// paused duration is not counted.
//
// The transform is Now = offset + (source.Now - anchor) * scale, where
// anchor/offset are rebased on every scale change, pause and resume.
type ScaledClock struct {
	source Clock
	scale  float64

	anchor float64 // source reading at last rebase
	offset float64 // scaled reading at last rebase

	paused   bool
	pausedAt float64 // frozen scaled reading while paused
}

// NewScaledClock wraps source with an initial scale of 1.
func NewScaledClock(source Clock) *ScaledClock {
	return &ScaledClock{
		source: source,
		scale:  1,
		anchor: source.Now(),
	}
}

// Now returns the scaled reading. While paused it returns the frozen
// pause-moment value.
func (c *ScaledClock) Now() float64 {
	if c.paused {
		return c.pausedAt
	}
	return c.offset + (c.source.Now()-c.anchor)*c.scale
}

// Start rebases the scaled reading to zero at the current source time.
func (c *ScaledClock) Start() {
	c.anchor = c.source.Now()
	c.offset = 0
	c.paused = false
	c.pausedAt = 0
}

// SetTimeScale changes the rate at which the scaled reading advances.
// The current reading is preserved across the change. Negative scales
// are clamped to zero (a frozen clock) to keep readings monotonic.
func (c *ScaledClock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	// Rebase so the reading is continuous across the rate change.
	c.offset = c.Now()
	c.anchor = c.source.Now()
	c.scale = scale
}

// TimeScale returns the current scale factor.
func (c *ScaledClock) TimeScale() float64 {
	return c.scale
}

// Pause freezes the reading at its current value. No-op if already
// paused.
func (c *ScaledClock) Pause() {
	if c.paused {
		return
	}
	c.pausedAt = c.Now()
	c.paused = true
}

// Resume continues from the frozen reading. The offset is re-derived
// so the time spent paused does not appear in subsequent readings.
// No-op if not paused.
func (c *ScaledClock) Resume() {
	if !c.paused {
		return
	}
	c.offset = c.pausedAt
	c.anchor = c.source.Now()
	c.paused = false
}

// IsPaused reports whether the clock is frozen.
func (c *ScaledClock) IsPaused() bool {
	return c.paused
}
