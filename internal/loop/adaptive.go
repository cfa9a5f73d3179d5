package loop

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/clock"
)

// Mode identifies which strategy an AdaptiveLoop is delegating to.
type Mode int

const (
	// ModeVariable delegates to the variable-step loop.
	ModeVariable Mode = iota
	// ModeFixed delegates to the fixed-step loop.
	ModeFixed
)

// String returns the mode name for logs.
func (m Mode) String() string {
	switch m {
	case ModeVariable:
		return "variable"
	case ModeFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// AdaptiveLoop owns one FixedLoop and one VariableLoop and delegates to
// exactly one at a time. It starts in variable mode; once per iteration,
// after the hysteresis cooldown has elapsed since the last switch, it
// compares the active loop's rolling FPS against two thresholds and
// switches strategies when the host is struggling (below the low
// threshold) or has recovered (above the high threshold).
//
// A switch preserves running/paused state. The frame counter restarts
// with the newly activated strategy; elapsed time stays monotonic
// because the controller accumulates it across switches.
type AdaptiveLoop struct {
	clk    clock.Clock
	logger *log.Logger

	fixed    *FixedLoop
	variable *VariableLoop
	mode     Mode

	lowThreshold  float64
	highThreshold float64
	cooldown      float64
	lastSwitch    float64
	switchCount   uint64

	// elapsedBase carries elapsed time from strategies that were
	// active before the most recent switch.
	elapsedBase float64
}

// NewAdaptiveLoop constructs an adaptive controller. Both internal
// strategies share the options' clock and scheduler so a switch stays
// on the same time base.
func NewAdaptiveLoop(opts Options) (*AdaptiveLoop, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	fixed, err := NewFixedLoop(opts)
	if err != nil {
		return nil, err
	}
	variable, err := NewVariableLoop(opts)
	if err != nil {
		return nil, err
	}

	a := &AdaptiveLoop{
		clk:           opts.Clock,
		logger:        opts.Logger,
		fixed:         fixed,
		variable:      variable,
		mode:          ModeVariable,
		lowThreshold:  opts.LowFPSThreshold,
		highThreshold: opts.HighFPSThreshold,
		cooldown:      opts.SwitchCooldown,
	}
	fixed.observer = a.observe
	variable.observer = a.observe
	return a, nil
}

// active returns the strategy currently delegated to.
func (a *AdaptiveLoop) active() Loop {
	if a.mode == ModeFixed {
		return a.fixed
	}
	return a.variable
}

// inactive returns the strategy currently on the bench.
func (a *AdaptiveLoop) inactive() Loop {
	if a.mode == ModeFixed {
		return a.variable
	}
	return a.fixed
}

// observe runs after every iteration of whichever strategy is active.
func (a *AdaptiveLoop) observe() {
	now := a.clk.Now()
	if now-a.lastSwitch < a.cooldown {
		return
	}

	fps := a.active().FPS()
	if fps <= 0 {
		return
	}

	switch {
	case a.mode == ModeVariable && fps < a.lowThreshold:
		a.logger.Info("fps below threshold, switching to fixed step",
			"fps", fps, "threshold", a.lowThreshold)
		a.switchTo(ModeFixed)
	case a.mode == ModeFixed && fps > a.highThreshold:
		a.logger.Info("fps above threshold, switching to variable step",
			"fps", fps, "threshold", a.highThreshold)
		a.switchTo(ModeVariable)
	}
}

// switchTo performs the strategy handover: stop the old loop, start the
// new one in the same running/paused state, reset the cooldown timer.
func (a *AdaptiveLoop) switchTo(mode Mode) {
	if mode == a.mode {
		return
	}

	old := a.active()
	wasRunning := old.IsRunning()
	wasPaused := old.IsPaused()
	a.elapsedBase += old.ElapsedTime()
	old.Stop()

	a.mode = mode
	a.lastSwitch = a.clk.Now()
	a.switchCount++

	next := a.active()
	if wasRunning || wasPaused {
		next.Start()
		if wasPaused {
			next.Pause()
		}
	}
}

// Mode returns the currently active strategy.
func (a *AdaptiveLoop) Mode() Mode {
	return a.mode
}

// SetMode forces a strategy manually, bypassing the FPS trigger but
// using the same switch procedure. The cooldown timer restarts so the
// automatic trigger does not immediately fight the override.
func (a *AdaptiveLoop) SetMode(mode Mode) {
	a.switchTo(mode)
}

// SwitchCount returns how many strategy handovers have happened.
func (a *AdaptiveLoop) SwitchCount() uint64 {
	return a.switchCount
}

// Start starts the active strategy. No-op unless idle.
func (a *AdaptiveLoop) Start() {
	if a.active().IsRunning() || a.active().IsPaused() {
		return
	}
	a.elapsedBase = 0
	a.lastSwitch = a.clk.Now()
	a.active().Start()
}

// Stop stops the active strategy.
func (a *AdaptiveLoop) Stop() {
	a.active().Stop()
}

// Pause pauses the active strategy.
func (a *AdaptiveLoop) Pause() {
	a.active().Pause()
}

// Resume resumes the active strategy.
func (a *AdaptiveLoop) Resume() {
	a.active().Resume()
}

// SetUpdate mirrors the callback into both strategies so a switch is
// transparent to the callback owner.
func (a *AdaptiveLoop) SetUpdate(fn UpdateFunc) {
	a.fixed.SetUpdate(fn)
	a.variable.SetUpdate(fn)
}

// SetFixedUpdate mirrors the callback into both strategies.
func (a *AdaptiveLoop) SetFixedUpdate(fn UpdateFunc) {
	a.fixed.SetFixedUpdate(fn)
	a.variable.SetFixedUpdate(fn)
}

// SetRender mirrors the callback into both strategies.
func (a *AdaptiveLoop) SetRender(fn UpdateFunc) {
	a.fixed.SetRender(fn)
	a.variable.SetRender(fn)
}

// SetOnError mirrors the handler into both strategies.
func (a *AdaptiveLoop) SetOnError(fn ErrorHandler) {
	a.fixed.SetOnError(fn)
	a.variable.SetOnError(fn)
}

// IsRunning reports whether the active strategy is running.
func (a *AdaptiveLoop) IsRunning() bool { return a.active().IsRunning() }

// IsPaused reports whether the active strategy is paused.
func (a *AdaptiveLoop) IsPaused() bool { return a.active().IsPaused() }

// FPS returns the active strategy's rolling average.
func (a *AdaptiveLoop) FPS() float64 { return a.active().FPS() }

// DeltaTime returns the active strategy's last clamped delta.
func (a *AdaptiveLoop) DeltaTime() float64 { return a.active().DeltaTime() }

// FixedDeltaTime returns the active strategy's fixed step.
func (a *AdaptiveLoop) FixedDeltaTime() float64 { return a.active().FixedDeltaTime() }

// ElapsedTime returns total processed time across all strategies,
// monotonic across switches.
func (a *AdaptiveLoop) ElapsedTime() float64 {
	return a.elapsedBase + a.active().ElapsedTime()
}

// FrameCount returns the active strategy's own counter. It restarts on
// a strategy switch; this discontinuity is intentional.
func (a *AdaptiveLoop) FrameCount() uint64 { return a.active().FrameCount() }

// Alpha returns the fixed strategy's interpolation factor while in
// fixed mode, and 1 in variable mode (the render already reflects the
// latest state).
func (a *AdaptiveLoop) Alpha() float64 {
	if a.mode == ModeFixed {
		return a.fixed.Alpha()
	}
	return 1
}
