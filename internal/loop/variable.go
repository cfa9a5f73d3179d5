package loop

import (
	"fmt"
	"time"
)

// VariableLoop drives update, fixedUpdate and render once per iteration
// using the actual clamped elapsed delta. There is no accumulation and
// no interpolation, so it is cheap and smooth but not reproducible.
// The fixedUpdate callback, if set, still receives the target fixed
// delta so consumers can share callbacks across strategies.
//
// When a target FPS is set the loop throttles itself by asking the
// scheduler for a 1/targetFPS delay; it never schedules more often
// than that, and never slower than the scheduler's own granularity.
type VariableLoop struct {
	*baseLoop
	targetFPS  float64
	fixedDelta float64
}

// NewVariableLoop constructs a variable-step loop.
func NewVariableLoop(opts Options) (*VariableLoop, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	l := &VariableLoop{
		baseLoop:   newBaseLoop("variable", opts),
		targetFPS:  opts.TargetFPS,
		fixedDelta: 1.0 / opts.TargetFPS,
	}
	l.interval = throttleInterval(opts.TargetFPS)
	l.step = l.executeLoop
	return l, nil
}

func throttleInterval(targetFPS float64) time.Duration {
	if targetFPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / targetFPS)
}

// executeLoop runs one variable-step iteration.
func (l *VariableLoop) executeLoop(delta float64) {
	l.invoke(PhaseUpdate, l.update, delta)
	l.invoke(PhaseFixedUpdate, l.fixedUpdate, l.fixedDelta)
	l.invoke(PhaseRender, l.render, delta)
}

// FixedDeltaTime returns the target fixed delta handed to fixedUpdate.
func (l *VariableLoop) FixedDeltaTime() float64 {
	return l.fixedDelta
}

// TargetFPS returns the scheduling throttle rate.
func (l *VariableLoop) TargetFPS() float64 {
	return l.targetFPS
}

// SetTargetFPS changes the throttle rate at runtime. Rejects
// non-positive rates before any state changes.
func (l *VariableLoop) SetTargetFPS(fps float64) error {
	if fps <= 0 {
		return fmt.Errorf("loop: target fps must be positive, got %v", fps)
	}
	l.targetFPS = fps
	l.fixedDelta = 1.0 / fps
	l.interval = throttleInterval(fps)
	return nil
}
