package loop

import "fmt"

// FixedLoop is the deterministic-simulation strategy. Frame deltas are
// poured into an accumulator and consumed in exact fixedDeltaTime
// steps, so the simulation advances identically regardless of host
// frame pacing. The leftover fraction of a step is exposed as the
// interpolation alpha for render smoothing.
//
// Two safety nets guard against the spiral of death: the accumulator
// is clamped to maxUpdatesPerFrame fixed steps (excess owed time is
// dropped with a warning), and a hard ceiling of twice that count
// force-resets the accumulator if the inner loop fails to converge.
type FixedLoop struct {
	*baseLoop

	fixedDelta  float64
	maxUpdates  int
	accumulator float64
	alpha       float64

	// beforeFixedUpdate, when set, runs before the monolithic
	// fixedUpdate callback on every consumed step. The priority
	// strategy hooks its sub-update lists in here.
	beforeFixedUpdate UpdateFunc

	fixedUpdateCount uint64
	clampCount       uint64
	droppedTime      float64
}

// NewFixedLoop constructs a fixed-step loop with fixedDeltaTime derived
// as 1/TargetFPS.
func NewFixedLoop(opts Options) (*FixedLoop, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	l := &FixedLoop{
		baseLoop:   newBaseLoop("fixed", opts),
		fixedDelta: 1.0 / opts.TargetFPS,
		maxUpdates: opts.MaxUpdatesPerFrame,
	}
	l.interval = throttleInterval(opts.TargetFPS)
	l.step = l.executeLoop
	return l, nil
}

// executeLoop runs one fixed-step iteration with the clamped delta.
func (l *FixedLoop) executeLoop(delta float64) {
	l.accumulator += delta

	// Spiral-of-death guard: drop owed time beyond one frame's worth
	// of catch-up work.
	maxAccumulator := float64(l.maxUpdates) * l.fixedDelta
	if l.accumulator > maxAccumulator {
		dropped := l.accumulator - maxAccumulator
		l.droppedTime += dropped
		l.clampCount++
		l.accumulator = maxAccumulator
		l.logger.Warn("accumulator clamped, dropping simulation time",
			"strategy", l.name, "dropped_seconds", dropped, "frame", l.frameCount)
	}

	updates := 0
	iterations := 0
	hardCeiling := 2 * l.maxUpdates
	for l.accumulator >= l.fixedDelta && updates < l.maxUpdates {
		iterations++
		if iterations > hardCeiling {
			// A callback is mutating timing state in a way the
			// clamp cannot absorb. Recover by zeroing owed time.
			l.logger.Error("fixed update loop failed to terminate, resetting accumulator",
				"strategy", l.name, "iterations", iterations, "frame", l.frameCount)
			l.accumulator = 0
			break
		}
		if l.beforeFixedUpdate != nil {
			l.beforeFixedUpdate(l.fixedDelta)
		}
		l.invoke(PhaseFixedUpdate, l.fixedUpdate, l.fixedDelta)
		l.accumulator -= l.fixedDelta
		l.fixedUpdateCount++
		updates++
	}

	alpha := l.accumulator / l.fixedDelta
	if alpha < 0 {
		alpha = 0
	} else if alpha >= 1 {
		// Only reachable when the update cap cut catch-up short;
		// the render still needs a valid blend factor.
		alpha = 0.999999
	}
	l.alpha = alpha

	l.invoke(PhaseUpdate, l.update, delta)
	l.invoke(PhaseRender, l.render, delta)
}

// FixedDeltaTime returns the fixed simulation step in seconds.
func (l *FixedLoop) FixedDeltaTime() float64 {
	return l.fixedDelta
}

// SetFixedDeltaTime changes the simulation step at runtime. The change
// takes effect on the next accumulator check. Rejects non-positive
// values before any state changes.
func (l *FixedLoop) SetFixedDeltaTime(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("loop: fixed delta time must be positive, got %v", dt)
	}
	l.fixedDelta = dt
	l.interval = throttleInterval(1.0 / dt)
	return nil
}

// Alpha returns the interpolation factor from the last iteration,
// always in [0, 1). Renderers blend previous and current simulation
// snapshots by this fraction.
func (l *FixedLoop) Alpha() float64 {
	return l.alpha
}

// Accumulator returns the currently owed simulation time in seconds.
func (l *FixedLoop) Accumulator() float64 {
	return l.accumulator
}

// MaxUpdatesPerFrame returns the per-frame catch-up bound.
func (l *FixedLoop) MaxUpdatesPerFrame() int {
	return l.maxUpdates
}

// FixedUpdateCount returns the total number of fixed steps taken.
func (l *FixedLoop) FixedUpdateCount() uint64 {
	return l.fixedUpdateCount
}

// ClampCount returns how often the accumulator clamp triggered.
func (l *FixedLoop) ClampCount() uint64 {
	return l.clampCount
}

// DroppedTime returns total simulation seconds discarded by clamping.
func (l *FixedLoop) DroppedTime() float64 {
	return l.droppedTime
}

// Start resets accumulator state along with the base bookkeeping.
func (l *FixedLoop) Start() {
	if l.state != StateIdle {
		return
	}
	l.accumulator = 0
	l.alpha = 0
	l.fixedUpdateCount = 0
	l.clampCount = 0
	l.droppedTime = 0
	l.baseLoop.Start()
}
