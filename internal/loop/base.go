package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/clock"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultTargetFPS          = 60.0
	DefaultMaxUpdatesPerFrame = 5
	DefaultLowFPSThreshold    = 30.0
	DefaultHighFPSThreshold   = 55.0
	DefaultSwitchCooldown     = 1.0 // seconds
)

// DefaultMaxDeltaTime is the global frame delta clamp: roughly five
// frames at 60 FPS, so a debugger stall or OS sleep is never replayed
// as one giant simulation jump.
const DefaultMaxDeltaTime = 5.0 / 60.0

// Options is the shared configuration surface for all loop strategies.
// Zero-valued fields take the package defaults; collaborators (clock,
// scheduler, logger) default to production implementations.
type Options struct {
	// Clock is the monotonic time source. Defaults to a RealClock.
	Clock clock.Clock
	// Scheduler is the platform next-frame primitive. Defaults to a
	// TimerScheduler.
	Scheduler Scheduler
	// Logger receives lifecycle transitions and degradation warnings.
	// Defaults to a discard logger.
	Logger *log.Logger

	// TargetFPS sets the fixed simulation rate: fixedDeltaTime is
	// derived as 1/TargetFPS. For the variable loop it is also the
	// scheduling throttle. Must be positive when set.
	TargetFPS float64
	// MaxUpdatesPerFrame bounds fixed-step catch-up work per frame.
	MaxUpdatesPerFrame int
	// MaxDeltaTime clamps the per-frame delta, in seconds.
	MaxDeltaTime float64

	// LowFPSThreshold and HighFPSThreshold drive the adaptive
	// controller's switch decisions.
	LowFPSThreshold  float64
	HighFPSThreshold float64
	// SwitchCooldown is the adaptive hysteresis window in seconds.
	SwitchCooldown float64
}

// withDefaults fills zero-valued fields.
func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.NewRealClock()
	}
	if o.Scheduler == nil {
		o.Scheduler = NewTimerScheduler()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.TargetFPS == 0 {
		o.TargetFPS = DefaultTargetFPS
	}
	if o.MaxUpdatesPerFrame == 0 {
		o.MaxUpdatesPerFrame = DefaultMaxUpdatesPerFrame
	}
	if o.MaxDeltaTime == 0 {
		o.MaxDeltaTime = DefaultMaxDeltaTime
	}
	if o.LowFPSThreshold == 0 {
		o.LowFPSThreshold = DefaultLowFPSThreshold
	}
	if o.HighFPSThreshold == 0 {
		o.HighFPSThreshold = DefaultHighFPSThreshold
	}
	if o.SwitchCooldown == 0 {
		o.SwitchCooldown = DefaultSwitchCooldown
	}
	return o
}

// validate rejects configuration errors before any state changes.
func (o Options) validate() error {
	if o.TargetFPS <= 0 {
		return fmt.Errorf("loop: target fps must be positive, got %v", o.TargetFPS)
	}
	if o.MaxUpdatesPerFrame <= 0 {
		return fmt.Errorf("loop: max updates per frame must be positive, got %d", o.MaxUpdatesPerFrame)
	}
	if o.MaxDeltaTime <= 0 {
		return fmt.Errorf("loop: max delta time must be positive, got %v", o.MaxDeltaTime)
	}
	if o.LowFPSThreshold >= o.HighFPSThreshold {
		return fmt.Errorf("loop: low fps threshold %v must be below high threshold %v",
			o.LowFPSThreshold, o.HighFPSThreshold)
	}
	if o.SwitchCooldown < 0 {
		return fmt.Errorf("loop: switch cooldown must not be negative, got %v", o.SwitchCooldown)
	}
	return nil
}

// baseLoop carries the bookkeeping shared by every strategy: lifecycle
// state machine, delta computation and clamping, FPS window, frame and
// elapsed-time counters, callback storage, and error containment.
// Concrete strategies install their per-iteration algorithm as the
// step hook.
type baseLoop struct {
	name   string // strategy name for log lines
	clk    clock.Clock
	sched  Scheduler
	logger *log.Logger

	update      UpdateFunc
	fixedUpdate UpdateFunc
	render      UpdateFunc
	onError     ErrorHandler

	state        State
	lastReading  float64
	deltaTime    float64
	elapsed      float64
	frameCount   uint64
	maxDeltaTime float64
	interval     time.Duration // requested scheduling delay
	window       fpsWindow
	cancel       CancelFunc

	// step runs the strategy's algorithm for one clamped delta.
	step func(delta float64)
	// observer, when set, runs after step on every iteration. The
	// adaptive controller uses it to watch rolling performance.
	observer func()
}

func newBaseLoop(name string, o Options) *baseLoop {
	return &baseLoop{
		name:         name,
		clk:          o.Clock,
		sched:        o.Scheduler,
		logger:       o.Logger,
		maxDeltaTime: o.MaxDeltaTime,
	}
}

// Start begins scheduling. The current clock reading becomes the
// delta-time baseline; counters from any previous run are reset.
func (l *baseLoop) Start() {
	if l.state != StateIdle {
		return
	}
	l.state = StateRunning
	l.lastReading = l.clk.Now()
	l.deltaTime = 0
	l.elapsed = 0
	l.frameCount = 0
	l.window.reset()
	l.logger.Info("loop started", "strategy", l.name)
	l.reschedule()
}

// Stop cancels the pending iteration and returns to idle.
func (l *baseLoop) Stop() {
	if l.state == StateIdle {
		return
	}
	l.cancelPending()
	l.state = StateIdle
	l.logger.Info("loop stopped", "strategy", l.name, "frames", l.frameCount)
}

// Pause cancels the pending iteration but keeps all bookkeeping.
func (l *baseLoop) Pause() {
	if l.state != StateRunning {
		return
	}
	l.cancelPending()
	l.state = StatePaused
	l.logger.Info("loop paused", "strategy", l.name, "frames", l.frameCount)
}

// Resume continues a paused loop. The baseline is re-read so the
// paused duration is not replayed as a giant delta.
func (l *baseLoop) Resume() {
	if l.state != StatePaused {
		return
	}
	l.state = StateRunning
	l.lastReading = l.clk.Now()
	l.logger.Info("loop resumed", "strategy", l.name)
	l.reschedule()
}

// iterate is one scheduled continuation: read the clock, compute and
// clamp the delta, run the strategy, then reschedule unless a callback
// stopped or paused the loop.
func (l *baseLoop) iterate() {
	if l.state != StateRunning {
		return
	}

	now := l.clk.Now()
	raw := now - l.lastReading
	if raw < 0 {
		raw = 0
	}
	l.lastReading = now
	l.window.add(raw)

	delta := raw
	if delta > l.maxDeltaTime {
		delta = l.maxDeltaTime
	}
	l.deltaTime = delta
	l.elapsed += delta
	l.frameCount++

	l.step(delta)

	if l.observer != nil {
		l.observer()
	}
	if l.state == StateRunning {
		l.reschedule()
	}
}

func (l *baseLoop) reschedule() {
	l.cancel = l.sched.Schedule(l.interval, l.iterate)
}

func (l *baseLoop) cancelPending() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// invoke runs one callback with panic containment. A recovered panic
// is converted to an error and routed to the error handler; the loop
// continues on the next iteration.
func (l *baseLoop) invoke(phase string, fn UpdateFunc, dt float64) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.handleCallbackError(phase, r)
		}
	}()
	fn(dt)
}

func (l *baseLoop) handleCallbackError(phase string, recovered any) {
	var err error
	if e, ok := recovered.(error); ok {
		err = fmt.Errorf("loop: %s callback failed: %w", phase, e)
	} else {
		err = fmt.Errorf("loop: %s callback failed: %v", phase, recovered)
	}
	l.logger.Error("callback error", "strategy", l.name, "phase", phase, "frame", l.frameCount, "error", err)
	if l.onError != nil {
		l.onError(err, ErrorContext{Frame: l.frameCount, Phase: phase})
	}
}

// SetUpdate installs the per-frame update callback.
func (l *baseLoop) SetUpdate(fn UpdateFunc) { l.update = fn }

// SetFixedUpdate installs the fixed-step simulation callback.
func (l *baseLoop) SetFixedUpdate(fn UpdateFunc) { l.fixedUpdate = fn }

// SetRender installs the per-frame render callback.
func (l *baseLoop) SetRender(fn UpdateFunc) { l.render = fn }

// SetOnError installs the handler for recovered callback failures.
func (l *baseLoop) SetOnError(fn ErrorHandler) { l.onError = fn }

// IsRunning reports whether the loop is actively scheduling.
func (l *baseLoop) IsRunning() bool { return l.state == StateRunning }

// IsPaused reports whether the loop is paused.
func (l *baseLoop) IsPaused() bool { return l.state == StatePaused }

// FPS returns the rolling average over the last raw deltas.
func (l *baseLoop) FPS() float64 { return l.window.fps() }

// DeltaTime returns the last clamped frame delta in seconds.
func (l *baseLoop) DeltaTime() float64 { return l.deltaTime }

// ElapsedTime returns total clamped time processed in seconds.
func (l *baseLoop) ElapsedTime() float64 { return l.elapsed }

// FrameCount returns the number of completed iterations.
func (l *baseLoop) FrameCount() uint64 { return l.frameCount }
