// Package loop implements the frame scheduling strategies that drive a
// simulation/render cycle: a variable-step loop, a deterministic
// fixed-step loop with interpolation alpha, an adaptive controller that
// switches between the two, and a priority fixed-step variant with
// time-budgeted sub-updates.
//
// All loops are single-threaded cooperative: callbacks run synchronously
// on the scheduling goroutine, one at a time, and control returns to the
// Scheduler between iterations. A panic escaping a callback is recovered
// and routed to the error handler; the loop keeps scheduling.
package loop

// State is the lifecycle state of a loop.
type State int

const (
	// StateIdle means the loop is constructed or stopped.
	StateIdle State = iota
	// StateRunning means iterations are being scheduled.
	StateRunning
	// StatePaused means the loop holds its bookkeeping but schedules
	// nothing until Resume.
	StatePaused
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Callback phases reported in ErrorContext and log lines.
const (
	PhaseUpdate      = "update"
	PhaseFixedUpdate = "fixed_update"
	PhaseRender      = "render"
)

// ErrorContext identifies where a callback failure happened.
type ErrorContext struct {
	// Frame is the frame index during which the callback failed.
	Frame uint64
	// Phase names the callback: update, fixed_update, render, or
	// sub_update:<id> for priority sub-updates.
	Phase string
}

// ErrorHandler receives recovered callback failures. It must not panic.
type ErrorHandler func(err error, ctx ErrorContext)

// UpdateFunc is the shared signature of update, fixedUpdate and render
// callbacks. The argument is a delta time in seconds.
type UpdateFunc func(dt float64)

// Loop is the contract shared by every scheduling strategy.
type Loop interface {
	// Start begins scheduling iterations. No-op if already running.
	Start()
	// Stop cancels any pending iteration and returns to idle. The
	// accumulated bookkeeping is reset on the next Start.
	Stop()
	// Pause cancels the pending iteration but preserves bookkeeping
	// so Resume continues exactly where the loop left off. No-op
	// unless running.
	Pause()
	// Resume continues a paused loop. No-op unless paused.
	Resume()

	// SetUpdate installs the per-frame update callback.
	SetUpdate(fn UpdateFunc)
	// SetFixedUpdate installs the fixed-step simulation callback.
	SetFixedUpdate(fn UpdateFunc)
	// SetRender installs the per-frame render callback.
	SetRender(fn UpdateFunc)
	// SetOnError installs the handler for recovered callback failures.
	SetOnError(fn ErrorHandler)

	// IsRunning reports whether the loop is running (not paused).
	IsRunning() bool
	// IsPaused reports whether the loop is paused.
	IsPaused() bool
	// FPS returns the rolling average frames per second.
	FPS() float64
	// DeltaTime returns the last clamped frame delta in seconds.
	DeltaTime() float64
	// FixedDeltaTime returns the fixed simulation step in seconds.
	FixedDeltaTime() float64
	// ElapsedTime returns total clamped time processed, in seconds.
	ElapsedTime() float64
	// FrameCount returns the number of completed iterations.
	FrameCount() uint64
}
