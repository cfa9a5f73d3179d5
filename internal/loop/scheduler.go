package loop

import "time"

// CancelFunc cancels a scheduled continuation. Calling it after the
// continuation has fired is a no-op.
type CancelFunc func()

// Scheduler is the platform "next frame" primitive. A loop schedules
// exactly one continuation at a time and cancels it on Stop/Pause.
type Scheduler interface {
	// Schedule arranges for fn to run once after delay. A zero delay
	// means "as soon as the platform allows".
	Schedule(delay time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules continuations on the Go runtime timer. This
// is the production scheduler for headless use.
type TimerScheduler struct{}

// NewTimerScheduler creates a timer-backed scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule runs fn once after delay via time.AfterFunc.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// ManualScheduler queues a single continuation and fires it only when
// told to. Used with ManualClock for fully deterministic loop tests and
// by drivers that own their own frame source (the TUI platform).
type ManualScheduler struct {
	pending   func()
	pendingID uint64
	seq       uint64
	lastDelay time.Duration
}

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule stores fn as the pending continuation, replacing any
// previous one.
func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
	s.seq++
	id := s.seq
	s.pending = fn
	s.pendingID = id
	s.lastDelay = delay
	return func() {
		if s.pendingID == id {
			s.pending = nil
		}
	}
}

// Fire runs the pending continuation, if any, and reports whether one
// ran. The continuation typically schedules its successor before Fire
// returns.
func (s *ManualScheduler) Fire() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

// HasPending reports whether a continuation is queued.
func (s *ManualScheduler) HasPending() bool {
	return s.pending != nil
}

// LastDelay returns the delay requested by the most recent Schedule
// call. Drivers use it to pace their own frame source.
func (s *ManualScheduler) LastDelay() time.Duration {
	return s.lastDelay
}
