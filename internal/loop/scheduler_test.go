package loop

import (
	"testing"
	"time"
)

func TestManualSchedulerFire(t *testing.T) {
	s := NewManualScheduler()

	ran := 0
	s.Schedule(0, func() { ran++ })

	if !s.HasPending() {
		t.Fatal("expected pending continuation")
	}
	if !s.Fire() {
		t.Fatal("Fire() should run the continuation")
	}
	if ran != 1 {
		t.Errorf("continuation ran %d times, want 1", ran)
	}
	if s.Fire() {
		t.Error("second Fire() should report nothing pending")
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()

	ran := false
	cancel := s.Schedule(0, func() { ran = true })
	cancel()

	if s.HasPending() {
		t.Error("cancel should clear the pending continuation")
	}
	if s.Fire() || ran {
		t.Error("cancelled continuation must not run")
	}
}

func TestManualSchedulerStaleCancelIsNoOp(t *testing.T) {
	s := NewManualScheduler()

	cancelOld := s.Schedule(0, func() {})
	ran := false
	s.Schedule(0, func() { ran = true })

	cancelOld() // refers to the replaced continuation
	if !s.HasPending() {
		t.Fatal("stale cancel cleared the newer continuation")
	}
	s.Fire()
	if !ran {
		t.Error("newer continuation should have run")
	}
}

func TestManualSchedulerRecordsDelay(t *testing.T) {
	s := NewManualScheduler()
	s.Schedule(42*time.Millisecond, func() {})

	if got := s.LastDelay(); got != 42*time.Millisecond {
		t.Errorf("LastDelay() = %v, want 42ms", got)
	}
}

func TestTimerSchedulerRunsAndCancels(t *testing.T) {
	s := NewTimerScheduler()

	done := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled continuation never ran")
	}

	fired := make(chan struct{})
	cancel := s.Schedule(10*time.Millisecond, func() { close(fired) })
	cancel()
	select {
	case <-fired:
		t.Fatal("cancelled continuation ran")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFPSWindowRollingAverage(t *testing.T) {
	var w fpsWindow

	if w.fps() != 0 {
		t.Errorf("empty window fps = %v, want 0", w.fps())
	}

	for i := 0; i < 10; i++ {
		w.add(1.0 / 60.0)
	}
	if fps := w.fps(); fps < 59.9 || fps > 60.1 {
		t.Errorf("fps = %v, want ~60", fps)
	}

	// Saturate with slower samples: old ones must be evicted
	for i := 0; i < fpsWindowSize; i++ {
		w.add(1.0 / 30.0)
	}
	if fps := w.fps(); fps < 29.9 || fps > 30.1 {
		t.Errorf("fps after eviction = %v, want ~30", fps)
	}

	w.reset()
	if w.fps() != 0 {
		t.Errorf("fps after reset = %v, want 0", w.fps())
	}
}
