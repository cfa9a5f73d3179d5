package loop

import (
	"testing"
	"time"
)

func TestVariableLoopCallbackOrderAndDeltas(t *testing.T) {
	l, clk, sched := newTestVariable(t, Options{TargetFPS: 60})

	var order []string
	var updateDt, fixedDt, renderDt float64
	l.SetUpdate(func(dt float64) { order = append(order, "update"); updateDt = dt })
	l.SetFixedUpdate(func(dt float64) { order = append(order, "fixed"); fixedDt = dt })
	l.SetRender(func(dt float64) { order = append(order, "render"); renderDt = dt })

	l.Start()
	drive(t, clk, sched, 0.02)

	want := []string{"update", "fixed", "render"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	// update/render see the actual delta, fixedUpdate the target step
	if updateDt != 0.02 {
		t.Errorf("update dt = %v, want 0.02", updateDt)
	}
	if renderDt != 0.02 {
		t.Errorf("render dt = %v, want 0.02", renderDt)
	}
	if fixedDt != 1.0/60.0 {
		t.Errorf("fixedUpdate dt = %v, want 1/60", fixedDt)
	}
}

func TestVariableLoopNilCallbacksAreNoOps(t *testing.T) {
	l, clk, sched := newTestVariable(t, Options{})

	l.Start()
	drive(t, clk, sched, 0.01) // must not panic with nothing wired

	if l.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", l.FrameCount())
	}
}

func TestVariableLoopThrottleInterval(t *testing.T) {
	l, _, sched := newTestVariable(t, Options{TargetFPS: 30})

	l.Start()
	want := time.Second / 30
	if got := sched.LastDelay(); got != want {
		t.Errorf("scheduling delay = %v, want %v (1/targetFPS)", got, want)
	}

	if err := l.SetTargetFPS(120); err != nil {
		t.Fatalf("SetTargetFPS(120) failed: %v", err)
	}
	sched.Fire() // next reschedule picks up the new throttle
	if got := sched.LastDelay(); got != time.Second/120 {
		t.Errorf("scheduling delay after SetTargetFPS = %v, want %v", got, time.Second/120)
	}
}

func TestSetTargetFPSValidation(t *testing.T) {
	l, _, _ := newTestVariable(t, Options{TargetFPS: 60})

	if err := l.SetTargetFPS(0); err == nil {
		t.Error("SetTargetFPS(0) should be rejected")
	}
	if err := l.SetTargetFPS(-60); err == nil {
		t.Error("SetTargetFPS(-60) should be rejected")
	}
	if got := l.TargetFPS(); got != 60 {
		t.Errorf("rejected call changed target fps: %v", got)
	}
}
