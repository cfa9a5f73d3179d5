package loop

import (
	"testing"

	"github.com/vovakirdan/frameloop/internal/clock"
)

func newTestPriority(t *testing.T, opts Options) (*PriorityLoop, *clock.ManualClock, *ManualScheduler, *clock.ManualClock) {
	t.Helper()
	clk := clock.NewManualClock()
	wall := clock.NewManualClock()
	sched := NewManualScheduler()
	opts.Clock = clk
	opts.Scheduler = sched
	l, err := NewPriorityLoop(opts, wall)
	if err != nil {
		t.Fatalf("NewPriorityLoop() failed: %v", err)
	}
	return l, clk, sched, wall
}

func TestPriorityOrdering(t *testing.T) {
	// B registered before A, but A has higher priority: execution
	// order must be [A, B] every step.
	l, clk, sched, _ := newTestPriority(t, Options{TargetFPS: 60})

	var order []string
	if err := l.AddPriorityUpdate("B", 5, 0, func(dt float64) { order = append(order, "B") }); err != nil {
		t.Fatalf("AddPriorityUpdate(B) failed: %v", err)
	}
	if err := l.AddPriorityUpdate("A", 10, 0, func(dt float64) { order = append(order, "A") }); err != nil {
		t.Fatalf("AddPriorityUpdate(A) failed: %v", err)
	}

	l.Start()
	for i := 0; i < 3; i++ {
		order = nil
		drive(t, clk, sched, 1.0/60.0)
		if len(order) != 2 || order[0] != "A" || order[1] != "B" {
			t.Fatalf("step %d: order = %v, want [A B]", i, order)
		}
	}
}

func TestPriorityStableSortForTies(t *testing.T) {
	l, clk, sched, _ := newTestPriority(t, Options{TargetFPS: 60})

	var order []string
	for _, id := range []string{"first", "second", "third"} {
		id := id
		if err := l.AddPriorityUpdate(id, 7, 0, func(dt float64) { order = append(order, id) }); err != nil {
			t.Fatalf("AddPriorityUpdate(%s) failed: %v", id, err)
		}
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want registration order for equal priorities", order)
		}
	}
}

func TestNormalListRunsAfterPriorityList(t *testing.T) {
	l, clk, sched, _ := newTestPriority(t, Options{TargetFPS: 60})

	var order []string
	if err := l.AddUpdate("cosmetics", func(dt float64) { order = append(order, "cosmetics") }); err != nil {
		t.Fatalf("AddUpdate() failed: %v", err)
	}
	if err := l.AddPriorityUpdate("physics", 10, 0, func(dt float64) { order = append(order, "physics") }); err != nil {
		t.Fatalf("AddPriorityUpdate() failed: %v", err)
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	if len(order) != 2 || order[0] != "physics" || order[1] != "cosmetics" {
		t.Errorf("order = %v, want [physics cosmetics]", order)
	}
}

func TestSubUpdateBudgetOverrunIsNotFatal(t *testing.T) {
	l, clk, sched, wall := newTestPriority(t, Options{TargetFPS: 60})

	ran := false
	// Budget 1ms, measured cost 5ms
	err := l.AddPriorityUpdate("slow", 10, 0.001, func(dt float64) {
		wall.Advance(0.005)
		ran = true
	})
	if err != nil {
		t.Fatalf("AddPriorityUpdate() failed: %v", err)
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	if !ran {
		t.Error("over-budget sub-update must still complete")
	}
	d, ok := l.LastDuration("slow")
	if !ok {
		t.Fatal("LastDuration() should report the sub-update")
	}
	if d < 0.005-1e-9 {
		t.Errorf("LastDuration() = %v, want ~0.005", d)
	}
}

func TestGlobalBudgetSkipsRemainingSubUpdates(t *testing.T) {
	l, clk, sched, wall := newTestPriority(t, Options{TargetFPS: 60})

	var order []string
	// First sub-update eats more than the whole fixed step (1/60s)
	if err := l.AddPriorityUpdate("hog", 10, 0, func(dt float64) {
		wall.Advance(0.05)
		order = append(order, "hog")
	}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddPriorityUpdate("starved", 5, 0, func(dt float64) {
		order = append(order, "starved")
	}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddUpdate("normal", func(dt float64) {
		order = append(order, "normal")
	}); err != nil {
		t.Fatal(err)
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	if len(order) != 1 || order[0] != "hog" {
		t.Errorf("order = %v, want only [hog] (rest skipped)", order)
	}
	if l.SkippedCount() != 2 {
		t.Errorf("SkippedCount() = %d, want 2", l.SkippedCount())
	}
}

func TestWithinBudgetNothingSkipped(t *testing.T) {
	l, clk, sched, wall := newTestPriority(t, Options{TargetFPS: 60})

	var order []string
	if err := l.AddPriorityUpdate("a", 10, 0, func(dt float64) {
		wall.Advance(0.001)
		order = append(order, "a")
	}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddUpdate("b", func(dt float64) {
		wall.Advance(0.001)
		order = append(order, "b")
	}); err != nil {
		t.Fatal(err)
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	if len(order) != 2 {
		t.Errorf("order = %v, want both to run within budget", order)
	}
	if l.SkippedCount() != 0 {
		t.Errorf("SkippedCount() = %d, want 0", l.SkippedCount())
	}
}

func TestDuplicateIdentifierRejected(t *testing.T) {
	l, _, _, _ := newTestPriority(t, Options{})

	if err := l.AddPriorityUpdate("x", 1, 0, func(dt float64) {}); err != nil {
		t.Fatalf("first AddPriorityUpdate() failed: %v", err)
	}
	if err := l.AddPriorityUpdate("x", 2, 0, func(dt float64) {}); err == nil {
		t.Error("duplicate priority id should be rejected")
	}
	if err := l.AddUpdate("x", func(dt float64) {}); err == nil {
		t.Error("duplicate id across lists should be rejected")
	}
}

func TestRemoveUpdate(t *testing.T) {
	l, clk, sched, _ := newTestPriority(t, Options{TargetFPS: 60})

	calls := 0
	if err := l.AddPriorityUpdate("gone", 10, 0, func(dt float64) { calls++ }); err != nil {
		t.Fatal(err)
	}

	if !l.RemoveUpdate("gone") {
		t.Fatal("RemoveUpdate() should report the entry existed")
	}
	if l.RemoveUpdate("gone") {
		t.Error("second RemoveUpdate() should report missing")
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)
	if calls != 0 {
		t.Errorf("removed sub-update ran %d times", calls)
	}
}

func TestSubUpdatePanicRoutedToOnError(t *testing.T) {
	l, clk, sched, _ := newTestPriority(t, Options{TargetFPS: 60})

	var phases []string
	l.SetOnError(func(err error, ctx ErrorContext) { phases = append(phases, ctx.Phase) })

	if err := l.AddPriorityUpdate("buggy", 10, 0, func(dt float64) { panic("oops") }); err != nil {
		t.Fatal(err)
	}
	survivor := 0
	if err := l.AddPriorityUpdate("survivor", 5, 0, func(dt float64) { survivor++ }); err != nil {
		t.Fatal(err)
	}

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	if len(phases) != 1 || phases[0] != "sub_update:buggy" {
		t.Errorf("error phases = %v, want [sub_update:buggy]", phases)
	}
	if survivor != 1 {
		t.Errorf("survivor ran %d times, want 1 (panic contained per sub-update)", survivor)
	}
}

func TestMonolithicFixedUpdateRunsAfterSubUpdates(t *testing.T) {
	l, clk, sched, _ := newTestPriority(t, Options{TargetFPS: 60})

	var order []string
	if err := l.AddPriorityUpdate("sub", 10, 0, func(dt float64) { order = append(order, "sub") }); err != nil {
		t.Fatal(err)
	}
	l.SetFixedUpdate(func(dt float64) { order = append(order, "monolithic") })

	l.Start()
	drive(t, clk, sched, 1.0/60.0)

	if len(order) != 2 || order[0] != "sub" || order[1] != "monolithic" {
		t.Errorf("order = %v, want [sub monolithic]", order)
	}
}
