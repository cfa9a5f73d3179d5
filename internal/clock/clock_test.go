package clock

import "testing"

func TestRealClockMonotonic(t *testing.T) {
	c := NewRealClock()

	prev := c.Now()
	for i := 0; i < 100; i++ {
		now := c.Now()
		if now < prev {
			t.Fatalf("Now() went backwards: %v -> %v", prev, now)
		}
		prev = now
	}
}

func TestRealClockStartRebases(t *testing.T) {
	c := NewRealClock()
	c.Start()

	if got := c.Now(); got < 0 || got > 1 {
		t.Errorf("Now() right after Start = %v, want near 0", got)
	}
}

func TestManualClockAdvance(t *testing.T) {
	c := NewManualClock()

	if got := c.Now(); got != 0 {
		t.Fatalf("initial Now() = %v, want 0", got)
	}

	c.Advance(0.5)
	c.Advance(0.25)
	if got := c.Now(); got != 0.75 {
		t.Errorf("Now() after advances = %v, want 0.75", got)
	}
}

func TestManualClockIgnoresNegativeAdvance(t *testing.T) {
	c := NewManualClock()
	c.Advance(1.0)
	c.Advance(-0.5)

	if got := c.Now(); got != 1.0 {
		t.Errorf("Now() = %v, want 1.0 (negative advance ignored)", got)
	}
}

func TestManualClockTimeScale(t *testing.T) {
	c := NewManualClock()
	c.SetTimeScale(2.0)
	c.Advance(1.0)

	if got := c.Now(); got != 2.0 {
		t.Errorf("Now() with scale 2 = %v, want 2.0", got)
	}

	c.SetTimeScale(0)
	c.Advance(5.0)
	if got := c.Now(); got != 2.0 {
		t.Errorf("Now() with scale 0 = %v, want 2.0 (frozen)", got)
	}

	// Negative scales clamp to zero
	c.SetTimeScale(-1)
	if got := c.TimeScale(); got != 0 {
		t.Errorf("TimeScale() = %v, want 0", got)
	}
}

func TestManualClockStartResets(t *testing.T) {
	c := NewManualClock()
	c.Advance(3.0)
	c.Start()

	if got := c.Now(); got != 0 {
		t.Errorf("Now() after Start = %v, want 0", got)
	}
}
