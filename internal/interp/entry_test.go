package interp

import (
	"math"
	"testing"
)

func TestEntryBlendsBetweenSnapshots(t *testing.T) {
	x := 0.0
	e := NewEntry(func() []float64 { return []float64{x} })

	// Simulate one fixed step: capture, then move the live state
	x = 10.0
	e.Capture()

	e.Interpolate(0.5)
	if got := e.Values()[0]; got != 5.0 {
		t.Errorf("Values()[0] at alpha 0.5 = %v, want 5.0", got)
	}

	e.Interpolate(0)
	if got := e.Values()[0]; got != 0.0 {
		t.Errorf("Values()[0] at alpha 0 = %v, want 0.0 (previous)", got)
	}

	e.Interpolate(1)
	if got := e.Values()[0]; got != 10.0 {
		t.Errorf("Values()[0] at alpha 1 = %v, want 10.0 (current)", got)
	}
}

func TestEntryCaptureRotates(t *testing.T) {
	x := 1.0
	e := NewEntry(func() []float64 { return []float64{x} })

	x = 2.0
	e.Capture() // previous=1, current=2
	x = 3.0
	e.Capture() // previous=2, current=3

	e.Interpolate(0.5)
	if got := e.Values()[0]; got != 2.5 {
		t.Errorf("Values()[0] = %v, want 2.5", got)
	}
}

func TestEntryClampsAlpha(t *testing.T) {
	x := 0.0
	e := NewEntry(func() []float64 { return []float64{x} })
	x = 4.0
	e.Capture()

	e.Interpolate(-1)
	if got := e.Values()[0]; got != 0 {
		t.Errorf("alpha -1 clamped: got %v, want 0", got)
	}
	e.Interpolate(2)
	if got := e.Values()[0]; got != 4.0 {
		t.Errorf("alpha 2 clamped: got %v, want 4.0", got)
	}
}

func TestEntryMultiComponent(t *testing.T) {
	pos := []float64{0, 100}
	e := NewEntry(func() []float64 { return pos })

	pos[0], pos[1] = 10, 120
	e.Capture()
	e.Interpolate(0.25)

	want := []float64{2.5, 105}
	for i, w := range want {
		if got := e.Values()[i]; math.Abs(got-w) > 1e-9 {
			t.Errorf("Values()[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestRegistryCaptureAndInterpolate(t *testing.T) {
	a, b := 0.0, 0.0
	r := NewRegistry()
	r.Add("a", NewEntry(func() []float64 { return []float64{a} }))
	r.Add("b", NewEntry(func() []float64 { return []float64{b} }))

	a, b = 2.0, 4.0
	r.CaptureAll()
	r.InterpolateAll(0.5)

	if got := r.Get("a").Values()[0]; got != 1.0 {
		t.Errorf(`entry "a" = %v, want 1.0`, got)
	}
	if got := r.Get("b").Values()[0]; got != 2.0 {
		t.Errorf(`entry "b" = %v, want 2.0`, got)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	x := 0.0
	r.Add("x", NewEntry(func() []float64 { return []float64{x} }))
	r.Remove("x")

	if r.Get("x") != nil {
		t.Error("Get() after Remove should be nil")
	}
	// Must not panic with no entries
	r.CaptureAll()
	r.InterpolateAll(0.5)
}
