// Package timescale implements composable time dilation: a base scale
// multiplied by any number of named modifiers. The effective scale is
// what a consumer (typically a ScaledClock or a loop's update callback)
// multiplies its deltas by.
package timescale

import (
	"sort"

	"github.com/vovakirdan/frameloop/internal/clock"
)

// Named modifiers installed by the convenience helpers.
const (
	ModifierSlowMotion  = "slow-motion"
	ModifierBulletTime  = "bullet-time"
	ModifierTimeStop    = "time-stop"
	ModifierFastForward = "fast-forward"
)

// Manager composes a base scale with named multiplicative modifiers.
// Effective scale = base × ∏(modifiers), clamped to ≥ 0.
//
// Helpers that install timed modifiers record an expiry against the
// injected clock; expired modifiers are pruned whenever the scale is
// recomputed. The timed removal is convenience only — correctness
// rests on Add/Remove and the multiplicative composition.
type Manager struct {
	clk       clock.Clock
	base      float64
	modifiers map[string]float64
	expiries  map[string]float64 // absolute clock reading, if timed
	scale     float64
}

// NewManager creates a manager with base scale 1. The clock is used
// only for timed modifier expiry; it may be a ManualClock in tests.
func NewManager(clk clock.Clock) *Manager {
	m := &Manager{
		clk:       clk,
		base:      1,
		modifiers: make(map[string]float64),
		expiries:  make(map[string]float64),
	}
	m.recompute()
	return m
}

// Scale returns the current effective scale. Timed modifiers that have
// expired are removed before composing.
func (m *Manager) Scale() float64 {
	m.pruneExpired()
	return m.scale
}

// BaseScale returns the base scale.
func (m *Manager) BaseScale() float64 {
	return m.base
}

// SetBaseScale replaces the base scale. Negative values clamp to zero.
func (m *Manager) SetBaseScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	m.base = scale
	m.recompute()
}

// AddModifier installs or replaces a named multiplier.
func (m *Manager) AddModifier(name string, multiplier float64) {
	m.modifiers[name] = multiplier
	delete(m.expiries, name)
	m.recompute()
}

// AddTimedModifier installs a named multiplier that is removed once
// the manager's clock passes now+duration. A non-positive duration
// installs a permanent modifier.
func (m *Manager) AddTimedModifier(name string, multiplier, duration float64) {
	m.modifiers[name] = multiplier
	if duration > 0 {
		m.expiries[name] = m.clk.Now() + duration
	} else {
		delete(m.expiries, name)
	}
	m.recompute()
}

// RemoveModifier removes a named multiplier. Unknown names are a no-op.
func (m *Manager) RemoveModifier(name string) {
	if _, ok := m.modifiers[name]; !ok {
		return
	}
	delete(m.modifiers, name)
	delete(m.expiries, name)
	m.recompute()
}

// HasModifier reports whether a live (non-expired) modifier exists.
func (m *Manager) HasModifier(name string) bool {
	m.pruneExpired()
	_, ok := m.modifiers[name]
	return ok
}

// ModifierNames returns the live modifier names, sorted.
func (m *Manager) ModifierNames() []string {
	m.pruneExpired()
	names := make([]string, 0, len(m.modifiers))
	for name := range m.modifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SlowMotion halves perceived time for the given duration (seconds).
func (m *Manager) SlowMotion(duration float64) {
	m.AddTimedModifier(ModifierSlowMotion, 0.5, duration)
}

// BulletTime slows perceived time to a tenth for the given duration.
func (m *Manager) BulletTime(duration float64) {
	m.AddTimedModifier(ModifierBulletTime, 0.1, duration)
}

// TimeStop freezes perceived time for the given duration.
func (m *Manager) TimeStop(duration float64) {
	m.AddTimedModifier(ModifierTimeStop, 0, duration)
}

// FastForward doubles perceived time for the given duration.
func (m *Manager) FastForward(duration float64) {
	m.AddTimedModifier(ModifierFastForward, 2.0, duration)
}

// pruneExpired drops timed modifiers whose expiry has passed and
// recomputes the scale if anything changed.
func (m *Manager) pruneExpired() {
	if len(m.expiries) == 0 {
		return
	}
	now := m.clk.Now()
	changed := false
	for name, at := range m.expiries {
		if now >= at {
			delete(m.modifiers, name)
			delete(m.expiries, name)
			changed = true
		}
	}
	if changed {
		m.recompute()
	}
}

func (m *Manager) recompute() {
	scale := m.base
	for _, mult := range m.modifiers {
		scale *= mult
	}
	if scale < 0 {
		scale = 0
	}
	m.scale = scale
}
