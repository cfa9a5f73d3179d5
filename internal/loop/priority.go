package loop

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/frameloop/internal/clock"
)

// SubUpdate is one named, removable unit of fixed-step work owned by a
// PriorityLoop. Higher priority runs first. A positive Budget is the
// per-call duration allowance in seconds; exceeding it is logged but
// the update still completes.
type SubUpdate struct {
	ID       string
	Priority int
	Budget   float64
	Callback UpdateFunc
}

// PriorityLoop extends the fixed-step algorithm: before each step's
// monolithic fixedUpdate callback it runs a priority-ordered list of
// named sub-updates, each measured against its own budget, and the
// whole list against a global budget equal to the fixed step duration.
// Once the global budget is exhausted the remaining sub-updates for
// that step are skipped with a warning — forward progress beats
// completeness. An unordered "normal" list runs after the priority
// list under the same global check.
type PriorityLoop struct {
	*FixedLoop

	// wall measures sub-update cost. Separate from the loop clock so
	// tests can fake slow updates deterministically.
	wall clock.Clock

	priority []SubUpdate
	normal   []SubUpdate

	lastDurations map[string]float64
	skippedCount  uint64
}

// NewPriorityLoop constructs a priority fixed-step loop. The wall clock
// used for budget measurement defaults to a RealClock; pass a
// ManualClock to control measured durations in tests.
func NewPriorityLoop(opts Options, wall clock.Clock) (*PriorityLoop, error) {
	fixed, err := NewFixedLoop(opts)
	if err != nil {
		return nil, err
	}
	if wall == nil {
		wall = clock.NewRealClock()
	}

	l := &PriorityLoop{
		FixedLoop:     fixed,
		wall:          wall,
		lastDurations: make(map[string]float64),
	}
	l.name = "priority"
	l.beforeFixedUpdate = l.runSubUpdates
	return l, nil
}

// AddPriorityUpdate registers a named sub-update. Higher priority runs
// first; registration order breaks ties (stable sort). A non-positive
// budget means unbudgeted. Duplicate identifiers are rejected.
func (l *PriorityLoop) AddPriorityUpdate(id string, priority int, budget float64, fn UpdateFunc) error {
	if fn == nil {
		return fmt.Errorf("loop: sub-update %q has no callback", id)
	}
	if l.has(id) {
		return fmt.Errorf("loop: sub-update %q already registered", id)
	}
	l.priority = append(l.priority, SubUpdate{ID: id, Priority: priority, Budget: budget, Callback: fn})
	sort.SliceStable(l.priority, func(i, j int) bool {
		return l.priority[i].Priority > l.priority[j].Priority
	})
	return nil
}

// AddUpdate registers a named sub-update on the unordered normal list,
// which runs after all priority updates.
func (l *PriorityLoop) AddUpdate(id string, fn UpdateFunc) error {
	if fn == nil {
		return fmt.Errorf("loop: sub-update %q has no callback", id)
	}
	if l.has(id) {
		return fmt.Errorf("loop: sub-update %q already registered", id)
	}
	l.normal = append(l.normal, SubUpdate{ID: id, Callback: fn})
	return nil
}

// RemoveUpdate removes a sub-update from either list by identifier and
// reports whether it existed.
func (l *PriorityLoop) RemoveUpdate(id string) bool {
	for i, su := range l.priority {
		if su.ID == id {
			l.priority = append(l.priority[:i], l.priority[i+1:]...)
			delete(l.lastDurations, id)
			return true
		}
	}
	for i, su := range l.normal {
		if su.ID == id {
			l.normal = append(l.normal[:i], l.normal[i+1:]...)
			delete(l.lastDurations, id)
			return true
		}
	}
	return false
}

func (l *PriorityLoop) has(id string) bool {
	for _, su := range l.priority {
		if su.ID == id {
			return true
		}
	}
	for _, su := range l.normal {
		if su.ID == id {
			return true
		}
	}
	return false
}

// runSubUpdates executes both lists for one fixed step. Installed as
// the FixedLoop's pre-step hook. The global budget is the fixed step
// duration itself, checked after each sub-update: once exceeded, every
// remaining sub-update of this step is skipped.
func (l *PriorityLoop) runSubUpdates(fixedDt float64) {
	stepStart := l.wall.Now()
	exceeded := false
	skipped := 0

	for _, list := range [][]SubUpdate{l.priority, l.normal} {
		for _, su := range list {
			if exceeded {
				skipped++
				continue
			}
			l.runOne(su, fixedDt)
			if l.wall.Now()-stepStart > fixedDt {
				exceeded = true
			}
		}
	}

	if skipped > 0 {
		l.skippedCount += uint64(skipped)
		l.logger.Warn("step budget exhausted, skipping sub-updates",
			"strategy", l.name, "skipped", skipped, "frame", l.frameCount)
	}
}

// runOne executes a single sub-update with panic containment and
// budget measurement.
func (l *PriorityLoop) runOne(su SubUpdate, fixedDt float64) {
	start := l.wall.Now()
	l.invoke("sub_update:"+su.ID, su.Callback, fixedDt)
	duration := l.wall.Now() - start
	l.lastDurations[su.ID] = duration

	if su.Budget > 0 && duration > su.Budget {
		l.logger.Warn("sub-update exceeded its budget",
			"strategy", l.name, "id", su.ID,
			"duration_seconds", duration, "budget_seconds", su.Budget)
	}
}

// LastDuration returns the measured duration of the most recent run of
// the identified sub-update, and whether it has run at all.
func (l *PriorityLoop) LastDuration(id string) (float64, bool) {
	d, ok := l.lastDurations[id]
	return d, ok
}

// SkippedCount returns the total number of sub-updates skipped by the
// global budget check.
func (l *PriorityLoop) SkippedCount() uint64 {
	return l.skippedCount
}

// SubUpdateIDs returns the identifiers of all registered sub-updates,
// priority list first in execution order, then the normal list.
func (l *PriorityLoop) SubUpdateIDs() []string {
	ids := make([]string, 0, len(l.priority)+len(l.normal))
	for _, su := range l.priority {
		ids = append(ids, su.ID)
	}
	for _, su := range l.normal {
		ids = append(ids, su.ID)
	}
	return ids
}
