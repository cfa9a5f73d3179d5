// Package tui provides the Bubble Tea integration for the frameloop
// demo. Bubble Tea's tick stream acts as the platform frame source:
// each TickMsg fires the loop's pending continuation on a manual
// scheduler, keeping every callback on the program goroutine.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to fire one loop iteration.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages after
// the given delay. A non-positive delay falls back to a 60 Hz frame.
func tickCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		delay = time.Second / 60
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
