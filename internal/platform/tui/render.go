package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frameloop/internal/loop"
	"github.com/vovakirdan/frameloop/internal/sim"
	"github.com/vovakirdan/frameloop/internal/timescale"
)

// ballPalette cycles per ball index.
var ballPalette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

var (
	hudStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// renderWorld draws the blended ball positions into a width×height cell
// grid. Later balls overdraw earlier ones on a collision; fine for a
// demo.
func renderWorld(w *sim.World, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}

	type cell struct {
		r     rune
		color int // palette index, -1 for empty
	}
	grid := make([]cell, width*height)
	for i := range grid {
		grid[i] = cell{r: ' ', color: -1}
	}

	for i, p := range w.Positions() {
		x := int(p[0] + 0.5)
		y := int(p[1] + 0.5)
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		grid[y*width+x] = cell{r: '●', color: i % len(ballPalette)}
	}

	var sb strings.Builder
	sb.Grow(width*height*2 + height)
	for y := 0; y < height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		// Group runs of same-colored cells to keep escape sequences down
		x := 0
		for x < width {
			start := grid[y*width+x]
			var run strings.Builder
			for x < width && grid[y*width+x].color == start.color {
				run.WriteRune(grid[y*width+x].r)
				x++
			}
			if start.color < 0 {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(ballPalette[start.color].Render(run.String()))
			}
		}
	}
	return sb.String()
}

// renderHUD draws the telemetry and key-help lines under the world.
func renderHUD(lp loop.Loop, strategy string, scale *timescale.Manager, lastErr string, width int) string {
	state := "running"
	if lp.IsPaused() {
		state = "paused"
	} else if !lp.IsRunning() {
		state = "stopped"
	}

	mode := strategy
	if ms, ok := lp.(modeSwitcher); ok {
		mode = fmt.Sprintf("%s(%s)", strategy, ms.Mode())
	}

	telemetry := fmt.Sprintf("%s  %s  fps %.1f  frame %d  t %.1fs  alpha %.2f  scale %.2f",
		mode, state, lp.FPS(), lp.FrameCount(), lp.ElapsedTime(),
		loopAlpha(lp), scale.Scale())
	if names := scale.ModifierNames(); len(names) > 0 {
		telemetry += "  [" + strings.Join(names, " ") + "]"
	}

	help := keyStyle.Render("q") + " quit  " +
		keyStyle.Render("p") + " pause  " +
		keyStyle.Render("m") + " mode  " +
		keyStyle.Render("s") + "/" + keyStyle.Render("b") + "/" +
		keyStyle.Render("t") + "/" + keyStyle.Render("f") + " dilate  " +
		keyStyle.Render("n") + " normal"

	lines := hudStyle.Render(truncate(telemetry, width)) + "\n" + help
	if lastErr != "" {
		lines += "\n" + warnStyle.Render(truncate("error: "+lastErr, width))
	}
	return lines
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	return s[:width]
}
