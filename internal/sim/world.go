// Package sim implements the bouncing-ball demo simulation driven by
// the loop engine. It is a realistic consumer of the callback
// contract: physics advances only in fixed steps, positions are
// captured into interpolation entries before each step, and the
// renderer reads blended positions so motion stays smooth between
// steps. Gameplay-irrelevant, but deterministic under a fixed seed.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/frameloop/internal/config"
	"github.com/vovakirdan/frameloop/internal/interp"
	"github.com/vovakirdan/frameloop/internal/timescale"
)

// Ball is one simulated body in cell coordinates.
type Ball struct {
	X, Y   float64
	VX, VY float64
}

// World owns the balls and their interpolation entries.
type World struct {
	cfg    config.DemoConfig
	width  float64
	height float64

	balls   []Ball
	entries *interp.Registry
	scale   *timescale.Manager

	stepCount uint64
}

// NewWorld creates a world of cfg.Balls bodies inside a width×height
// box. The same seed always produces the same initial layout and, fed
// the same fixed steps, the same trajectories. The time-scale manager
// may be nil for an undilated world.
func NewWorld(cfg config.DemoConfig, width, height int, scale *timescale.Manager) *World {
	w := &World{
		cfg:     cfg,
		width:   float64(width),
		height:  float64(height),
		entries: interp.NewRegistry(),
		scale:   scale,
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	w.balls = make([]Ball, cfg.Balls)
	for i := range w.balls {
		w.balls[i] = Ball{
			X:  1 + rng.Float64()*(w.width-2),
			Y:  1 + rng.Float64()*(w.height/2),
			VX: -8 + rng.Float64()*16,
			VY: -4 + rng.Float64()*8,
		}
		ball := &w.balls[i]
		w.entries.Add(ballEntryName(i), interp.NewEntry(func() []float64 {
			return []float64{ball.X, ball.Y}
		}))
	}
	return w
}

func ballEntryName(i int) string {
	return fmt.Sprintf("ball-%d", i)
}

// Resize changes the bounding box. Bodies outside the new box are
// pulled back inside.
func (w *World) Resize(width, height int) {
	w.width = float64(width)
	w.height = float64(height)
	for i := range w.balls {
		b := &w.balls[i]
		if b.X >= w.width-1 {
			b.X = w.width - 1
		}
		if b.Y >= w.height-1 {
			b.Y = w.height - 1
		}
	}
}

// FixedStep advances physics by one fixed delta. Interpolation entries
// are captured before integration so the renderer can blend between
// the pre- and post-step state. The effective delta is dilated by the
// time-scale manager.
func (w *World) FixedStep(dt float64) {
	w.entries.CaptureAll()

	if w.scale != nil {
		dt *= w.scale.Scale()
	}
	if dt == 0 {
		w.stepCount++
		return
	}

	for i := range w.balls {
		b := &w.balls[i]
		b.VY += w.cfg.Gravity * dt
		b.X += b.VX * dt
		b.Y += b.VY * dt

		// Wall bounces with restitution
		if b.X < 0 {
			b.X = -b.X
			b.VX = -b.VX * w.cfg.Restitution
		} else if b.X > w.width-1 {
			b.X = 2*(w.width-1) - b.X
			b.VX = -b.VX * w.cfg.Restitution
		}
		if b.Y < 0 {
			b.Y = -b.Y
			b.VY = -b.VY * w.cfg.Restitution
		} else if b.Y > w.height-1 {
			b.Y = 2*(w.height-1) - b.Y
			b.VY = -b.VY * w.cfg.Restitution
		}
	}
	w.stepCount++
}

// Interpolate blends every ball's previous and current position by
// alpha. Call once per rendered frame.
func (w *World) Interpolate(alpha float64) {
	w.entries.InterpolateAll(alpha)
}

// Positions returns the blended [x, y] of every ball, in ball order.
func (w *World) Positions() [][2]float64 {
	out := make([][2]float64, len(w.balls))
	for i := range w.balls {
		v := w.entries.Get(ballEntryName(i)).Values()
		out[i] = [2]float64{v[0], v[1]}
	}
	return out
}

// RawPositions returns the un-blended simulation positions. Tests use
// it to compare determinism without interpolation in the way.
func (w *World) RawPositions() [][2]float64 {
	out := make([][2]float64, len(w.balls))
	for i, b := range w.balls {
		out[i] = [2]float64{b.X, b.Y}
	}
	return out
}

// StepCount returns the number of fixed steps taken.
func (w *World) StepCount() uint64 {
	return w.stepCount
}
