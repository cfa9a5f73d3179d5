package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frameloop/internal/clock"
	"github.com/vovakirdan/frameloop/internal/config"
	"github.com/vovakirdan/frameloop/internal/loop"
	"github.com/vovakirdan/frameloop/internal/registry"
	"github.com/vovakirdan/frameloop/internal/sim"
	"github.com/vovakirdan/frameloop/internal/timescale"
)

// hudHeight is the number of terminal rows reserved for telemetry.
const hudHeight = 3

// alphaProvider is implemented by strategies that expose an
// interpolation factor (fixed, priority, adaptive).
type alphaProvider interface {
	Alpha() float64
}

// modeSwitcher is implemented by the adaptive strategy.
type modeSwitcher interface {
	Mode() loop.Mode
	SetMode(loop.Mode)
}

// DemoModel is the Bubble Tea model running the bouncing-ball demo on
// one loop strategy.
type DemoModel struct {
	cfg      config.Config
	strategy string

	lp    loop.Loop
	sched *loop.ManualScheduler
	scale *timescale.Manager
	world *sim.World

	width    int
	height   int
	quitting bool

	// lastErr is shared between model copies; Bubble Tea passes the
	// model by value but the error handler closure must outlive it.
	lastErr *string
}

// NewDemoModel wires a loop, a time-scale manager and a demo world for
// the given strategy name.
func NewDemoModel(cfg config.Config, strategy string, width, height int, logger *log.Logger) (DemoModel, error) {
	if cfg.Demo.Seed == 0 {
		cfg.Demo.Seed = time.Now().UnixNano()
	}

	clk := clock.NewRealClock()
	sched := loop.NewManualScheduler()

	lp, err := registry.Create(strategy, loop.Options{
		Clock:              clk,
		Scheduler:          sched,
		Logger:             logger,
		TargetFPS:          cfg.Engine.TargetFPS,
		MaxUpdatesPerFrame: cfg.Engine.MaxUpdatesPerFrame,
		MaxDeltaTime:       cfg.Engine.MaxDeltaTime,
		LowFPSThreshold:    cfg.Adaptive.LowFPSThreshold,
		HighFPSThreshold:   cfg.Adaptive.HighFPSThreshold,
		SwitchCooldown:     cfg.Adaptive.SwitchCooldown,
	})
	if err != nil {
		return DemoModel{}, err
	}

	scale := timescale.NewManager(clk)
	world := sim.NewWorld(cfg.Demo, width, height-hudHeight, scale)

	m := DemoModel{
		cfg:      cfg,
		strategy: strategy,
		lp:       lp,
		sched:    sched,
		scale:    scale,
		world:    world,
		width:    width,
		height:   height,
		lastErr:  new(string),
	}

	lp.SetFixedUpdate(world.FixedStep)
	lp.SetRender(func(dt float64) {
		world.Interpolate(loopAlpha(lp))
	})
	errBuf := m.lastErr
	lp.SetOnError(func(err error, ctx loop.ErrorContext) {
		*errBuf = err.Error()
	})

	lp.Start()
	return m, nil
}

// loopAlpha returns the strategy's interpolation factor, or 1 for
// strategies without one.
func loopAlpha(lp loop.Loop) float64 {
	if ap, ok := lp.(alphaProvider); ok {
		return ap.Alpha()
	}
	return 1
}

// Init starts the tick stream.
func (m DemoModel) Init() tea.Cmd {
	return tickCmd(m.sched.LastDelay())
}

// Update handles messages and updates the model state.
func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.world.Resize(msg.Width, msg.Height-hudHeight)
		return m, nil

	case TickMsg:
		m.sched.Fire()
		return m, tickCmd(m.sched.LastDelay())
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m DemoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.lp.Stop()
		m.quitting = true
		return m, tea.Quit

	case "p":
		if m.lp.IsPaused() {
			m.lp.Resume()
		} else if m.lp.IsRunning() {
			m.lp.Pause()
		}

	case "m":
		if ms, ok := m.lp.(modeSwitcher); ok {
			if ms.Mode() == loop.ModeFixed {
				ms.SetMode(loop.ModeVariable)
			} else {
				ms.SetMode(loop.ModeFixed)
			}
		}

	case "s":
		m.scale.SlowMotion(2)
	case "b":
		m.scale.BulletTime(2)
	case "t":
		m.scale.TimeStop(1)
	case "f":
		m.scale.FastForward(2)
	case "n":
		m.scale.SetBaseScale(1)
		for _, name := range m.scale.ModifierNames() {
			m.scale.RemoveModifier(name)
		}
	}

	return m, nil
}

// View renders the world and the telemetry HUD.
func (m DemoModel) View() string {
	if m.quitting {
		return ""
	}
	return renderWorld(m.world, m.width, m.height-hudHeight) + "\n" +
		renderHUD(m.lp, m.strategy, m.scale, *m.lastErr, m.width)
}
