package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/loop"
	"github.com/vovakirdan/frameloop/internal/registry"
	"github.com/vovakirdan/frameloop/internal/sim"
	"github.com/vovakirdan/frameloop/internal/storage"
)

var (
	flagBenchMode     string
	flagBenchDuration float64
	flagBenchFPS      int
	flagBenchNoSave   bool
)

// benchWarmup is how long FPS sampling waits for the rolling window to
// fill before min/max start recording.
const benchWarmup = 1.0 // seconds

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a headless benchmark",
	Long: `Run the demo world headless for a fixed duration on the chosen loop
strategy, then print and record the timing telemetry.

Examples:
  frameloop bench
  frameloop bench --mode fixed --duration 30
  frameloop bench --mode priority --no-save`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&flagBenchMode, "mode", "fixed", "Loop strategy (see 'frameloop modes')")
	benchCmd.Flags().Float64Var(&flagBenchDuration, "duration", 10, "Benchmark duration in seconds")
	benchCmd.Flags().IntVar(&flagBenchFPS, "fps", 0, "Target FPS (0 = config value)")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not record the session")
}

// fixedTelemetry is implemented by strategies built on the accumulator.
type fixedTelemetry interface {
	FixedUpdateCount() uint64
	DroppedTime() float64
}

func runBench(cmd *cobra.Command, args []string) {
	if !registry.Exists(flagBenchMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", flagBenchMode)
		os.Exit(1)
	}
	if flagBenchDuration <= 0 {
		fmt.Fprintln(os.Stderr, "Error: duration must be positive")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagBenchFPS > 0 {
		cfg.Engine.TargetFPS = float64(flagBenchFPS)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bench"})

	lp, err := registry.Create(flagBenchMode, loop.Options{
		Logger:             logger,
		TargetFPS:          cfg.Engine.TargetFPS,
		MaxUpdatesPerFrame: cfg.Engine.MaxUpdatesPerFrame,
		MaxDeltaTime:       cfg.Engine.MaxDeltaTime,
		LowFPSThreshold:    cfg.Adaptive.LowFPSThreshold,
		HighFPSThreshold:   cfg.Adaptive.HighFPSThreshold,
		SwitchCooldown:     cfg.Adaptive.SwitchCooldown,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating loop: %v\n", err)
		os.Exit(1)
	}

	if cfg.Demo.Seed == 0 {
		cfg.Demo.Seed = time.Now().UnixNano()
	}
	world := sim.NewWorld(cfg.Demo, 80, 24, nil)
	lp.SetFixedUpdate(world.FixedStep)

	var (
		minFPS, maxFPS float64
		errCount       uint64
		done           = make(chan struct{})
	)
	lp.SetOnError(func(err error, ctx loop.ErrorContext) {
		errCount++
	})
	lp.SetUpdate(func(dt float64) {
		elapsed := lp.ElapsedTime()
		if elapsed > benchWarmup {
			fps := lp.FPS()
			if minFPS == 0 || fps < minFPS {
				minFPS = fps
			}
			if fps > maxFPS {
				maxFPS = fps
			}
		}
		if elapsed >= flagBenchDuration {
			lp.Stop()
			close(done)
		}
	})

	logger.Info("benchmark starting",
		"strategy", flagBenchMode,
		"duration", flagBenchDuration,
		"target_fps", cfg.Engine.TargetFPS)

	started := time.Now()
	lp.Start()
	<-done
	wall := time.Since(started).Seconds()

	sess := storage.Session{
		Strategy: flagBenchMode,
		Duration: wall,
		Frames:   lp.FrameCount(),
		AvgFPS:   float64(lp.FrameCount()) / wall,
		MinFPS:   minFPS,
		MaxFPS:   maxFPS,
		Errors:   errCount,
	}
	if ft, ok := lp.(fixedTelemetry); ok {
		sess.FixedUpdates = ft.FixedUpdateCount()
		sess.DroppedTime = ft.DroppedTime()
	}

	fmt.Println()
	fmt.Printf("Strategy:       %s\n", sess.Strategy)
	fmt.Printf("Wall time:      %.2fs\n", sess.Duration)
	fmt.Printf("Frames:         %d\n", sess.Frames)
	fmt.Printf("Fixed updates:  %d\n", sess.FixedUpdates)
	fmt.Printf("Avg FPS:        %.1f\n", sess.AvgFPS)
	fmt.Printf("Min/Max FPS:    %.1f / %.1f\n", sess.MinFPS, sess.MaxFPS)
	fmt.Printf("Dropped time:   %.3fs\n", sess.DroppedTime)
	fmt.Printf("Errors:         %d\n", sess.Errors)

	if flagBenchNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveSession(sess); err != nil {
		logger.Warn("could not save session", "error", err)
		return
	}

	best, err := store.BestAvgFPS(flagBenchMode)
	if err == nil && best > 0 {
		fmt.Printf("Best avg FPS:   %.1f (%s)\n", best, flagBenchMode)
	}
}
