package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frameloop/internal/platform/tui"
	"github.com/vovakirdan/frameloop/internal/registry"
)

var (
	flagDemoMode string
	flagDemoFPS  int
	flagDemoSeed int64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the bouncing-ball demo",
	Long: `Run the bouncing-ball demo full-screen on a chosen loop strategy.

Controls:
  P          - Pause/resume the loop
  M          - Force a strategy switch (adaptive mode only)
  S/B/T/F    - Slow motion / bullet time / time stop / fast forward
  N          - Back to normal speed
  Q/Ctrl+C   - Quit

Examples:
  frameloop demo
  frameloop demo --mode fixed
  frameloop demo --mode priority --fps 30
  frameloop demo --seed 42`,
	Run: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&flagDemoMode, "mode", "adaptive", "Loop strategy (see 'frameloop modes')")
	demoCmd.Flags().IntVar(&flagDemoFPS, "fps", 0, "Target FPS (0 = config value)")
	demoCmd.Flags().Int64Var(&flagDemoSeed, "seed", 0, "Demo RNG seed (0 = random based on time)")
}

func runDemo(cmd *cobra.Command, args []string) {
	if !registry.Exists(flagDemoMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", flagDemoMode)
		fmt.Fprintln(os.Stderr, "Run 'frameloop modes' to see available strategies.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagDemoFPS > 0 {
		cfg.Engine.TargetFPS = float64(flagDemoFPS)
	}
	if flagDemoSeed != 0 {
		cfg.Demo.Seed = flagDemoSeed
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The alt-screen owns stdout, so loop logs go nowhere during the demo
	logger := log.New(io.Discard)

	if err := tui.RunDemo(cfg, flagDemoMode, width, height, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		os.Exit(1)
	}
}
