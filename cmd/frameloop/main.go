// frameloop is a frame scheduling and timing engine for terminal
// applications, with a bouncing-ball demo to watch it run.
//
// Usage:
//
//	frameloop demo              - Run the demo in the local terminal
//	frameloop bench             - Run a headless benchmark and record it
//	frameloop sessions          - Browse recorded benchmark sessions
//	frameloop modes             - List available loop strategies
//	frameloop serve             - Serve the demo over SSH
//
// Global flags:
//
//	--config <path>  - Custom engine config YAML
//	--db <path>      - Session database path (default: ~/.frameloop/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frameloop",
	Short: "Frame scheduling and timing engine for the terminal",
	Long: `frameloop drives update/render callbacks on interchangeable loop
strategies: variable step, fixed step with interpolation, adaptive
switching between the two, and priority-ordered sub-updates with time
budgets.

Available commands:
  demo      - Watch the bouncing-ball demo on a chosen strategy
  bench     - Run a headless benchmark and save the telemetry
  sessions  - Browse saved benchmark sessions
  modes     - List loop strategies
  serve     - Serve the demo over SSH

Examples:
  frameloop demo --mode fixed
  frameloop bench --mode adaptive --duration 30
  frameloop sessions
  frameloop serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.frameloop/sessions.db", "Path to session database")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the engine configuration honoring --config.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}
