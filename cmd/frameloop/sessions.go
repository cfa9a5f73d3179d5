package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frameloop/internal/platform/tui"
	"github.com/vovakirdan/frameloop/internal/storage"
)

var flagSessionsClear string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded benchmark sessions",
	Long: `Open the session dashboard. Tab cycles the strategy filter.

Examples:
  frameloop sessions
  frameloop sessions --clear fixed   # delete recorded fixed-step sessions
  frameloop sessions --clear all     # delete everything`,
	Run: runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&flagSessionsClear, "clear", "", "Delete sessions for a strategy ('all' for every strategy) and exit")
}

func runSessions(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagSessionsClear != "" {
		strategy := flagSessionsClear
		if strategy == "all" {
			strategy = ""
		}
		if err := store.ClearSessions(strategy); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared sessions (%s).\n", flagSessionsClear)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunDashboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
