package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/platform/tui"
	"github.com/vovakirdan/frameloop/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeMode   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo over SSH",
	Long: `Start an SSH server that runs the demo for every connection.

Each session gets its own loop and world, sized to the session's
terminal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.frameloop/host_key

Examples:
  frameloop serve                           # Listen on :23234
  frameloop serve --ssh :2222 --mode fixed
  frameloop serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", "adaptive", "Loop strategy for every session")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagServeMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", flagServeMode)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		Strategy:    flagServeMode,
		Config:      cfg,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting frameloop SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
