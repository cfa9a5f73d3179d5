package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frameloop/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List available loop strategies",
	Long:  `Shows every loop strategy registered in the engine.`,
	Run:   runModes,
}

func runModes(cmd *cobra.Command, args []string) {
	strategies := registry.List()

	fmt.Println("Available strategies:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, s := range strategies {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, s := range strategies {
		fmt.Printf("  %-*s  %s\n", maxNameLen, s.Name, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'frameloop demo --mode <name>' to watch one.")
}
