package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scripts",
	Long: `Shows the built-in intro scripts and those found in the --scripts
directory. A directory script replaces a built-in with the same ID.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	catalog, err := openCatalog()
	if err != nil {
		fail("%v", err)
	}
	scripts := catalog.List()

	if len(scripts) == 0 {
		fmt.Println("No scripts available.")
		return
	}

	fmt.Println("Available scripts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scripts {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Players", "Speed", "Title")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "-------", "-----", "-----")

	// Print scripts
	for _, s := range scripts {
		speed := "config"
		if s.CharIntervalMS > 0 {
			speed = fmt.Sprintf("%dms", s.CharIntervalMS)
		}
		fmt.Printf("  %-*s  %-7d  %-6s  %s\n", maxIDLen, s.ID, s.Players, speed, s.Name())
	}

	fmt.Println()
	fmt.Println("Run 'hopper play <id>' to read a script.")
}
