package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every game mode with a short description.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := engine.DefaultModes()

	var ids []engine.Mode
	maxIDLen := 2 // "ID" header
	for _, m := range engine.Modes() {
		if !registry.Exists(string(m)) {
			continue
		}
		ids = append(ids, m)
		maxIDLen = max(maxIDLen, len(m))
	}

	if len(ids) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, m := range ids {
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, m, modes[m].Title, modes[m].Description)
	}

	fmt.Println()
	fmt.Println("Run 'blockdrop play <id>' to play a mode.")
}
