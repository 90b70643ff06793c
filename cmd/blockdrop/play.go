package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/platform/tui"
	"github.com/vovakirdan/blockdrop/internal/registry"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right, A/D  - Move
  Up/W/X           - Rotate
  Down/S           - Soft drop
  Space            - Hard drop
  H                - Toggle move hint
  Shift+A          - Toggle autoplay
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back (when paused or over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentle speed-up
  normal - Standard speed curve
  hard   - Fast start, steep speed-up
  fixed  - Speed never changes

Examples:
  blockdrop play classic
  blockdrop play sprint40 --difficulty hard
  blockdrop play zen --seed 42
  blockdrop play cheese --config ./my-blocks.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode, err := engine.ParseMode(args[0])
	if err != nil || !registry.Exists(string(mode)) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'blockdrop list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(string(mode))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
