package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/games/blocks"
)

var flagWriteConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration new games use, as YAML: the loaded blocks.yaml
(or the built-in defaults) with the --difficulty preset applied.

With --write the result is saved to the user config directory, where
later runs pick it up.

Examples:
  blockdrop config
  blockdrop config --difficulty hard
  blockdrop config --write`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWriteConfig, "write", false, "Save the effective config to the user config directory")
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg := blocks.EffectiveConfig()
	if _, err := blocks.EngineConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagWriteConfig {
		path, err := config.Save(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
}
