// blockdrop is a falling-block puzzle game for the terminal with a
// move-suggestion AI.
//
// Usage:
//
//	blockdrop list              - List available modes
//	blockdrop play <mode>       - Play a mode
//	blockdrop menu              - Start menu to pick modes interactively
//	blockdrop serve             - Start SSH server for remote play
//	blockdrop scores <mode>     - Show high scores for a mode
//	blockdrop simulate          - Let the AI play a headless game
//	blockdrop config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.blockdrop/scores.db)
//	--config <path>      - Use a custom blocks.yaml
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blocks"
	"github.com/vovakirdan/blockdrop/internal/platform/tui"
)

const defaultDBPath = "~/.blockdrop/scores.db"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger is the root logger, configured from --log-level before any
// command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockdrop",
})

func main() {
	// A missing .env file is fine
	//nolint:errcheck
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockdrop",
	Short: "Blockdrop - falling blocks in your terminal",
	Long: `Blockdrop is a falling-block puzzle game for the terminal, with
several game modes and an AI that can suggest moves or play for you.

Available commands:
  list      - Show all available modes
  play      - Play a specific mode directly
  menu      - Interactive mode picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Let the AI play a headless game
  config    - Print or write the effective configuration

Environment:
  BLOCKDROP_DB      - default for --db
  BLOCKDROP_CONFIG  - default for --config
  (both may be set in a .env file in the working directory)

Examples:
  blockdrop list
  blockdrop play sprint40
  blockdrop menu
  blockdrop serve --ssh :2222
  blockdrop simulate --mode zen --pieces 500`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blocks.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies environment defaults and global flags to the packages
// that hold process-wide settings.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("db") {
		if v := os.Getenv("BLOCKDROP_DB"); v != "" {
			flagDBPath = v
		}
	}
	if !flags.Changed("config") {
		if v := os.Getenv("BLOCKDROP_CONFIG"); v != "" {
			flagConfig = v
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}

	blocks.SetLogger(logger.WithPrefix("blockdrop-game"))
	tui.SetLogger(logger)
	blocks.SetConfigPath(flagConfig)
	blocks.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
