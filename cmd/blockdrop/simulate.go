package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/ai"
	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/games/blocks"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var (
	flagSimMode   string
	flagSimPieces int
	flagSimRuns   int
	flagSimSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the AI play a headless game",
	Long: `Run the move-suggestion AI against the engine without a terminal UI
and print a summary of each run. Useful for tuning the ai: weights in
blocks.yaml.

Only piece placement is simulated: the game clock does not run, so timed
modes never expire and rising-tide garbage is not injected.

Examples:
  blockdrop simulate
  blockdrop simulate --mode cheese --pieces 300
  blockdrop simulate --runs 5 --seed 42
  blockdrop simulate --mode sprint40 --save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", string(engine.ModeClassic), "Mode to simulate")
	simulateCmd.Flags().IntVar(&flagSimPieces, "pieces", 200, "Maximum pieces per run (0 = until game over)")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs; run i uses seed+i")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record each run in the scores database")
}

func runSimulate(_ *cobra.Command, _ []string) {
	mode, err := engine.ParseMode(flagSimMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSimPieces == 0 && mode == engine.ModeZen {
		fmt.Fprintln(os.Stderr, "Error: zen never ends; set --pieces")
		os.Exit(1)
	}

	cfg := blocks.EffectiveConfig()
	ec, err := blocks.EngineConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ev := ai.New(blocks.Weights(cfg))

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	base := seed()
	fmt.Printf("%-4s  %-20s  %-6s  %-5s  %-8s  %-5s  %s\n", "Run", "Seed", "Pieces", "Lines", "Score", "Level", "Result")

	for i := 0; i < max(1, flagSimRuns); i++ {
		runSeed := base + int64(i)
		start := time.Now()

		e := engine.New(ec, rand.New(rand.NewSource(runSeed)))
		_, sum := ev.Autoplay(e, e.Reset(mode), flagSimPieces)

		result := "limit"
		switch {
		case sum.Won:
			result = "won"
		case sum.GameOver:
			result = "topped out"
		}
		fmt.Printf("%-4d  %-20d  %-6d  %-5d  %-8d  %-5d  %s\n", i+1, runSeed, sum.Pieces, sum.Lines, sum.Score, sum.Level, result)
		logger.Info("simulation finished",
			"mode", mode, "seed", runSeed, "pieces", sum.Pieces, "lines", sum.Lines,
			"score", sum.Score, "took", time.Since(start).Round(time.Millisecond))

		if store != nil && sum.Score > 0 {
			r, err := store.SaveResult(storage.Result{
				Mode:  string(mode),
				Score: sum.Score,
				Lines: sum.Lines,
				Level: sum.Level,
				Won:   sum.Won,
			})
			if err != nil {
				logger.Warn("could not save result", "err", err)
				continue
			}
			logger.Debug("result saved", "run", r.RunID)
		}
	}
}
