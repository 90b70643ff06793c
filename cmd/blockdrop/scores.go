package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/engine"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 results and overall stats for the specified mode.

Examples:
  blockdrop scores classic
  blockdrop scores sprint40
  blockdrop scores zen --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded results for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode, err := engine.ParseMode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'blockdrop list' to see available modes.")
		os.Exit(1)
	}
	id := string(mode)
	title := engine.DefaultModes()[mode].Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scores cleared", "mode", id)
		fmt.Printf("Cleared all %s results.\n", title)
		return
	}

	scores, err := store.TopScores(id, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockdrop play %s' to set the first high score!\n", id)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-3s  %s\n", "Rank", "Score", "Lines", "Level", "Time", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-3s  %s\n", "----", "-----", "-----", "-----", "----", "---", "----")

	for i, r := range scores {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-6s  %-3s  %s\n",
			i+1, r.Score, r.Lines, r.Level,
			fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
			won, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if st, err := store.ModeStats(id); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Wins: %d  Avg: %.0f  Lines: %d\n",
			st.HighScore, st.Runs, st.Wins, st.AvgScore, st.TotalLines)
	}
}
