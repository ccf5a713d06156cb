package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show top rounds",
	Long: `Display the top rounds, optionally for one difficulty.

Examples:
  crusher scores
  crusher scores hard
  crusher scores expert --limit 25
  crusher scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "Show the letters you miss most",
	Long: `Display the letters most often typed wrong, with the total
number of typing errors across all rounds.`,
	Args: cobra.NoArgs,
	Run:  runLetters,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored rounds instead of showing them")
	lettersCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of letters to show")
}

func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rounds database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	difficulty := ""
	title := "All difficulties"
	if len(args) > 0 {
		preset, err := config.ParsePreset(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		difficulty = string(preset)
		title = string(preset)
	}

	store := openStoreOrExit()
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRounds(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing rounds: %v\n", err)
			return
		}
		fmt.Printf("Cleared rounds - %s\n", title)
		return
	}

	rounds, err := store.TopRounds(difficulty, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	fmt.Printf("Top Rounds - %s\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'crusher play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-4s  %-7s  %-6s  %-4s  %s\n", "Rank", "Score", "Acc", "WPM", "Level", "Result", "Stg", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-4s  %-7s  %-6s  %-4s  %s\n", "----", "-----", "---", "---", "-----", "------", "---", "----")

	for i, r := range rounds {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-7d  %-4d  %-4.0f  %-7s  %-6s  %-4d  %s\n",
			i+1, r.Score, r.Accuracy, r.WPM, r.Difficulty, result, r.Stage,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(difficulty)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Rounds: %d  Wins: %d  Best: %d  Avg: %.0f  Avg acc: %.0f%%  Best WPM: %.0f\n",
			stats.Rounds, stats.Wins, stats.HighScore, stats.AvgScore, stats.AvgAccuracy, stats.BestWPM)
	}
}

func runLetters(_ *cobra.Command, _ []string) {
	store := openStoreOrExit()
	defer store.Close()

	letters, err := store.WeakestLetters(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving letters: %v\n", err)
		return
	}

	fmt.Println("Most Missed Letters")
	fmt.Println()

	if len(letters) == 0 {
		fmt.Println("No mistakes recorded yet.")
		return
	}

	fmt.Printf("  %-6s  %-6s  %s\n", "Letter", "Misses", "Last missed")
	fmt.Printf("  %-6s  %-6s  %s\n", "------", "------", "-----------")
	for _, l := range letters {
		fmt.Printf("  %-6c  %-6d  %s\n", l.Letter, l.Misses, l.LastMissed.Format("2006-01-02 15:04"))
	}

	if total, err := store.ErrorCount(); err == nil {
		fmt.Println()
		fmt.Printf("Total typing errors: %d\n", total)
	}
}
