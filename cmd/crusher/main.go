// crusher is a terminal typing game: type the phrase before the press
// reaches the fail line.
//
// Usage:
//
//	crusher list                 - List game modes
//	crusher play [mode]          - Play a mode (default: crusher)
//	crusher menu                 - Pick modes and browse scores interactively
//	crusher serve                - Start SSH server for remote play
//	crusher scores [difficulty]  - Show top rounds
//	crusher letters              - Show the most missed letters
//	crusher phrases              - List the phrase corpus
//	crusher config init          - Write the default config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.crusher/crusher.db)
//	--config <path>       - Custom crusher.yaml
//	--phrases <path>      - Custom phrase corpus
//	--difficulty <name>   - easy, normal, hard or expert
//	--log-file <path>     - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/config"
	// Register game modes
	_ "github.com/vovakirdan/tui-crusher/internal/games/crusher"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagPhrases    string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crusher",
	Short: "Type Crusher - type fast or get crushed",
	Long: `Type Crusher is a terminal typing game. A phrase is spelled out in
falling letters and a press slowly descends on them. Correct keys push
the press back; mistakes wake it up and drop heavy letters on the pile.

Available commands:
  list     - Show game modes
  play     - Play a round directly
  menu     - Interactive menu with scoreboard
  serve    - Start SSH server for remote play
  scores   - View top rounds
  letters  - View the letters you miss most
  phrases  - List the phrase corpus

Examples:
  crusher play
  crusher play crusher_campaign --difficulty hard
  crusher menu
  crusher serve --ssh :2222
  crusher scores expert`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		_, err := config.ParsePreset(flagDifficulty)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crusher/crusher.db", "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom crusher config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPhrases, "phrases", "", "Path to custom phrase corpus YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(lettersCmd)
	rootCmd.AddCommand(phrasesCmd)
	rootCmd.AddCommand(configCmd)
}
