package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/phrases"
)

var flagCategory string

var phrasesCmd = &cobra.Command{
	Use:   "phrases",
	Short: "List the phrase corpus",
	Long: `List the phrases rounds are drawn from. Uses --phrases when given,
otherwise the built-in corpus. --difficulty limits the list to phrases
playable at that level.

Examples:
  crusher phrases
  crusher phrases --difficulty easy
  crusher phrases --category animals
  crusher phrases --phrases ./my-phrases.yaml`,
	Args: cobra.NoArgs,
	Run:  runPhrases,
}

func init() {
	phrasesCmd.Flags().StringVar(&flagCategory, "category", "", "Only show this category")
}

func runPhrases(_ *cobra.Command, _ []string) {
	provider, err := phrases.Load(flagPhrases, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading phrases: %v\n", err)
		os.Exit(1)
	}

	entries := provider.All()
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		entries = provider.Entries(preset)
	}

	maxLen := 6 // "Phrase" header
	for _, e := range entries {
		maxLen = max(maxLen, len(e.Text))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxLen, "Phrase", "Category", "Difficulty")
	fmt.Printf("  %-*s  %-10s  %s\n", maxLen, "------", "--------", "----------")

	shown := 0
	for _, e := range entries {
		if flagCategory != "" && e.Category != flagCategory {
			continue
		}
		level := "any"
		if e.Difficulty != "" {
			level = string(e.Difficulty)
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxLen, e.Text, e.Category, level)
		shown++
	}

	fmt.Println()
	fmt.Printf("%d phrases. Categories: %v\n", shown, provider.Categories())
}
