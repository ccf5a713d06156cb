package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker and scoreboard",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change difficulty,
Enter to play. After a round you return to the menu.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty
  Enter/Space   - Play
  Tab           - Scoreboard
  Q             - Quit

Examples:
  crusher menu
  crusher menu --fps 30 --sound
  crusher menu --db ./crusher.db`,
	Run: runMenu,
}

func init() {
	addLocalPlayFlags(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	deps, cleanup := localDeps(logger, cmd.Flags().Changed)
	defer cleanup()

	difficulty, _ := config.ParsePreset(flagDifficulty)
	if err := tui.RunSession(deps, runtimeConfig(), difficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
