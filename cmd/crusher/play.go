package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/platform/tui"
	"github.com/vovakirdan/tui-crusher/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Start playing the given mode (default: crusher).

Modes:
  crusher           - One round at --stage
  crusher_campaign  - Stages advance with every win, reset on a loss

Controls:
  Letters      - Type the highlighted letter
  Mouse click  - Pick a letter (with --mouse)
  Esc/Ctrl+P   - Pause
  Enter        - Next round (after the round ends)
  Esc          - Leave (after the round ends)
  Ctrl+C       - Quit
  Ctrl+S       - Save a screenshot to ~/.crusher/screenshots

Difficulty options:
  easy    - Crusher wakes after 4 mistakes
  normal  - Crusher wakes after 3 mistakes
  hard    - Crusher wakes after 2 mistakes
  expert  - Crusher starts awake

Examples:
  crusher play
  crusher play --difficulty hard --stage 3
  crusher play crusher_campaign --sound
  crusher play --mouse --show-order
  crusher play --phrases ./my-phrases.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addLocalPlayFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "crusher"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'crusher list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	deps, cleanup := localDeps(logger, cmd.Flags().Changed)

	game, err := registry.Create(gameID)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting", "mode", gameID, "difficulty", flagDifficulty, "stage", flagStage)
	runErr := tui.Run(game, deps, runtimeConfig())

	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
