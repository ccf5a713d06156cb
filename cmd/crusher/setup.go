package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
	"github.com/vovakirdan/tui-crusher/internal/platform/tui"
	"github.com/vovakirdan/tui-crusher/internal/sound"
	"github.com/vovakirdan/tui-crusher/internal/storage"
)

// Local play flags shared by play and menu.
var (
	flagStage     int
	flagSound     bool
	flagMouse     bool
	flagShowOrder bool
)

// newLogger returns a logger writing to --log-file, or a discarding one.
// Bubble Tea owns the terminal, so local play never logs to stderr.
func newLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "crusher",
	})
	return logger, func() { f.Close() } //nolint:errcheck
}

// runtimeConfig sizes the playfield to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
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

// applySettingsFlags overrides file settings with the flags the user set.
func applySettingsFlags(changed func(string) bool) func(*config.Settings) {
	return func(s *config.Settings) {
		if changed("mouse") {
			s.MouseOnly = flagMouse
		}
		if changed("show-order") {
			s.LetterOrder = flagShowOrder
		}
		if changed("sound") && !flagSound {
			s.Muted = true
		}
	}
}

// localDeps configures the game package and opens the store and speaker.
// The returned cleanup closes everything that was opened.
func localDeps(logger *log.Logger, changed func(string) bool) (tui.Deps, func()) {
	override := applySettingsFlags(changed)

	crusher.SetConfigPath(flagConfig)
	crusher.SetPhrasesPath(flagPhrases)
	crusher.SetDifficultyPreset(flagDifficulty)
	crusher.SetStage(flagStage)
	crusher.SetSettingsOverride(override)
	crusher.SetLogger(logger)

	deps := tui.Deps{Log: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
	} else {
		deps.Store = store
		crusher.SetPersistence(storage.NewRecorder(store, logger))
	}

	if flagSound {
		cfg, cfgErr := config.LoadCrusher(flagConfig)
		if cfgErr != nil {
			logger.Warn("using default settings", "error", cfgErr)
		}
		override(&cfg.Settings)
		player := sound.NewPlayer(cfg.Settings, logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			deps.Sound = player
		}
	}

	return deps, func() {
		if deps.Sound != nil {
			deps.Sound.Close()
		}
		if deps.Store != nil {
			crusher.SetPersistence(nil)
			deps.Store.Close() //nolint:errcheck
		}
	}
}

func addLocalPlayFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&flagStage, "stage", 1, "Stage for plain rounds (raises descent speed)")
	flags.BoolVar(&flagSound, "sound", false, "Play synthesized sound effects")
	flags.BoolVar(&flagMouse, "mouse", false, "Mouse-only mode: click letters instead of typing")
	flags.BoolVar(&flagShowOrder, "show-order", false, "Show each letter's position in the phrase")
}
