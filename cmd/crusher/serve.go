package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
	"github.com/vovakirdan/tui-crusher/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagVerbose     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the crusher SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode menu.
Rounds are stored per-server (all users share the same scoreboard
and failed-letter statistics). Sound is never played on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.crusher/host_key

Examples:
  crusher serve                           # Listen on :23234 with auto-generated key
  crusher serve --ssh :2222               # Listen on port 2222
  crusher serve --host-key ./my_host_key  # Use specific host key
  crusher serve --db ./crusher.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log round events at debug level")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "crusher-ssh",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	crusher.SetConfigPath(flagConfig)
	crusher.SetPhrasesPath(flagPhrases)
	crusher.SetLogger(logger.WithPrefix("round"))

	difficulty, _ := config.ParsePreset(flagDifficulty)
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Difficulty:  difficulty,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting crusher SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
