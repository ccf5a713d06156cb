package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-crusher/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the crusher config file",
	Long: `Config files are searched in this order:
  --config <path>
  ~/.crusher/configs/crusher.yaml
  ./configs/crusher.yaml
  built-in defaults

A file only needs the keys it changes.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to --config or ~/.crusher/configs/crusher.yaml",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		path := flagConfig
		if path == "" {
			path = config.UserConfigFile()
		}
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: no home directory; pass --config")
			os.Exit(1)
		}
		if err := config.WriteDefault(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults [mode]",
	Short: "Print the built-in config",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		mode := "crusher"
		if len(args) > 0 {
			mode = args[0]
		}
		data := config.GetDefaultYAML(mode)
		if data == nil {
			fmt.Fprintf(os.Stderr, "Error: no config for mode %q\n", mode)
			os.Exit(1)
		}
		os.Stdout.Write(data) //nolint:errcheck
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configDefaultsCmd)
}
