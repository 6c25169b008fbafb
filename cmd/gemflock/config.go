package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemflock/internal/config"
)

var flagConfigCheck bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check the configuration",
	Long: `Print the embedded default configuration, ready to be saved as
~/.gemflock/gemflock.yaml or ./configs/gemflock.yaml.

With --check, load the active configuration (honouring --config and the
search path) and report whether it is valid.

Examples:
  gemflock config > ~/.gemflock/gemflock.yaml
  gemflock config --check --config ./my-gemflock.yaml`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigCheck, "check", false, "Validate the active configuration instead of printing defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigCheck {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := cfg.SpinOptions(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Config OK: %dx%d board (max %dx%d), %d birds, black hole %s\n",
		cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.MaxWidth, cfg.Grid.MaxHeight,
		len(cfg.Birds.Roster), enabled(cfg.BlackHole.Enabled))
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
