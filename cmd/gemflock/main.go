// gemflock is a grid gem-collection engine: birds hunt gems on an expanding
// board, clusters pay out, and a black hole occasionally scrambles it all.
//
// Usage:
//
//	gemflock play            - Play in the terminal
//	gemflock sim             - Run spins headless and print statistics
//	gemflock serve           - Start SSH server for remote play
//	gemflock history         - Show spin history and wallet
//	gemflock features        - List registered features
//	gemflock config          - Print or check the configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible spins
//	--config <path>      - Engine config YAML (default: search path, then embedded)
//	--db <path>          - Set database path (default: ~/.gemflock/gemflock.db)
//	--player <name>      - Wallet and history owner
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemflock/internal/config"
	"github.com/vovakirdan/gemflock/internal/spin"

	// Import features to register them
	_ "github.com/vovakirdan/gemflock/internal/feature/blackhole"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagPlayer   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemflock",
	Short: "Gemflock - birds, gems and black holes in your terminal",
	Long: `Gemflock runs a grid gem-collection engine. Every spin fills the board,
releases the birds to collect gems of their color, pays adjacent clusters
and may trigger a black hole.

Available commands:
  play      - Play interactively
  sim       - Simulate spins without a UI
  serve     - Start SSH server for remote play
  history   - View spin history
  features  - List registered features
  config    - Print or check configuration

Examples:
  gemflock play
  gemflock sim --spins 1000 --seed 42
  gemflock serve --ssh :2222
  gemflock history --best`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gemflock/gemflock.db", "Path to wallet and history database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name for wallet and history")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// newLogger builds the CLI logger at the --log-level threshold.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadEngine loads the configuration and converts it to machine options.
func loadEngine() (config.Config, spin.Options) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.SpinOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}
	return cfg, opts
}

func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
