package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/platform/tui"
	"github.com/vovakirdan/gemflock/internal/spin"
	"github.com/vovakirdan/gemflock/internal/storage"
)

var flagNoSave bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive session. The balance is restored from the
player's wallet and every finished spin is saved to the history.

Controls:
  Space/Enter  - Spin
  Up/Down      - Change stake
  B            - Trigger a black hole
  E            - Expand from the next corner
  M            - Mega expansion
  P            - Pause
  T            - Turbo
  ?            - Help
  Q/Ctrl+C     - Quit

Examples:
  gemflock play
  gemflock play --seed 42 --no-save
  gemflock play --config ./my-gemflock.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not read or write the wallet and history")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, opts := loadEngine()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := cfg.RuntimeConfig(resolveSeed())
	rc.ScreenW = width
	rc.ScreenH = height

	// The alt screen owns stdout, so logs go to a file.
	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "gemflock")

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	machine := spin.New(opts, core.NewEnv(rc.Seed, logger))
	logger.Info("session", "player", flagPlayer, "seed", rc.Seed)

	if err := tui.Run(machine, store, flagPlayer, rc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openLogFile() (*os.File, error) {
	dir := filepath.Join(os.TempDir(), "gemflock")
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".gemflock")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "gemflock.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
