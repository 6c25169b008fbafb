package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gemflock/internal/platform/tui"
	"github.com/vovakirdan/gemflock/internal/storage"
)

var (
	flagHistoryBest  bool
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show spin history and wallet",
	Long: `Display the wallet, lifetime statistics and recent spins of a player.

Examples:
  gemflock history
  gemflock history --best --limit 5
  gemflock history --player alice --tui
  gemflock history --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "List the biggest wins instead of the latest spins")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of spins to list")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Open the interactive history screen")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the player's spin history (the wallet is kept)")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearHistory(flagPlayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("History cleared for %s.\n", flagPlayer)
		return
	}

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, flagPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var spins []storage.SpinRecord
	if flagHistoryBest {
		spins, err = store.BestSpins(flagPlayer, flagHistoryLimit)
	} else {
		spins, err = store.RecentSpins(flagPlayer, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving spins: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("History - %s\n", flagPlayer)
	fmt.Println()

	if balance, err := store.Wallet(flagPlayer); err == nil {
		fmt.Printf("Wallet: %.2f\n", balance)
	} else {
		fmt.Println("Wallet: none yet")
	}

	if len(spins) == 0 {
		fmt.Println()
		fmt.Println("No spins recorded yet.")
		fmt.Println("Play 'gemflock play' or record a 'gemflock sim --record' run.")
		return
	}

	if stats, err := store.Stats(flagPlayer); err == nil {
		fmt.Printf("Spins: %d  Staked: %.2f  Won: %.2f  RTP: %.1f%%\n",
			stats.Spins, stats.TotalStake, stats.TotalWin, stats.RTP()*100)
	}
	fmt.Println()

	fmt.Printf("  %-6s  %-8s  %-10s  %-6s  %-10s  %-12s  %s\n", "Spin", "Stake", "Win", "Mult", "Balance", "Feature", "Date")
	fmt.Printf("  %-6s  %-8s  %-10s  %-6s  %-10s  %-12s  %s\n", "----", "-----", "---", "----", "-------", "-------", "----")
	for _, row := range tui.SpinRows(spins) {
		fmt.Printf("  %-6s  %-8s  %-10s  %-6s  %-10s  %-12s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	counts, err := store.OutcomeCounts(flagPlayer)
	if err != nil || len(counts) == 0 {
		return
	}
	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	fmt.Println()
	fmt.Print("Outcomes:")
	for _, o := range outcomes {
		fmt.Printf("  %s %d", o, counts[o])
	}
	fmt.Println()
}
