package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/spin"
	"github.com/vovakirdan/gemflock/internal/storage"
)

var (
	flagSimSpins  int
	flagSimStake  float64
	flagSimTopUp  bool
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run spins headless and print statistics",
	Long: `Run spins on the logical clock without a terminal UI and print the
return to player, feature frequency and collection statistics.

With --record every spin is saved to the history of --player.

Examples:
  gemflock sim --spins 1000
  gemflock sim --spins 200 --seed 7 --stake 2
  gemflock sim --spins 50 --record --player bot`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVarP(&flagSimSpins, "spins", "n", 100, "Number of spins to run")
	simCmd.Flags().Float64Var(&flagSimStake, "stake", 0, "Stake per spin (0 = configured stake)")
	simCmd.Flags().BoolVar(&flagSimTopUp, "top-up", false, "Refill the balance instead of stopping when it runs out")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save spins and the final balance to the database")
}

// simSummary accumulates per-spin results.
type simSummary struct {
	spins     int
	staked    float64
	won       float64
	best      float64
	collected int
	forced    int
	features  map[string]int
	elapsed   time.Duration
	combos    int
	dropped   int
	exhausted bool
}

func (s *simSummary) add(r spin.Result) {
	s.spins++
	s.staked += r.Stake
	s.won += r.Win
	s.best = max(s.best, r.Win)
	s.collected += r.Collected
	if r.ForcedEnd {
		s.forced++
	}
	if r.Outcome != "" {
		s.features[r.Outcome]++
	}
	s.elapsed += r.Duration
}

// simRun parameterizes simulate.
type simRun struct {
	spins  int
	topUp  bool
	refill float64
	store  *storage.Store
	player string
	seed   int64
}

// simulate runs up to run.spins spins on machine. Without top-up it stops at
// the first spin the machine rejects.
func simulate(machine *spin.Machine, run simRun) simSummary {
	log := machine.Env().Log
	rec := (&event.Recorder{}).Attach(machine.Env().Bus)
	sum := simSummary{features: make(map[string]int)}
	for range run.spins {
		rec.Reset()
		if run.topUp && machine.Balance() < machine.Stake() {
			machine.SetBalance(run.refill)
		}
		r, st := machine.Spin()
		if st != spin.Accepted {
			log.Warn("spin rejected", "spin", sum.spins+1, "reason", st)
			sum.exhausted = st == spin.RejectedBalance
			break
		}
		sum.add(r)
		sum.combos += rec.Count(event.ComboReached)
		sum.dropped += rec.Count(event.ItemDropped)
		if run.store != nil {
			if _, err := run.store.SaveSpin(storage.FromResult(run.player, run.seed, r)); err != nil {
				log.Warn("cannot save spin", "spin", r.Spin, "error", err)
			}
		}
	}
	return sum
}

func runSim(_ *cobra.Command, _ []string) {
	_, opts := loadEngine()
	if flagSimStake > 0 {
		opts.Stake = flagSimStake
	}
	if flagSimSpins <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --spins must be positive")
		os.Exit(1)
	}

	seed := resolveSeed()
	logger := newLogger(os.Stderr, "gemflock-sim")
	machine := spin.New(opts, core.NewEnv(seed, logger))

	var store *storage.Store
	if flagSimRecord {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		if balance, err := store.Wallet(flagPlayer); err == nil {
			machine.SetBalance(balance)
		}
	}

	start := machine.Balance()
	sum := simulate(machine, simRun{
		spins:  flagSimSpins,
		topUp:  flagSimTopUp,
		refill: opts.StartBalance,
		store:  store,
		player: flagPlayer,
		seed:   seed,
	})
	if store != nil {
		if err := store.SaveWallet(flagPlayer, machine.Balance()); err != nil {
			logger.Warn("cannot save wallet", "error", err)
		}
	}
	if sum.exhausted {
		fmt.Printf("Balance exhausted after %d spins.\n\n", sum.spins)
	}

	printSummary(sum, seed, start, machine.Balance())
}

func printSummary(s simSummary, seed int64, start, end float64) {
	fmt.Printf("Simulation - seed %d\n", seed)
	fmt.Println()
	fmt.Printf("  %-12s %d\n", "Spins", s.spins)
	fmt.Printf("  %-12s %.2f\n", "Staked", s.staked)
	fmt.Printf("  %-12s %.2f\n", "Won", s.won)
	if s.staked > 0 {
		fmt.Printf("  %-12s %.2f%%\n", "RTP", s.won/s.staked*100)
	}
	fmt.Printf("  %-12s %.2f\n", "Best win", s.best)
	fmt.Printf("  %-12s %.2f -> %.2f\n", "Balance", start, end)
	if s.spins > 0 {
		fmt.Printf("  %-12s %.1f\n", "Avg gems", float64(s.collected)/float64(s.spins))
		fmt.Printf("  %-12s %s\n", "Avg spin", (s.elapsed / time.Duration(s.spins)).Round(time.Millisecond))
	}
	fmt.Printf("  %-12s %d\n", "Forced ends", s.forced)
	fmt.Printf("  %-12s %d\n", "Combos", s.combos)
	fmt.Printf("  %-12s %d\n", "Gems lost", s.dropped)

	if len(s.features) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Outcome", "Count")
	fmt.Printf("  %-12s  %s\n", "-------", "-----")
	outcomes := make([]string, 0, len(s.features))
	for o := range s.features {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Printf("  %-12s  %d\n", o, s.features[o])
	}
}
