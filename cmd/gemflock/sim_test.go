package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gemflock/internal/config"
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/spin"
	"github.com/vovakirdan/gemflock/internal/storage"
)

func defaultMachine(t *testing.T, seed int64, tweak func(*spin.Options)) *spin.Machine {
	t.Helper()
	opts, err := config.Default().SpinOptions()
	if err != nil {
		t.Fatalf("SpinOptions() failed: %v", err)
	}
	if tweak != nil {
		tweak(&opts)
	}
	return spin.New(opts, core.NewEnv(seed, nil))
}

func TestSimulateDefaultConfig(t *testing.T) {
	m := defaultMachine(t, 42, nil)
	start := m.Balance()
	all := (&event.Recorder{}).Attach(m.Env().Bus)

	sum := simulate(m, simRun{spins: 5})

	if sum.spins != 5 {
		t.Fatalf("spins = %d, expected 5", sum.spins)
	}
	if sum.exhausted {
		t.Error("exhausted with a full starting balance")
	}
	if want := 5 * m.Stake(); math.Abs(sum.staked-want) > 1e-9 {
		t.Errorf("staked = %v, expected %v", sum.staked, want)
	}
	if got, want := m.Balance(), start-sum.staked+sum.won; math.Abs(got-want) > 1e-9 {
		t.Errorf("balance = %v, expected %v", got, want)
	}
	if m.Spins() != 5 {
		t.Errorf("machine spins = %d, expected 5", m.Spins())
	}
	if sum.combos != all.Count(event.ComboReached) || sum.dropped != all.Count(event.ItemDropped) {
		t.Errorf("combos/dropped = %d/%d, bus saw %d/%d",
			sum.combos, sum.dropped, all.Count(event.ComboReached), all.Count(event.ItemDropped))
	}
}

func TestSimulateStopsOnRejection(t *testing.T) {
	m := defaultMachine(t, 1, func(o *spin.Options) {
		o.StartBalance = o.Stake / 2
	})

	sum := simulate(m, simRun{spins: 3})

	if sum.spins != 0 {
		t.Errorf("spins = %d, expected 0", sum.spins)
	}
	if !sum.exhausted {
		t.Error("exhausted = false, expected true")
	}
	if sum.staked != 0 || len(sum.features) != 0 {
		t.Errorf("rejected spin was counted: %+v", sum)
	}
}

func TestSimulateTopUp(t *testing.T) {
	m := defaultMachine(t, 3, func(o *spin.Options) {
		o.StartBalance = 0
	})

	sum := simulate(m, simRun{spins: 3, topUp: true, refill: 100})

	if sum.spins != 3 || sum.exhausted {
		t.Errorf("spins = %d, exhausted = %v; expected 3 spins", sum.spins, sum.exhausted)
	}
}

func TestSimulateRecordsSpins(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sim.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := defaultMachine(t, 9, nil)
	sum := simulate(m, simRun{spins: 2, store: store, player: "bot", seed: 9})

	spins, err := store.RecentSpins("bot", 10)
	if err != nil {
		t.Fatalf("RecentSpins() failed: %v", err)
	}
	if len(spins) != sum.spins || len(spins) != 2 {
		t.Fatalf("recorded %d spins, simulated %d", len(spins), sum.spins)
	}
	for _, s := range spins {
		if s.Seed != 9 {
			t.Errorf("spin %d seed = %d, expected 9", s.Spin, s.Seed)
		}
	}
}
