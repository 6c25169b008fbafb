package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/gemflock/internal/grid"
	"github.com/vovakirdan/gemflock/internal/spin"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestWallet(t *testing.T) {
	store := openTemp(t)

	if _, err := store.Wallet("alice"); !errors.Is(err, ErrNoWallet) {
		t.Fatalf("Wallet() on new player = %v, want ErrNoWallet", err)
	}

	if err := store.SaveWallet("alice", 990.5); err != nil {
		t.Fatalf("SaveWallet() failed: %v", err)
	}
	if err := store.SaveWallet("alice", 1012.25); err != nil {
		t.Fatalf("SaveWallet() update failed: %v", err)
	}

	got, err := store.Wallet("alice")
	if err != nil {
		t.Fatalf("Wallet() failed: %v", err)
	}
	if got != 1012.25 {
		t.Errorf("balance = %v, want 1012.25", got)
	}
}

func TestSaveAndRetrieveSpins(t *testing.T) {
	store := openTemp(t)

	wins := []float64{0, 3.5, 12, 1}
	for i, w := range wins {
		_, err := store.SaveSpin(SpinRecord{
			Player: "alice", Spin: i + 1, Seed: 7, Stake: 1, Win: w, Multiplier: 1, Balance: 100 + w,
		})
		if err != nil {
			t.Fatalf("SaveSpin() failed: %v", err)
		}
	}
	store.SaveSpin(SpinRecord{Player: "bob", Spin: 1, Stake: 2, Win: 50, Feature: "black-hole", Outcome: "mini", ForcedEnd: true})

	recent, err := store.RecentSpins("alice", 3)
	if err != nil {
		t.Fatalf("RecentSpins() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent = %d, want 3", len(recent))
	}
	if recent[0].Spin != 4 || recent[2].Spin != 2 {
		t.Errorf("recent order = %d..%d, want 4..2", recent[0].Spin, recent[2].Spin)
	}
	if recent[0].Seed != 7 || recent[0].CreatedAt.IsZero() {
		t.Errorf("record = %+v", recent[0])
	}

	best, err := store.BestSpins("alice", 2)
	if err != nil {
		t.Fatalf("BestSpins() failed: %v", err)
	}
	if len(best) != 2 || best[0].Win != 12 || best[1].Win != 3.5 {
		t.Errorf("best = %+v", best)
	}

	bob, _ := store.RecentSpins("bob", 0)
	if len(bob) != 1 || !bob[0].ForcedEnd || bob[0].Outcome != "mini" {
		t.Errorf("bob = %+v", bob)
	}
}

func TestStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Spins != 0 || empty.RTP() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveSpin(SpinRecord{Player: "alice", Stake: 2, Win: 1})
	store.SaveSpin(SpinRecord{Player: "alice", Stake: 2, Win: 5, Feature: "black-hole", Outcome: "mega-bonus"})
	store.SaveSpin(SpinRecord{Player: "alice", Stake: 2, Win: 0, Feature: "black-hole", Outcome: "mini"})
	store.SaveSpin(SpinRecord{Player: "alice", Stake: 2, Win: 0, Feature: "black-hole", Outcome: "mini"})

	stats, err := store.Stats("alice")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Spins != 4 || stats.TotalStake != 8 || stats.TotalWin != 6 || stats.BestWin != 5 || stats.Features != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.RTP() != 0.75 {
		t.Errorf("RTP = %v, want 0.75", stats.RTP())
	}

	counts, err := store.OutcomeCounts("alice")
	if err != nil {
		t.Fatalf("OutcomeCounts() failed: %v", err)
	}
	if counts["mini"] != 2 || counts["mega-bonus"] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestClearHistoryKeepsWallet(t *testing.T) {
	store := openTemp(t)

	store.SaveWallet("alice", 10)
	store.SaveSpin(SpinRecord{Player: "alice", Stake: 1})
	store.SaveSpin(SpinRecord{Player: "bob", Stake: 1})

	if err := store.ClearHistory("alice"); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	if spins, _ := store.RecentSpins("alice", 10); len(spins) != 0 {
		t.Errorf("alice spins = %d, want 0", len(spins))
	}
	if spins, _ := store.RecentSpins("bob", 10); len(spins) != 1 {
		t.Errorf("bob spins = %d, want 1", len(spins))
	}
	if b, err := store.Wallet("alice"); err != nil || b != 10 {
		t.Errorf("wallet = %v, %v", b, err)
	}
}

func TestFromResult(t *testing.T) {
	res := spin.Result{
		Spin:       3,
		Stake:      2,
		Win:        9,
		Multiplier: 1.5,
		Balance:    107,
		Clusters:   []spin.ClusterWin{{Cluster: grid.Cluster{Count: 4}}, {Cluster: grid.Cluster{Count: 2}}},
		Collected:  11,
		Feature:    "black-hole",
		Outcome:    "white-hole",
	}
	r := FromResult("alice", 42, res)
	if r.Player != "alice" || r.Seed != 42 || r.Clusters != 2 || r.Collected != 11 || r.Outcome != "white-hole" || r.Multiplier != 1.5 {
		t.Errorf("record = %+v", r)
	}
}
