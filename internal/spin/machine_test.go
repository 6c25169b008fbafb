package spin

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/feature/blackhole"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
	"github.com/vovakirdan/gemflock/internal/registry"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Birds.Roster = opts.Birds.Roster[:4]
	return opts
}

func newMachine(t *testing.T, seed int64, opts Options) (*Machine, *event.Recorder) {
	t.Helper()
	env := core.NewEnv(seed, nil)
	rec := (&event.Recorder{}).Attach(env.Bus)
	return New(opts, env), rec
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewMachine(t *testing.T) {
	m, _ := newMachine(t, 1, testOptions())

	if m.State() != Idle {
		t.Errorf("state = %v, want idle", m.State())
	}
	if m.Balance() != 1000 || m.Stake() != 1 || m.Multiplier() != 1 {
		t.Errorf("balance/stake/mult = %v/%v/%v", m.Balance(), m.Stake(), m.Multiplier())
	}
	if m.Flock().Len() != 4 {
		t.Errorf("birds = %d, want 4", m.Flock().Len())
	}
	if m.Grid().Width() != 6 || m.Grid().Height() != 6 {
		t.Errorf("board = %dx%d, want 6x6", m.Grid().Width(), m.Grid().Height())
	}
}

func TestSpinRejectedOnLowBalance(t *testing.T) {
	opts := testOptions()
	opts.StartBalance = 0.5
	m, rec := newMachine(t, 1, opts)

	res, st := m.Spin()
	if st != RejectedBalance {
		t.Fatalf("status = %v, want %v", st, RejectedBalance)
	}
	if res.Spin != 0 {
		t.Errorf("result = %+v, want zero", res)
	}
	if m.Balance() != 0.5 || m.Spins() != 0 || m.State() != Idle {
		t.Errorf("state changed: balance %v spins %d state %v", m.Balance(), m.Spins(), m.State())
	}
	if m.Grid().Gems() != 0 {
		t.Errorf("board populated on rejected spin")
	}
	if rec.Count(event.SpinRejected) != 1 {
		t.Errorf("SpinRejected events = %d, want 1", rec.Count(event.SpinRejected))
	}
}

func TestSpinRejectedWhileBusy(t *testing.T) {
	m, rec := newMachine(t, 1, testOptions())

	if st := m.StartSpin(); st != Accepted {
		t.Fatalf("first spin: %v", st)
	}
	if m.State() != Spinning {
		t.Fatalf("state = %v, want spinning", m.State())
	}
	if st := m.StartSpin(); st != RejectedBusy {
		t.Errorf("second spin: %v, want %v", st, RejectedBusy)
	}
	if m.Balance() != 999 {
		t.Errorf("balance = %v, want stake deducted once", m.Balance())
	}
	if m.SetStake(2) {
		t.Error("stake changed mid-spin")
	}
	if rec.Count(event.SpinRejected) != 1 {
		t.Errorf("SpinRejected events = %d", rec.Count(event.SpinRejected))
	}
}

func TestSpinPhases(t *testing.T) {
	m, _ := newMachine(t, 2, testOptions())
	m.StartSpin()

	m.Advance(999 * time.Millisecond)
	if m.State() != Spinning {
		t.Errorf("state at 999ms = %v, want spinning", m.State())
	}
	m.Advance(time.Millisecond)
	if m.State() != Collecting {
		t.Errorf("state at 1000ms = %v, want collecting", m.State())
	}

	for i := 0; i < 60 && m.State() != Idle; i++ {
		m.Advance(time.Second)
	}
	if m.State() != Idle {
		t.Fatalf("spin did not finish, state %v", m.State())
	}
	if m.Last().Spin != 1 {
		t.Errorf("last spin = %d, want 1", m.Last().Spin)
	}
}

func TestSpinPayout(t *testing.T) {
	for _, mult := range []float64{1, 2, 3} {
		m, rec := newMachine(t, 5, testOptions())
		m.SetMultiplier(mult)

		res, st := m.Spin()
		if st != Accepted {
			t.Fatalf("status = %v", st)
		}

		base := 0.0
		for _, c := range res.Clusters {
			want := float64(c.Count) * 0.5 * res.Stake
			if !near(c.Payout, want) {
				t.Errorf("cluster %v x%d payout = %v, want %v", c.Color, c.Count, c.Payout, want)
			}
			if c.Count < grid.MinClusterSize {
				t.Errorf("cluster below minimum size: %d", c.Count)
			}
			base += c.Payout
		}
		if !near(res.Win, base*mult) {
			t.Errorf("mult %v: win = %v, want %v", mult, res.Win, base*mult)
		}
		if !near(m.Balance(), 1000-1+res.Win) || !near(res.Balance, m.Balance()) {
			t.Errorf("balance = %v, result %v, want %v", m.Balance(), res.Balance, 1000-1+res.Win)
		}
		if rec.Count(event.ClusterFound) != len(res.Clusters) {
			t.Errorf("ClusterFound = %d, clusters %d", rec.Count(event.ClusterFound), len(res.Clusters))
		}
		if rec.Count(event.SpinResolved) != 1 {
			t.Errorf("SpinResolved = %d", rec.Count(event.SpinResolved))
		}
	}
}

func TestSpinCollectsEverythingReachable(t *testing.T) {
	m, _ := newMachine(t, 11, testOptions())
	res, _ := m.Spin()

	if res.ForcedEnd {
		t.Skip("collection timed out on this board")
	}
	if res.Collected == 0 {
		t.Fatal("no gems collected")
	}

	m.Grid().Each(func(c *grid.Cell) {
		if !c.Gem.Active() {
			return
		}
		for _, b := range m.Flock().Birds() {
			if b.CanCollect(c.Gem) {
				t.Errorf("gem %v at (%d,%d) left for %s", c.Gem.Color, c.X, c.Y, b.Name())
			}
		}
	})
	for _, b := range m.Flock().Birds() {
		if b.Busy() {
			t.Errorf("%s still busy after spin", b.Name())
		}
	}

	var metered float64
	for _, v := range m.Meters() {
		metered += v
	}
	if metered <= 0 {
		t.Error("collection meters empty")
	}
}

func TestSpinForcedEnd(t *testing.T) {
	opts := testOptions()
	opts.Birds.StepDelay = 10 * time.Second
	opts.MaxWait = 6 * time.Second
	m, _ := newMachine(t, 3, opts)

	res, st := m.Spin()
	if st != Accepted {
		t.Fatalf("status = %v", st)
	}
	if !res.ForcedEnd {
		t.Error("expected forced end")
	}
	// populate 1s + max wait 6s + payout 1s
	if res.Duration != 8*time.Second {
		t.Errorf("duration = %v, want 8s", res.Duration)
	}
	for _, b := range m.Flock().Birds() {
		if b.Busy() {
			t.Errorf("%s busy after forced end", b.Name())
		}
	}
}

func TestSpinDeterministic(t *testing.T) {
	a, _ := newMachine(t, 42, testOptions())
	b, _ := newMachine(t, 42, testOptions())

	for i := 0; i < 3; i++ {
		ra, _ := a.Spin()
		rb, _ := b.Spin()
		if !near(ra.Win, rb.Win) || ra.Collected != rb.Collected || len(ra.Clusters) != len(rb.Clusters) {
			t.Fatalf("spin %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
	if a.Spins() != 3 {
		t.Errorf("spins = %d", a.Spins())
	}
}

func TestWildMarkerBecomesWildGem(t *testing.T) {
	m, _ := newMachine(t, 1, testOptions())
	m.Grid().SetMarker(2, 3, grid.WildMarker)

	m.StartSpin()

	c := m.Grid().Cell(2, 3)
	if c.Gem == nil || c.Gem.Color != gem.Wild {
		t.Fatalf("cell gem = %+v, want wild", c.Gem)
	}
	if c.Marker != grid.NoMarker {
		t.Errorf("marker = %q, want consumed", c.Marker)
	}
}

func TestSetStake(t *testing.T) {
	m, _ := newMachine(t, 1, testOptions())

	tests := []struct {
		stake float64
		ok    bool
	}{
		{2, true},
		{0.2, true},
		{0.1, false},
		{0, false},
		{-1, false},
		{200, true},
		{201, false},
	}
	for _, tt := range tests {
		if got := m.SetStake(tt.stake); got != tt.ok {
			t.Errorf("SetStake(%v) = %v, want %v", tt.stake, got, tt.ok)
		}
	}
	if m.Stake() != 200 {
		t.Errorf("stake = %v, want 200", m.Stake())
	}
}

func TestFeatureTriggeredAfterSpin(t *testing.T) {
	opts := testOptions()
	opts.Triggers = []registry.Trigger{{ID: blackhole.Kind, Probability: 1}}
	opts.Features = map[string]registry.Feature{
		blackhole.Kind: blackhole.NewFeature(blackhole.DefaultOptions()),
	}
	m, rec := newMachine(t, 9, opts)

	res, st := m.Spin()
	if st != Accepted {
		t.Fatalf("status = %v", st)
	}
	if res.Feature != blackhole.Kind {
		t.Errorf("feature = %q, want %q", res.Feature, blackhole.Kind)
	}
	if res.Outcome == "" {
		t.Error("outcome not recorded")
	}
	if m.State() != Idle || m.ActiveFeature() != "" {
		t.Errorf("state %v feature %q after teardown", m.State(), m.ActiveFeature())
	}
	if n := m.Flock().CountState(bird.Absorbed); n != 0 {
		t.Errorf("%d birds still absorbed", n)
	}
	if rec.Count(event.FeatureResolved) != 1 {
		t.Errorf("FeatureResolved = %d", rec.Count(event.FeatureResolved))
	}

	switch mult := m.Multiplier(); mult {
	case 1, 2, 3:
	default:
		t.Errorf("multiplier = %v", mult)
	}
}

func TestNoTriggersNoFeature(t *testing.T) {
	m, rec := newMachine(t, 9, testOptions())
	res, _ := m.Spin()
	if res.Feature != "" || rec.Count(event.FeatureSpawned) != 0 {
		t.Errorf("feature %q started without triggers", res.Feature)
	}
}

func TestTriggerFeature(t *testing.T) {
	m, _ := newMachine(t, 4, testOptions())

	if m.TriggerFeature("no-such-feature") {
		t.Error("unknown feature started")
	}
	if m.State() != Idle {
		t.Errorf("state = %v", m.State())
	}

	m.Grid().Populate()
	if !m.TriggerFeature(blackhole.Kind) {
		t.Fatal("black hole did not start")
	}
	if m.State() != Feature || m.ActiveFeature() != blackhole.Kind {
		t.Errorf("state %v feature %q", m.State(), m.ActiveFeature())
	}
	if m.TriggerFeature(blackhole.Kind) {
		t.Error("second feature started while one is active")
	}
	if st := m.StartSpin(); st != RejectedBusy {
		t.Errorf("spin during feature: %v", st)
	}

	m.Env().Clock.RunUntil(func() bool { return m.State() == Idle })
	if m.State() != Idle {
		t.Errorf("feature never finished")
	}
}

func TestExpandPassthrough(t *testing.T) {
	m, _ := newMachine(t, 1, testOptions())
	m.Grid().Populate()

	if !m.Expand(grid.Right) {
		t.Fatal("expand rejected")
	}
	if m.Grid().Width() != 7 {
		t.Errorf("width = %d", m.Grid().Width())
	}
	m.Advance(time.Second)

	m.ExpandMega()
	for m.Env().Clock.Step() {
	}
	if m.Grid().Width() != 8 || m.Grid().Height() != 8 {
		t.Errorf("board = %dx%d, want 8x8", m.Grid().Width(), m.Grid().Height())
	}
}
