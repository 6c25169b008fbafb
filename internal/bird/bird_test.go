package bird

import (
	"testing"
	"time"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
)

var letters = map[byte]gem.Color{
	'R': gem.Red, 'B': gem.Blue, 'G': gem.Green,
	'Y': gem.Yellow, 'P': gem.Purple, 'O': gem.Orange,
}

type fixture struct {
	env   *core.Env
	grid  *grid.Grid
	flock *Flock
	rec   *event.Recorder
}

// newFixture builds a board from letter rows ('.' is empty) with an empty flock.
func newFixture(t *testing.T, rows []string) *fixture {
	t.Helper()
	env := core.NewEnv(3, nil)
	opts := grid.DefaultOptions()
	opts.Width, opts.Height = len(rows[0]), len(rows)
	opts.MaxWidth, opts.MaxHeight = opts.Width+2, opts.Height+2
	g := grid.New(opts, env)
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if c, ok := letters[row[x]]; ok {
				g.SpawnGem(x, y, c, 1)
			}
		}
	}
	fo := DefaultOptions()
	fo.Roster = nil
	return &fixture{
		env:   env,
		grid:  g,
		flock: NewFlock(fo, env, g),
		rec:   (&event.Recorder{}).Attach(env.Bus),
	}
}

func (f *fixture) drain() {
	for f.env.Clock.Step() {
	}
}

func TestCanCollect(t *testing.T) {
	fx := newFixture(t, []string{"...."})
	red := fx.flock.Add(Captain, core.C(0, 0))
	mystic := fx.flock.Add(Mystic, core.C(1, 0))

	tests := []struct {
		name     string
		b        *Bird
		color    gem.Color
		expected bool
	}{
		{"same color", red, gem.Red, true},
		{"wild gem", red, gem.Purple, true},
		{"different colors", red, gem.Blue, false},
		{"orange for red", red, gem.Orange, false},
		{"wild bird takes blue", mystic, gem.Blue, true},
		{"wild bird takes orange", mystic, gem.Orange, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.b.CanCollect(gem.New(tc.color, 1)); got != tc.expected {
				t.Errorf("CanCollect(%s) = %v, expected %v", tc.color, got, tc.expected)
			}
		})
	}
	if red.CanCollect(nil) {
		t.Error("CanCollect(nil) should be false")
	}
}

func TestHuntPicksNearestFirstInScan(t *testing.T) {
	fx := newFixture(t, []string{
		"..R.",
		"....",
		"R...",
	})
	b := fx.flock.Add(Captain, core.C(0, 0))

	b.Hunt()
	fx.drain()

	got := fx.rec.Of(event.GemCollected)
	if len(got) != 2 {
		t.Fatalf("collected %d gems, expected 2", len(got))
	}
	first := got[0].Payload.(event.GemPayload)
	if first.X != 2 || first.Y != 0 {
		t.Errorf("first collection at (%d,%d), expected (2,0)", first.X, first.Y)
	}
	if b.State != Idle || !fx.flock.Quiet() {
		t.Errorf("bird state %s after running out of gems, expected idle", b.State)
	}
	if b.Collected != 2 || b.CollectedSpin != 2 {
		t.Errorf("counters %d/%d, expected 2/2", b.Collected, b.CollectedSpin)
	}
}

func TestHuntOnlyTakesEligibleGems(t *testing.T) {
	fx := newFixture(t, []string{
		"RBP",
		"OGY",
	})
	b := fx.flock.Add(Captain, core.C(0, 0))

	b.Hunt()
	fx.drain()

	// Red and the wild purple go; everything else stays.
	if fx.grid.Gems() != 4 {
		t.Errorf("Gems() = %d, expected 4", fx.grid.Gems())
	}
	if fx.grid.Cell(0, 0).Gem != nil || fx.grid.Cell(2, 0).Gem != nil {
		t.Error("red and purple gems should be collected and removed")
	}
}

func TestMovementOccupancy(t *testing.T) {
	fx := newFixture(t, []string{"...R"})
	b := fx.flock.Add(Captain, core.C(0, 0))

	b.Hunt()
	if b.State != Moving {
		t.Fatalf("state %s after first step, expected moving", b.State)
	}
	if fx.grid.Cell(0, 0).Bird != 0 || fx.grid.Cell(1, 0).Bird != b.ID {
		t.Error("occupancy should move with the bird")
	}

	fx.env.Clock.Advance(b.StepDelay())
	if b.Pos != core.C(2, 0) {
		t.Errorf("Pos = %v after one step delay, expected (2,0)", b.Pos)
	}

	fx.drain()
	if b.Pos != core.C(3, 0) || fx.grid.Cell(3, 0).Bird != b.ID {
		t.Errorf("bird ended at %v", b.Pos)
	}
}

func TestComboIncrementsWithinWindow(t *testing.T) {
	fx := newFixture(t, []string{".RRR"})
	b := fx.flock.Add(Captain, core.C(0, 0))

	var streaks []int
	fx.flock.OnCollect = func(c Collection) { streaks = append(streaks, c.Bird.Combo) }

	b.Hunt()
	fx.drain()

	expected := []int{1, 2, 3}
	if len(streaks) != len(expected) {
		t.Fatalf("got %d collections, expected %d", len(streaks), len(expected))
	}
	for i := range expected {
		if streaks[i] != expected[i] {
			t.Errorf("streak after collection %d = %d, expected %d", i, streaks[i], expected[i])
		}
	}
	if fx.rec.Count(event.ComboReached) != 1 {
		t.Errorf("ComboReached events = %d, expected 1", fx.rec.Count(event.ComboReached))
	}
	if b.ComboMultiplier() != 1.1 {
		t.Errorf("ComboMultiplier() = %v, expected 1.1", b.ComboMultiplier())
	}
}

func TestComboResetsToOneAfterWindow(t *testing.T) {
	fx := newFixture(t, []string{".YYY"})
	slow := Kind{Name: "Slow", Color: gem.Yellow, Speed: 0.2} // 1500ms per cell
	b := fx.flock.Add(slow, core.C(0, 0))

	var streaks []int
	fx.flock.OnCollect = func(c Collection) { streaks = append(streaks, c.Bird.Combo) }

	b.Hunt()
	fx.drain()

	if len(streaks) != 3 {
		t.Fatalf("got %d collections, expected 3", len(streaks))
	}
	for i, s := range streaks {
		if s != 1 {
			t.Errorf("streak after collection %d = %d, expected 1", i, s)
		}
	}
}

func TestComboMultiplierTable(t *testing.T) {
	tiers := DefaultOptions().ComboTiers
	tests := []struct {
		streak   int
		expected float64
	}{
		{0, 1}, {2, 1}, {3, 1.1}, {4, 1.1}, {5, 1.25}, {7, 1.5}, {9, 1.5}, {10, 2}, {25, 2},
	}
	for _, tc := range tests {
		if got := ComboMultiplier(tiers, tc.streak); got != tc.expected {
			t.Errorf("ComboMultiplier(%d) = %v, expected %v", tc.streak, got, tc.expected)
		}
	}
}

func TestStunSkipsTurns(t *testing.T) {
	fx := newFixture(t, []string{"R..."})
	b := fx.flock.Add(Captain, core.C(3, 0))
	b.Stun(2)

	b.Hunt()
	if b.State != Stunned || b.StunTurns != 1 {
		t.Fatalf("after one turn: %s with %d turns left", b.State, b.StunTurns)
	}
	b.Hunt()
	if b.State != Idle || b.StunTurns != 0 {
		t.Fatalf("after two turns: %s with %d turns left", b.State, b.StunTurns)
	}
	if fx.grid.Gems() != 1 {
		t.Fatal("a stunned bird must not collect")
	}

	b.Hunt()
	fx.drain()
	if fx.grid.Gems() != 0 {
		t.Error("bird should hunt again once the stun wears off")
	}
}

func TestAbsorbAndReinstate(t *testing.T) {
	fx := newFixture(t, []string{"R..."})
	b := fx.flock.Add(Captain, core.C(2, 0))

	if !b.Absorb() {
		t.Fatal("Absorb should succeed")
	}
	if b.Absorb() {
		t.Error("absorbing twice should be a no-op")
	}
	if fx.grid.Cell(2, 0).Bird != 0 {
		t.Error("absorbed bird must leave the board")
	}

	b.Hunt()
	fx.drain()
	if fx.grid.Gems() != 1 {
		t.Error("absorbed bird must not collect")
	}

	b.Reset()
	if b.State != Absorbed {
		t.Error("Reset must not release an absorbed bird")
	}

	if !b.Reinstate(core.C(3, 0)) {
		t.Fatal("Reinstate should succeed")
	}
	if b.State != Idle || fx.grid.Cell(3, 0).Bird != b.ID {
		t.Errorf("reinstated bird state %s", b.State)
	}
	if b.Reinstate(core.C(0, 0)) {
		t.Error("reinstating an on-board bird should fail")
	}
}

func TestHaltCancelsMovement(t *testing.T) {
	fx := newFixture(t, []string{"....R"})
	b := fx.flock.Add(Captain, core.C(0, 0))

	b.Hunt()
	b.Halt()
	fx.drain()

	if b.State != Idle {
		t.Errorf("state %s after halt, expected idle", b.State)
	}
	if b.Pos != core.C(1, 0) {
		t.Errorf("halted bird moved on to %v", b.Pos)
	}
	if fx.grid.Gems() != 1 {
		t.Error("halted bird must not collect")
	}
}

func TestFlockFollowsGridShift(t *testing.T) {
	fx := newFixture(t, []string{
		"..R",
		"...",
	})
	b := fx.flock.Add(Captain, core.C(0, 0))

	b.Hunt() // heads right toward (2,0)
	if !fx.grid.Expand(grid.Top) {
		t.Fatal("expand failed")
	}
	if b.Pos != core.C(1, 1) {
		t.Fatalf("Pos after top expansion = %v, expected (1,1)", b.Pos)
	}
	if fx.grid.Cell(1, 1).Bird != b.ID {
		t.Error("occupancy not carried by the shift")
	}

	fx.drain()
	if b.Pos != core.C(2, 1) || b.Collected != 1 {
		t.Errorf("bird ended at %v with %d collected, expected (2,1) with 1", b.Pos, b.Collected)
	}
}

func TestLegendaryAndSpeedBonus(t *testing.T) {
	fx := newFixture(t, []string{"...."})
	b := fx.flock.Add(Captain, core.C(0, 0))

	if b.StepDelay() != 250*time.Millisecond {
		t.Errorf("Captain step delay = %v, expected 250ms", b.StepDelay())
	}

	if !b.TransformLegendary() || b.TransformLegendary() {
		t.Error("TransformLegendary should apply exactly once")
	}
	if b.Speed() != 2.4 {
		t.Errorf("legendary speed = %v, expected 2.4", b.Speed())
	}

	n := fx.flock.Add(Navigator, core.C(1, 0))
	n.ApplySpeedBonus(1.5)
	if n.Speed() != 1.5 {
		t.Errorf("boosted speed = %v, expected 1.5", n.Speed())
	}
	n.Reset() // bonus carries into the next spin
	if n.Speed() != 1.5 {
		t.Errorf("speed after first reset = %v, expected 1.5", n.Speed())
	}
	n.Reset()
	if n.Speed() != 1 {
		t.Errorf("speed after second reset = %v, expected 1", n.Speed())
	}
}

func TestResetClearsSpinState(t *testing.T) {
	fx := newFixture(t, []string{".RR"})
	b := fx.flock.Add(Captain, core.C(0, 0))
	b.Hunt()
	fx.drain()
	b.Stun(3)

	b.Reset()
	if b.CollectedSpin != 0 || b.Combo != 0 || b.StunTurns != 0 || b.State != Idle {
		t.Errorf("after reset: %+v", b.Info())
	}
	if b.Collected != 2 {
		t.Errorf("lifetime counter = %d, expected 2", b.Collected)
	}
}

func TestSpawnRoster(t *testing.T) {
	env := core.NewEnv(11, nil)
	g := grid.New(grid.DefaultOptions(), env)
	f := NewFlock(DefaultOptions(), env, g)
	f.SpawnRoster()

	if f.Len() < 4 || f.Len() > 5 {
		t.Fatalf("spawned %d birds, expected 4 or 5", f.Len())
	}
	expected := []struct {
		name string
		pos  core.Coord
	}{
		{"Captain", core.C(0, 0)},
		{"Navigator", core.C(5, 0)},
		{"Engineer", core.C(0, 5)},
		{"Scout", core.C(5, 5)},
	}
	for i, e := range expected {
		b := f.Birds()[i]
		if b.Name() != e.name || b.Pos != e.pos {
			t.Errorf("bird %d = %s at %v, expected %s at %v", i, b.Name(), b.Pos, e.name, e.pos)
		}
		if g.At(e.pos).Bird != b.ID {
			t.Errorf("%s does not occupy its spawn cell", e.name)
		}
	}
}

func TestReleaseStaggersBirds(t *testing.T) {
	fx := newFixture(t, []string{"R..B"})
	red := fx.flock.Add(Captain, core.C(1, 0))
	blue := fx.flock.Add(Navigator, core.C(2, 0))

	fx.flock.Release(100 * time.Millisecond)
	fx.env.Clock.Advance(50 * time.Millisecond)
	if red.State != Moving || blue.State != Idle {
		t.Fatalf("at 50ms: red %s, blue %s", red.State, blue.State)
	}

	fx.drain()
	if !fx.flock.Quiet() || fx.flock.TotalCollectedSpin() != 2 {
		t.Errorf("flock should be quiet with 2 collected, got %d", fx.flock.TotalCollectedSpin())
	}
}
