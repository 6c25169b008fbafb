// Package bird implements the collector birds: their state machine, target
// search, cell-by-cell movement and combo bookkeeping.
package bird

import (
	"time"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
)

// State is the bird's activity.
type State int

const (
	Idle State = iota
	Moving
	Collecting
	Stunned
	Absorbed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Collecting:
		return "collecting"
	case Stunned:
		return "stunned"
	case Absorbed:
		return "absorbed"
	default:
		return "unknown"
	}
}

// Bird is one collector. Birds reference the board by coordinates only.
type Bird struct {
	ID    int
	Kind  Kind
	Pos   core.Coord
	State State

	Legendary bool

	Combo         int
	lastCollect   time.Duration
	everCollected bool
	Collected     int
	CollectedSpin int
	StunTurns     int

	boost      float64
	boostSpins int

	// epoch invalidates scheduled continuations when the bird is halted or absorbed.
	epoch  int
	path   []core.Coord
	target core.Coord

	flock *Flock
}

// Color returns the bird's identity color.
func (b *Bird) Color() gem.Color {
	return b.Kind.Color
}

// Name returns the roster name.
func (b *Bird) Name() string {
	return b.Kind.Name
}

// Speed returns the effective movement multiplier.
func (b *Bird) Speed() float64 {
	s := b.Kind.Speed
	if s <= 0 {
		s = 1
	}
	if b.Legendary && b.flock.opts.LegendaryRate > 0 {
		s *= b.flock.opts.LegendaryRate
	}
	if b.boost > 0 {
		s *= b.boost
	}
	return s
}

// StepDelay returns the time one cell of movement takes.
func (b *Bird) StepDelay() time.Duration {
	return time.Duration(float64(b.flock.opts.StepDelay) / b.Speed())
}

// CanCollect reports whether the bird may take g: same color, or either side
// carries the wildcard.
func (b *Bird) CanCollect(g *gem.Gem) bool {
	if g == nil {
		return false
	}
	if b.Kind.Color.IsWild() || g.Color.IsWild() {
		return true
	}
	return g.Color == b.Kind.Color
}

// ComboMultiplier returns the multiplier of the current streak.
func (b *Bird) ComboMultiplier() float64 {
	return ComboMultiplier(b.flock.opts.ComboTiers, b.Combo)
}

// Busy reports whether the bird is still working through a hunt.
func (b *Bird) Busy() bool {
	return b.State == Moving || b.State == Collecting
}

// Hunt runs one search: stunned birds burn a turn, otherwise the nearest
// collectible gem is targeted and walked to. On arrival the gem is collected
// and the bird hunts again after the re-hunt delay.
func (b *Bird) Hunt() {
	switch b.State {
	case Absorbed:
		return
	case Stunned:
		b.StunTurns--
		if b.StunTurns <= 0 {
			b.StunTurns = 0
			b.State = Idle
		}
		return
	}

	b.State = Collecting
	target, ok := b.nearest()
	if !ok {
		b.State = Idle
		return
	}

	b.target = target
	b.path = core.Path(b.Pos, target)
	b.follow(b.epoch)
}

// nearest scans row-major and keeps the first gem at minimal distance.
func (b *Bird) nearest() (core.Coord, bool) {
	best := -1
	var found core.Coord
	b.flock.grid.Each(func(c *grid.Cell) {
		if !c.Gem.Active() || !b.CanCollect(c.Gem) {
			return
		}
		p := core.C(c.X, c.Y)
		if d := core.Manhattan(b.Pos, p); best < 0 || d < best {
			best = d
			found = p
		}
	})
	return found, best >= 0
}

func (b *Bird) follow(epoch int) {
	if epoch != b.epoch {
		return
	}
	if len(b.path) == 0 {
		b.arrive()
		return
	}

	next := b.path[0]
	b.path = b.path[1:]
	b.moveTo(next)
	b.State = Moving

	b.flock.env.Clock.After(b.StepDelay(), func() {
		b.follow(epoch)
	})
}

func (b *Bird) moveTo(p core.Coord) {
	board := b.flock.grid
	board.Vacate(b.Pos.X, b.Pos.Y, b.ID)
	b.Pos = p
	board.Occupy(p.X, p.Y, b.ID)
}

func (b *Bird) arrive() {
	b.State = Collecting
	b.collectHere()

	if b.State != Collecting {
		return
	}
	epoch := b.epoch
	b.flock.env.Clock.After(b.flock.opts.RehuntDelay, func() {
		if epoch != b.epoch || b.State != Collecting {
			return
		}
		b.Hunt()
	})
}

// collectHere takes the gem under the bird if it is still there.
func (b *Bird) collectHere() {
	f := b.flock
	cell := f.grid.At(b.Pos)
	if cell == nil || !cell.Gem.Active() || !b.CanCollect(cell.Gem) {
		return
	}

	gm := cell.Gem
	payout, ok := gm.Collect()
	if !ok {
		return
	}
	f.grid.RemoveGem(b.Pos.X, b.Pos.Y)

	b.Collected++
	b.CollectedSpin++

	now := f.env.Clock.Now()
	if b.everCollected && now-b.lastCollect < f.opts.ComboWindow {
		b.Combo++
	} else {
		b.Combo = 1
	}
	b.lastCollect = now
	b.everCollected = true

	multiplier := b.ComboMultiplier()
	f.env.Emit(event.GemCollected, event.GemPayload{
		X: b.Pos.X, Y: b.Pos.Y,
		Color:  gm.Color.String(),
		Tier:   gm.Tier,
		Payout: payout,
		BirdID: b.ID,
	})
	if len(f.opts.ComboTiers) > 0 && b.Combo >= f.opts.ComboTiers[0].Streak {
		f.env.Log.Debug("combo", "bird", b.Kind.Name, "streak", b.Combo)
		f.env.Emit(event.ComboReached, event.ComboPayload{
			BirdID:     b.ID,
			Streak:     b.Combo,
			Multiplier: multiplier,
		})
	}
	if f.OnCollect != nil {
		f.OnCollect(Collection{
			Bird:            b,
			Color:           gm.Color,
			Tier:            gm.Tier,
			Payout:          payout,
			ComboMultiplier: multiplier,
		})
	}
}

// Halt cancels any scheduled movement and leaves the bird idle where it stands.
func (b *Bird) Halt() {
	b.epoch++
	b.path = nil
	if b.State == Moving || b.State == Collecting {
		b.State = Idle
	}
}

// Stun makes the bird skip its next turns.
func (b *Bird) Stun(turns int) {
	if turns <= 0 || b.State == Absorbed {
		return
	}
	b.epoch++
	b.path = nil
	b.StunTurns = turns
	b.State = Stunned
}

// TransformLegendary grants the legendary flag. It is idempotent.
func (b *Bird) TransformLegendary() bool {
	if b.Legendary {
		return false
	}
	b.Legendary = true
	return true
}

// ApplySpeedBonus multiplies speed by factor until the end of the next spin.
func (b *Bird) ApplySpeedBonus(factor float64) {
	if factor <= 0 {
		return
	}
	b.boost = factor
	b.boostSpins = 1
}

// Absorb takes the bird off the board. Absorbing an absorbed bird is a no-op.
func (b *Bird) Absorb() bool {
	if b.State == Absorbed {
		return false
	}
	b.epoch++
	b.path = nil
	b.flock.grid.Vacate(b.Pos.X, b.Pos.Y, b.ID)
	b.State = Absorbed
	return true
}

// Reinstate puts an absorbed bird back on the board at p.
func (b *Bird) Reinstate(p core.Coord) bool {
	if b.State != Absorbed {
		return false
	}
	b.Pos = p
	b.flock.grid.Occupy(p.X, p.Y, b.ID)
	b.State = Idle
	return true
}

// Reset prepares the bird for a new spin.
func (b *Bird) Reset() {
	if b.State == Absorbed {
		return
	}
	b.epoch++
	b.path = nil
	b.CollectedSpin = 0
	b.Combo = 0
	b.StunTurns = 0
	b.State = Idle
	if b.boostSpins > 0 {
		b.boostSpins--
	} else {
		b.boost = 0
	}
}

// Info is a read-only snapshot of a bird.
type Info struct {
	ID            int
	Name          string
	Color         gem.Color
	X, Y          int
	State         string
	Collected     int
	CollectedSpin int
	Combo         int
	Legendary     bool
	Speed         float64
}

// Info returns the bird's snapshot.
func (b *Bird) Info() Info {
	return Info{
		ID:            b.ID,
		Name:          b.Kind.Name,
		Color:         b.Kind.Color,
		X:             b.Pos.X,
		Y:             b.Pos.Y,
		State:         b.State.String(),
		Collected:     b.Collected,
		CollectedSpin: b.CollectedSpin,
		Combo:         b.Combo,
		Legendary:     b.Legendary,
		Speed:         b.Speed(),
	}
}
