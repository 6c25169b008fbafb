// Package blackhole implements the Black Hole feature: a timed state machine
// that absorbs the board's gems and some birds, rolls a chaos outcome and
// redistributes everything under that outcome's rules.
package blackhole

import (
	"time"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
)

// Kind is the feature name used in events.
const Kind = "black-hole"

// ItemKind tells gem records from bird records.
type ItemKind int

const (
	GemItem ItemKind = iota
	BirdItem
)

// Item is one absorbed thing, with enough state to put it back.
type Item struct {
	Kind   ItemKind
	Color  gem.Color
	Tier   int
	X, Y   int // original coordinates of a gem
	BirdID int
}

// Multiplier is the holder of the global payout multiplier.
type Multiplier interface {
	Multiplier() float64
	SetMultiplier(m float64)
}

// BlackHole is one feature instance.
type BlackHole struct {
	env   *core.Env
	grid  *grid.Grid
	flock *bird.Flock
	mult  Multiplier
	opts  Options

	Strength  Strength
	Phase     Phase
	Outcome   Outcome
	Pos       core.Coord
	Items     []Item
	active    bool
	absorbing bool

	onDone func(Outcome)
}

// New creates an inactive black hole acting on g and f.
func New(opts Options, env *core.Env, g *grid.Grid, f *bird.Flock, m Multiplier) *BlackHole {
	return &BlackHole{env: env, grid: g, flock: f, mult: m, opts: opts}
}

// Active reports whether the hole exists (spawned and not yet torn down).
func (h *BlackHole) Active() bool {
	return h.active
}

// Absorbing reports whether absorption has started.
func (h *BlackHole) Absorbing() bool {
	return h.absorbing
}

// Spawn places the hole at the board center with the given strength and
// schedules activation. onDone runs once at teardown.
func (h *BlackHole) Spawn(s Strength, onDone func(Outcome)) bool {
	if h.active {
		return false
	}
	h.Strength = s
	h.Phase = Spawning
	h.active = true
	h.onDone = onDone
	h.Pos = core.C(h.grid.Width()/2, h.grid.Height()/2)

	h.env.Log.Info("black hole spawned", "strength", s, "power", s.AbsorptionPower())
	h.env.Emit(event.FeatureSpawned, event.FeaturePayload{
		Kind:     Kind,
		Strength: s.String(),
		X:        h.Pos.X,
		Y:        h.Pos.Y,
	})

	h.env.Clock.After(h.opts.ActivateDelay, h.Activate)
	return true
}

// Activate absorbs the board and schedules the chaos roll.
func (h *BlackHole) Activate() {
	if !h.active || h.absorbing {
		return
	}
	h.absorbing = true
	h.Phase = Absorbing
	h.absorb()

	h.env.Clock.After(h.opts.AbsorbDuration, func() {
		h.Resolve(h.RollOutcome())
	})
}

func (h *BlackHole) absorb() {
	h.Items = h.Items[:0]

	h.grid.Each(func(c *grid.Cell) {
		if !c.Gem.Active() {
			return
		}
		h.Items = append(h.Items, Item{
			Kind:  GemItem,
			Color: c.Gem.Color,
			Tier:  c.Gem.Tier,
			X:     c.X,
			Y:     c.Y,
		})
		c.Gem = nil
	})

	candidates := h.flock.OnBoard()
	n := h.Strength.BirdCount()
	if n > len(candidates) {
		n = len(candidates)
	}
	for _, i := range h.env.RNG.Perm(len(candidates))[:n] {
		b := candidates[i]
		if !b.Absorb() {
			continue
		}
		h.Items = append(h.Items, Item{Kind: BirdItem, Color: b.Color(), BirdID: b.ID})
		h.env.Emit(event.BirdAbsorbed, event.BirdPayload{
			BirdID: b.ID,
			Name:   b.Name(),
			Color:  b.Color().String(),
			X:      b.Pos.X,
			Y:      b.Pos.Y,
		})
	}

	h.env.Log.Info("black hole absorbed", "items", len(h.Items), "birds", n)
}

// RollOutcome draws the chaos outcome for the hole's strength.
func (h *BlackHole) RollOutcome() Outcome {
	roll := h.env.RNG.Float64()
	if h.Strength == Mega {
		if roll < h.opts.MegaBonusChance {
			return OutcomeMegaBonus
		}
		return OutcomeWhiteHole
	}
	t := h.opts.OutcomeThresholds
	switch {
	case roll < t[0]:
		return OutcomeMini
	case roll < t[1]:
		return OutcomeStandard
	case roll < t[2]:
		return OutcomeMegaBonus
	default:
		return OutcomeWhiteHole
	}
}

// Resolve redistributes the absorbed items under outcome and schedules teardown.
func (h *BlackHole) Resolve(outcome Outcome) {
	if !h.active || h.Phase == Resolving || h.Phase == Destroyed {
		return
	}
	h.Phase = Resolving
	h.Outcome = outcome
	h.env.Log.Info("black hole chaos", "outcome", outcome)

	var last time.Duration
	switch outcome {
	case OutcomeMini:
		last = maxDur(
			h.returnGems(h.opts.MiniStagger, h.opts.MiniRadius, 0),
			h.returnBirds(1, false),
		)
	case OutcomeStandard:
		last = maxDur(
			h.returnGems(h.opts.StandardStagger, h.opts.StandardRadius, 0),
			h.returnBirds(2, false),
		)
	case OutcomeMegaBonus:
		h.mult.SetMultiplier(h.mult.Multiplier() * 2)
		last = maxDur(
			h.returnGems(h.opts.MegaStagger, h.grid.Width(), 1),
			h.returnBirds(len(h.Items), true),
			h.spawnWilds(h.opts.WildCount),
		)
	default:
		h.Outcome = OutcomeWhiteHole
		last = maxDur(
			h.whiteHole(),
			h.returnBirds(len(h.Items), true),
		)
		h.mult.SetMultiplier(h.opts.WhiteMultiplier)
	}

	h.env.Clock.After(last+h.opts.TeardownDelay, h.teardown)
}

// returnGems schedules every absorbed gem back onto the board within radius
// of its origin, tier raised by bump. Returns the offset of the last task.
func (h *BlackHole) returnGems(stagger time.Duration, radius, bump int) time.Duration {
	var last time.Duration
	for i, item := range h.Items {
		if item.Kind != GemItem {
			continue
		}
		item.Tier = min(item.Tier+bump, gem.MaxTier)
		at := time.Duration(i) * stagger
		last = max(last, at)
		h.env.Clock.After(at, func() {
			h.placeGem(item, radius)
		})
	}
	return last
}

// placeGem tries random cells in the radius box around the item's origin.
// The first empty cell wins; after the attempt budget the item is dropped.
func (h *BlackHole) placeGem(item Item, radius int) {
	w, ht := h.grid.Width(), h.grid.Height()
	for i := 0; i < h.opts.Attempts; i++ {
		x := h.env.RNG.Between(max(0, item.X-radius), min(w-1, item.X+radius))
		y := h.env.RNG.Between(max(0, item.Y-radius), min(ht-1, item.Y+radius))
		c := h.grid.Cell(x, y)
		if c != nil && c.Empty() {
			h.grid.SpawnGem(x, y, item.Color, item.Tier)
			return
		}
	}

	h.env.Log.Warn("black hole dropped gem", "color", item.Color, "tier", item.Tier, "x", item.X, "y", item.Y, "radius", radius)
	h.env.Emit(event.ItemDropped, event.GemPayload{
		X: item.X, Y: item.Y,
		Color: item.Color.String(),
		Tier:  item.Tier,
	})
}

// returnBirds reinstates up to count absorbed birds in absorption order at
// random coordinates. Returns the offset of the last task.
func (h *BlackHole) returnBirds(count int, bonus bool) time.Duration {
	var last time.Duration
	n := 0
	for _, item := range h.Items {
		if item.Kind != BirdItem || n >= count {
			continue
		}
		b := h.flock.Get(item.BirdID)
		if b == nil {
			continue
		}
		at := time.Duration(n) * h.opts.BirdStagger
		last = max(last, at)
		n++
		h.env.Clock.After(at, func() {
			h.reinstate(b, bonus)
		})
	}
	return last
}

func (h *BlackHole) reinstate(b *bird.Bird, bonus bool) {
	p := h.grid.RandomCoord()
	if !b.Reinstate(p) {
		return
	}
	if bonus {
		b.ApplySpeedBonus(h.opts.SpeedBonus)
	}
	h.env.Emit(event.BirdReturned, event.BirdPayload{
		BirdID: b.ID,
		Name:   b.Name(),
		Color:  b.Color().String(),
		X:      p.X,
		Y:      p.Y,
	})
}

// spawnWilds schedules count wild markers on random free cells.
func (h *BlackHole) spawnWilds(count int) time.Duration {
	var last time.Duration
	for i := 0; i < count; i++ {
		at := time.Duration(i) * h.opts.WildStagger
		last = max(last, at)
		h.env.Clock.After(at, h.placeWild)
	}
	return last
}

func (h *BlackHole) placeWild() {
	var free []core.Coord
	h.grid.Each(func(c *grid.Cell) {
		if c.Free() {
			free = append(free, core.C(c.X, c.Y))
		}
	})
	if len(free) == 0 {
		h.env.Log.Debug("no free cell for wild marker")
		return
	}
	p := free[h.env.RNG.Intn(len(free))]
	h.grid.SetMarker(p.X, p.Y, grid.WildMarker)
	h.env.Emit(event.WildSpawned, event.GemPayload{X: p.X, Y: p.Y, Color: gem.Wild.String()})
}

// whiteHole discards the absorbed gems, clears the board and schedules a
// full high-tier refill. Returns the offset of the last task.
func (h *BlackHole) whiteHole() time.Duration {
	h.grid.ClearGems()

	w, ht := h.grid.Width(), h.grid.Height()
	colors := h.grid.Colors()
	var last time.Duration
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			at := h.opts.RefillDelay + time.Duration(y*w+x)*h.opts.RefillStagger
			last = max(last, at)
			h.env.Clock.After(at, func() {
				color := colors[h.env.RNG.Intn(len(colors))]
				tier := h.env.RNG.Between(h.opts.WhiteTierMin, h.opts.WhiteTierMax)
				h.grid.SpawnGem(x, y, color, tier)
			})
		}
	}
	return last
}

// teardown destroys the hole. Birds the outcome did not return are put back
// at random coordinates without a bonus.
func (h *BlackHole) teardown() {
	for _, item := range h.Items {
		if item.Kind != BirdItem {
			continue
		}
		if b := h.flock.Get(item.BirdID); b != nil && b.State == bird.Absorbed {
			h.reinstate(b, false)
		}
	}

	h.Phase = Destroyed
	h.active = false
	h.absorbing = false
	h.env.Log.Info("black hole resolved", "outcome", h.Outcome, "multiplier", h.mult.Multiplier())
	h.env.Emit(event.FeatureResolved, event.FeaturePayload{
		Kind:     Kind,
		Strength: h.Strength.String(),
		Outcome:  string(h.Outcome),
		X:        h.Pos.X,
		Y:        h.Pos.Y,
	})
	if h.onDone != nil {
		h.onDone(h.Outcome)
	}
}

// CountItems returns the absorbed gem and bird counts.
func (h *BlackHole) CountItems() (gems, birds int) {
	for _, item := range h.Items {
		if item.Kind == GemItem {
			gems++
		} else {
			birds++
		}
	}
	return gems, birds
}

func maxDur(ds ...time.Duration) time.Duration {
	var m time.Duration
	for _, d := range ds {
		m = max(m, d)
	}
	return m
}
