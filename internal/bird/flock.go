package bird

import (
	"time"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
)

// Collection describes one gem taken by a bird.
type Collection struct {
	Bird            *Bird
	Color           gem.Color
	Tier            int
	Payout          float64
	ComboMultiplier float64
}

// Flock owns the birds of one session, in spawn order.
type Flock struct {
	env   *core.Env
	grid  *grid.Grid
	opts  Options
	birds []*Bird
	next  int

	// OnCollect is called after every successful collection.
	OnCollect func(Collection)
}

// NewFlock creates an empty flock bound to g. The flock follows g's
// coordinate shifts so birds keep standing on the same cell content.
func NewFlock(opts Options, env *core.Env, g *grid.Grid) *Flock {
	def := DefaultOptions()
	if opts.StepDelay <= 0 {
		opts.StepDelay = def.StepDelay
	}
	if opts.ComboWindow <= 0 {
		opts.ComboWindow = def.ComboWindow
	}
	if opts.ComboTiers == nil {
		opts.ComboTiers = def.ComboTiers
	}

	f := &Flock{env: env, grid: g, opts: opts}
	g.OnShift(f.shift)
	return f
}

// Options returns the flock's configuration.
func (f *Flock) Options() Options {
	return f.opts
}

// SpawnRoster places every roster bird whose spawn roll succeeds.
func (f *Flock) SpawnRoster() {
	for _, s := range f.opts.Roster {
		if s.Chance < 1 && !f.env.RNG.Chance(s.Chance) {
			continue
		}
		b := f.Add(s.Kind, f.anchor(s.Anchor))
		f.env.Log.Info("bird spawned", "name", b.Kind.Name, "color", b.Kind.Color, "x", b.Pos.X, "y", b.Pos.Y)
	}
}

func (f *Flock) anchor(a Anchor) core.Coord {
	w, h := f.grid.Width(), f.grid.Height()
	switch a {
	case AnchorTopRight:
		return core.C(w-1, 0)
	case AnchorBottomLeft:
		return core.C(0, h-1)
	case AnchorBottomRight:
		return core.C(w-1, h-1)
	case AnchorCenter:
		return core.C(w/2, h/2)
	default:
		return core.C(0, 0)
	}
}

// Add places a new bird of kind at p and returns it.
func (f *Flock) Add(kind Kind, p core.Coord) *Bird {
	f.next++
	b := &Bird{ID: f.next, Kind: kind, Pos: p, flock: f}
	f.birds = append(f.birds, b)
	f.grid.Occupy(p.X, p.Y, b.ID)
	return b
}

// Birds returns all birds in spawn order.
func (f *Flock) Birds() []*Bird {
	return f.birds
}

// Len returns the number of birds.
func (f *Flock) Len() int {
	return len(f.birds)
}

// Get returns the bird with id, or nil.
func (f *Flock) Get(id int) *Bird {
	for _, b := range f.birds {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// OnBoard returns the birds that are not absorbed.
func (f *Flock) OnBoard() []*Bird {
	var out []*Bird
	for _, b := range f.birds {
		if b.State != Absorbed {
			out = append(out, b)
		}
	}
	return out
}

// CountState returns how many birds are in state s.
func (f *Flock) CountState(s State) int {
	n := 0
	for _, b := range f.birds {
		if b.State == s {
			n++
		}
	}
	return n
}

// ResetAll resets every bird for a new spin.
func (f *Flock) ResetAll() {
	for _, b := range f.birds {
		b.Reset()
	}
}

// Release starts every bird hunting, stagger apart, in spawn order.
func (f *Flock) Release(stagger time.Duration) {
	for i, b := range f.birds {
		f.env.Clock.After(time.Duration(i)*stagger, b.Hunt)
	}
}

// HaltAll stops every bird mid-hunt.
func (f *Flock) HaltAll() {
	for _, b := range f.birds {
		b.Halt()
	}
}

// Quiet reports whether no bird is still hunting.
func (f *Flock) Quiet() bool {
	for _, b := range f.birds {
		if b.Busy() {
			return false
		}
	}
	return true
}

// TotalCollectedSpin returns the gems collected by all birds this spin.
func (f *Flock) TotalCollectedSpin() int {
	n := 0
	for _, b := range f.birds {
		n += b.CollectedSpin
	}
	return n
}

func (f *Flock) shift(dx, dy int) {
	for _, b := range f.birds {
		b.Pos = b.Pos.Add(dx, dy)
		b.target = b.target.Add(dx, dy)
		for i := range b.path {
			b.path[i] = b.path[i].Add(dx, dy)
		}
	}
}
