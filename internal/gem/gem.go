// Package gem implements the tiered, colored collectible that fills the board.
package gem

// MaxTier is the highest tier a gem can reach.
const MaxTier = 9

// Payouts maps tier to payout. Tiers without an entry pay 1.
type Payouts map[int]float64

// DefaultPayouts is the reference tier table.
var DefaultPayouts = Payouts{
	2: 1,
	3: 2,
	4: 4,
	5: 8,
	6: 12,
	7: 18,
	8: 26,
	9: 40,
}

// Payout returns the payout of tier.
func (p Payouts) Payout(tier int) float64 {
	if v, ok := p[tier]; ok {
		return v
	}
	return 1
}

// Gem is a single collectible. A gem is owned by exactly one grid cell
// (or by an absorbed-item record while a feature holds it).
type Gem struct {
	Color     Color
	Tier      int
	Collected bool
	Exploded  bool

	upgrading bool
	payouts   Payouts
}

// New creates a tier-clamped gem using the default payout table.
func New(c Color, tier int) *Gem {
	return NewWithPayouts(c, tier, nil)
}

// NewWithPayouts creates a gem that pays from table. A nil table means DefaultPayouts.
func NewWithPayouts(c Color, tier int, table Payouts) *Gem {
	if tier < 1 {
		tier = 1
	}
	if tier > MaxTier {
		tier = MaxTier
	}
	return &Gem{Color: c, Tier: tier, payouts: table}
}

// Active reports whether the gem is still on the board and payable.
func (g *Gem) Active() bool {
	return g != nil && !g.Collected && !g.Exploded
}

// Upgrading reports whether an upgrade is in flight.
func (g *Gem) Upgrading() bool {
	return g.upgrading
}

// Upgrade raises the tier by one. It is a no-op at max tier or while a previous
// upgrade has not settled. Returns whether the tier changed.
func (g *Gem) Upgrade() bool {
	if g.upgrading || g.Tier >= InfoOf(g.Color).MaxTier {
		return false
	}
	g.upgrading = true
	g.Tier++
	return true
}

// Settle ends the upgrade window so the next Upgrade can apply.
func (g *Gem) Settle() {
	g.upgrading = false
}

// Collect marks the gem collected and returns its payout.
// Collecting twice returns (0, false).
func (g *Gem) Collect() (float64, bool) {
	if g.Collected || g.Exploded {
		return 0, false
	}
	g.Collected = true
	return g.Payout(), true
}

// Payout returns the gem's current tier payout.
func (g *Gem) Payout() float64 {
	table := g.payouts
	if table == nil {
		table = DefaultPayouts
	}
	return table.Payout(g.Tier)
}

// Transform changes the color, keeping the tier.
func (g *Gem) Transform(c Color) {
	g.Color = c
}

// Explode destroys the gem without paying.
func (g *Gem) Explode() {
	if g.Collected {
		return
	}
	g.Exploded = true
}

// Clone returns an independent copy.
func (g *Gem) Clone() *Gem {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}
