package bird

import (
	"strings"
	"time"

	"github.com/vovakirdan/gemflock/internal/gem"
)

// Kind is a roster entry: who the bird is and how it moves.
type Kind struct {
	Name  string
	Color gem.Color
	Speed float64
}

// Anchor names where on the board a roster bird spawns.
type Anchor string

const (
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorCenter      Anchor = "center"
)

// Spawn is a roster slot. Chance below 1 makes the slot a random rare spawn.
type Spawn struct {
	Kind   Kind
	Anchor Anchor
	Chance float64
}

// ComboTier maps a streak threshold to a payout multiplier.
type ComboTier struct {
	Streak     int
	Multiplier float64
}

// Options configures bird behavior.
type Options struct {
	StepDelay     time.Duration // per cell at speed 1
	RehuntDelay   time.Duration // pause after a collection before the next search
	ComboWindow   time.Duration
	ComboTiers    []ComboTier // ascending by Streak
	LegendaryRate float64     // speed factor while legendary
	Roster        []Spawn
}

var (
	Captain   = Kind{Name: "Captain", Color: gem.Red, Speed: 1.2}
	Navigator = Kind{Name: "Navigator", Color: gem.Blue, Speed: 1}
	Engineer  = Kind{Name: "Engineer", Color: gem.Green, Speed: 1}
	Scout     = Kind{Name: "Scout", Color: gem.Yellow, Speed: 1}
	Mystic    = Kind{Name: "Mystic", Color: gem.Purple, Speed: 1}
	Berserker = Kind{Name: "Berserker", Color: gem.Orange, Speed: 1}
)

// Kinds lists every known bird kind.
var Kinds = []Kind{Captain, Navigator, Engineer, Scout, Mystic, Berserker}

// KindByName finds a kind by its case-insensitive name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if strings.EqualFold(k.Name, name) {
			return k, true
		}
	}
	return Kind{}, false
}

// ValidAnchor reports whether a is a known spawn anchor.
func ValidAnchor(a Anchor) bool {
	switch a {
	case AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight, AnchorCenter:
		return true
	}
	return false
}

// DefaultOptions returns the reference flock: four corner birds and a 5%
// Mystic in the center.
func DefaultOptions() Options {
	return Options{
		StepDelay:   300 * time.Millisecond,
		RehuntDelay: 200 * time.Millisecond,
		ComboWindow: time.Second,
		ComboTiers: []ComboTier{
			{Streak: 3, Multiplier: 1.1},
			{Streak: 5, Multiplier: 1.25},
			{Streak: 7, Multiplier: 1.5},
			{Streak: 10, Multiplier: 2.0},
		},
		LegendaryRate: 2,
		Roster: []Spawn{
			{Kind: Captain, Anchor: AnchorTopLeft, Chance: 1},
			{Kind: Navigator, Anchor: AnchorTopRight, Chance: 1},
			{Kind: Engineer, Anchor: AnchorBottomLeft, Chance: 1},
			{Kind: Scout, Anchor: AnchorBottomRight, Chance: 1},
			{Kind: Mystic, Anchor: AnchorCenter, Chance: 0.05},
		},
	}
}

// ComboMultiplier returns the multiplier for streak under tiers.
func ComboMultiplier(tiers []ComboTier, streak int) float64 {
	m := 1.0
	for _, t := range tiers {
		if streak >= t.Streak {
			m = t.Multiplier
		}
	}
	return m
}
