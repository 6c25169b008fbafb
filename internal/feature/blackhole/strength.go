package blackhole

import (
	"fmt"

	"github.com/vovakirdan/gemflock/internal/core"
)

// Strength is the size class of a black hole.
type Strength int

const (
	Mini Strength = iota
	Standard
	Mega
)

var strengthNames = [...]string{"mini", "standard", "mega"}

func (s Strength) String() string {
	if s < Mini || s > Mega {
		return "unknown"
	}
	return strengthNames[s]
}

// ParseStrength converts a name to a Strength.
func ParseStrength(name string) (Strength, error) {
	for i, n := range strengthNames {
		if n == name {
			return Strength(i), nil
		}
	}
	return Mini, fmt.Errorf("blackhole: unknown strength %q", name)
}

// AbsorptionPower scales the visual pull of the hole.
func (s Strength) AbsorptionPower() float64 {
	switch s {
	case Mini:
		return 0.5
	case Mega:
		return 1.5
	default:
		return 1.0
	}
}

// MultiplierBonus is the strength's bonus scalar.
func (s Strength) MultiplierBonus() float64 {
	if s == Mega {
		return 2.0
	}
	return 1.0
}

// BirdCount is how many birds the hole tries to absorb.
func (s Strength) BirdCount() int {
	switch s {
	case Mini:
		return 1
	case Standard:
		return 2
	default:
		return 3
	}
}

// RollStrength draws a strength using weights for mini, standard and mega.
func RollStrength(rng *core.RNG, weights [3]float64) Strength {
	i := rng.Weighted(weights[:])
	if i < 0 {
		return Standard
	}
	return Strength(i)
}

// Outcome is the result of the chaos roll.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeMini      Outcome = "mini"
	OutcomeStandard  Outcome = "standard"
	OutcomeMegaBonus Outcome = "mega-bonus"
	OutcomeWhiteHole Outcome = "white-hole"
)

// ParseOutcome converts a name to an Outcome.
func ParseOutcome(name string) (Outcome, error) {
	switch o := Outcome(name); o {
	case OutcomeMini, OutcomeStandard, OutcomeMegaBonus, OutcomeWhiteHole:
		return o, nil
	}
	return OutcomeNone, fmt.Errorf("blackhole: unknown outcome %q", name)
}

// Phase is the lifecycle position of a black hole.
type Phase int

const (
	Inactive Phase = iota
	Spawning
	Absorbing
	Resolving
	Destroyed
)

func (p Phase) String() string {
	switch p {
	case Inactive:
		return "inactive"
	case Spawning:
		return "spawning"
	case Absorbing:
		return "absorbing"
	case Resolving:
		return "resolving"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
