package config

import (
	"fmt"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/gem"
)

// Validate checks that the configuration describes a playable engine.
func (c Config) Validate() error {
	g := c.Grid
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("config: grid must be at least 1x1, got %dx%d", g.Width, g.Height)
	}
	if g.MaxWidth < g.Width || g.MaxHeight < g.Height {
		return fmt.Errorf("config: grid max %dx%d is smaller than %dx%d", g.MaxWidth, g.MaxHeight, g.Width, g.Height)
	}
	if g.SettleMS < 0 {
		return fmt.Errorf("config: negative settle window")
	}

	if len(c.Gems.Colors) == 0 {
		return fmt.Errorf("config: no gem colors")
	}
	for _, name := range c.Gems.Colors {
		if !gem.Color(name).Valid() {
			return fmt.Errorf("config: unknown gem color %q", name)
		}
	}
	for tier := range c.Gems.Payouts {
		if tier < 1 || tier > gem.MaxTier {
			return fmt.Errorf("config: payout tier %d out of range 1..%d", tier, gem.MaxTier)
		}
	}

	b := c.Birds
	if b.StepDelayMS <= 0 {
		return fmt.Errorf("config: step delay must be positive")
	}
	if b.RehuntDelayMS < 0 || b.ComboWindowMS < 0 {
		return fmt.Errorf("config: negative bird timing")
	}
	for i, t := range b.Combo {
		if t.Streak < 1 || t.Multiplier < 1 {
			return fmt.Errorf("config: combo tier %d: streak %d multiplier %v", i, t.Streak, t.Multiplier)
		}
		if i > 0 && t.Streak <= b.Combo[i-1].Streak {
			return fmt.Errorf("config: combo tiers must ascend by streak")
		}
	}
	for _, r := range b.Roster {
		if _, ok := bird.KindByName(r.Kind); !ok {
			return fmt.Errorf("config: unknown bird kind %q", r.Kind)
		}
		if !bird.ValidAnchor(bird.Anchor(r.Anchor)) {
			return fmt.Errorf("config: unknown anchor %q", r.Anchor)
		}
		if r.Chance < 0 || r.Chance > 1 {
			return fmt.Errorf("config: roster chance %v out of range 0..1", r.Chance)
		}
	}

	s := c.Spin
	if s.Stake <= 0 {
		return fmt.Errorf("config: stake must be positive")
	}
	if s.MinStake > 0 && s.Stake < s.MinStake || s.MaxStake > 0 && s.Stake > s.MaxStake {
		return fmt.Errorf("config: stake %v outside %v..%v", s.Stake, s.MinStake, s.MaxStake)
	}
	if s.StartBalance < 0 || s.ClusterRate < 0 {
		return fmt.Errorf("config: negative balance or cluster rate")
	}
	if s.PollIntervalMS <= 0 || s.MaxWaitMS <= 0 {
		return fmt.Errorf("config: poll interval and max wait must be positive")
	}

	h := c.BlackHole
	if h.Probability < 0 || h.Probability > 1 {
		return fmt.Errorf("config: black hole probability %v out of range 0..1", h.Probability)
	}
	if len(h.StrengthWeights) != 3 || len(h.OutcomeThresholds) != 3 {
		return fmt.Errorf("config: black hole needs 3 strength weights and 3 outcome thresholds")
	}
	for i := 1; i < 3; i++ {
		if h.OutcomeThresholds[i] < h.OutcomeThresholds[i-1] {
			return fmt.Errorf("config: outcome thresholds must ascend")
		}
	}
	if h.WhiteTierMin < 1 || h.WhiteTierMax > gem.MaxTier || h.WhiteTierMin > h.WhiteTierMax {
		return fmt.Errorf("config: white hole tiers %d..%d invalid", h.WhiteTierMin, h.WhiteTierMax)
	}
	if h.Attempts < 1 {
		return fmt.Errorf("config: black hole needs at least one placement attempt")
	}

	if c.Viewer.TickRate < 1 || c.Viewer.TimeScale <= 0 {
		return fmt.Errorf("config: viewer tick rate and time scale must be positive")
	}
	return nil
}
