package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/feature/blackhole"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
	"github.com/vovakirdan/gemflock/internal/registry"
	"github.com/vovakirdan/gemflock/internal/spin"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// GridOptions converts the board section.
func (c Config) GridOptions() grid.Options {
	g := c.Grid
	colors := make([]gem.Color, 0, len(c.Gems.Colors))
	for _, name := range c.Gems.Colors {
		colors = append(colors, gem.Color(name))
	}
	payouts := make(gem.Payouts, len(c.Gems.Payouts))
	for tier, v := range c.Gems.Payouts {
		payouts[tier] = v
	}
	return grid.Options{
		Width:     g.Width,
		Height:    g.Height,
		MaxWidth:  g.MaxWidth,
		MaxHeight: g.MaxHeight,
		Layout: grid.Layout{
			CellSize: g.CellSize,
			Spacing:  g.Spacing,
			OffsetX:  g.OffsetX,
			OffsetY:  g.OffsetY,
		},
		Settle:  ms(g.SettleMS),
		Colors:  colors,
		Payouts: payouts,
	}
}

// BirdOptions converts the bird section.
func (c Config) BirdOptions() (bird.Options, error) {
	b := c.Birds
	opts := bird.Options{
		StepDelay:     ms(b.StepDelayMS),
		RehuntDelay:   ms(b.RehuntDelayMS),
		ComboWindow:   ms(b.ComboWindowMS),
		LegendaryRate: b.LegendaryRate,
	}
	for _, t := range b.Combo {
		opts.ComboTiers = append(opts.ComboTiers, bird.ComboTier{Streak: t.Streak, Multiplier: t.Multiplier})
	}
	for _, r := range b.Roster {
		kind, ok := bird.KindByName(r.Kind)
		if !ok {
			return opts, fmt.Errorf("config: unknown bird kind %q", r.Kind)
		}
		opts.Roster = append(opts.Roster, bird.Spawn{Kind: kind, Anchor: bird.Anchor(r.Anchor), Chance: r.Chance})
	}
	return opts, nil
}

// BlackHoleOptions converts the black hole section. Staggers keep their
// defaults.
func (c Config) BlackHoleOptions() blackhole.Options {
	h := c.BlackHole
	opts := blackhole.DefaultOptions()
	copy(opts.StrengthWeights[:], h.StrengthWeights)
	copy(opts.OutcomeThresholds[:], h.OutcomeThresholds)
	opts.MegaBonusChance = h.MegaBonusChance
	opts.ActivateDelay = ms(h.ActivateDelayMS)
	opts.AbsorbDuration = ms(h.AbsorbDurationMS)
	opts.TeardownDelay = ms(h.TeardownDelayMS)
	opts.MiniRadius = h.MiniRadius
	opts.StandardRadius = h.StandardRadius
	opts.Attempts = h.Attempts
	opts.WildCount = h.WildCount
	opts.WhiteTierMin = h.WhiteTierMin
	opts.WhiteTierMax = h.WhiteTierMax
	opts.WhiteMultiplier = h.WhiteMultiplier
	opts.SpeedBonus = h.SpeedBonus
	return opts
}

// SpinOptions converts the whole configuration into machine options with
// the enabled feature triggers.
func (c Config) SpinOptions() (spin.Options, error) {
	birds, err := c.BirdOptions()
	if err != nil {
		return spin.Options{}, err
	}
	s := c.Spin
	opts := spin.Options{
		Grid:  c.GridOptions(),
		Birds: birds,

		StartBalance: s.StartBalance,
		Stake:        s.Stake,
		MinStake:     s.MinStake,
		MaxStake:     s.MaxStake,
		ClusterRate:  s.ClusterRate,

		PopulateDelay:  ms(s.PopulateDelayMS),
		ReleaseStagger: ms(s.ReleaseStaggerMS),
		FirstPoll:      ms(s.FirstPollMS),
		PollInterval:   ms(s.PollIntervalMS),
		MaxWait:        ms(s.MaxWaitMS),
		PayoutDelay:    ms(s.PayoutDelayMS),

		Features: make(map[string]registry.Feature),
	}
	if c.BlackHole.Enabled {
		opts.Triggers = append(opts.Triggers, registry.Trigger{ID: blackhole.Kind, Probability: c.BlackHole.Probability})
		opts.Features[blackhole.Kind] = blackhole.NewFeature(c.BlackHoleOptions())
	}
	return opts, nil
}

// RuntimeConfig returns viewer settings with the given seed.
func (c Config) RuntimeConfig(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.Seed = seed
	rc.TickRate = c.Viewer.TickRate
	rc.TimeScale = c.Viewer.TimeScale
	return rc
}
