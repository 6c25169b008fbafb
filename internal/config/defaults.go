package config

import (
	_ "embed"
)

//go:embed defaults/gemflock.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded default configuration. It matches the
// embedded YAML and is used when that cannot be parsed.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:     6,
			Height:    6,
			MaxWidth:  8,
			MaxHeight: 8,
			CellSize:  80,
			Spacing:   4,
			OffsetX:   400,
			OffsetY:   150,
			SettleMS:  600,
		},
		Gems: GemConfig{
			Colors: []string{"red", "blue", "green", "yellow", "purple", "orange"},
			Payouts: map[int]float64{
				2: 1,
				3: 2,
				4: 4,
				5: 8,
				6: 12,
				7: 18,
				8: 26,
				9: 40,
			},
		},
		Birds: BirdConfig{
			StepDelayMS:   300,
			RehuntDelayMS: 200,
			ComboWindowMS: 1000,
			LegendaryRate: 2,
			Combo: []ComboTierConfig{
				{Streak: 3, Multiplier: 1.1},
				{Streak: 5, Multiplier: 1.25},
				{Streak: 7, Multiplier: 1.5},
				{Streak: 10, Multiplier: 2.0},
			},
			Roster: []RosterConfig{
				{Kind: "captain", Anchor: "top-left", Chance: 1},
				{Kind: "navigator", Anchor: "top-right", Chance: 1},
				{Kind: "engineer", Anchor: "bottom-left", Chance: 1},
				{Kind: "scout", Anchor: "bottom-right", Chance: 1},
				{Kind: "mystic", Anchor: "center", Chance: 0.05},
			},
		},
		Spin: SpinConfig{
			StartBalance:     1000,
			Stake:            1,
			MinStake:         0.2,
			MaxStake:         200,
			ClusterRate:      0.5,
			PopulateDelayMS:  1000,
			ReleaseStaggerMS: 100,
			FirstPollMS:      5000,
			PollIntervalMS:   1000,
			MaxWaitMS:        30000,
			PayoutDelayMS:    1000,
		},
		BlackHole: BlackHoleConfig{
			Enabled:           true,
			Probability:       0.02,
			StrengthWeights:   []float64{40, 35, 25},
			OutcomeThresholds: []float64{0.40, 0.75, 0.95},
			MegaBonusChance:   0.5,
			ActivateDelayMS:   1000,
			AbsorbDurationMS:  2000,
			TeardownDelayMS:   2000,
			MiniRadius:        3,
			StandardRadius:    5,
			Attempts:          20,
			WildCount:         3,
			WhiteTierMin:      5,
			WhiteTierMax:      7,
			WhiteMultiplier:   3,
			SpeedBonus:        1.5,
		},
		Viewer: ViewerConfig{
			TickRate:  30,
			TimeScale: 1,
		},
	}
}
