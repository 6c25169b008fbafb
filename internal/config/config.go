// Package config provides YAML-based engine configuration for the board,
// gems, birds, spin economy and features.
package config

// Config is the full engine configuration.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Gems      GemConfig       `yaml:"gems"`
	Birds     BirdConfig      `yaml:"birds"`
	Spin      SpinConfig      `yaml:"spin"`
	BlackHole BlackHoleConfig `yaml:"black_hole"`
	Viewer    ViewerConfig    `yaml:"viewer"`
}

// GridConfig defines board bounds and layout.
type GridConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	MaxWidth  int     `yaml:"max_width"`
	MaxHeight int     `yaml:"max_height"`
	CellSize  float64 `yaml:"cell_size"`
	Spacing   float64 `yaml:"spacing"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
	SettleMS  int     `yaml:"settle_ms"` // expansion settle window
}

// GemConfig defines the population palette and tier payouts.
type GemConfig struct {
	Colors  []string        `yaml:"colors"`
	Payouts map[int]float64 `yaml:"payouts"`
}

// BirdConfig defines bird movement, combos and the roster.
type BirdConfig struct {
	StepDelayMS   int               `yaml:"step_delay_ms"`
	RehuntDelayMS int               `yaml:"rehunt_delay_ms"`
	ComboWindowMS int               `yaml:"combo_window_ms"`
	LegendaryRate float64           `yaml:"legendary_rate"`
	Combo         []ComboTierConfig `yaml:"combo"`
	Roster        []RosterConfig    `yaml:"roster"`
}

// ComboTierConfig maps a streak to a multiplier.
type ComboTierConfig struct {
	Streak     int     `yaml:"streak"`
	Multiplier float64 `yaml:"multiplier"`
}

// RosterConfig is one spawn slot.
type RosterConfig struct {
	Kind   string  `yaml:"kind"`
	Anchor string  `yaml:"anchor"`
	Chance float64 `yaml:"chance"`
}

// SpinConfig defines the economy and spin timings.
type SpinConfig struct {
	StartBalance     float64 `yaml:"start_balance"`
	Stake            float64 `yaml:"stake"`
	MinStake         float64 `yaml:"min_stake"`
	MaxStake         float64 `yaml:"max_stake"`
	ClusterRate      float64 `yaml:"cluster_rate"`
	PopulateDelayMS  int     `yaml:"populate_delay_ms"`
	ReleaseStaggerMS int     `yaml:"release_stagger_ms"`
	FirstPollMS      int     `yaml:"first_poll_ms"`
	PollIntervalMS   int     `yaml:"poll_interval_ms"`
	MaxWaitMS        int     `yaml:"max_wait_ms"`
	PayoutDelayMS    int     `yaml:"payout_delay_ms"`
}

// BlackHoleConfig tunes the black hole feature.
type BlackHoleConfig struct {
	Enabled           bool      `yaml:"enabled"`
	Probability       float64   `yaml:"probability"` // per spin
	StrengthWeights   []float64 `yaml:"strength_weights"`
	OutcomeThresholds []float64 `yaml:"outcome_thresholds"`
	MegaBonusChance   float64   `yaml:"mega_bonus_chance"`
	ActivateDelayMS   int       `yaml:"activate_delay_ms"`
	AbsorbDurationMS  int       `yaml:"absorb_duration_ms"`
	TeardownDelayMS   int       `yaml:"teardown_delay_ms"`
	MiniRadius        int       `yaml:"mini_radius"`
	StandardRadius    int       `yaml:"standard_radius"`
	Attempts          int       `yaml:"attempts"`
	WildCount         int       `yaml:"wild_count"`
	WhiteTierMin      int       `yaml:"white_tier_min"`
	WhiteTierMax      int       `yaml:"white_tier_max"`
	WhiteMultiplier   float64   `yaml:"white_multiplier"`
	SpeedBonus        float64   `yaml:"speed_bonus"`
}

// ViewerConfig defines how the terminal viewer drives the logical clock.
type ViewerConfig struct {
	TickRate  int     `yaml:"tick_rate"`  // frames per second
	TimeScale float64 `yaml:"time_scale"` // logical ms per real ms
}
