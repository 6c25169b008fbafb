package blackhole

import "time"

// Options configures black hole timing, odds and redistribution.
type Options struct {
	StrengthWeights [3]float64 // mini, standard, mega
	// OutcomeThresholds are cumulative roll limits for mini, standard and
	// mega-bonus when the hole is not mega. Rolls above the last give white-hole.
	OutcomeThresholds [3]float64
	// MegaBonusChance is the mega-bonus share for mega holes; the rest is white-hole.
	MegaBonusChance float64

	ActivateDelay  time.Duration
	AbsorbDuration time.Duration
	TeardownDelay  time.Duration

	MiniRadius     int
	StandardRadius int
	Attempts       int

	MiniStagger     time.Duration
	StandardStagger time.Duration
	MegaStagger     time.Duration
	BirdStagger     time.Duration
	RefillDelay     time.Duration
	RefillStagger   time.Duration
	WildStagger     time.Duration

	WildCount       int
	WhiteTierMin    int
	WhiteTierMax    int
	WhiteMultiplier float64
	SpeedBonus      float64
}

// DefaultOptions returns the reference black hole.
func DefaultOptions() Options {
	return Options{
		StrengthWeights:   [3]float64{40, 35, 25},
		OutcomeThresholds: [3]float64{0.40, 0.75, 0.95},
		MegaBonusChance:   0.5,

		ActivateDelay:  1000 * time.Millisecond,
		AbsorbDuration: 2000 * time.Millisecond,
		TeardownDelay:  2000 * time.Millisecond,

		MiniRadius:     3,
		StandardRadius: 5,
		Attempts:       20,

		MiniStagger:     100 * time.Millisecond,
		StandardStagger: 80 * time.Millisecond,
		MegaStagger:     60 * time.Millisecond,
		BirdStagger:     300 * time.Millisecond,
		RefillDelay:     500 * time.Millisecond,
		RefillStagger:   20 * time.Millisecond,
		WildStagger:     200 * time.Millisecond,

		WildCount:       3,
		WhiteTierMin:    5,
		WhiteTierMax:    7,
		WhiteMultiplier: 3,
		SpeedBonus:      1.5,
	}
}
