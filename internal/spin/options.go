package spin

import (
	"time"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/grid"
	"github.com/vovakirdan/gemflock/internal/registry"
)

// Options configures a Machine.
type Options struct {
	Grid  grid.Options
	Birds bird.Options

	StartBalance float64
	Stake        float64
	MinStake     float64
	MaxStake     float64
	ClusterRate  float64 // payout per cluster member, as a share of the stake

	PopulateDelay  time.Duration // population to collection start
	ReleaseStagger time.Duration
	FirstPoll      time.Duration
	PollInterval   time.Duration
	MaxWait        time.Duration // collection is forced to end after this
	PayoutDelay    time.Duration // payout to spin end

	// Triggers are rolled in order after every spin; the first hit starts.
	Triggers []registry.Trigger
	// Features overrides registry instances by ID, e.g. to pass tuned options.
	Features map[string]registry.Feature
}

// DefaultOptions returns the reference machine with no feature triggers.
func DefaultOptions() Options {
	return Options{
		Grid:  grid.DefaultOptions(),
		Birds: bird.DefaultOptions(),

		StartBalance: 1000,
		Stake:        1,
		MinStake:     0.20,
		MaxStake:     200,
		ClusterRate:  0.5,

		PopulateDelay:  1000 * time.Millisecond,
		ReleaseStagger: 100 * time.Millisecond,
		FirstPoll:      5000 * time.Millisecond,
		PollInterval:   1000 * time.Millisecond,
		MaxWait:        30 * time.Second,
		PayoutDelay:    1000 * time.Millisecond,
	}
}
