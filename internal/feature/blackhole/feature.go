package blackhole

import "github.com/vovakirdan/gemflock/internal/registry"

// TriggerProbability is the default per-spin chance of a black hole.
const TriggerProbability = 1.0 / 50

func init() {
	registry.Register(Kind, TriggerProbability, func() registry.Feature {
		return NewFeature(DefaultOptions())
	})
}

// Feature adapts BlackHole to the feature registry.
type Feature struct {
	opts Options
}

// NewFeature creates a registry feature with the given options.
func NewFeature(opts Options) *Feature {
	return &Feature{opts: opts}
}

func (f *Feature) ID() string    { return Kind }
func (f *Feature) Title() string { return "Black Hole" }

// Start rolls a strength and runs a black hole to teardown.
func (f *Feature) Start(s registry.Session, done func(outcome string)) {
	env := s.Env()
	h := New(f.opts, env, s.Grid(), s.Flock(), s)
	strength := RollStrength(env.RNG, f.opts.StrengthWeights)
	h.Spawn(strength, func(o Outcome) {
		if done != nil {
			done(string(o))
		}
	})
}
