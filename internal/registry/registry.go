// Package registry provides a global registry of random spin features.
// Features register themselves in init() functions, allowing the spin
// machine to roll and start them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/grid"
)

// Session is the part of a running game a feature may act on.
type Session interface {
	Env() *core.Env
	Grid() *grid.Grid
	Flock() *bird.Flock

	// Multiplier is the global payout multiplier.
	Multiplier() float64
	SetMultiplier(m float64)
}

// Feature is a timed event started at the end of a spin.
type Feature interface {
	// ID returns a unique identifier (e.g., "black-hole"), used in config and CLI.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Start runs the feature against s. done must be called exactly once,
	// after the feature has fully torn down, with the resolved outcome name.
	Start(s Session, done func(outcome string))
}

// Info contains metadata about a registered feature.
type Info struct {
	ID          string
	Title       string
	Probability float64 // default trigger chance per spin
}

// Factory creates a new feature instance.
type Factory func() Feature

type entry struct {
	factory     Factory
	title       string
	probability float64
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a feature factory with its default per-spin trigger chance.
// Panics if a feature with the same ID is already registered.
func Register(id string, probability float64, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: feature %q already registered", id))
	}

	entries[id] = entry{
		factory:     f,
		title:       f().Title(),
		probability: probability,
	}
}

// List returns all registered features sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for id, e := range entries {
		result = append(result, Info{
			ID:          id,
			Title:       e.title,
			Probability: e.probability,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a feature by ID.
func Create(id string) (Feature, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown feature %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a feature with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Trigger pairs a feature ID with its chance of starting after a spin.
type Trigger struct {
	ID          string
	Probability float64
}

// Defaults returns a trigger for every registered feature at its default chance.
func Defaults() []Trigger {
	infos := List()
	out := make([]Trigger, 0, len(infos))
	for _, info := range infos {
		out = append(out, Trigger{ID: info.ID, Probability: info.Probability})
	}
	return out
}
