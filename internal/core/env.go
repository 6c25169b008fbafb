package core

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gemflock/internal/event"
)

// Env bundles what every engine component shares: the logical clock,
// the single random source, the event bus and the logger.
type Env struct {
	Clock *Scheduler
	RNG   *RNG
	Bus   *event.Bus
	Log   *log.Logger
}

// NewEnv creates an environment seeded with seed.
// A nil logger is replaced with one that discards output.
func NewEnv(seed int64, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Env{
		Clock: NewScheduler(),
		RNG:   NewRNG(seed),
		Bus:   event.NewBus(),
		Log:   logger,
	}
}

// Emit publishes an event stamped with the current logical time.
func (e *Env) Emit(t event.Type, payload any) {
	e.Bus.Emit(t, e.Clock.Now(), payload)
}
