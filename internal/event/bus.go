package event

import "time"

// GameEvent is one emitted event stamped with the logical time it happened.
type GameEvent struct {
	Type    Type
	At      time.Duration
	Payload any
}

// Handler consumes events.
type Handler func(GameEvent)

// Bus delivers events synchronously to subscribers in subscription order.
// The engine is single-threaded, so the bus needs no locking.
// A nil *Bus is valid and drops everything.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for every future event.
func (b *Bus) Subscribe(h Handler) {
	if b == nil || h == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

// Emit delivers an event to all subscribers.
func (b *Bus) Emit(t Type, at time.Duration, payload any) {
	if b == nil {
		return
	}
	ev := GameEvent{Type: t, At: at, Payload: payload}
	for _, h := range b.handlers {
		h(ev)
	}
}

// Recorder keeps every event it sees. Useful for tests and replays.
type Recorder struct {
	Events []GameEvent
}

// Attach subscribes the recorder to b and returns it.
func (r *Recorder) Attach(b *Bus) *Recorder {
	b.Subscribe(func(ev GameEvent) {
		r.Events = append(r.Events, ev)
	})
	return r
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t Type) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Of returns the recorded events of type t in emission order.
func (r *Recorder) Of(t Type) []GameEvent {
	var out []GameEvent
	for _, ev := range r.Events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
