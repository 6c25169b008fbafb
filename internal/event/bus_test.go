package event

import (
	"testing"
	"time"
)

func TestBusDeliversInOrder(t *testing.T) {
	bus := NewBus()
	var seen []string

	bus.Subscribe(func(ev GameEvent) { seen = append(seen, "a:"+ev.Type.String()) })
	bus.Subscribe(func(ev GameEvent) { seen = append(seen, "b:"+ev.Type.String()) })

	bus.Emit(GemSpawned, 0, GemPayload{})
	bus.Emit(SpinResolved, time.Second, SpinPayload{})

	expected := []string{"a:gem-spawned", "b:gem-spawned", "a:spin-resolved", "b:spin-resolved"}
	if len(seen) != len(expected) {
		t.Fatalf("got %d deliveries, expected %d", len(seen), len(expected))
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("delivery %d = %q, expected %q", i, seen[i], expected[i])
		}
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	bus.Subscribe(func(GameEvent) {})
	bus.Emit(GemCollected, 0, nil)
}

func TestRecorder(t *testing.T) {
	bus := NewBus()
	rec := (&Recorder{}).Attach(bus)

	bus.Emit(GemCollected, 10*time.Millisecond, GemPayload{Color: "red", Tier: 2, Payout: 1})
	bus.Emit(GemCollected, 20*time.Millisecond, GemPayload{Color: "blue", Tier: 1, Payout: 1})
	bus.Emit(ClusterFound, 30*time.Millisecond, ClusterPayload{Color: "red", Count: 3})

	if rec.Count(GemCollected) != 2 {
		t.Errorf("Count(GemCollected) = %d, expected 2", rec.Count(GemCollected))
	}
	clusters := rec.Of(ClusterFound)
	if len(clusters) != 1 {
		t.Fatalf("Of(ClusterFound) returned %d events", len(clusters))
	}
	p, ok := clusters[0].Payload.(ClusterPayload)
	if !ok || p.Count != 3 {
		t.Errorf("unexpected cluster payload %#v", clusters[0].Payload)
	}
	if clusters[0].At != 30*time.Millisecond {
		t.Errorf("At = %v, expected 30ms", clusters[0].At)
	}

	rec.Reset()
	if len(rec.Events) != 0 {
		t.Error("Reset should drop events")
	}
}
