package tui

import (
	"fmt"

	"github.com/vovakirdan/gemflock/internal/event"
)

// Feed keeps the last few notable engine events as display lines.
type Feed struct {
	lines []string
	limit int
}

// NewFeed creates a feed holding up to limit lines and subscribes it to b.
func NewFeed(b *event.Bus, limit int) *Feed {
	f := &Feed{limit: limit}
	b.Subscribe(f.handle)
	return f
}

func (f *Feed) handle(ev event.GameEvent) {
	line, ok := Describe(ev)
	if !ok {
		return
	}
	f.lines = append(f.lines, fmt.Sprintf("%6.1fs %s", ev.At.Seconds(), line))
	if len(f.lines) > f.limit {
		f.lines = f.lines[len(f.lines)-f.limit:]
	}
}

// Lines returns the feed, oldest first.
func (f *Feed) Lines() []string {
	return f.lines
}

// Describe turns an event into a feed line. Per-gem events are skipped.
func Describe(ev event.GameEvent) (string, bool) {
	switch p := ev.Payload.(type) {
	case event.ComboPayload:
		return fmt.Sprintf("combo x%d (%.2fx)", p.Streak, p.Multiplier), true
	case event.ClusterPayload:
		return fmt.Sprintf("cluster %s x%d pays %.2f", p.Color, p.Count, p.Payout), true
	case event.ExpandPayload:
		return fmt.Sprintf("board grew %s to %dx%d", p.Direction, p.Width, p.Height), true
	case event.FeaturePayload:
		if ev.Type == event.FeatureResolved {
			return fmt.Sprintf("%s resolved: %s", p.Kind, p.Outcome), true
		}
		return fmt.Sprintf("%s spawned (%s)", p.Kind, p.Strength), true
	case event.SpinPayload:
		return fmt.Sprintf("spin %d won %.2f, balance %.2f", p.Spin, p.TotalWin, p.Balance), true
	case event.RejectPayload:
		return "spin rejected: " + p.Reason, true
	case event.BirdPayload:
		if ev.Type == event.BirdAbsorbed {
			return p.Name + " absorbed", true
		}
		return fmt.Sprintf("%s returned at %d,%d", p.Name, p.X, p.Y), true
	case event.GemPayload:
		switch ev.Type {
		case event.ItemDropped:
			return fmt.Sprintf("%s gem lost", p.Color), true
		case event.WildSpawned:
			return fmt.Sprintf("wild marker at %d,%d", p.X, p.Y), true
		}
	}
	return "", false
}
