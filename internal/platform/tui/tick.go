// Package tui provides the Bubble Tea front end for the engine: a live board
// viewer, the spin history table and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the logical clock.
type TickMsg time.Time

// tickInterval returns the real time between frames.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 30
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
