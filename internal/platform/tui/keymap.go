package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Spin      key.Binding
	StakeUp   key.Binding
	StakeDown key.Binding
	Feature   key.Binding
	Expand    key.Binding
	Mega      key.Binding
	Pause     key.Binding
	Turbo     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.StakeUp, k.StakeDown, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spin, k.StakeUp, k.StakeDown},
		{k.Feature, k.Expand, k.Mega},
		{k.Pause, k.Turbo, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Spin: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "spin"),
		),
		StakeUp: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("up/+", "raise stake"),
		),
		StakeDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("down/-", "lower stake"),
		),
		Feature: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "black hole"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand corner"),
		),
		Mega: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mega expand"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Turbo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "turbo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
