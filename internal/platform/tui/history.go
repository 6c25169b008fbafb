package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemflock/internal/storage"
)

// History layout constants
const (
	maxHistory = 100 // Max spins to load
)

// HistoryView selects which spins the table lists.
type HistoryView int

const (
	ViewRecent HistoryView = iota
	ViewBest
)

func (v HistoryView) String() string {
	if v == ViewBest {
		return "BEST WINS"
	}
	return "RECENT SPINS"
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.SwitchView, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "recent/best"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the spin history screen.
type HistoryModel struct {
	store    *storage.Store
	player   string
	view     HistoryView
	spins    []storage.SpinRecord
	stats    *storage.PlayerStats
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history screen for player.
func NewHistoryModel(store *storage.Store, player string, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		player: player,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Spin", Width: 6},
		{Title: "Stake", Width: 8},
		{Title: "Win", Width: 10},
		{Title: "Mult", Width: 6},
		{Title: "Balance", Width: 10},
		{Title: "Feature", Width: 12},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current view and the player's stats.
func (m *HistoryModel) load() {
	m.spins = nil
	m.stats = nil
	if m.store != nil {
		var err error
		if m.view == ViewBest {
			m.spins, err = m.store.BestSpins(m.player, maxHistory)
		} else {
			m.spins, err = m.store.RecentSpins(m.player, maxHistory)
		}
		if err != nil {
			m.spins = nil
		}
		if stats, err := m.store.Stats(m.player); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(SpinRows(m.spins))
	m.table.GotoTop()
}

// SpinRows formats spin records as table rows.
func SpinRows(spins []storage.SpinRecord) []table.Row {
	rows := make([]table.Row, len(spins))
	for i, s := range spins {
		feature := s.Outcome
		if feature == "" {
			feature = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", s.Spin),
			fmt.Sprintf("%.2f", s.Stake),
			fmt.Sprintf("%.2f", s.Win),
			fmt.Sprintf("x%.2g", s.Multiplier),
			fmt.Sprintf("%.2f", s.Balance),
			feature,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			m.view = (m.view + 1) % 2
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(SpinRows(m.spins))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("%s - %s", m.view, m.player)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Spins > 0 {
		b.WriteString(fmt.Sprintf("spins %d  staked %.2f  won %.2f  best %.2f  rtp %.1f%%  features %d\n\n",
			m.stats.Spins, m.stats.TotalStake, m.stats.TotalWin, m.stats.BestWin, m.stats.RTP()*100, m.stats.Features))
	}

	if len(m.spins) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(panelStyle.Render(empty.Render("No spins recorded yet.\nRun 'gemflock play' to start!")))
	} else {
		b.WriteString(panelStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunHistory runs the history screen.
func RunHistory(store *storage.Store, player string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, player, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
