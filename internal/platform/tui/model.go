package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/feature/blackhole"
	"github.com/vovakirdan/gemflock/internal/grid"
	"github.com/vovakirdan/gemflock/internal/spin"
	"github.com/vovakirdan/gemflock/internal/storage"
)

const (
	feedLines    = 8
	turboFactor  = 8
	minTimeScale = 0.1
	maxTimeScale = 10000
)

// stakeSteps are the stake levels cycled by the stake keys.
var stakeSteps = []float64{0.2, 0.5, 1, 2, 5, 10, 20, 50, 100, 200}

var corners = []grid.Corner{grid.TopLeft, grid.TopRight, grid.BottomRight, grid.BottomLeft}

// Model is the Bubble Tea model of the play screen. It drives the machine's
// logical clock from real ticks.
type Model struct {
	machine *spin.Machine
	store   *storage.Store
	player  string
	config  core.RuntimeConfig
	feed    *Feed
	keys    KeyMap
	help    help.Model

	savedSpin int
	corner    int
	paused    bool
	turbo     bool
	width     int
	height    int
	status    string
	quitting  bool
}

// NewModel creates the play screen for machine. A saved wallet for player
// replaces the starting balance.
func NewModel(machine *spin.Machine, store *storage.Store, player string, cfg core.RuntimeConfig) Model {
	if store != nil {
		if balance, err := store.Wallet(player); err == nil {
			machine.SetBalance(balance)
		}
	}
	return Model{
		machine: machine,
		store:   store,
		player:  player,
		config:  cfg,
		feed:    NewFeed(machine.Env().Bus, feedLines),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.saveWallet()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Spin):
		if st := m.machine.StartSpin(); st != spin.Accepted {
			m.status = "cannot spin: " + st.String()
		} else {
			m.status = ""
		}

	case key.Matches(msg, m.keys.StakeUp):
		m.stepStake(1)

	case key.Matches(msg, m.keys.StakeDown):
		m.stepStake(-1)

	case key.Matches(msg, m.keys.Feature):
		if !m.machine.TriggerFeature(blackhole.Kind) {
			m.status = "feature unavailable"
		}

	case key.Matches(msg, m.keys.Expand):
		c := corners[m.corner%len(corners)]
		if m.machine.ExpandFromCorner(c) {
			m.corner++
		} else {
			m.status = "board cannot grow there"
		}

	case key.Matches(msg, m.keys.Mega):
		m.machine.ExpandMega()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Turbo):
		m.turbo = !m.turbo

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// stepStake moves the stake dir steps along stakeSteps.
func (m *Model) stepStake(dir int) {
	cur := m.machine.Stake()
	i := 0
	for i < len(stakeSteps)-1 && stakeSteps[i] < cur {
		i++
	}
	i = core.Clamp(i+dir, 0, len(stakeSteps)-1)
	if !m.machine.SetStake(stakeSteps[i]) {
		m.status = "stake locked"
	}
}

// handleTick advances the logical clock by one frame of real time and
// persists any spin that finished during it.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		d := time.Duration(float64(tickInterval(m.config.TickRate)) * m.scale())
		m.machine.Advance(d)
	}

	if m.machine.State() == spin.Idle {
		if last := m.machine.Last(); last.Spin > m.savedSpin {
			m.saveSpin(last)
			m.savedSpin = last.Spin
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) scale() float64 {
	s := m.config.TimeScale
	if s <= 0 {
		s = 1
	}
	if m.turbo {
		s *= turboFactor
	}
	return core.ClampF(s, minTimeScale, maxTimeScale)
}

func (m Model) saveSpin(r spin.Result) {
	if m.store == nil {
		return
	}
	log := m.machine.Env().Log
	if _, err := m.store.SaveSpin(storage.FromResult(m.player, m.config.Seed, r)); err != nil {
		log.Warn("cannot save spin", "error", err)
	}
	m.saveWallet()
}

func (m Model) saveWallet() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveWallet(m.player, m.machine.Balance()); err != nil {
		m.machine.Env().Log.Warn("cannot save wallet", "error", err)
	}
}

// View renders the board, the flock, the economy panel and the event feed.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	g := m.machine.Grid()
	f := m.machine.Flock()

	board := panelStyle.Render(RenderBoard(g, f))
	side := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.renderStatus()),
		panelStyle.Render(RenderBirds(f)),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, board, " ", side)

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("GEMFLOCK", m.width)))
	b.WriteString("\n\n")
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.renderFeed()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderStatus() string {
	mc := m.machine
	info := mc.Grid().Info()
	lines := []string{
		fmt.Sprintf("player   %s", m.player),
		fmt.Sprintf("balance  %.2f", mc.Balance()),
		fmt.Sprintf("stake    %.2f", mc.Stake()),
		fmt.Sprintf("mult     x%.2g", mc.Multiplier()),
		fmt.Sprintf("state    %s", mc.State()),
		fmt.Sprintf("board    %dx%d", info.Width, info.Height),
		fmt.Sprintf("spins    %d", mc.Spins()),
	}
	if last := mc.Last(); last.Spin > 0 {
		lines = append(lines, fmt.Sprintf("last win %.2f", last.Win))
	}
	if feat := mc.ActiveFeature(); feat != "" {
		lines = append(lines, "feature  "+feat)
	}
	if m.paused {
		lines = append(lines, dimStyle.Render("paused"))
	}
	if m.turbo {
		lines = append(lines, dimStyle.Render("turbo"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFeed() string {
	lines := m.feed.Lines()
	if len(lines) == 0 {
		return dimStyle.Render("press space to spin")
	}
	return strings.Join(lines, "\n")
}

// Run starts the Bubble Tea program with a play screen for machine.
func Run(machine *spin.Machine, store *storage.Store, player string, cfg core.RuntimeConfig) error {
	model := NewModel(machine, store, player, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
