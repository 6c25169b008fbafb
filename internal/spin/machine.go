// Package spin sequences a spin: stake, populate, bird collection, cluster
// payout and the post-spin feature roll.
package spin

import (
	"time"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
	"github.com/vovakirdan/gemflock/internal/registry"
)

// State is the machine's phase.
type State int

const (
	Idle State = iota
	Spinning
	Collecting
	Feature
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Spinning:
		return "spinning"
	case Collecting:
		return "collecting"
	case Feature:
		return "feature"
	default:
		return "unknown"
	}
}

// Status is the answer to a spin request.
type Status int

const (
	Accepted Status = iota
	RejectedBusy
	RejectedBalance
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case RejectedBusy:
		return "busy"
	case RejectedBalance:
		return "insufficient balance"
	default:
		return "unknown"
	}
}

// ClusterWin is one paid cluster.
type ClusterWin struct {
	grid.Cluster
	Payout float64
}

// Result summarizes a finished spin.
type Result struct {
	Spin       int
	Stake      float64
	Win        float64
	Multiplier float64
	Balance    float64
	Clusters   []ClusterWin
	Collected  int
	ForcedEnd  bool
	Feature    string
	Outcome    string
	Duration   time.Duration
}

// Machine is the spin orchestrator. It is single-threaded: all calls must
// come from one goroutine.
type Machine struct {
	env   *core.Env
	grid  *grid.Grid
	flock *bird.Flock
	opts  Options

	state      State
	balance    float64
	stake      float64
	multiplier float64
	spins      int
	meters     map[gem.Color]float64

	current      Result
	last         Result
	spinStart    time.Duration
	collectStart time.Duration
	feature      string
}

// New creates a machine with a fresh board and the roster birds.
func New(opts Options, env *core.Env) *Machine {
	if opts.ClusterRate <= 0 {
		opts.ClusterRate = DefaultOptions().ClusterRate
	}
	g := grid.New(opts.Grid, env)
	f := bird.NewFlock(opts.Birds, env, g)

	m := &Machine{
		env:        env,
		grid:       g,
		flock:      f,
		opts:       opts,
		balance:    opts.StartBalance,
		stake:      opts.Stake,
		multiplier: 1,
		meters:     make(map[gem.Color]float64),
	}
	f.OnCollect = m.meter
	f.SpawnRoster()
	return m
}

// Env returns the shared engine environment.
func (m *Machine) Env() *core.Env { return m.env }

// Grid returns the board.
func (m *Machine) Grid() *grid.Grid { return m.grid }

// Flock returns the birds.
func (m *Machine) Flock() *bird.Flock { return m.flock }

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Balance returns the wallet balance.
func (m *Machine) Balance() float64 { return m.balance }

// SetBalance replaces the wallet balance, e.g. when restoring a session.
func (m *Machine) SetBalance(b float64) { m.balance = b }

// Stake returns the current stake.
func (m *Machine) Stake() float64 { return m.stake }

// Spins returns the number of accepted spins.
func (m *Machine) Spins() int { return m.spins }

// Multiplier returns the global payout multiplier.
func (m *Machine) Multiplier() float64 { return m.multiplier }

// SetMultiplier replaces the global payout multiplier.
func (m *Machine) SetMultiplier(v float64) { m.multiplier = v }

// Last returns the most recent finished spin.
func (m *Machine) Last() Result { return m.last }

// ActiveFeature returns the running feature ID, or "".
func (m *Machine) ActiveFeature() string { return m.feature }

// Meters returns a copy of this spin's per-color collection meters.
func (m *Machine) Meters() map[gem.Color]float64 {
	out := make(map[gem.Color]float64, len(m.meters))
	for k, v := range m.meters {
		out[k] = v
	}
	return out
}

// SetStake changes the stake. Only allowed while idle and within bounds.
func (m *Machine) SetStake(s float64) bool {
	if m.state != Idle {
		return false
	}
	if (m.opts.MinStake > 0 && s < m.opts.MinStake) || (m.opts.MaxStake > 0 && s > m.opts.MaxStake) || s <= 0 {
		return false
	}
	m.stake = s
	return true
}

// Advance moves the logical clock forward by d, running everything due.
func (m *Machine) Advance(d time.Duration) int {
	return m.env.Clock.Advance(d)
}

// Spin runs a whole spin, including any triggered feature, to idle.
func (m *Machine) Spin() (Result, Status) {
	if st := m.StartSpin(); st != Accepted {
		return Result{}, st
	}
	m.env.Clock.RunUntil(func() bool { return m.state == Idle })
	return m.last, Accepted
}

// StartSpin begins a spin and returns immediately; drive it with Advance.
// A rejected request changes nothing.
func (m *Machine) StartSpin() Status {
	if m.state != Idle {
		return m.reject(RejectedBusy)
	}
	if m.balance < m.stake {
		return m.reject(RejectedBalance)
	}

	m.balance -= m.stake
	m.spins++
	m.state = Spinning
	m.spinStart = m.env.Clock.Now()
	m.current = Result{Spin: m.spins, Stake: m.stake}
	for k := range m.meters {
		delete(m.meters, k)
	}

	m.env.Log.Info("spin", "n", m.spins, "stake", m.stake, "balance", m.balance)
	m.populate()
	m.env.Clock.After(m.opts.PopulateDelay, m.startCollection)
	return Accepted
}

func (m *Machine) reject(st Status) Status {
	m.env.Log.Warn("spin rejected", "reason", st, "state", m.state, "balance", m.balance)
	m.env.Emit(event.SpinRejected, event.RejectPayload{Reason: st.String()})
	return st
}

// populate fills the board; cells carrying a wild marker get a wild gem.
func (m *Machine) populate() {
	m.grid.Populate()
	m.grid.Each(func(c *grid.Cell) {
		if c.Marker == grid.WildMarker && c.Gem != nil {
			c.Gem.Transform(gem.Wild)
			c.Marker = grid.NoMarker
		}
	})
}

func (m *Machine) startCollection() {
	m.state = Collecting
	m.flock.ResetAll()
	m.collectStart = m.env.Clock.Now()
	m.flock.Release(m.opts.ReleaseStagger)
	m.env.Clock.After(m.opts.FirstPoll, m.poll)
}

// poll checks for quiescence, forcing the end once MaxWait has passed.
func (m *Machine) poll() {
	if m.flock.Quiet() {
		m.endCollection(false)
		return
	}
	if m.env.Clock.Now()-m.collectStart >= m.opts.MaxWait {
		m.env.Log.Warn("collection timed out", "after", m.opts.MaxWait)
		m.flock.HaltAll()
		m.endCollection(true)
		return
	}
	m.env.Clock.After(m.opts.PollInterval, m.poll)
}

func (m *Machine) endCollection(forced bool) {
	clusters := m.grid.FindClusters()

	total := 0.0
	for _, c := range clusters {
		payout := float64(c.Count) * m.opts.ClusterRate * m.stake
		total += payout
		m.current.Clusters = append(m.current.Clusters, ClusterWin{Cluster: c, Payout: payout})
		m.env.Emit(event.ClusterFound, event.ClusterPayload{
			Color:  c.Color.String(),
			Count:  c.Count,
			Payout: payout,
		})
	}

	win := total * m.multiplier
	m.balance += win
	m.current.Win = win
	m.current.Multiplier = m.multiplier
	m.current.Balance = m.balance
	m.current.Collected = m.flock.TotalCollectedSpin()
	m.current.ForcedEnd = forced

	m.env.Log.Info("payout", "clusters", len(clusters), "win", win, "multiplier", m.multiplier)
	m.env.Clock.After(m.opts.PayoutDelay, m.endSpin)
}

func (m *Machine) endSpin() {
	m.current.Duration = m.env.Clock.Now() - m.spinStart
	triggered := m.rollTriggers()
	m.current.Feature = triggered

	m.last = m.current
	m.env.Emit(event.SpinResolved, event.SpinPayload{
		Spin:       m.current.Spin,
		Stake:      m.current.Stake,
		TotalWin:   m.current.Win,
		Multiplier: m.current.Multiplier,
		Balance:    m.current.Balance,
		Collected:  m.current.Collected,
		Clusters:   len(m.current.Clusters),
		Feature:    triggered,
	})

	if triggered == "" || !m.startFeature(triggered) {
		m.state = Idle
	}
}

// rollTriggers returns the first feature whose roll hits, or "".
func (m *Machine) rollTriggers() string {
	for _, t := range m.opts.Triggers {
		if t.Probability > 0 && m.env.RNG.Chance(t.Probability) {
			m.env.Log.Info("feature triggered", "feature", t.ID)
			return t.ID
		}
	}
	return ""
}

// TriggerFeature starts feature id right away. Only allowed while idle.
func (m *Machine) TriggerFeature(id string) bool {
	if m.state != Idle {
		return false
	}
	return m.startFeature(id)
}

func (m *Machine) startFeature(id string) bool {
	f, ok := m.opts.Features[id]
	if !ok {
		var err error
		f, err = registry.Create(id)
		if err != nil {
			m.env.Log.Warn("cannot start feature", "feature", id, "error", err)
			return false
		}
	}

	m.state = Feature
	m.feature = id
	f.Start(m, func(outcome string) {
		m.last.Outcome = outcome
		m.feature = ""
		m.state = Idle
	})
	return true
}

// Expand grows the board at one edge.
func (m *Machine) Expand(dir grid.Direction) bool {
	return m.grid.Expand(dir)
}

// ExpandFromCorner grows the board at two edges.
func (m *Machine) ExpandFromCorner(c grid.Corner) bool {
	return m.grid.ExpandFromCorner(c)
}

// ExpandMega grows the board at all four edges.
func (m *Machine) ExpandMega() {
	m.grid.ExpandMega()
}

func (m *Machine) meter(c bird.Collection) {
	m.meters[c.Bird.Color()] += c.Payout * c.ComboMultiplier
}
