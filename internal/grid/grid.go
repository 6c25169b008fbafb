// Package grid implements the expandable board: a flat row-major cell arena
// with population, adjacency, directional expansion and cluster detection.
package grid

import (
	"time"

	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/event"
	"github.com/vovakirdan/gemflock/internal/gem"
)

// Layout is the pixel-space placement of the board. Renderers use it to map
// cells to world coordinates; the simulation never reads it.
type Layout struct {
	CellSize float64
	Spacing  float64
	OffsetX  float64
	OffsetY  float64
}

// Options configures a grid.
type Options struct {
	Width, Height       int
	MaxWidth, MaxHeight int
	Layout              Layout
	Settle              time.Duration // how long an expansion blocks the next one
	Colors              []gem.Color   // population palette
	Payouts             gem.Payouts
}

// DefaultOptions returns the reference 6x6 board growing to 8x8.
func DefaultOptions() Options {
	return Options{
		Width:     6,
		Height:    6,
		MaxWidth:  8,
		MaxHeight: 8,
		Layout: Layout{
			CellSize: 80,
			Spacing:  4,
			OffsetX:  400,
			OffsetY:  150,
		},
		Settle:  600 * time.Millisecond,
		Colors:  gem.Colors,
		Payouts: gem.DefaultPayouts,
	}
}

// Grid is the board. Cells are stored row-major: index = y*width + x.
type Grid struct {
	env *core.Env

	width, height int
	minW, minH    int
	maxW, maxH    int
	cells         []Cell

	layout  Layout
	settle  time.Duration
	colors  []gem.Color
	payouts gem.Payouts

	expanding   bool
	settleUntil time.Duration
	expansions  Expansions

	shiftListeners []func(dx, dy int)
}

// New creates an empty grid.
func New(opts Options, env *core.Env) *Grid {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.MaxWidth < opts.Width {
		opts.MaxWidth = opts.Width
	}
	if opts.MaxHeight < opts.Height {
		opts.MaxHeight = opts.Height
	}
	if len(opts.Colors) == 0 {
		opts.Colors = def.Colors
	}

	g := &Grid{
		env:     env,
		width:   opts.Width,
		height:  opts.Height,
		minW:    opts.Width,
		minH:    opts.Height,
		maxW:    opts.MaxWidth,
		maxH:    opts.MaxHeight,
		layout:  opts.Layout,
		settle:  opts.Settle,
		colors:  opts.Colors,
		payouts: opts.Payouts,
	}
	g.cells = make([]Cell, g.width*g.height)
	g.reindex()
	return g
}

// Width returns the current width.
func (g *Grid) Width() int { return g.width }

// Height returns the current height.
func (g *Grid) Height() int { return g.height }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// Layout returns the current pixel layout.
func (g *Grid) Layout() Layout { return g.layout }

// Colors returns the population palette.
func (g *Grid) Colors() []gem.Color { return g.colors }

// Expanding reports whether an expansion is settling.
func (g *Grid) Expanding() bool { return g.expanding }

// InBounds reports whether (x, y) lies on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// reindex rewrites every cell's stored coordinates from its arena position.
func (g *Grid) reindex() {
	for i := range g.cells {
		g.cells[i].X = i % g.width
		g.cells[i].Y = i / g.width
	}
}

// Cell returns the cell at (x, y), or nil outside the board.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[g.index(x, y)]
}

// At returns the cell at c, or nil outside the board.
func (g *Grid) At(c core.Coord) *Cell {
	return g.Cell(c.X, c.Y)
}

// CellCenter returns the pixel-space midpoint of (x, y) for renderers.
func (g *Grid) CellCenter(x, y int) (float64, float64, bool) {
	if !g.InBounds(x, y) {
		return 0, 0, false
	}
	pitch := g.layout.CellSize + g.layout.Spacing
	cx := g.layout.OffsetX + float64(x)*pitch + g.layout.CellSize/2
	cy := g.layout.OffsetY + float64(y)*pitch + g.layout.CellSize/2
	return cx, cy, true
}

var neighborOffsets = [4]core.Coord{
	{X: 0, Y: -1}, // up
	{X: 1, Y: 0},  // right
	{X: 0, Y: 1},  // down
	{X: -1, Y: 0}, // left
}

// Adjacent returns the orthogonal neighbors of (x, y) that exist,
// in up, right, down, left order.
func (g *Grid) Adjacent(x, y int) []*Cell {
	out := make([]*Cell, 0, 4)
	for _, d := range neighborOffsets {
		if c := g.Cell(x+d.X, y+d.Y); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(c *Cell)) {
	for i := range g.cells {
		fn(&g.cells[i])
	}
}

// Populate clears the board and fills every cell with a random tier-1 gem.
func (g *Grid) Populate() {
	g.PopulateTiered(1, 1)
}

// PopulateTiered clears the board and fills every cell with a random color
// whose tier is drawn uniformly from [lo, hi].
func (g *Grid) PopulateTiered(lo, hi int) {
	g.ClearGems()
	for i := range g.cells {
		c := &g.cells[i]
		color := g.colors[g.env.RNG.Intn(len(g.colors))]
		g.put(c, gem.NewWithPayouts(color, g.env.RNG.Between(lo, hi), g.payouts))
	}
}

// SpawnGem places a new gem on (x, y), replacing whatever was there.
func (g *Grid) SpawnGem(x, y int, color gem.Color, tier int) *gem.Gem {
	c := g.Cell(x, y)
	if c == nil {
		return nil
	}
	gm := gem.NewWithPayouts(color, tier, g.payouts)
	g.put(c, gm)
	return gm
}

// PlaceGem puts an existing gem on (x, y). Returns false outside the board.
func (g *Grid) PlaceGem(x, y int, gm *gem.Gem) bool {
	c := g.Cell(x, y)
	if c == nil || gm == nil {
		return false
	}
	g.put(c, gm)
	return true
}

func (g *Grid) put(c *Cell, gm *gem.Gem) {
	c.Gem = gm
	g.env.Emit(event.GemSpawned, event.GemPayload{X: c.X, Y: c.Y, Color: gm.Color.String(), Tier: gm.Tier})
}

// RemoveGem detaches and returns the gem on (x, y).
func (g *Grid) RemoveGem(x, y int) *gem.Gem {
	c := g.Cell(x, y)
	if c == nil {
		return nil
	}
	gm := c.Gem
	c.Gem = nil
	return gm
}

// ClearGems destroys every gem on the board.
func (g *Grid) ClearGems() {
	for i := range g.cells {
		g.cells[i].Gem = nil
	}
}

// ClearMarkers removes every feature marker.
func (g *Grid) ClearMarkers() {
	for i := range g.cells {
		g.cells[i].Marker = NoMarker
	}
}

// SetMarker puts m on (x, y).
func (g *Grid) SetMarker(x, y int, m Marker) bool {
	c := g.Cell(x, y)
	if c == nil {
		return false
	}
	c.Marker = m
	return true
}

// Occupy records bird id as standing on (x, y). The latest arrival wins.
func (g *Grid) Occupy(x, y, id int) {
	if c := g.Cell(x, y); c != nil {
		c.Bird = id
	}
}

// Vacate clears (x, y) if bird id is its recorded occupant.
func (g *Grid) Vacate(x, y, id int) {
	if c := g.Cell(x, y); c != nil && c.Bird == id {
		c.Bird = 0
	}
}

// Gems returns the number of active gems on the board.
func (g *Grid) Gems() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Gem.Active() {
			n++
		}
	}
	return n
}

// EmptyCells returns the coordinates of cells without a gem, row-major.
func (g *Grid) EmptyCells() []core.Coord {
	var out []core.Coord
	for i := range g.cells {
		if g.cells[i].Empty() {
			out = append(out, core.C(g.cells[i].X, g.cells[i].Y))
		}
	}
	return out
}

// RandomCoord returns a uniformly random board coordinate.
func (g *Grid) RandomCoord() core.Coord {
	return core.C(g.env.RNG.Intn(g.width), g.env.RNG.Intn(g.height))
}

// OnShift registers fn to be told when existing coordinates move because a row
// or column was inserted at the top or left edge.
func (g *Grid) OnShift(fn func(dx, dy int)) {
	g.shiftListeners = append(g.shiftListeners, fn)
}

// Expansions counts successful expansions per direction.
type Expansions struct {
	Top, Bottom, Left, Right int
}

// Info is a read-only snapshot of the board dimensions.
type Info struct {
	Width, Height       int
	TotalCells          int
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int
	Expansions          Expansions
	Expanding           bool
}

// Info returns the current dimensions and counters.
func (g *Grid) Info() Info {
	return Info{
		Width:      g.width,
		Height:     g.height,
		TotalCells: len(g.cells),
		MinWidth:   g.minW,
		MinHeight:  g.minH,
		MaxWidth:   g.maxW,
		MaxHeight:  g.maxH,
		Expansions: g.expansions,
		Expanding:  g.expanding,
	}
}
