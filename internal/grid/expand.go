package grid

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gemflock/internal/event"
)

// Direction is a board edge.
type Direction string

const (
	Top    Direction = "top"
	Bottom Direction = "bottom"
	Left   Direction = "left"
	Right  Direction = "right"
)

// Corner names a pair of edges expanded by a corner bomb.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// ParseDirection converts a name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Top, Bottom, Left, Right:
		return d, nil
	}
	return "", fmt.Errorf("grid: unknown direction %q", s)
}

// ParseCorner converts a name to a Corner.
func ParseCorner(s string) (Corner, error) {
	switch c := Corner(s); c {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return c, nil
	}
	return "", fmt.Errorf("grid: unknown corner %q", s)
}

// megaOrder and megaStagger drive ExpandMega.
var megaOrder = [4]Direction{Top, Right, Bottom, Left}

const megaStagger = 150 * time.Millisecond

// Expand inserts a row or column at the given edge. It returns false without
// touching anything when an expansion is still settling or the axis is at its
// maximum.
func (g *Grid) Expand(dir Direction) bool {
	if g.expanding {
		g.env.Log.Debug("grid already expanding", "direction", dir)
		return false
	}

	switch dir {
	case Top, Bottom:
		if g.height >= g.maxH {
			g.env.Log.Debug("grid at max height", "direction", dir)
			return false
		}
	case Left, Right:
		if g.width >= g.maxW {
			g.env.Log.Debug("grid at max width", "direction", dir)
			return false
		}
	default:
		return false
	}

	half := (g.layout.CellSize + g.layout.Spacing) / 2
	switch dir {
	case Top:
		g.insertRow(0)
		g.expansions.Top++
		g.layout.OffsetY -= half
	case Bottom:
		g.insertRow(g.height)
		g.expansions.Bottom++
		g.layout.OffsetY -= half
	case Left:
		g.insertColumn(0)
		g.expansions.Left++
		g.layout.OffsetX -= half
	case Right:
		g.insertColumn(g.width)
		g.expansions.Right++
		g.layout.OffsetX -= half
	}

	switch dir {
	case Top:
		g.notifyShift(0, 1)
	case Left:
		g.notifyShift(1, 0)
	}

	g.expanding = true
	g.settleUntil = g.env.Clock.Now() + g.settle
	g.env.Clock.After(g.settle, func() {
		g.expanding = false
	})

	g.env.Log.Info("grid expanded", "direction", dir, "width", g.width, "height", g.height)
	g.env.Emit(event.GridExpanded, event.ExpandPayload{
		Direction: string(dir),
		Width:     g.width,
		Height:    g.height,
	})
	return true
}

// insertRow adds an empty row so that it becomes row at.
func (g *Grid) insertRow(at int) {
	cells := make([]Cell, g.width*(g.height+1))
	for y := 0; y < g.height; y++ {
		ny := y
		if y >= at {
			ny++
		}
		copy(cells[ny*g.width:(ny+1)*g.width], g.cells[y*g.width:(y+1)*g.width])
	}
	g.height++
	g.cells = cells
	g.reindex()
}

// insertColumn adds an empty column so that it becomes column at.
func (g *Grid) insertColumn(at int) {
	nw := g.width + 1
	cells := make([]Cell, nw*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			nx := x
			if x >= at {
				nx++
			}
			cells[y*nw+nx] = g.cells[y*g.width+x]
		}
	}
	g.width = nw
	g.cells = cells
	g.reindex()
}

func (g *Grid) notifyShift(dx, dy int) {
	for _, fn := range g.shiftListeners {
		fn(dx, dy)
	}
}

// ExpandFromCorner expands the vertical edge of corner now and the horizontal
// edge half a settle period later. Returns whether the first expansion applied.
// The horizontal edge is scheduled even when the first is rejected, so a corner
// at the height limit still grows sideways.
func (g *Grid) ExpandFromCorner(corner Corner) bool {
	var first, second Direction
	switch corner {
	case TopLeft:
		first, second = Top, Left
	case TopRight:
		first, second = Top, Right
	case BottomLeft:
		first, second = Bottom, Left
	case BottomRight:
		first, second = Bottom, Right
	default:
		return false
	}

	g.env.Log.Info("corner expansion", "corner", corner)
	ok := g.Expand(first)
	g.env.Clock.After(g.settle/2, func() {
		g.expandWhenSettled(second)
	})
	return ok
}

// ExpandMega expands all four edges, staggered by megaStagger.
func (g *Grid) ExpandMega() {
	g.env.Log.Info("mega expansion")
	for i, dir := range megaOrder {
		g.env.Clock.After(time.Duration(i)*megaStagger, func() {
			g.expandWhenSettled(dir)
		})
	}
}

// expandWhenSettled expands dir, waiting for any settling expansion to finish
// first. Scheduled expansions are therefore never lost to the settle window.
func (g *Grid) expandWhenSettled(dir Direction) {
	if g.expanding {
		wait := g.settleUntil - g.env.Clock.Now()
		g.env.Clock.After(wait, func() {
			g.expandWhenSettled(dir)
		})
		return
	}
	g.Expand(dir)
}
