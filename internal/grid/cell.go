package grid

import "github.com/vovakirdan/gemflock/internal/gem"

// Marker is a feature symbol sitting on a cell.
type Marker string

const (
	NoMarker   Marker = ""
	WildMarker Marker = "wild"
)

// Cell is one board position. Cells own their gem; birds are referenced by id
// so that no pointer cycle exists between the board and the flock.
type Cell struct {
	X, Y   int
	Gem    *gem.Gem
	Bird   int // occupying bird id, 0 when free
	Marker Marker
}

// Empty reports whether the cell holds no gem.
func (c *Cell) Empty() bool {
	return c.Gem == nil
}

// Free reports whether the cell holds neither a gem nor a marker.
func (c *Cell) Free() bool {
	return c.Gem == nil && c.Marker == NoMarker
}
