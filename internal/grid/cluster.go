package grid

import (
	"github.com/vovakirdan/gemflock/internal/core"
	"github.com/vovakirdan/gemflock/internal/gem"
)

// Cluster is a maximal 4-connected group of same-colored active gems.
type Cluster struct {
	Color gem.Color
	Cells []core.Coord
	Count int
}

// MinClusterSize is the smallest group that pays.
const MinClusterSize = 2

// FindClusters returns every payable cluster. Seeds are taken in row-major
// order and each component is flood-filled with an explicit stack, so the
// result depends only on the board contents.
func (g *Grid) FindClusters() []Cluster {
	var clusters []Cluster
	visited := make([]bool, len(g.cells))

	for i := range g.cells {
		if visited[i] || !g.cells[i].Gem.Active() {
			continue
		}
		color := g.cells[i].Gem.Color
		members := g.floodFill(g.cells[i].X, g.cells[i].Y, color, visited)
		if len(members) >= MinClusterSize {
			clusters = append(clusters, Cluster{
				Color: color,
				Cells: members,
				Count: len(members),
			})
		}
	}
	return clusters
}

func (g *Grid) floodFill(sx, sy int, color gem.Color, visited []bool) []core.Coord {
	var members []core.Coord
	stack := []core.Coord{core.C(sx, sy)}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := g.At(p)
		if c == nil {
			continue
		}
		idx := g.index(p.X, p.Y)
		if visited[idx] || !c.Gem.Active() || c.Gem.Color != color {
			continue
		}

		visited[idx] = true
		members = append(members, p)

		for _, n := range g.Adjacent(p.X, p.Y) {
			if n.Gem.Active() && n.Gem.Color == color && !visited[g.index(n.X, n.Y)] {
				stack = append(stack, core.C(n.X, n.Y))
			}
		}
	}
	return members
}
