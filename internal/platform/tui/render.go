package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gemflock/internal/bird"
	"github.com/vovakirdan/gemflock/internal/gem"
	"github.com/vovakirdan/gemflock/internal/grid"
)

// cellWidth is the rendered width of one board cell.
const cellWidth = 4

var (
	gemStyles   = make(map[gem.Color]lipgloss.Style, len(gem.Colors))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(gem.InfoOf(gem.Wild).Hex)).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func init() {
	for _, c := range gem.Colors {
		gemStyles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(gem.InfoOf(c).Hex))
	}
}

func styleOf(c gem.Color) lipgloss.Style {
	if s, ok := gemStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// CellText returns the unstyled text of a cell: a bird's initial, a gem's
// color letter and tier, a wild marker, or a dot.
func CellText(c *grid.Cell, f *bird.Flock) string {
	if c.Bird != 0 && f != nil {
		if b := f.Get(c.Bird); b != nil && b.State != bird.Absorbed {
			name := "@" + b.Name()[:1]
			if b.Legendary {
				name = "*" + b.Name()[:1]
			}
			return pad(name)
		}
	}
	if c.Gem.Active() {
		return pad(fmt.Sprintf("%s%d", c.Gem.Color.Short(), c.Gem.Tier))
	}
	if c.Marker == grid.WildMarker {
		return pad("W")
	}
	return pad(".")
}

func pad(s string) string {
	if len(s) >= cellWidth {
		return s[:cellWidth]
	}
	return " " + s + strings.Repeat(" ", cellWidth-len(s)-1)
}

// RenderBoard draws the board row by row with palette colors.
func RenderBoard(g *grid.Grid, f *bird.Flock) string {
	var sb strings.Builder
	sb.Grow(g.Size() * cellWidth * 2)

	for y := range g.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range g.Width() {
			c := g.Cell(x, y)
			text := CellText(c, f)

			switch {
			case c.Bird != 0 && f != nil && f.Get(c.Bird) != nil && f.Get(c.Bird).State != bird.Absorbed:
				b := f.Get(c.Bird)
				sb.WriteString(styleOf(b.Color()).Bold(true).Reverse(true).Render(text))
			case c.Gem.Active():
				s := styleOf(c.Gem.Color)
				if c.Gem.Tier > 1 {
					s = s.Bold(true)
				}
				sb.WriteString(s.Render(text))
			case c.Marker == grid.WildMarker:
				sb.WriteString(markerStyle.Render(text))
			default:
				sb.WriteString(emptyStyle.Render(text))
			}
		}
	}
	return sb.String()
}

// RenderBirds lists every bird with its state and spin tally.
func RenderBirds(f *bird.Flock) string {
	var sb strings.Builder
	for i, b := range f.Birds() {
		if i > 0 {
			sb.WriteRune('\n')
		}
		info := b.Info()
		line := fmt.Sprintf("%-9s %-10s %2d gems", info.Name, info.State, info.CollectedSpin)
		if info.Combo > 1 {
			line += fmt.Sprintf("  x%d", info.Combo)
		}
		sb.WriteString(styleOf(info.Color).Render(line))
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
