package maze

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	exitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	vortexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	agentStyle  = lipgloss.NewStyle().Bold(true)
)

// GreedyActor is the view of a policy needed to draw its greedy action
// on each tile
type GreedyActor interface {
	GreedyAction(p Position) (Action, error)
}

// Parse converts a slice of equal-length strings into a maze grid.
// Recognized characters are ' ' (empty), 'E' (exit), and 'V' (vortex).
func Parse(rows []string) [][]Cell {
	cells := make([][]Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]Cell, len(row))
		for j := 0; j < len(row); j++ {
			cells[i][j] = Cell(row[j])
		}
	}
	return cells
}

// Render returns the maze as a styled grid. The agent is drawn as 'A',
// exits as green 'E', vortexes as red 'V', and empty tiles as '·'.
func (m *Maze) Render() string {
	var sb strings.Builder
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			tile := m.tile(Position{Row: i, Col: j})
			if (Position{Row: i, Col: j}) == m.agent {
				tile = agentStyle.Render("A")
			}
			sb.WriteString(tile)
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderPolicy returns the maze grid with each tile annotated by the
// policy's greedy action for that position
func (m *Maze) RenderPolicy(p GreedyActor) (string, error) {
	var sb strings.Builder
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			pos := Position{Row: i, Col: j}
			action, err := p.GreedyAction(pos)
			if err != nil {
				return "", err
			}
			sb.WriteString(m.tile(pos))
			sb.WriteString(arrow(action))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (m *Maze) tile(p Position) string {
	switch m.At(p) {
	case Exit:
		return exitStyle.Render("E")
	case Vortex:
		return vortexStyle.Render("V")
	default:
		return "·"
	}
}

func arrow(a Action) string {
	switch a {
	case Right:
		return "→"
	case Down:
		return "↓"
	case Left:
		return "←"
	case Up:
		return "↑"
	default:
		return "↺"
	}
}
