// Package maze implements a grid-like maze environment from which an
// agent has to exit. The agent starts in the top-left corner; exits and
// vortexes scattered through the grid are terminal states, rewarding
// and injuring the agent respectively.
package maze

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
	"golang.org/x/exp/rand"
)

// Cell is the content of one maze tile
type Cell byte

const (
	Empty  Cell = ' '
	Exit   Cell = 'E'
	Vortex Cell = 'V'
)

// Position identifies one maze tile; it is the maze's state type
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Action is one of the five moves available in a maze
type Action int

const (
	Stay Action = iota
	Right
	Down
	Left
	Up
)

func (a Action) String() string {
	switch a {
	case Stay:
		return "stay"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Rewards holds the maze's reward scheme: a bonus for entering an exit,
// a penalty for entering a vortex, and a cost for every move other
// than Stay
type Rewards struct {
	Exit   float64
	Vortex float64
	Move   float64
}

// DefaultRewards returns the standard maze reward scheme
func DefaultRewards() Rewards {
	return Rewards{Exit: 1.0, Vortex: -1.0, Move: -0.1}
}

// Maze is a discrete grid environment satisfying the Environment
// contract over Position states and Action moves
type Maze struct {
	cells   [][]Cell
	agent   Position
	rewards Rewards
	rng     *rand.Rand
}

var _ environment.Environment[Position, Action] = (*Maze)(nil)

// New creates a maze from an explicit grid. The grid must be
// rectangular, contain only Empty, Exit, and Vortex cells, and have an
// empty top-left corner, where the agent starts.
func New(cells [][]Cell, rewards Rewards, seed uint64) (*Maze, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("maze: grid must have at least one row " +
			"and one column")
	}

	cols := len(cells[0])
	grid := make([][]Cell, len(cells))
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("maze: row %d has %d columns, want %d",
				i, len(row), cols)
		}
		for j, cell := range row {
			switch cell {
			case Empty, Exit, Vortex:
			default:
				return nil, fmt.Errorf("maze: invalid cell %q at (%d, %d)",
					byte(cell), i, j)
			}
		}
		grid[i] = append([]Cell(nil), row...)
	}

	if grid[0][0] != Empty {
		return nil, fmt.Errorf("maze: the top-left corner must be empty")
	}

	return &Maze{
		cells:   grid,
		agent:   Position{0, 0},
		rewards: rewards,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// NewRandom creates a rows × cols maze with the requested number of
// exits and vortexes placed uniformly at random, never in the top-left
// corner
func NewRandom(rows, cols, exits, vortexes int, rewards Rewards,
	seed uint64) (*Maze, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("maze: grid must be at least 2x2, "+
			"got %dx%d", rows, cols)
	}
	if exits < 1 {
		return nil, fmt.Errorf("maze: need at least one exit")
	}
	if vortexes < 0 {
		return nil, fmt.Errorf("maze: vortex count cannot be negative")
	}
	if exits+vortexes > rows*cols-1 {
		return nil, fmt.Errorf("maze: %d exits and %d vortexes do not "+
			"fit in a %dx%d grid", exits, vortexes, rows, cols)
	}

	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
		for j := range cells[i] {
			cells[i][j] = Empty
		}
	}

	// Cell 0 is the start and stays empty
	rng := rand.New(rand.NewSource(seed))
	available := rng.Perm(rows*cols - 1)
	for i := 0; i < exits+vortexes; i++ {
		index := available[i] + 1
		cell := Exit
		if i >= exits {
			cell = Vortex
		}
		cells[index/cols][index%cols] = cell
	}

	return New(cells, rewards, seed)
}

// Rows returns the maze's height
func (m *Maze) Rows() int {
	return len(m.cells)
}

// Cols returns the maze's width
func (m *Maze) Cols() int {
	return len(m.cells[0])
}

// At returns the cell at position p
func (m *Maze) At(p Position) Cell {
	return m.cells[p.Row][p.Col]
}

// CurrentState returns the agent's position
func (m *Maze) CurrentState() Position {
	return m.agent
}

// SetState moves the agent to p
func (m *Maze) SetState(p Position) error {
	if !m.contains(p) {
		return &environment.InvalidStateError{State: p}
	}
	m.agent = p
	return nil
}

// Reset moves the agent back to the top-left corner
func (m *Maze) Reset() {
	m.agent = Position{0, 0}
}

// SampleRandomState returns a position drawn uniformly from the grid,
// independent of the agent's position
func (m *Maze) SampleRandomState() Position {
	index := m.rng.Intn(m.Rows() * m.Cols())
	return Position{Row: index / m.Cols(), Col: index % m.Cols()}
}

// IsTerminal returns whether p is an exit or a vortex. Positions
// outside the grid are not terminal.
func (m *Maze) IsTerminal(p Position) bool {
	if !m.contains(p) {
		return false
	}
	cell := m.At(p)
	return cell == Exit || cell == Vortex
}

// AtTerminal returns whether the agent is at an exit or a vortex
func (m *Maze) AtTerminal() bool {
	return m.IsTerminal(m.agent)
}

// TakeAction moves the agent and returns the reward. Moves off the edge
// of the grid leave the agent in place but still cost the move reward.
// Entering (or staying on) an exit or vortex adds that cell's reward.
func (m *Maze) TakeAction(a Action) (float64, error) {
	var reward float64

	switch a {
	case Stay:
	case Right:
		reward = m.rewards.Move
		m.agent.Col = min(m.agent.Col+1, m.Cols()-1)
	case Down:
		reward = m.rewards.Move
		m.agent.Row = min(m.agent.Row+1, m.Rows()-1)
	case Left:
		reward = m.rewards.Move
		m.agent.Col = max(m.agent.Col-1, 0)
	case Up:
		reward = m.rewards.Move
		m.agent.Row = max(m.agent.Row-1, 0)
	default:
		return 0, &environment.InvalidActionError{Action: a}
	}

	switch m.At(m.agent) {
	case Exit:
		reward += m.rewards.Exit
	case Vortex:
		reward += m.rewards.Vortex
	}
	return reward, nil
}

// States returns all positions in row-major order
func (m *Maze) States() []Position {
	states := make([]Position, 0, m.Rows()*m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			states = append(states, Position{Row: i, Col: j})
		}
	}
	return states
}

// Actions returns the five maze actions
func (m *Maze) Actions() []Action {
	return []Action{Stay, Right, Down, Left, Up}
}

func (m *Maze) contains(p Position) bool {
	return p.Row >= 0 && p.Row < m.Rows() && p.Col >= 0 && p.Col < m.Cols()
}
