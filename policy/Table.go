// Package policy implements tabular policies over finite state and
// action sets
package policy

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"
)

// SumTolerance is the absolute tolerance within which a state's action
// probabilities must sum to 1
const SumTolerance = 1e-6

// Table implements a stochastic tabular policy: a mapping from each
// state to a probability distribution over actions.
//
// The state and action sets are fixed and ordered at construction.
// Probabilities are stored per state as a vector indexed by the action
// order, so that validation scans and argmax ties resolve the same way
// on every run.
type Table[S, A comparable] struct {
	states      []S
	actions     []A
	stateIndex  map[S]int
	actionIndex map[A]int
	probs       map[S][]float64
	src         rand.Source
}

// New constructs and validates a policy table from an explicit
// state → action → probability mapping. The states and actions slices
// fix the iteration order used everywhere else.
func New[S, A comparable](states []S, actions []A,
	probabilities map[S]map[A]float64, seed uint64) (*Table[S, A], error) {
	t, err := newTable(states, actions, seed)
	if err != nil {
		return nil, err
	}

	for _, s := range states {
		dist, ok := probabilities[s]
		if !ok {
			return nil, &InvalidTableError{
				Reason: fmt.Sprintf("state %v is not in the policy table", s),
			}
		}
		row := t.probs[s]
		for i, a := range actions {
			p, ok := dist[a]
			if !ok {
				return nil, &InvalidTableError{
					Reason: fmt.Sprintf("action %v is not in the policy "+
						"table for state %v", a, s),
				}
			}
			row[i] = p
		}
	}

	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewRandom constructs a policy table with a uniform-random probability
// distribution over actions for every state, normalized to sum to 1.
func NewRandom[S, A comparable](states []S, actions []A,
	seed uint64) (*Table[S, A], error) {
	t, err := newTable(states, actions, seed)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	for _, s := range states {
		row := t.probs[s]
		for i := range row {
			row[i] = rng.Float64()
		}
		total := floats.Sum(row)
		floats.Scale(1/total, row)
	}
	return t, nil
}

// newTable allocates a zero-probability table after validating the
// declared state and action sets
func newTable[S, A comparable](states []S, actions []A,
	seed uint64) (*Table[S, A], error) {
	if len(states) == 0 {
		return nil, &InvalidTableError{Reason: "no states declared"}
	}
	if len(actions) == 0 {
		return nil, &InvalidTableError{Reason: "no actions declared"}
	}

	stateIndex := make(map[S]int, len(states))
	for i, s := range states {
		if _, ok := stateIndex[s]; ok {
			return nil, &InvalidTableError{
				Reason: fmt.Sprintf("state %v declared more than once", s),
			}
		}
		stateIndex[s] = i
	}

	actionIndex := make(map[A]int, len(actions))
	for i, a := range actions {
		if _, ok := actionIndex[a]; ok {
			return nil, &InvalidTableError{
				Reason: fmt.Sprintf("action %v declared more than once", a),
			}
		}
		actionIndex[a] = i
	}

	probs := make(map[S][]float64, len(states))
	for _, s := range states {
		probs[s] = make([]float64, len(actions))
	}

	return &Table[S, A]{
		states:      append([]S(nil), states...),
		actions:     append([]A(nil), actions...),
		stateIndex:  stateIndex,
		actionIndex: actionIndex,
		probs:       probs,
		src:         rand.NewSource(seed),
	}, nil
}

// Check verifies every policy table invariant: a complete distribution
// for each declared state, no NaN entries, each probability in [0, 1],
// and a per-state sum of 1 within SumTolerance. Check may be called at
// any time; SelectAction calls it before every draw.
func (t *Table[S, A]) Check() error {
	for _, s := range t.states {
		row, ok := t.probs[s]
		if !ok || len(row) != len(t.actions) {
			return &InvalidTableError{
				Reason: fmt.Sprintf("state %v is not in the policy table", s),
			}
		}

		for i, a := range t.actions {
			p := row[i]
			if math.IsNaN(p) {
				return &InvalidTableError{
					Reason: fmt.Sprintf("probability for state %v and "+
						"action %v is not a number", s, a),
				}
			}
			if p < 0 || p > 1 {
				return &InvalidTableError{
					Reason: fmt.Sprintf("probability for state %v and "+
						"action %v is not between 0 and 1", s, a),
				}
			}
		}

		if !scalar.EqualWithinAbs(floats.Sum(row), 1.0, SumTolerance) {
			return &InvalidTableError{
				Reason: fmt.Sprintf("probabilities for state %v do not "+
					"sum to 1", s),
			}
		}
	}
	return nil
}

// SelectAction samples one action from the distribution stored for s
func (t *Table[S, A]) SelectAction(s S) (A, error) {
	var zero A
	if err := t.Check(); err != nil {
		return zero, err
	}

	row, ok := t.probs[s]
	if !ok {
		return zero, &UnknownStateError{State: s}
	}

	dist := distuv.NewCategorical(row, t.src)
	return t.actions[int(dist.Rand())], nil
}

// ActionProbabilities returns the distribution stored for s as an
// action → probability mapping. The returned map is a copy.
func (t *Table[S, A]) ActionProbabilities(s S) (map[A]float64, error) {
	row, ok := t.probs[s]
	if !ok {
		return nil, &UnknownStateError{State: s}
	}

	dist := make(map[A]float64, len(t.actions))
	for i, a := range t.actions {
		dist[a] = row[i]
	}
	return dist, nil
}

// SetDistribution replaces the distribution stored for s. A probability
// must be provided for every declared action and the probabilities must
// sum to 1 within SumTolerance.
func (t *Table[S, A]) SetDistribution(s S, dist map[A]float64) error {
	row, ok := t.probs[s]
	if !ok {
		return &UnknownStateError{State: s}
	}
	if len(dist) != len(t.actions) {
		return &InvalidTableError{
			Reason: "a probability must be provided for every action",
		}
	}

	next := make([]float64, len(t.actions))
	for a, p := range dist {
		i, ok := t.actionIndex[a]
		if !ok {
			return &UnknownActionError{Action: a}
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			return &InvalidTableError{
				Reason: fmt.Sprintf("probability %v for action %v is not "+
					"a valid probability", p, a),
			}
		}
		next[i] = p
	}

	if !scalar.EqualWithinAbs(floats.Sum(next), 1.0, SumTolerance) {
		return &InvalidTableError{
			Reason: fmt.Sprintf("probabilities for state %v do not sum "+
				"to 1", s),
		}
	}

	copy(row, next)
	return nil
}

// GreedyAction returns the most probable action for s. Ties resolve to
// the first maximal action in the declared action order.
func (t *Table[S, A]) GreedyAction(s S) (A, error) {
	var zero A
	row, ok := t.probs[s]
	if !ok {
		return zero, &UnknownStateError{State: s}
	}

	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return t.actions[best], nil
}

// Copy returns a deep snapshot of the policy table. Mutating the copy
// never affects the original.
func (t *Table[S, A]) Copy() *Table[S, A] {
	probs := make(map[S][]float64, len(t.probs))
	for s, row := range t.probs {
		probs[s] = append([]float64(nil), row...)
	}

	stateIndex := make(map[S]int, len(t.stateIndex))
	for s, i := range t.stateIndex {
		stateIndex[s] = i
	}
	actionIndex := make(map[A]int, len(t.actionIndex))
	for a, i := range t.actionIndex {
		actionIndex[a] = i
	}

	return &Table[S, A]{
		states:      append([]S(nil), t.states...),
		actions:     append([]A(nil), t.actions...),
		stateIndex:  stateIndex,
		actionIndex: actionIndex,
		probs:       probs,
		src:         t.src,
	}
}

// States returns the declared states in order
func (t *Table[S, A]) States() []S {
	return append([]S(nil), t.states...)
}

// Actions returns the declared actions in order
func (t *Table[S, A]) Actions() []A {
	return append([]A(nil), t.actions...)
}

// String returns the policy table as a state-by-action grid of
// probabilities
func (t *Table[S, A]) String() string {
	var sb strings.Builder

	header := make([]string, 0, len(t.actions)+1)
	header = append(header, "state \\ action")
	for _, a := range t.actions {
		header = append(header, fmt.Sprintf("%v", a))
	}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	rows := make([][]string, 0, len(t.states))
	for _, s := range t.states {
		row := make([]string, 0, len(t.actions)+1)
		row = append(row, fmt.Sprintf("%v", s))
		for i := range t.actions {
			row = append(row, fmt.Sprintf("%.3f", t.probs[s][i]))
		}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}
