package control_test

import (
	"math"
	"testing"

	"github.com/samuelfneumann/tabular/control"
	"github.com/samuelfneumann/tabular/environment/maze"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleExitMaze is a 4x4 grid with one exit and no vortexes
func singleExitMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(maze.Parse([]string{
		"    ",
		"    ",
		"    ",
		"   E",
	}), maze.DefaultRewards(), 1)
	require.NoError(t, err)
	return m
}

func TestPolicyIterationSolvesChain(t *testing.T) {
	env := newChainEnv(1)
	p := chainPolicy(t, env)

	require.NoError(t, control.PolicyIteration(p, env,
		control.PolicyIterationConfig{Discount: 0.9}))

	a, err := p.GreedyAction("s0")
	require.NoError(t, err)
	assert.Equal(t, "a0", a)

	dist, err := p.ActionProbabilities("s0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist["a0"])
	assert.Equal(t, 0.0, dist["a1"])
}

func TestPolicyIterationGreedyPathReachesExit(t *testing.T) {
	m := singleExitMaze(t)
	p, err := policy.NewGreedy(m.States(), m.Actions(), 29)
	require.NoError(t, err)

	require.NoError(t, control.PolicyIteration(p, m,
		control.PolicyIterationConfig{Discount: 0.9, MaxIterations: 50}))

	// Follow the greedy policy from the start; it must reach the exit
	// within the grid's diameter
	m.Reset()
	for step := 0; step < 8 && !m.AtTerminal(); step++ {
		a, err := p.GreedyAction(m.CurrentState())
		require.NoError(t, err)
		_, err = m.TakeAction(a)
		require.NoError(t, err)
	}
	assert.True(t, m.AtTerminal(), "greedy rollout ended at %v",
		m.CurrentState())
	assert.Equal(t, maze.Position{Row: 3, Col: 3}, m.CurrentState())
}

func TestValueIterationSolvesChain(t *testing.T) {
	env := newChainEnv(1)
	p := chainPolicy(t, env)

	require.NoError(t, control.ValueIteration(p, env,
		control.ValueIterationConfig{Discount: 0.9}))

	a, err := p.GreedyAction("s0")
	require.NoError(t, err)
	assert.Equal(t, "a0", a)
}

// policyValues evaluates a fixed policy by iterating Bellman
// expectation sweeps until the values stop moving
func policyValues(t *testing.T, p *policy.EGreedy[maze.Position, maze.Action],
	m *maze.Maze, discount float64) map[maze.Position]float64 {
	t.Helper()

	values := make(map[maze.Position]float64)
	for sweep := 0; sweep < 500; sweep++ {
		var largestChange float64
		for _, s := range m.States() {
			v, err := control.StateValue[maze.Position, maze.Action](p, m,
				s, values, discount)
			require.NoError(t, err)
			largestChange = math.Max(largestChange, math.Abs(v-values[s]))
			values[s] = v
		}
		if largestChange < 1e-10 {
			break
		}
	}
	return values
}

func TestValueAndPolicyIterationAgree(t *testing.T) {
	const discount = 0.9

	m1 := singleExitMaze(t)
	p1, err := policy.NewGreedy(m1.States(), m1.Actions(), 7)
	require.NoError(t, err)
	require.NoError(t, control.PolicyIteration(p1, m1,
		control.PolicyIterationConfig{
			Discount:  discount,
			Tolerance: 1e-8,
		}))

	m2 := singleExitMaze(t)
	p2, err := policy.NewGreedy(m2.States(), m2.Actions(), 31)
	require.NoError(t, err)
	require.NoError(t, control.ValueIteration(p2, m2,
		control.ValueIterationConfig{
			Discount:      discount,
			MaxIterations: 1000,
			Tolerance:     1e-8,
		}))

	// Both solve the same fixed point, so the values of the two
	// resulting policies must match
	v1 := policyValues(t, p1, m1, discount)
	v2 := policyValues(t, p2, m2, discount)
	for _, s := range m1.States() {
		assert.InDelta(t, v1[s], v2[s], 1e-3, "state %v", s)
	}
}

func TestActionValueRestoresEnvironment(t *testing.T) {
	m := singleExitMaze(t)
	require.NoError(t, m.SetState(maze.Position{Row: 1, Col: 1}))

	values := make(map[maze.Position]float64)
	v, err := control.ActionValue[maze.Position, maze.Action](m,
		maze.Position{Row: 3, Col: 2}, maze.Right, values, 0.9)
	require.NoError(t, err)

	// The probe walked into the exit, but the environment is back
	// where it started
	assert.InDelta(t, 0.9, v, 1e-12)
	assert.Equal(t, maze.Position{Row: 1, Col: 1}, m.CurrentState())
}
