package sample_test

import (
	"testing"

	"github.com/samuelfneumann/tabular/environment/maze"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/samuelfneumann/tabular/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openMaze is a 3x3 grid with a single exit in the far corner
func openMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(maze.Parse([]string{
		"   ",
		"   ",
		"  E",
	}), maze.DefaultRewards(), 1)
	require.NoError(t, err)
	return m
}

func exploratory(t *testing.T,
	m *maze.Maze) *policy.EGreedy[maze.Position, maze.Action] {
	t.Helper()
	p, err := policy.NewExploratory(m.States(), m.Actions(), 17)
	require.NoError(t, err)
	return p
}

func TestOneStepSARS(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)

	exp, err := sample.OneStep[maze.Position, maze.Action](p, m,
		sample.SARS, false)
	require.NoError(t, err)

	assert.Equal(t, maze.Position{Row: 0, Col: 0}, exp.State)
	assert.Equal(t, m.CurrentState(), exp.NextState)
	// SARS samples carry no next action
	assert.Equal(t, maze.Action(0), exp.NextAction)
}

func TestOneStepRestoreLeavesEnvironmentUntouched(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)
	require.NoError(t, m.SetState(maze.Position{Row: 1, Col: 1}))

	exp, err := sample.OneStep[maze.Position, maze.Action](p, m,
		sample.SARSA, true)
	require.NoError(t, err)

	assert.Equal(t, maze.Position{Row: 1, Col: 1}, m.CurrentState())
	assert.Equal(t, maze.Position{Row: 1, Col: 1}, exp.State)
}

func TestTrajectoryZeroStepsIsEmpty(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)

	traj, err := sample.Trajectory[maze.Position, maze.Action](p, m,
		sample.Config[maze.Position, maze.Action]{MaxSteps: 0})
	require.NoError(t, err)
	assert.Empty(t, traj)
}

func TestTrajectoryLinksStates(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)

	traj, err := sample.Trajectory[maze.Position, maze.Action](p, m,
		sample.Config[maze.Position, maze.Action]{MaxSteps: 10})
	require.NoError(t, err)
	require.Len(t, traj, 10)

	for i := 0; i < len(traj)-1; i++ {
		assert.Equal(t, traj[i].NextState, traj[i+1].State)
	}
}

func TestTrajectorySarsaBackPatchesNextActions(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)

	traj, err := sample.Trajectory[maze.Position, maze.Action](p, m,
		sample.Config[maze.Position, maze.Action]{
			MaxSteps: 20,
			Style:    sample.SARSA,
		})
	require.NoError(t, err)
	require.Len(t, traj, 20)

	for i := 0; i < len(traj)-1; i++ {
		assert.Equal(t, traj[i+1].Action, traj[i].NextAction,
			"entry %d's next action must be the action actually taken", i)
	}
}

func TestTrajectoryEndsAtTerminal(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)

	start := maze.Position{Row: 2, Col: 1}
	startAction := maze.Right
	traj, err := sample.Trajectory[maze.Position, maze.Action](p, m,
		sample.Config[maze.Position, maze.Action]{
			MaxSteps:      50,
			EndAtTerminal: true,
			StartState:    &start,
			StartAction:   &startAction,
		})
	require.NoError(t, err)

	// The forced first step walks straight into the exit
	require.Len(t, traj, 1)
	assert.Equal(t, start, traj[0].State)
	assert.Equal(t, maze.Right, traj[0].Action)
	assert.Equal(t, maze.Position{Row: 2, Col: 2}, traj[0].NextState)
	assert.True(t, m.AtTerminal())
}

func TestTrajectoryRestoresOriginalState(t *testing.T) {
	m := openMaze(t)
	p := exploratory(t, m)
	require.NoError(t, m.SetState(maze.Position{Row: 1, Col: 2}))

	start := maze.Position{Row: 0, Col: 0}
	_, err := sample.Trajectory[maze.Position, maze.Action](p, m,
		sample.Config[maze.Position, maze.Action]{
			MaxSteps:     15,
			RestoreState: true,
			StartState:   &start,
		})
	require.NoError(t, err)
	assert.Equal(t, maze.Position{Row: 1, Col: 2}, m.CurrentState())
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "sars", sample.SARS.String())
	assert.Equal(t, "sarsa", sample.SARSA.String())
}
