package policy_test

import (
	"testing"

	"github.com/samuelfneumann/tabular/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStates  = []string{"s0", "s1"}
	testActions = []string{"a0", "a1"}
)

func TestNewValidTable(t *testing.T) {
	p, err := policy.New(testStates, testActions, map[string]map[string]float64{
		"s0": {"a0": 0.5, "a1": 0.5},
		"s1": {"a0": 0.25, "a1": 0.75},
	}, 1)
	require.NoError(t, err)
	require.NoError(t, p.Check())

	dist, err := p.ActionProbabilities("s1")
	require.NoError(t, err)
	assert.Equal(t, 0.25, dist["a0"])
	assert.Equal(t, 0.75, dist["a1"])
}

func TestNewRejectsBadSum(t *testing.T) {
	_, err := policy.New(testStates, testActions, map[string]map[string]float64{
		"s0": {"a0": 0.5, "a1": 0.5},
		"s1": {"a0": 0.25, "a1": 0.99},
	}, 1)

	var tableErr *policy.InvalidTableError
	require.ErrorAs(t, err, &tableErr)
}

func TestNewRejectsMissingState(t *testing.T) {
	_, err := policy.New(testStates, testActions, map[string]map[string]float64{
		"s0": {"a0": 0.5, "a1": 0.5},
	}, 1)

	var tableErr *policy.InvalidTableError
	require.ErrorAs(t, err, &tableErr)
}

func TestNewRejectsMissingAction(t *testing.T) {
	_, err := policy.New(testStates, testActions, map[string]map[string]float64{
		"s0": {"a0": 0.5, "a1": 0.5},
		"s1": {"a0": 1.0},
	}, 1)

	var tableErr *policy.InvalidTableError
	require.ErrorAs(t, err, &tableErr)
}

func TestNewRandomDistributionsSumToOne(t *testing.T) {
	states := []string{"s0", "s1", "s2", "s3", "s4"}
	actions := []string{"a0", "a1", "a2", "a3"}

	p, err := policy.NewRandom(states, actions, 42)
	require.NoError(t, err)
	require.NoError(t, p.Check())

	for _, s := range states {
		dist, err := p.ActionProbabilities(s)
		require.NoError(t, err)

		var total float64
		for _, prob := range dist {
			assert.GreaterOrEqual(t, prob, 0.0)
			assert.LessOrEqual(t, prob, 1.0)
			total += prob
		}
		assert.InDelta(t, 1.0, total, policy.SumTolerance)
	}
}

func TestSelectActionUnknownState(t *testing.T) {
	p, err := policy.NewRandom(testStates, testActions, 1)
	require.NoError(t, err)

	_, err = p.SelectAction("bogus")
	var stateErr *policy.UnknownStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestSetDistribution(t *testing.T) {
	p, err := policy.NewRandom(testStates, testActions, 1)
	require.NoError(t, err)

	require.NoError(t, p.SetDistribution("s0",
		map[string]float64{"a0": 1.0, "a1": 0.0}))

	dist, err := p.ActionProbabilities("s0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, dist["a0"])

	// Every action needs a probability
	err = p.SetDistribution("s0", map[string]float64{"a0": 1.0})
	var tableErr *policy.InvalidTableError
	require.ErrorAs(t, err, &tableErr)

	// Unknown actions are rejected
	err = p.SetDistribution("s0",
		map[string]float64{"a0": 1.0, "bogus": 0.0})
	var actionErr *policy.UnknownActionError
	require.ErrorAs(t, err, &actionErr)

	// And so are distributions that do not sum to 1
	err = p.SetDistribution("s0",
		map[string]float64{"a0": 0.5, "a1": 0.1})
	require.ErrorAs(t, err, &tableErr)
}

func TestCopyIsIndependent(t *testing.T) {
	p, err := policy.New(testStates, testActions, map[string]map[string]float64{
		"s0": {"a0": 0.5, "a1": 0.5},
		"s1": {"a0": 0.25, "a1": 0.75},
	}, 1)
	require.NoError(t, err)

	snapshot := p.Copy()
	require.NoError(t, snapshot.SetDistribution("s0",
		map[string]float64{"a0": 1.0, "a1": 0.0}))

	dist, err := p.ActionProbabilities("s0")
	require.NoError(t, err)
	assert.Equal(t, 0.5, dist["a0"])
	assert.Equal(t, 0.5, dist["a1"])
}

func TestGreedyActionBreaksTiesByOrder(t *testing.T) {
	p, err := policy.New(testStates, testActions, map[string]map[string]float64{
		"s0": {"a0": 0.5, "a1": 0.5},
		"s1": {"a0": 0.25, "a1": 0.75},
	}, 1)
	require.NoError(t, err)

	a, err := p.GreedyAction("s0")
	require.NoError(t, err)
	assert.Equal(t, "a0", a)

	a, err = p.GreedyAction("s1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a)
}

func TestStringListsEveryState(t *testing.T) {
	p, err := policy.NewRandom(testStates, testActions, 1)
	require.NoError(t, err)

	out := p.String()
	for _, s := range testStates {
		assert.Contains(t, out, s)
	}
	for _, a := range testActions {
		assert.Contains(t, out, a)
	}
}
