package control_test

import (
	"testing"

	"github.com/samuelfneumann/tabular/control"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSarsaSolvesChain(t *testing.T) {
	env := newChainEnv(47)
	p, err := policy.NewEGreedy(env.States(), env.Actions(), 0.5, 53)
	require.NoError(t, err)

	err = control.Sarsa(p, env, control.SarsaConfig{
		Discount:      0.9,
		LearningRate:  0.1,
		Episodes:      100,
		MaxSteps:      10,
		EndAtTerminal: true,
	})
	require.NoError(t, err)

	// Q(s0, a0) approaches 1 while Q(s0, a1) is bounded by the
	// discounted value of reaching the exit one step later.
	best, err := p.GreedyAction("s0")
	require.NoError(t, err)
	assert.Equal(t, "a0", best)

	require.NoError(t, p.Check())
}

func TestSarsaLeavesPolicyEpsilonSoft(t *testing.T) {
	env := newChainEnv(59)
	p, err := policy.NewEGreedy(env.States(), env.Actions(), 0.5, 61)
	require.NoError(t, err)

	err = control.Sarsa(p, env, control.SarsaConfig{
		Episodes: 10,
		MaxSteps: 5,
	})
	require.NoError(t, err)

	for _, s := range env.States() {
		dist, err := p.ActionProbabilities(s)
		require.NoError(t, err)
		for _, prob := range dist {
			assert.GreaterOrEqual(t, prob, 0.25)
		}
	}
}
