package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/samuelfneumann/tabular/sample"
	"golang.org/x/exp/rand"
)

// MCEpsilonGreedyConfig configures MCEpsilonGreedy
type MCEpsilonGreedyConfig struct {
	// Discount is γ, in (0, 1]. Defaults to 0.9.
	Discount float64

	// Episodes is the number of trajectories sampled. Defaults to 500.
	Episodes int

	// MaxTrajectorySteps bounds each episode. Defaults to 10.
	MaxTrajectorySteps int

	// EndAtTerminal stops each episode at the first terminal state
	EndAtTerminal bool

	// Seed seeds the start-pair draws
	Seed uint64

	// LogEvery controls how often a progress line is emitted.
	// Defaults to every 100 episodes.
	LogEvery int

	Logger *log.Logger
}

func (c MCEpsilonGreedyConfig) withDefaults() MCEpsilonGreedyConfig {
	if c.Discount == 0 {
		c.Discount = 0.9
	}
	if c.Episodes == 0 {
		c.Episodes = 500
	}
	if c.MaxTrajectorySteps == 0 {
		c.MaxTrajectorySteps = 10
	}
	if c.LogEvery == 0 {
		c.LogEvery = 100
	}
	return c
}

// MCEpsilonGreedy runs every-visit Monte Carlo control with the start
// pair drawn uniformly at random each episode. Improvement goes through
// the policy's ε-greedy update rule, so exploration persists between
// episodes; the policy should carry a non-zero ε for the soft-policy
// convergence argument to hold.
//
// Like MCExploringStarts, the run fails with an *UnvisitedPairsError if
// any state-action pair was never visited.
func MCEpsilonGreedy[S, A comparable](p *policy.EGreedy[S, A],
	env environment.Environment[S, A], c MCEpsilonGreedyConfig) error {
	c = c.withDefaults()
	logger := configLogger(c.Logger)
	rng := rand.New(rand.NewSource(c.Seed))
	states := env.States()
	actions := env.Actions()

	returns := newReturnsBuffer(states, actions)
	q := newActionValues(states, actions)

	for episode := 0; episode < c.Episodes; episode++ {
		start := states[rng.Intn(len(states))]
		startAction := actions[rng.Intn(len(actions))]

		traj, err := sample.Trajectory[S, A](p, env, sample.Config[S, A]{
			MaxSteps:      c.MaxTrajectorySteps,
			EndAtTerminal: c.EndAtTerminal,
			StartState:    &start,
			StartAction:   &startAction,
		})
		if err != nil {
			return err
		}

		// Policy evaluation, every-visit
		returns.accumulate(traj, c.Discount)

		// Policy improvement through the ε-greedy update rule
		returns.fill(q, states, actions)
		for _, s := range states {
			if err := p.UpdateGreedy(s, greedyAction(q[s], actions)); err != nil {
				return err
			}
		}

		if episode%c.LogEvery == 0 {
			sum, err := actionValueSum[S, A](p, states, actions, q)
			if err != nil {
				return err
			}
			logger.Info("episode complete",
				"episode", episode, "valueSum", sum)
		}
	}

	return returns.checkVisited(states, actions)
}
