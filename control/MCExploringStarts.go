package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/samuelfneumann/tabular/sample"
)

// MCExploringStartsConfig configures MCExploringStarts
type MCExploringStartsConfig struct {
	// Discount is γ, in (0, 1]. Defaults to 0.9.
	Discount float64

	// Episodes is the number of trajectories sampled. Defaults to 500.
	// Coverage of every state-action pair requires at least
	// |states| × |actions| episodes.
	Episodes int

	// MaxTrajectorySteps bounds each episode. Defaults to 10.
	MaxTrajectorySteps int

	// EndAtTerminal stops each episode at the first terminal state
	EndAtTerminal bool

	// LogEvery controls how often a progress line is emitted.
	// Defaults to every 60 episodes.
	LogEvery int

	Logger *log.Logger
}

func (c MCExploringStartsConfig) withDefaults() MCExploringStartsConfig {
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
		c.LogEvery = 60
	}
	return c
}

// MCExploringStarts runs every-visit Monte Carlo control with start
// pairs cycled deterministically through all state-action combinations,
// actions fastest. Discounted returns accumulate into a per-pair
// running average across episodes, and the policy is improved greedily
// over all states after every episode.
//
// There is no numeric convergence test. Instead, the run fails with an
// *UnvisitedPairsError if any state-action pair was never visited by
// the time the episode budget is exhausted.
func MCExploringStarts[S, A comparable](p *policy.EGreedy[S, A],
	env environment.Environment[S, A], c MCExploringStartsConfig) error {
	c = c.withDefaults()
	logger := configLogger(c.Logger)
	states := env.States()
	actions := env.Actions()

	returns := newReturnsBuffer(states, actions)
	q := newActionValues(states, actions)

	stateCursor, actionCursor := 0, 0
	for episode := 0; episode < c.Episodes; episode++ {
		start := states[stateCursor%len(states)]
		startAction := actions[actionCursor%len(actions)]
		actionCursor++
		if actionCursor%len(actions) == 0 {
			stateCursor++
		}

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

		// Policy improvement
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
