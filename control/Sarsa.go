package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/samuelfneumann/tabular/sample"
)

// SarsaConfig configures Sarsa
type SarsaConfig struct {
	// Discount is γ, in (0, 1]. Defaults to 0.9.
	Discount float64

	// LearningRate is α, the step size of each temporal-difference
	// update. Defaults to 0.1.
	LearningRate float64

	// Episodes is the number of episodes run. Defaults to 100.
	Episodes int

	// MaxSteps bounds each episode. Defaults to 100.
	MaxSteps int

	// EndAtTerminal stops an episode early once the environment
	// reaches a terminal state
	EndAtTerminal bool

	// LogEvery controls how often a progress line is emitted.
	// Defaults to every 20 episodes.
	LogEvery int

	Logger *log.Logger
}

func (c SarsaConfig) withDefaults() SarsaConfig {
	if c.Discount == 0 {
		c.Discount = 0.9
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.Episodes == 0 {
		c.Episodes = 100
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = 100
	}
	if c.LogEvery == 0 {
		c.LogEvery = 20
	}
	return c
}

// Sarsa runs on-policy temporal-difference control. Each episode starts
// from a freshly sampled non-terminal state; each step draws a SARSA
// style transition, applies
//
//	Q(s,a) ← Q(s,a) − α (Q(s,a) − r' − γ Q(s',a'))
//
// and immediately makes the policy ε-greedy with respect to Q(s,·).
// There is no convergence test; the run uses the full episode and step
// budget. The policy is mutated in place.
func Sarsa[S, A comparable](p *policy.EGreedy[S, A],
	env environment.Environment[S, A], c SarsaConfig) error {
	c = c.withDefaults()
	logger := configLogger(c.Logger)
	states := env.States()
	actions := env.Actions()

	q := newActionValues(states, actions)
	for episode := 0; episode < c.Episodes; episode++ {
		var start S
		for {
			start = env.SampleRandomState()
			if !env.IsTerminal(start) {
				break
			}
		}
		if err := env.SetState(start); err != nil {
			return err
		}

		for step := 0; step < c.MaxSteps; step++ {
			exp, err := sample.OneStep[S, A](p, env, sample.SARSA, false)
			if err != nil {
				return err
			}

			// Policy evaluation
			target := exp.Reward +
				c.Discount*q[exp.NextState][exp.NextAction]
			q[exp.State][exp.Action] -=
				c.LearningRate * (q[exp.State][exp.Action] - target)

			// Policy improvement
			best := greedyAction(q[exp.State], actions)
			if err := p.UpdateGreedy(exp.State, best); err != nil {
				return err
			}

			if c.EndAtTerminal && env.AtTerminal() {
				break
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
	return nil
}
