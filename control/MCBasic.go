package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/samuelfneumann/tabular/sample"
)

// MCBasicConfig configures MCBasic
type MCBasicConfig struct {
	// Discount is γ, in (0, 1]. Defaults to 0.9.
	Discount float64

	// MaxIterations bounds the outer loop. Defaults to 100.
	MaxIterations int

	// SamplesPerPair is the number of independent trajectories sampled
	// for each (state, action) pair per iteration. Defaults to 10.
	SamplesPerPair int

	// MaxTrajectorySteps bounds each sampled trajectory. Defaults
	// to 10.
	MaxTrajectorySteps int

	// EndAtTerminal stops each trajectory at the first terminal state
	EndAtTerminal bool

	// Tolerance is the threshold on the max per-pair action-value
	// change. Defaults to DefaultTolerance.
	Tolerance float64

	Logger *log.Logger
}

func (c MCBasicConfig) withDefaults() MCBasicConfig {
	if c.Discount == 0 {
		c.Discount = 0.9
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.SamplesPerPair == 0 {
		c.SamplesPerPair = 10
	}
	if c.MaxTrajectorySteps == 0 {
		c.MaxTrajectorySteps = 10
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// MCBasic estimates each Q(s,a) as the mean discounted return of
// SamplesPerPair trajectories started at exactly that state and action,
// improving the policy greedily per state, until no action value moves
// by more than the tolerance. The policy is mutated in place.
//
// Unlike the every-visit Monte Carlo variants, estimates are resampled
// from scratch each iteration; returns are never accumulated across
// iterations.
func MCBasic[S, A comparable](p *policy.EGreedy[S, A],
	env environment.Environment[S, A], c MCBasicConfig) error {
	c = c.withDefaults()
	logger := configLogger(c.Logger)
	states := env.States()
	actions := env.Actions()

	q := newActionValues(states, actions)
	for iteration := 0; iteration < c.MaxIterations; iteration++ {
		old := copyActionValues(q)

		for _, s := range states {
			// Policy evaluation
			for _, a := range actions {
				start, startAction := s, a
				var total float64
				for n := 0; n < c.SamplesPerPair; n++ {
					traj, err := sample.Trajectory[S, A](p, env,
						sample.Config[S, A]{
							MaxSteps:      c.MaxTrajectorySteps,
							EndAtTerminal: c.EndAtTerminal,
							StartState:    &start,
							StartAction:   &startAction,
						})
					if err != nil {
						return err
					}
					total += discountedReturn(traj, c.Discount)
				}
				q[s][a] = total / float64(c.SamplesPerPair)
			}

			// Policy improvement
			if err := p.UpdateGreedy(s, greedyAction(q[s], actions)); err != nil {
				return err
			}
		}

		sum, err := actionValueSum[S, A](p, states, actions, q)
		if err != nil {
			return err
		}
		logger.Info("iteration complete",
			"iteration", iteration, "valueSum", sum)

		if actionValuesConverged(old, q, states, actions, c.Tolerance) {
			logger.Info("action values converged", "iterations", iteration+1)
			return nil
		}
	}
	return nil
}
