package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
)

// ValueIterationConfig configures ValueIteration
type ValueIterationConfig struct {
	// Discount is γ, in (0, 1]. Defaults to 0.9.
	Discount float64

	// MaxIterations bounds the number of sweeps. Defaults to 100.
	MaxIterations int

	// Tolerance is the threshold on the max per-state value change.
	// Defaults to DefaultTolerance.
	Tolerance float64

	// LogEvery controls how often a progress line is emitted.
	// Defaults to every 10 sweeps.
	LogEvery int

	Logger *log.Logger
}

func (c ValueIterationConfig) withDefaults() ValueIterationConfig {
	if c.Discount == 0 {
		c.Discount = 0.9
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.LogEvery == 0 {
		c.LogEvery = 10
	}
	return c
}

// ValueIteration performs one V(s) = max_a (R(s,a) + γV(s')) sweep per
// iteration, storing the greedy action in the policy as each state is
// swept, until the largest per-state value change falls within the
// tolerance. There is no inner evaluation loop. The policy is mutated
// in place.
func ValueIteration[S, A comparable](p *policy.EGreedy[S, A],
	env environment.Environment[S, A], c ValueIterationConfig) error {
	c = c.withDefaults()
	logger := configLogger(c.Logger)
	states := env.States()
	actions := env.Actions()

	values := make(map[S]float64, len(states))
	for iteration := 0; iteration < c.MaxIterations; iteration++ {
		old := copyValues(values)

		for _, s := range states {
			q := make(map[A]float64, len(actions))
			for _, a := range actions {
				v, err := ActionValue(env, s, a, values, c.Discount)
				if err != nil {
					return err
				}
				q[a] = v
			}

			best := greedyAction(q, actions)
			if err := p.UpdateGreedy(s, best); err != nil {
				return err
			}
			values[s] = q[best]
		}

		if iteration%c.LogEvery == 0 {
			logger.Info("sweep complete",
				"iteration", iteration,
				"valueSum", valueSum(values, states))
		}

		if valuesConverged(old, values, states, c.Tolerance) {
			logger.Info("state values converged", "iterations", iteration+1)
			return nil
		}
	}
	return nil
}
