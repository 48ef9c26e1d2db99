package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
)

// PolicyIterationConfig configures PolicyIteration
type PolicyIterationConfig struct {
	// Discount is γ, in (0, 1]. Defaults to 0.9.
	Discount float64

	// MaxIterations bounds the outer improvement loop. Defaults to 100.
	MaxIterations int

	// Tolerance is the threshold for both the evaluation sweeps and
	// the policy convergence test. Defaults to DefaultTolerance.
	Tolerance float64

	// TruncateEvaluationAt, if positive, caps the number of evaluation
	// sweeps per iteration; otherwise evaluation runs to tolerance
	TruncateEvaluationAt int

	Logger *log.Logger
}

func (c PolicyIterationConfig) withDefaults() PolicyIterationConfig {
	if c.Discount == 0 {
		c.Discount = 0.9
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// PolicyIteration alternates iterative policy evaluation (full Bellman
// expectation sweeps over exact one-step lookaheads) with greedy
// improvement, until no state's action probability moves by more than
// the tolerance or the iteration budget runs out. The policy is
// mutated in place.
//
// Evaluation requires exact dynamics: every lookahead probes the
// environment and restores its state, so env must support SetState over
// the full domain.
func PolicyIteration[S, A comparable](p *policy.EGreedy[S, A],
	env environment.Environment[S, A], c PolicyIterationConfig) error {
	c = c.withDefaults()
	logger := configLogger(c.Logger)
	states := env.States()
	actions := env.Actions()

	for iteration := 0; iteration < c.MaxIterations; iteration++ {
		snapshot := p.Copy()

		// Policy evaluation
		values := make(map[S]float64, len(states))
		sweeps := 0
		for {
			old := copyValues(values)
			for _, s := range states {
				v, err := StateValue[S, A](p, env, s, values, c.Discount)
				if err != nil {
					return err
				}
				values[s] = v
			}
			sweeps++

			if valuesConverged(old, values, states, c.Tolerance) {
				break
			}
			if c.TruncateEvaluationAt > 0 && sweeps >= c.TruncateEvaluationAt {
				break
			}
		}

		// Policy improvement
		for _, s := range states {
			q := make(map[A]float64, len(actions))
			for _, a := range actions {
				v, err := ActionValue(env, s, a, values, c.Discount)
				if err != nil {
					return err
				}
				q[a] = v
			}
			if err := p.UpdateGreedy(s, greedyAction(q, actions)); err != nil {
				return err
			}
		}

		logger.Info("improvement complete",
			"iteration", iteration,
			"evaluationSweeps", sweeps,
			"valueSum", valueSum(values, states))

		converged, err := policiesConverged[S, A](snapshot, p, states,
			c.Tolerance)
		if err != nil {
			return err
		}
		if converged {
			logger.Info("policy converged", "iterations", iteration+1)
			return nil
		}
	}
	return nil
}
