// Package control implements tabular control algorithms: policy
// iteration, value iteration, three Monte Carlo variants, and SARSA.
// Each algorithm mutates the given policy in place until it is greedy
// with respect to its value estimates.
//
// The discount factor carried by every Config must lie in (0, 1]; this
// is a contract input and is not re-validated at runtime.
package control

import (
	"github.com/charmbracelet/log"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/sample"
	"gonum.org/v1/gonum/floats"
)

// Distribution is the read-only view of a policy used by the value
// helpers
type Distribution[S, A comparable] interface {
	ActionProbabilities(s S) (map[A]float64, error)
}

// ActionValue computes the one-step lookahead value R(s,a) + γV(s').
//
// The environment is moved to s for the probe and restored to its
// original state afterwards, even when the probe fails, so the call is
// not an observable mutation.
func ActionValue[S, A comparable](env environment.Environment[S, A], s S,
	a A, values map[S]float64, discount float64) (v float64, err error) {
	original := env.CurrentState()
	defer func() {
		if rerr := env.SetState(original); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if err := env.SetState(s); err != nil {
		return 0, err
	}
	reward, err := env.TakeAction(a)
	if err != nil {
		return 0, err
	}
	return reward + discount*values[env.CurrentState()], nil
}

// StateValue computes V(s) = Σ_a π(a|s) (R(s,a) + γV(s')) from one-step
// lookaheads under the policy's action distribution
func StateValue[S, A comparable](p Distribution[S, A],
	env environment.Environment[S, A], s S, values map[S]float64,
	discount float64) (float64, error) {
	probabilities, err := p.ActionProbabilities(s)
	if err != nil {
		return 0, err
	}

	var v float64
	for _, a := range env.Actions() {
		q, err := ActionValue(env, s, a, values, discount)
		if err != nil {
			return 0, err
		}
		v += probabilities[a] * q
	}
	return v, nil
}

// stateValueFromActionValues computes V(s) = Σ_a π(a|s) Q(s,a) from an
// action-value table, without touching the environment
func stateValueFromActionValues[S, A comparable](p Distribution[S, A], s S,
	actions []A, q map[S]map[A]float64) (float64, error) {
	probabilities, err := p.ActionProbabilities(s)
	if err != nil {
		return 0, err
	}

	var v float64
	for _, a := range actions {
		v += probabilities[a] * q[s][a]
	}
	return v, nil
}

// valueSum aggregates a value table over the declared states; used only
// for progress reporting
func valueSum[S comparable](values map[S]float64, states []S) float64 {
	ordered := make([]float64, len(states))
	for i, s := range states {
		ordered[i] = values[s]
	}
	return floats.Sum(ordered)
}

// actionValueSum reports the policy-weighted state-value sum implied by
// an action-value table
func actionValueSum[S, A comparable](p Distribution[S, A], states []S,
	actions []A, q map[S]map[A]float64) (float64, error) {
	values := make(map[S]float64, len(states))
	for _, s := range states {
		v, err := stateValueFromActionValues(p, s, actions, q)
		if err != nil {
			return 0, err
		}
		values[s] = v
	}
	return valueSum(values, states), nil
}

// greedyAction returns the action with the largest value in q. Ties
// resolve to the first maximal action in the declared order, keeping
// improvement reproducible.
func greedyAction[A comparable](q map[A]float64, actions []A) A {
	best := actions[0]
	bestValue := q[best]
	for _, a := range actions[1:] {
		if v := q[a]; v > bestValue {
			best, bestValue = a, v
		}
	}
	return best
}

// newActionValues allocates a zeroed action-value table
func newActionValues[S, A comparable](states []S,
	actions []A) map[S]map[A]float64 {
	q := make(map[S]map[A]float64, len(states))
	for _, s := range states {
		q[s] = make(map[A]float64, len(actions))
		for _, a := range actions {
			q[s][a] = 0
		}
	}
	return q
}

// discountedReturn computes G = Σ γ^t r_t over a trajectory, folding
// rewards backward from the final step
func discountedReturn[S, A comparable](traj []sample.Experience[S, A],
	discount float64) float64 {
	var g float64
	for i := len(traj) - 1; i >= 0; i-- {
		g = discount*g + traj[i].Reward
	}
	return g
}

// configLogger falls back to the package default logger when a Config
// carries none
func configLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
