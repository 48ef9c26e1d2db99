package control

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance is the convergence threshold used when a Config does
// not set one
const DefaultTolerance = 0.01

// valuesConverged reports whether no state's value moved by more than
// tolerance between two evaluation sweeps
func valuesConverged[S comparable](old, next map[S]float64, states []S,
	tolerance float64) bool {
	for _, s := range states {
		if !scalar.EqualWithinAbs(next[s], old[s], tolerance) {
			return false
		}
	}
	return true
}

// actionValuesConverged reports whether no state-action value moved by
// more than tolerance between two iterations
func actionValuesConverged[S, A comparable](old, next map[S]map[A]float64,
	states []S, actions []A, tolerance float64) bool {
	for _, s := range states {
		for _, a := range actions {
			if !scalar.EqualWithinAbs(next[s][a], old[s][a], tolerance) {
				return false
			}
		}
	}
	return true
}

// policiesConverged reports whether no state's action probability moved
// by more than tolerance between two policies over the same domain
func policiesConverged[S, A comparable](old, next Distribution[S, A],
	states []S, tolerance float64) (bool, error) {
	for _, s := range states {
		before, err := old.ActionProbabilities(s)
		if err != nil {
			return false, err
		}
		after, err := next.ActionProbabilities(s)
		if err != nil {
			return false, err
		}
		for a, p := range after {
			if !scalar.EqualWithinAbs(p, before[a], tolerance) {
				return false, nil
			}
		}
	}
	return true, nil
}

// copyValues snapshots a value table for a convergence comparison
func copyValues[S comparable](values map[S]float64) map[S]float64 {
	snapshot := make(map[S]float64, len(values))
	for s, v := range values {
		snapshot[s] = v
	}
	return snapshot
}

// copyActionValues snapshots an action-value table for a convergence
// comparison
func copyActionValues[S, A comparable](
	q map[S]map[A]float64) map[S]map[A]float64 {
	snapshot := make(map[S]map[A]float64, len(q))
	for s, row := range q {
		inner := make(map[A]float64, len(row))
		for a, v := range row {
			inner[a] = v
		}
		snapshot[s] = inner
	}
	return snapshot
}
