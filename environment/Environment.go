// Package environment outlines the contract between control algorithms and
// the discrete Markov processes they act on
package environment

// Environment implements a simulated discrete-state, discrete-action
// Markov process. The state and action vocabularies are finite, ordered,
// and fixed for the lifetime of the environment.
//
// SetState and TakeAction must never leave the environment in a state
// outside States(), and TakeAction must always be safe to call
// repeatedly, including from a terminal state.
type Environment[S, A comparable] interface {
	// CurrentState returns the environment's current state without
	// side effects
	CurrentState() S

	// SetState moves the environment to state s, returning an
	// *InvalidStateError if s is outside the state domain
	SetState(s S) error

	// SampleRandomState returns a state drawn uniformly from the full
	// state domain, independent of the current state
	SampleRandomState() S

	// IsTerminal returns whether s is a terminal state
	IsTerminal(s S) bool

	// AtTerminal returns whether the current state is terminal
	AtTerminal() bool

	// TakeAction applies a to the current state according to the
	// environment's transition rule and returns the reward. An
	// *InvalidActionError is returned if a is outside the action
	// vocabulary.
	TakeAction(a A) (float64, error)

	// States returns the full state domain in a fixed order
	States() []S

	// Actions returns the full action vocabulary in a fixed order
	Actions() []A
}
