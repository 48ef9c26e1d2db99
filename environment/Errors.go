package environment

import "fmt"

// InvalidStateError indicates that a state outside an environment's
// declared state domain was given to SetState
type InvalidStateError struct {
	State any
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("state %v is outside the environment's state domain",
		e.State)
}

// InvalidActionError indicates that an action outside an environment's
// declared action vocabulary was given to TakeAction
type InvalidActionError struct {
	Action any
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("action %v is outside the environment's action "+
		"vocabulary", e.Action)
}
