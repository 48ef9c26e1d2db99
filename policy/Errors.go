package policy

import "fmt"

// InvalidTableError indicates that a policy table violates one of its
// invariants: a missing state or action entry, a NaN probability, a
// probability outside [0, 1], or a per-state sum away from 1
type InvalidTableError struct {
	Reason string
}

func (e *InvalidTableError) Error() string {
	return "invalid policy table: " + e.Reason
}

// UnknownStateError indicates a lookup with a state outside the
// policy's declared state set
type UnknownStateError struct {
	State any
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("state %v is not in the policy table", e.State)
}

// UnknownActionError indicates a lookup or update with an action
// outside the policy's declared action set
type UnknownActionError struct {
	Action any
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("action %v is not in the policy table", e.Action)
}
