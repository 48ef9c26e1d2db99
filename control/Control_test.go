package control_test

import (
	"testing"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/policy"
	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/require"
)

// chainEnv is the two-state, two-action chain: action "a0" from "s0"
// yields reward 1 and moves to the terminal "s1", action "a1" yields
// reward 0 and stays put. Both actions are no-ops at "s1".
type chainEnv struct {
	state string
	rng   *rand.Rand
}

var _ environment.Environment[string, string] = (*chainEnv)(nil)

func newChainEnv(seed uint64) *chainEnv {
	return &chainEnv{state: "s0", rng: rand.New(rand.NewSource(seed))}
}

func (e *chainEnv) CurrentState() string { return e.state }

func (e *chainEnv) SetState(s string) error {
	if s != "s0" && s != "s1" {
		return &environment.InvalidStateError{State: s}
	}
	e.state = s
	return nil
}

func (e *chainEnv) SampleRandomState() string {
	if e.rng.Intn(2) == 0 {
		return "s0"
	}
	return "s1"
}

func (e *chainEnv) IsTerminal(s string) bool { return s == "s1" }

func (e *chainEnv) AtTerminal() bool { return e.IsTerminal(e.state) }

func (e *chainEnv) TakeAction(a string) (float64, error) {
	switch a {
	case "a0":
		if e.state == "s0" {
			e.state = "s1"
			return 1, nil
		}
		return 0, nil
	case "a1":
		return 0, nil
	default:
		return 0, &environment.InvalidActionError{Action: a}
	}
}

func (e *chainEnv) States() []string { return []string{"s0", "s1"} }

func (e *chainEnv) Actions() []string { return []string{"a0", "a1"} }

// chainPolicy builds a deterministic starting policy over the chain
func chainPolicy(t *testing.T,
	env *chainEnv) *policy.EGreedy[string, string] {
	t.Helper()
	p, err := policy.NewGreedy(env.States(), env.Actions(), 13)
	require.NoError(t, err)
	return p
}
