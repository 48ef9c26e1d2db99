// Package sample implements experience sampling primitives: one-step
// transitions and finite trajectories drawn from a (policy, environment)
// pair
package sample

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
)

// Style selects the shape of sampled experience
type Style int

const (
	// SARS samples (state, action, reward, next state)
	SARS Style = iota

	// SARSA additionally samples the next action, giving
	// (state, action, reward, next state, next action)
	SARSA
)

func (s Style) String() string {
	switch s {
	case SARS:
		return "sars"
	case SARSA:
		return "sarsa"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ActionSelector is the view of a policy the samplers need
type ActionSelector[S, A comparable] interface {
	SelectAction(s S) (A, error)
}

// Experience is a single sampled transition. NextAction is populated
// only for SARSA-style samples.
type Experience[S, A comparable] struct {
	State      S
	Action     A
	Reward     float64
	NextState  S
	NextAction A
}

// OneStep samples a single transition from the environment's current
// state: the action is drawn from p, applied to env, and the resulting
// reward and state recorded. With restore set, the environment is moved
// back to the starting state before returning, on every exit path.
func OneStep[S, A comparable](p ActionSelector[S, A],
	env environment.Environment[S, A], style Style,
	restore bool) (Experience[S, A], error) {
	return oneStep(p, env, style, restore, nil)
}

// oneStep additionally allows forcing the action taken instead of
// drawing it from the policy
func oneStep[S, A comparable](p ActionSelector[S, A],
	env environment.Environment[S, A], style Style, restore bool,
	forced *A) (exp Experience[S, A], err error) {
	s := env.CurrentState()
	if restore {
		defer func() {
			if rerr := env.SetState(s); rerr != nil && err == nil {
				err = rerr
			}
		}()
	}

	var a A
	if forced != nil {
		a = *forced
	} else {
		a, err = p.SelectAction(s)
		if err != nil {
			return Experience[S, A]{}, err
		}
	}

	reward, err := env.TakeAction(a)
	if err != nil {
		return Experience[S, A]{}, err
	}

	exp = Experience[S, A]{
		State:     s,
		Action:    a,
		Reward:    reward,
		NextState: env.CurrentState(),
	}
	if style == SARSA {
		exp.NextAction, err = p.SelectAction(exp.NextState)
		if err != nil {
			return Experience[S, A]{}, err
		}
	}
	return exp, nil
}

// Config configures trajectory generation
type Config[S, A comparable] struct {
	// MaxSteps bounds the trajectory length. A zero MaxSteps produces
	// an empty trajectory.
	MaxSteps int

	// Style selects SARS or SARSA experience
	Style Style

	// EndAtTerminal stops the trajectory as soon as the environment is
	// at a terminal state, inclusive of the terminal transition
	EndAtTerminal bool

	// RestoreState moves the environment back to its pre-call state
	// before returning, regardless of how many steps executed
	RestoreState bool

	// StartState, if non-nil, moves the environment there before the
	// first step
	StartState *S

	// StartAction, if non-nil, forces the first step's action instead
	// of drawing it from the policy
	StartAction *A
}

// Trajectory repeatedly samples one-step transitions, returning the
// ordered sequence of experience.
//
// In SARSA style each entry's NextAction equals the action actually
// taken at the following entry: once step i+1's action is drawn, it is
// patched back into entry i. Only the final entry keeps an
// independently drawn next action.
func Trajectory[S, A comparable](p ActionSelector[S, A],
	env environment.Environment[S, A],
	c Config[S, A]) (traj []Experience[S, A], err error) {
	original := env.CurrentState()
	if c.RestoreState {
		defer func() {
			if rerr := env.SetState(original); rerr != nil && err == nil {
				err = rerr
			}
		}()
	}

	if c.StartState != nil {
		if err := env.SetState(*c.StartState); err != nil {
			return nil, err
		}
	}

	for i := 0; i < c.MaxSteps; i++ {
		var forced *A
		if i == 0 {
			forced = c.StartAction
		}

		step, stepErr := oneStep(p, env, c.Style, false, forced)
		if stepErr != nil {
			return nil, stepErr
		}

		if c.Style == SARSA && len(traj) > 0 {
			traj[len(traj)-1].NextAction = step.Action
		}
		traj = append(traj, step)

		if c.EndAtTerminal && env.AtTerminal() {
			break
		}
	}
	return traj, nil
}
