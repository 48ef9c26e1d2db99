package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// EGreedy implements an ε-greedy tabular policy. For each state one
// greedy action has probability 1 - ε(k-1)/k and every other action has
// probability ε/k, where k is the number of actions.
//
// Deterministic and purely exploratory policies are the ε = 0 and ε = 1
// special cases; see NewGreedy and NewExploratory.
type EGreedy[S, A comparable] struct {
	*Table[S, A]
	epsilon float64
}

// NewEGreedy constructs an ε-greedy policy with a uniform-randomly
// chosen greedy action for each state
func NewEGreedy[S, A comparable](states []S, actions []A, epsilon float64,
	seed uint64) (*EGreedy[S, A], error) {
	if err := checkEpsilon(epsilon); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	probabilities := make(map[S]map[A]float64, len(states))
	for _, s := range states {
		greedy := actions[rng.Intn(len(actions))]
		dist := make(map[A]float64, len(actions))
		for _, a := range actions {
			if a == greedy {
				dist[a] = greedyProbability(epsilon, len(actions))
			} else {
				dist[a] = exploreProbability(epsilon, len(actions))
			}
		}
		probabilities[s] = dist
	}

	table, err := New(states, actions, probabilities, seed)
	if err != nil {
		return nil, err
	}
	return &EGreedy[S, A]{Table: table, epsilon: epsilon}, nil
}

// NewGreedy constructs a deterministic policy, an ε-greedy policy with
// ε fixed at 0: exactly one action per state has probability 1
func NewGreedy[S, A comparable](states []S, actions []A,
	seed uint64) (*EGreedy[S, A], error) {
	return NewEGreedy(states, actions, 0.0, seed)
}

// NewExploratory constructs a purely exploratory policy, an ε-greedy
// policy with ε fixed at 1: all actions have equal probability in every
// state
func NewExploratory[S, A comparable](states []S, actions []A,
	seed uint64) (*EGreedy[S, A], error) {
	return NewEGreedy(states, actions, 1.0, seed)
}

// UpdateGreedy makes chosen the greedy action for s, recomputing the
// state's distribution from the policy's ε
func (p *EGreedy[S, A]) UpdateGreedy(s S, chosen A) error {
	if _, ok := p.actionIndex[chosen]; !ok {
		return &UnknownActionError{Action: chosen}
	}

	dist := make(map[A]float64, len(p.actions))
	for _, a := range p.actions {
		if a == chosen {
			dist[a] = greedyProbability(p.epsilon, len(p.actions))
		} else {
			dist[a] = exploreProbability(p.epsilon, len(p.actions))
		}
	}
	return p.SetDistribution(s, dist)
}

// Epsilon returns the policy's exploration parameter
func (p *EGreedy[S, A]) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon changes the exploration parameter used by subsequent
// UpdateGreedy calls. Distributions already stored are not recomputed.
func (p *EGreedy[S, A]) SetEpsilon(epsilon float64) error {
	if err := checkEpsilon(epsilon); err != nil {
		return err
	}
	p.epsilon = epsilon
	return nil
}

// Copy returns a deep snapshot of the policy
func (p *EGreedy[S, A]) Copy() *EGreedy[S, A] {
	return &EGreedy[S, A]{Table: p.Table.Copy(), epsilon: p.epsilon}
}

func checkEpsilon(epsilon float64) error {
	if epsilon < 0 || epsilon > 1 {
		return fmt.Errorf("epsilon must be between 0 and 1, got %v", epsilon)
	}
	return nil
}

// greedyProbability is the probability of the greedy action under an
// ε-greedy distribution over numActions actions
func greedyProbability(epsilon float64, numActions int) float64 {
	return 1 - epsilon/float64(numActions)*float64(numActions-1)
}

// exploreProbability is the probability of each non-greedy action under
// an ε-greedy distribution over numActions actions
func exploreProbability(epsilon float64, numActions int) float64 {
	return epsilon / float64(numActions)
}
