package control

import (
	"fmt"

	"github.com/samuelfneumann/tabular/sample"
)

// returnStats accumulates an every-visit running average of discounted
// returns for one state-action pair. Holding a count and mean instead
// of the full return sequence keeps memory bounded while producing the
// same arithmetic mean.
type returnStats struct {
	count int
	mean  float64
}

func (r *returnStats) add(g float64) {
	r.count++
	r.mean += (g - r.mean) / float64(r.count)
}

// returnsBuffer holds per-pair return statistics, indexed by state and
// by position in the declared action order
type returnsBuffer[S, A comparable] struct {
	stats       map[S][]returnStats
	actionIndex map[A]int
}

func newReturnsBuffer[S, A comparable](states []S,
	actions []A) *returnsBuffer[S, A] {
	stats := make(map[S][]returnStats, len(states))
	for _, s := range states {
		stats[s] = make([]returnStats, len(actions))
	}
	actionIndex := make(map[A]int, len(actions))
	for i, a := range actions {
		actionIndex[a] = i
	}
	return &returnsBuffer[S, A]{stats: stats, actionIndex: actionIndex}
}

// accumulate folds a trajectory's rewards backward, recording the
// discounted return at every visit
func (b *returnsBuffer[S, A]) accumulate(traj []sample.Experience[S, A],
	discount float64) {
	var g float64
	for i := len(traj) - 1; i >= 0; i-- {
		g = discount*g + traj[i].Reward
		b.stats[traj[i].State][b.actionIndex[traj[i].Action]].add(g)
	}
}

// fill writes the running averages into an action-value table. Pairs
// with no recorded return keep a zero estimate.
func (b *returnsBuffer[S, A]) fill(q map[S]map[A]float64, states []S,
	actions []A) {
	for _, s := range states {
		for i, a := range actions {
			q[s][a] = b.stats[s][i].mean
		}
	}
}

// checkVisited returns an *UnvisitedPairsError naming every pair with
// no recorded return, or nil if all pairs were visited
func (b *returnsBuffer[S, A]) checkVisited(states []S, actions []A) error {
	var unvisited []string
	for _, s := range states {
		for i, a := range actions {
			if b.stats[s][i].count == 0 {
				unvisited = append(unvisited,
					fmt.Sprintf("(%v, %v)", s, a))
			}
		}
	}
	if len(unvisited) > 0 {
		return &UnvisitedPairsError{Pairs: unvisited}
	}
	return nil
}
