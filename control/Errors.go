package control

import (
	"fmt"
	"strings"
)

// UnvisitedPairsError indicates that a Monte Carlo run completed
// without sampling every state-action pair at least once, so the
// resulting action-value estimates are not trustworthy
type UnvisitedPairsError struct {
	// Pairs holds a "(state, action)" description of each pair that
	// was never visited, in declared state/action order
	Pairs []string
}

func (e *UnvisitedPairsError) Error() string {
	return fmt.Sprintf("state-action pairs were never visited: %s",
		strings.Join(e.Pairs, ", "))
}
