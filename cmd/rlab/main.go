// rlab trains tabular control algorithms on randomly generated mazes
// and replays the learned policy in the terminal
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var flags struct {
	rows     int
	cols     int
	exits    int
	vortexes int
	seed     uint64
	discount float64
	debug    bool
	noReplay bool
}

func main() {
	root := &cobra.Command{
		Use:           "rlab",
		Short:         "A laboratory for tabular reinforcement-learning control",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.IntVar(&flags.rows, "rows", 6, "maze height")
	pf.IntVar(&flags.cols, "cols", 6, "maze width")
	pf.IntVar(&flags.exits, "exits", 3, "number of exits")
	pf.IntVar(&flags.vortexes, "vortexes", 7, "number of vortexes")
	pf.Uint64Var(&flags.seed, "seed", 1923, "random seed")
	pf.Float64Var(&flags.discount, "discount", 0.9, "discount factor γ")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.BoolVar(&flags.noReplay, "no-replay", false,
		"skip the greedy rollout replay")

	root.AddCommand(
		policyIterationCommand(),
		valueIterationCommand(),
		mcBasicCommand(),
		mcExploringStartsCommand(),
		mcEpsilonGreedyCommand(),
		sarsaCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
