package main

import (
	"github.com/samuelfneumann/tabular/control"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/spf13/cobra"
)

func policyIterationCommand() *cobra.Command {
	var maxIterations, truncateEvaluation int
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "policy-iteration",
		Short: "Solve a random maze with policy iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			m, err := buildMaze()
			if err != nil {
				return err
			}

			p, err := policy.NewGreedy(m.States(), m.Actions(), flags.seed)
			if err != nil {
				return err
			}

			logger.Info("running policy iteration")
			err = control.PolicyIteration(p, m,
				control.PolicyIterationConfig{
					Discount:             flags.discount,
					MaxIterations:        maxIterations,
					Tolerance:            tolerance,
					TruncateEvaluationAt: truncateEvaluation,
					Logger:               logger,
				})
			if err != nil {
				return err
			}
			return report(m, p)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 100,
		"outer iteration budget")
	cmd.Flags().IntVar(&truncateEvaluation, "truncate-evaluation", 0,
		"cap on evaluation sweeps per iteration (0 runs to tolerance)")
	cmd.Flags().Float64Var(&tolerance, "tolerance",
		control.DefaultTolerance, "convergence tolerance")
	return cmd
}

func valueIterationCommand() *cobra.Command {
	var maxIterations int
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "value-iteration",
		Short: "Solve a random maze with value iteration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			m, err := buildMaze()
			if err != nil {
				return err
			}

			p, err := policy.NewGreedy(m.States(), m.Actions(), flags.seed)
			if err != nil {
				return err
			}

			logger.Info("running value iteration")
			err = control.ValueIteration(p, m, control.ValueIterationConfig{
				Discount:      flags.discount,
				MaxIterations: maxIterations,
				Tolerance:     tolerance,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			return report(m, p)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 100,
		"sweep budget")
	cmd.Flags().Float64Var(&tolerance, "tolerance",
		control.DefaultTolerance, "convergence tolerance")
	return cmd
}
