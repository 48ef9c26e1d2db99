package main

import (
	"github.com/samuelfneumann/tabular/control"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/spf13/cobra"
)

func mcBasicCommand() *cobra.Command {
	var maxIterations, samplesPerPair, maxSteps int
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "mc-basic",
		Short: "Solve a random maze with basic Monte Carlo control",
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

			logger.Info("running MC basic")
			err = control.MCBasic(p, m, control.MCBasicConfig{
				Discount:           flags.discount,
				MaxIterations:      maxIterations,
				SamplesPerPair:     samplesPerPair,
				MaxTrajectorySteps: maxSteps,
				EndAtTerminal:      true,
				Tolerance:          tolerance,
				Logger:             logger,
			})
			if err != nil {
				return err
			}
			return report(m, p)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 100,
		"outer iteration budget")
	// The maze is deterministic, so a single trajectory per pair
	// already gives the exact return
	cmd.Flags().IntVar(&samplesPerPair, "samples-per-pair", 1,
		"trajectories sampled per state-action pair")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10,
		"trajectory length cap")
	cmd.Flags().Float64Var(&tolerance, "tolerance",
		control.DefaultTolerance, "convergence tolerance")
	return cmd
}

func mcExploringStartsCommand() *cobra.Command {
	var episodes, maxSteps int

	cmd := &cobra.Command{
		Use:   "mc-exploring-starts",
		Short: "Solve a random maze with exploring-starts Monte Carlo control",
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

			logger.Info("running MC exploring starts")
			err = control.MCExploringStarts(p, m,
				control.MCExploringStartsConfig{
					Discount:           flags.discount,
					Episodes:           episodes,
					MaxTrajectorySteps: maxSteps,
					Logger:             logger,
				})
			if err != nil {
				return err
			}
			return report(m, p)
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", 500, "episode budget; "+
		"must cover every state-action pair at least once")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10,
		"trajectory length cap")
	return cmd
}

func mcEpsilonGreedyCommand() *cobra.Command {
	var episodes, maxSteps int
	var epsilon float64

	cmd := &cobra.Command{
		Use:   "mc-epsilon-greedy",
		Short: "Solve a random maze with ε-greedy Monte Carlo control",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			m, err := buildMaze()
			if err != nil {
				return err
			}

			p, err := policy.NewEGreedy(m.States(), m.Actions(), epsilon,
				flags.seed)
			if err != nil {
				return err
			}

			logger.Info("running MC epsilon-greedy", "epsilon", epsilon)
			err = control.MCEpsilonGreedy(p, m,
				control.MCEpsilonGreedyConfig{
					Discount:           flags.discount,
					Episodes:           episodes,
					MaxTrajectorySteps: maxSteps,
					Seed:               flags.seed,
					Logger:             logger,
				})
			if err != nil {
				return err
			}
			return report(m, p)
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", 500, "episode budget")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10,
		"trajectory length cap")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0.2,
		"exploration parameter")
	return cmd
}
