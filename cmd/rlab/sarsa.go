package main

import (
	"github.com/samuelfneumann/tabular/control"
	"github.com/samuelfneumann/tabular/policy"
	"github.com/spf13/cobra"
)

func sarsaCommand() *cobra.Command {
	var episodes, maxSteps int
	var epsilon, learningRate float64

	cmd := &cobra.Command{
		Use:   "sarsa",
		Short: "Solve a random maze with SARSA",
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

			logger.Info("running SARSA",
				"epsilon", epsilon, "learningRate", learningRate)
			err = control.Sarsa(p, m, control.SarsaConfig{
				Discount:     flags.discount,
				LearningRate: learningRate,
				Episodes:     episodes,
				MaxSteps:     maxSteps,
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			return report(m, p)
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", 100, "episode budget")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 100,
		"steps per episode")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0.5,
		"exploration parameter")
	cmd.Flags().Float64Var(&learningRate, "learning-rate", 0.1,
		"step size α")
	return cmd
}
