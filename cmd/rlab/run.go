package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gosuri/uilive"
	"github.com/samuelfneumann/tabular/environment/maze"
	"github.com/samuelfneumann/tabular/policy"
)

const replaySteps = 50

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if flags.debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// buildMaze generates the random maze all subcommands train on and
// prints it
func buildMaze() (*maze.Maze, error) {
	m, err := maze.NewRandom(flags.rows, flags.cols, flags.exits,
		flags.vortexes, maze.DefaultRewards(), flags.seed)
	if err != nil {
		return nil, err
	}
	fmt.Println("Maze:")
	fmt.Println(m.Render())
	return m, nil
}

// report prints the learned policy over the maze and, unless disabled,
// replays a greedy rollout from the start tile
func report(m *maze.Maze,
	p *policy.EGreedy[maze.Position, maze.Action]) error {
	fmt.Println("Policy table:")
	fmt.Println(p.String())

	annotated, err := m.RenderPolicy(p)
	if err != nil {
		return err
	}
	fmt.Println("Greedy policy:")
	fmt.Println(annotated)

	if flags.noReplay {
		return nil
	}
	return replayGreedy(m, p)
}

// replayGreedy walks the greedy policy from the start tile, live
// rendering each step until a terminal tile or the step cap
func replayGreedy(m *maze.Maze,
	p *policy.EGreedy[maze.Position, maze.Action]) error {
	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	m.Reset()
	fmt.Fprintln(writer, m.Render())
	time.Sleep(200 * time.Millisecond)

	for step := 0; step < replaySteps && !m.AtTerminal(); step++ {
		a, err := p.GreedyAction(m.CurrentState())
		if err != nil {
			return err
		}
		if _, err := m.TakeAction(a); err != nil {
			return err
		}
		fmt.Fprintln(writer, m.Render())
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}
