package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/gridoku/internal/ports"
	"svw.info/gridoku/internal/solver"
)

var (
	solveKind    string
	solveTimeout time.Duration
)

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func pickSolver(kind string) ports.Solver {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "backtrack", "backtracking":
		return solver.NewBacktrackingSolver()
	default:
		return solver.NewDLXSolver()
	}
}

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve <grid>",
		Short: "Solve a puzzle given as a cell string",
		Long: `Solve a puzzle. The grid is one digit per cell, '.' or '0' for
empty, row by row; 16, 36, or 81 cells decide the board size.

Example:
  gridoku solve 53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}
	solveCmd.Flags().StringVar(&solveKind, "solver", "dlx", "solver to use: dlx|backtrack")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 10*time.Second, "solve timeout")
	rootCmd.AddCommand(solveCmd)

	rateCmd := &cobra.Command{
		Use:   "rate <grid>",
		Short: "Rate a puzzle's logical difficulty",
		Long: `Run the human-technique solver on a puzzle and report the
techniques it needs, its difficulty grade, and whether logic alone
finishes it.`,
		Args: cobra.ExactArgs(1),
		RunE: runRate,
	}
	rateCmd.Flags().BoolVar(&rateSteps, "steps", false, "print every technique application")
	rootCmd.AddCommand(rateCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	g, err := parseGrid(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := contextWithTimeout(solveTimeout)
	defer cancel()

	s := pickSolver(solveKind)
	out, st, err := s.Solve(ctx, g)
	if err != nil {
		return err
	}
	count, _, _ := s.CountSolutions(ctx, g, 2)
	fmt.Fprintf(os.Stdout, "# solved in %v, %d nodes, unique=%v\n", st.Duration.Round(time.Microsecond), st.Nodes, count == 1)
	fmt.Fprintln(os.Stdout, renderGrid(out))
	return nil
}

var rateSteps bool

func runRate(cmd *cobra.Command, args []string) error {
	g, err := parseGrid(args[0])
	if err != nil {
		return err
	}
	run := solver.NewStrategySolver().Run(g)
	fmt.Fprintf(os.Stdout, "solved by logic: %v\n", run.Solved)
	fmt.Fprintf(os.Stdout, "difficulty:      %s\n", run.MaxDifficulty)
	fmt.Fprintf(os.Stdout, "strategies:      %v\n", run.StrategiesUsed)
	if rateSteps {
		for i, step := range run.Steps {
			if step.Value != 0 {
				fmt.Fprintf(os.Stdout, "%3d. %-14s r%dc%d = %d\n", i+1, step.Technique, step.Cell.Row, step.Cell.Col, step.Value)
			} else {
				fmt.Fprintf(os.Stdout, "%3d. %-14s eliminate %v around r%dc%d\n", i+1, step.Technique, step.Eliminated, step.Cell.Row, step.Cell.Col)
			}
		}
	}
	return nil
}
