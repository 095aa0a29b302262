package solver

import (
	"context"
	"testing"
	"time"

	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/validator"
)

// A classic, solvable 9x9 puzzle (0 = empty).
var sample = [][]uint8{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

func TestBacktrackingSolveUnder1s(t *testing.T) {
	in := domain.FromCells(sample)
	s := NewBacktrackingSolver()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, st, err := s.Solve(ctx, in)
	if err != nil {
		t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
	}
	if !out.IsSolved() {
		t.Fatal("output grid is not a valid solution")
	}
	// givens preserved
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if sample[r][c] != 0 && out.Cells[r][c] != sample[r][c] {
				t.Fatalf("given at r=%d c=%d was changed", r, c)
			}
		}
	}
	ok, conf, err := validator.New().Validate(ctx, out)
	if err != nil || !ok {
		t.Fatalf("invalid solution: err=%v conflicts=%v", err, conf)
	}
	t.Logf("Solved in %v, nodes=%d", st.Duration, st.Nodes)
}

func TestBacktrackingSolveSmallSizes(t *testing.T) {
	for _, size := range []int{4, 6} {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		out, _, err := NewBacktrackingSolver().Solve(ctx, domain.NewGrid(size))
		cancel()
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !out.IsSolved() {
			t.Fatalf("size %d: output not solved", size)
		}
	}
}

func TestSolveRejectsInconsistentInput(t *testing.T) {
	g := domain.NewGrid(9)
	g.Cells[0][0] = 1
	g.Cells[0][8] = 1
	if _, _, err := NewBacktrackingSolver().Solve(context.Background(), g); err == nil {
		t.Fatal("expected error for contradictory givens")
	}
}
