package solver

import (
	"context"
	"testing"
	"time"

	"svw.info/gridoku/internal/domain"
)

func TestDLXSolveClassic(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, st, err := NewDLXSolver().Solve(ctx, domain.FromCells(sample))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !out.IsSolved() {
		t.Fatal("output grid is not a valid solution")
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if sample[r][c] != 0 && out.Cells[r][c] != sample[r][c] {
				t.Fatalf("given at r=%d c=%d was changed", r, c)
			}
		}
	}
	t.Logf("dlx nodes=%d dur=%v", st.Nodes, st.Duration)
}

func TestDLXAgreesWithBacktracking(t *testing.T) {
	ctx := context.Background()
	a, _, err := NewDLXSolver().Solve(ctx, domain.FromCells(sample))
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := NewBacktrackingSolver().Solve(ctx, domain.FromCells(sample))
	if err != nil {
		t.Fatal(err)
	}
	// the puzzle is unique, so both solvers must land on one grid
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if a.Cells[r][c] != b.Cells[r][c] {
				t.Fatalf("solvers disagree at r=%d c=%d", r, c)
			}
		}
	}
}

func TestDLXVariableSizes(t *testing.T) {
	for _, size := range []int{4, 6} {
		out, _, err := NewDLXSolver().Solve(context.Background(), domain.NewGrid(size))
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !out.IsSolved() {
			t.Fatalf("size %d: output not solved", size)
		}
	}
}

func TestDLXCountSolutions(t *testing.T) {
	n, _, err := NewDLXSolver().CountSolutions(context.Background(), domain.FromCells(sample), 2)
	if err != nil || n != 1 {
		t.Fatalf("count = %d err = %v, want 1", n, err)
	}
	n, _, _ = NewDLXSolver().CountSolutions(context.Background(), domain.NewGrid(4), 2)
	if n != 2 {
		t.Fatalf("empty 4x4 count = %d, want 2 (capped)", n)
	}
	g := domain.NewGrid(9)
	g.Cells[0][0] = 3
	g.Cells[1][1] = 3 // same box
	n, _, _ = NewDLXSolver().CountSolutions(context.Background(), g, 2)
	if n != 0 {
		t.Fatalf("contradictory grid count = %d, want 0", n)
	}
}

func TestDLXUnsupportedSize(t *testing.T) {
	if _, _, err := NewDLXSolver().Solve(context.Background(), domain.Grid{Size: 5}); err == nil {
		t.Fatal("expected error for unsupported size")
	}
}
