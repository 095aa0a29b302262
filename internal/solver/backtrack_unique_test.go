package solver

import (
	"context"
	"testing"

	"svw.info/gridoku/internal/domain"
)

func TestCountSolutionsExactlyOne(t *testing.T) {
	n, st, err := NewBacktrackingSolver().CountSolutions(context.Background(), domain.FromCells(sample), 2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	t.Logf("nodes=%d dur=%v", st.Nodes, st.Duration)
}

func TestCountSolutionsStopsAtLimit(t *testing.T) {
	// An empty grid has a huge number of completions; the counter
	// must stop the instant the cap is reached.
	n, _, err := NewBacktrackingSolver().CountSolutions(context.Background(), domain.NewGrid(4), 2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2 (capped)", n)
	}
}

func TestCountSolutionsZeroForContradiction(t *testing.T) {
	// Duplicate givens: malformed interactive input is expected, so
	// this is a zero-solution result, never an error.
	g := domain.NewGrid(4)
	g.Cells[0][0] = 1
	g.Cells[0][1] = 1
	n, _, err := NewBacktrackingSolver().CountSolutions(context.Background(), g, 2)
	if err != nil || n != 0 {
		t.Fatalf("count = %d err = %v, want 0 and nil", n, err)
	}
}

func TestCountSolutionsZeroForDeadCell(t *testing.T) {
	// Consistent givens that still leave (0,3) with no candidate.
	g := domain.FromCells([][]uint8{
		{1, 2, 3, 0},
		{0, 0, 0, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	n, _, err := NewBacktrackingSolver().CountSolutions(context.Background(), g, 2)
	if err != nil || n != 0 {
		t.Fatalf("count = %d err = %v, want 0 and nil", n, err)
	}
}

func TestUniqueHelper(t *testing.T) {
	ok, _, err := Unique(context.Background(), NewBacktrackingSolver(), domain.FromCells(sample))
	if err != nil || !ok {
		t.Fatalf("Unique = %v %v, want true", ok, err)
	}
	ok, _, _ = Unique(context.Background(), NewBacktrackingSolver(), domain.NewGrid(4))
	if ok {
		t.Fatal("empty grid reported unique")
	}
}
