package validator

import (
	"context"
	"testing"

	"svw.info/gridoku/internal/domain"
)

func TestValidateCleanGrid(t *testing.T) {
	g := domain.FromCells([][]uint8{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	ok, conflicts, err := New().Validate(context.Background(), g)
	if err != nil || !ok || len(conflicts) != 0 {
		t.Fatalf("Validate = %v %v %v, want ok", ok, conflicts, err)
	}
}

func TestValidateFindsConflicts(t *testing.T) {
	g := domain.NewGrid(6)
	g.Cells[2][0] = 5
	g.Cells[2][4] = 5 // row duplicate
	g.Cells[0][1] = 3
	g.Cells[5][1] = 3 // column duplicate
	ok, conflicts, err := New().Validate(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if ok || len(conflicts) < 2 {
		t.Fatalf("expected at least 2 conflicts, got ok=%v conflicts=%v", ok, conflicts)
	}
}

func TestValidateBoxConflict(t *testing.T) {
	g := domain.NewGrid(9)
	g.Cells[0][0] = 8
	g.Cells[2][2] = 8 // same box, different row and column
	ok, conflicts, _ := New().Validate(context.Background(), g)
	if ok || len(conflicts) != 1 {
		t.Fatalf("box duplicate missed: ok=%v conflicts=%v", ok, conflicts)
	}
}

func TestValidateUnsupportedSize(t *testing.T) {
	if _, _, err := New().Validate(context.Background(), domain.Grid{Size: 5}); err == nil {
		t.Fatal("expected error for unsupported size")
	}
}
