package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"svw.info/gridoku/internal/domain"
)

func testPuzzle() *domain.Puzzle {
	solution := domain.FromCells([][]uint8{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	givens := solution.Clone()
	givens.Cells[0][3] = 0
	givens.Cells[2][1] = 0
	return &domain.Puzzle{
		ID:         "test-puzzle-1",
		Seed:       7,
		Size:       4,
		Requested:  domain.Easy,
		Actual:     domain.Beginner,
		Strategies: []domain.Strategy{domain.NakedSingle},
		Givens:     givens,
		Solution:   solution,
		CreatedAt:  time.Now().UnixNano(),
		Name:       "unit fixture",
	}
}

func TestFSRoundTrip(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()
	p := testPuzzle()
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || got.Seed != p.Seed || got.Actual != p.Actual || got.Size != p.Size {
		t.Fatalf("loaded puzzle differs: %+v", got)
	}
	if got.Givens.Cells[0][3] != 0 || got.Solution.Cells[0][3] != 4 {
		t.Fatal("grids did not survive the round trip")
	}
	if len(got.Strategies) != 1 || got.Strategies[0] != domain.NakedSingle {
		t.Fatalf("strategies = %v", got.Strategies)
	}
}

func TestFSList(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()
	p := testPuzzle()
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 || metas[0].ID != p.ID || metas[0].Actual != domain.Beginner {
		t.Fatalf("metas = %+v", metas)
	}
}

func TestFSLoadMissing(t *testing.T) {
	s := NewFS(t.TempDir())
	if _, err := s.Load(context.Background(), "nope"); !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestFSSaveRejectsMissingID(t *testing.T) {
	s := NewFS(t.TempDir())
	if err := s.Save(context.Background(), &domain.Puzzle{}); err == nil {
		t.Fatal("expected error for missing ID")
	}
}
