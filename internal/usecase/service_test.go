package usecase

import (
	"context"
	"testing"

	"svw.info/gridoku/internal/domain"
)

// memStore records the last saved puzzle.
type memStore struct {
	saved *domain.Puzzle
}

func (m *memStore) Save(ctx context.Context, p *domain.Puzzle) error {
	m.saved = p
	return nil
}

func (m *memStore) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	return m.saved, nil
}

func (m *memStore) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	return nil, nil
}

func TestSaveStampsCreationTime(t *testing.T) {
	st := &memStore{}
	uc := &Service{Storage: st}
	p := &domain.Puzzle{ID: "p1", Size: 4}
	if err := uc.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if st.saved.CreatedAt == 0 {
		t.Fatal("first save left CreatedAt zero")
	}
}

func TestSaveKeepsExistingCreationTime(t *testing.T) {
	st := &memStore{}
	uc := &Service{Storage: st}
	p := &domain.Puzzle{ID: "p1", Size: 4, CreatedAt: 77}
	if err := uc.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if st.saved.CreatedAt != 77 {
		t.Fatalf("CreatedAt = %d, want the original 77", st.saved.CreatedAt)
	}
}

func TestUnconfiguredDependenciesError(t *testing.T) {
	uc := &Service{}
	if err := uc.Save(context.Background(), &domain.Puzzle{ID: "x"}); err == nil {
		t.Fatal("Save with no storage should fail")
	}
	if _, _, err := uc.Solve(context.Background(), domain.NewGrid(4)); err == nil {
		t.Fatal("Solve with no solver should fail")
	}
}
