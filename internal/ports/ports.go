package ports

import (
	"context"
	"time"

	"svw.info/gridoku/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver completes a grid and can count its solutions.
type Solver interface {
	Solve(ctx context.Context, g domain.Grid) (domain.Grid, Stats, error)
	// CountSolutions counts distinct completions, stopping at limit.
	CountSolutions(ctx context.Context, g domain.Grid, limit int) (int, Stats, error)
}

// Generator creates new puzzles at a target size and difficulty.
type Generator interface {
	Generate(ctx context.Context, size int, seed int64, difficulty domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator performs fast constraint checks (row/col/box).
type Validator interface {
	Validate(ctx context.Context, g domain.Grid) (ok bool, conflicts []domain.CellCoord, err error)
}

// Analyzer runs the human-technique solver and grades difficulty.
type Analyzer interface {
	Run(g domain.Grid) domain.StrategyRun
	Analyze(g domain.Grid) (domain.Difficulty, []domain.Strategy)
}

// Hinter returns the next directly teachable move, if any. The
// solution grid is used for consistency checks only.
type Hinter interface {
	Hint(ctx context.Context, g, solution domain.Grid) (domain.Hint, bool, error)
}

// Classifier optionally relabels detected moves for telemetry. A nil
// or failing classifier must never affect solving.
type Classifier interface {
	Classify(mc domain.MoveContext) (domain.Strategy, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
