package usecase

import (
	"context"
	"errors"
	"time"

	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/ports"
)

// Service fronts the engine for the adapters. Every dependency is a
// port, so wiring decides which solver and storage back it.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Analyzer  ports.Analyzer
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, a ports.Analyzer, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Analyzer: a, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, g domain.Grid) (domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return domain.Grid{}, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, g)
}

func (u *Service) CountSolutions(ctx context.Context, g domain.Grid) (int, ports.Stats, error) {
	if u.Solver == nil {
		return 0, ports.Stats{}, errNotConfigured
	}
	return u.Solver.CountSolutions(ctx, g, 2)
}

func (u *Service) Generate(ctx context.Context, size int, seed int64, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, size, seed, d)
}

func (u *Service) Validate(ctx context.Context, g domain.Grid) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, g)
}

// SolveStrategies runs the human-technique solver to a fixpoint.
func (u *Service) SolveStrategies(ctx context.Context, g domain.Grid) (domain.StrategyRun, error) {
	if u.Analyzer == nil {
		return domain.StrategyRun{}, errNotConfigured
	}
	return u.Analyzer.Run(g), nil
}

// Candidates lists the legal values for a cell, ascending. Out of
// range coordinates yield an empty list.
func (u *Service) Candidates(ctx context.Context, g domain.Grid, row, col int) []uint8 {
	return g.CandidateValues(row, col)
}

// IsValidMove reports whether placing v at (row, col) keeps the grid
// consistent.
func (u *Service) IsValidMove(ctx context.Context, g domain.Grid, row, col int, v uint8) bool {
	return g.Legal(row, col, v)
}

func (u *Service) Hint(ctx context.Context, g, solution domain.Grid) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, g, solution)
}

// Save persists a puzzle, stamping its creation time on first save.
// Generation leaves CreatedAt zero so identical requests produce
// identical puzzles.
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	if p != nil && p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
