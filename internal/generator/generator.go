package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/ports"
)

var (
	ErrUnsupportedSize   = errors.New("unsupported grid size")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// UniqueGenerator builds puzzles with a single solution: fill a full
// grid, carve clues under a uniqueness check, grade the result with
// the strategy solver, and retry with a derived seed when the grade
// misses the request. When the retry budget runs out it returns the
// closest attempt rather than failing; some valid puzzle is always
// preferable to none.
type UniqueGenerator struct {
	Solver   ports.Solver
	Analyzer ports.Analyzer
	Opts     Options
}

// NewUniqueGenerator wires a generator from a uniqueness-checking
// solver and a difficulty analyzer.
func NewUniqueGenerator(s ports.Solver, a ports.Analyzer) *UniqueGenerator {
	return &UniqueGenerator{Solver: s, Analyzer: a, Opts: DefaultOptions()}
}

// Generate creates a puzzle for the given size, seed, and target
// difficulty. The same inputs always produce the same puzzle.
func (g *UniqueGenerator) Generate(ctx context.Context, size int, seed int64, diff domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if !domain.SupportedSize(size) {
		return nil, ports.Stats{}, fmt.Errorf("%w: %d", ErrUnsupportedSize, size)
	}
	if diff < domain.Beginner || diff > domain.Expert {
		return nil, ports.Stats{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(diff))
	}

	capped := diff
	if c := domain.Ceiling(size); capped > c {
		capped = c
	}

	var best *domain.Puzzle
	bestDelta := 0
	nodes := 0

	for attempt := 0; attempt < g.Opts.MaxAttempts; attempt++ {
		rng := rand.New(rand.NewSource(seed + int64(attempt)))
		full, ok := fill(ctx, rng, size)
		if !ok {
			break // canceled
		}
		carved, carveNodes := g.carve(ctx, rng, full, targetClues(size, diff))
		nodes += carveNodes

		actual, strategies := g.Analyzer.Analyze(carved)
		// No timestamp here: the puzzle must be a pure function of
		// (size, seed, difficulty). Stores stamp creation time.
		p := &domain.Puzzle{
			ID:         puzzleID(size, seed, diff),
			Seed:       seed,
			Size:       size,
			Requested:  diff,
			Actual:     actual,
			Strategies: strategies,
			Givens:     carved,
			Solution:   full,
		}
		if g.Opts.Tolerance.Accept(actual, capped, diff) {
			return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		}
		delta := int(actual) - int(capped)
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta {
			best, bestDelta = p, delta
		}
	}

	if best == nil {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, errors.New("generation produced no puzzle")
	}
	return best, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// puzzleID derives a stable UUID from the request so repeated calls
// with the same inputs reproduce the identical puzzle, ID included.
func puzzleID(size int, seed int64, diff domain.Difficulty) string {
	name := fmt.Sprintf("gridoku/%d/%d/%s", size, seed, diff)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
