package solver

import (
	"context"
	"time"

	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/ports"
)

// CountSolutions counts distinct completions of the given clues,
// stopping the instant limit is reached. Inconsistent givens count
// as zero solutions rather than an error, since malformed
// interactive input is expected.
func (s *BacktrackingSolver) CountSolutions(ctx context.Context, b domain.Grid, limit int) (int, ports.Stats, error) {
	start := time.Now()
	if !domain.SupportedSize(b.Size) {
		return 0, ports.Stats{}, errUnsupportedSize
	}
	if limit < 1 {
		limit = 1
	}
	g := b.Clone()
	if !g.Consistent() {
		return 0, ports.Stats{Duration: time.Since(start)}, nil
	}
	nodes := 0
	count := 0

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil || count >= limit {
			return true // stop early
		}
		r, c, ok := findEmpty(g)
		if !ok {
			count++
			return count >= limit
		}
		for v := uint8(1); int(v) <= g.Size; v++ {
			nodes++
			if g.Legal(r, c, v) {
				g.Cells[r][c] = v
				if dfs() {
					return true
				}
				g.Cells[r][c] = 0
			}
		}
		return false
	}
	_ = dfs()
	return count, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// Unique reports whether exactly one completion exists.
func Unique(ctx context.Context, s ports.Solver, g domain.Grid) (bool, ports.Stats, error) {
	n, st, err := s.CountSolutions(ctx, g, 2)
	return n == 1, st, err
}
