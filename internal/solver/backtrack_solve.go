package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/ports"
)

var errUnsupportedSize = errors.New("unsupported grid size")

func (s *BacktrackingSolver) Solve(ctx context.Context, b domain.Grid) (domain.Grid, ports.Stats, error) {
	start := time.Now()
	if !domain.SupportedSize(b.Size) {
		return domain.Grid{}, ports.Stats{}, errUnsupportedSize
	}
	g := b.Clone()
	if !g.Consistent() {
		return domain.Grid{}, ports.Stats{Duration: time.Since(start)}, errors.New("grid violates unit uniqueness")
	}
	nodes := 0
	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := findEmpty(g)
		if !ok {
			return true
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
	if !dfs() {
		return domain.Grid{}, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, errors.New("unsolvable or canceled")
	}
	return g, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
