package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/gridoku/internal/domain"
)

// targetClues is the per-size, per-difficulty clue budget the carver
// aims for. Carving may stop above the target when no further cell
// can be removed without losing uniqueness.
func targetClues(size int, d domain.Difficulty) int {
	switch size {
	case 4:
		return [5]int{12, 10, 8, 7, 6}[d]
	case 6:
		return [5]int{24, 20, 17, 14, 12}[d]
	default:
		return [5]int{46, 40, 34, 28, 24}[d]
	}
}

// carve empties cells of a solved grid in seed-shuffled order while
// re-checking uniqueness after each removal. Quick mode accepts the
// first uniqueness-preserving order in a single pass; thorough mode
// reshuffles and keeps carving until a whole pass removes nothing.
// A deadline bounds the stage either way, since it dominates
// generation cost.
func (g *UniqueGenerator) carve(ctx context.Context, rng *rand.Rand, solved domain.Grid, target int) (domain.Grid, int) {
	out := solved.Clone()
	n := out.Size
	total := n * n
	positions := make([]int, total)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	deadline := time.Now().Add(g.Opts.CarveBudget)
	clues := total
	nodes := 0

	for {
		removedAny := false
		for _, pos := range positions {
			if clues <= target || time.Now().After(deadline) || ctx.Err() != nil {
				return out, nodes
			}
			r, c := pos/n, pos%n
			if out.Cells[r][c] == 0 {
				continue
			}
			mr, mc := n-1-r, n-1-c
			cells := []domain.CellCoord{{Row: r, Col: c}}
			if g.Opts.Symmetric && (mr != r || mc != c) && out.Cells[mr][mc] != 0 {
				cells = append(cells, domain.CellCoord{Row: mr, Col: mc})
			}
			saved := make([]uint8, len(cells))
			for i, cc := range cells {
				saved[i] = out.Cells[cc.Row][cc.Col]
				out.Cells[cc.Row][cc.Col] = 0
			}
			count, st, _ := g.Solver.CountSolutions(ctx, out, 2)
			nodes += st.Nodes
			if count == 1 {
				clues -= len(cells)
				removedAny = true
			} else {
				for i, cc := range cells {
					out.Cells[cc.Row][cc.Col] = saved[i]
				}
			}
		}
		if g.Opts.Quick || !removedAny {
			return out, nodes
		}
		rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })
	}
}
