package generator

import (
	"context"
	"math/rand"

	"svw.info/gridoku/internal/domain"
)

// fill solves an empty grid into a full valid solution, visiting
// cells row-major and trying candidates in seed-shuffled order. A
// solution always exists, so this terminates; false only means the
// context was canceled.
func fill(ctx context.Context, rng *rand.Rand, size int) (domain.Grid, bool) {
	g := domain.NewGrid(size)
	n := size
	var dfs func(pos int) bool
	dfs = func(pos int) bool {
		if ctx.Err() != nil {
			return false
		}
		if pos == n*n {
			return true
		}
		r, c := pos/n, pos%n
		vals := g.CandidateValues(r, c)
		rng.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
		for _, v := range vals {
			g.Cells[r][c] = v
			if dfs(pos + 1) {
				return true
			}
			g.Cells[r][c] = 0
		}
		return false
	}
	return g, dfs(0)
}
