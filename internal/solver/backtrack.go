package solver

import "svw.info/gridoku/internal/domain"

// BacktrackingSolver is a straightforward recursive solver.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

func findEmpty(g domain.Grid) (int, int, bool) {
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.Cells[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// The implementations for Solve and CountSolutions are in
// backtrack_solve.go and backtrack_unique.go.
