// Package hint locates the next human-teachable move. The oracle
// never reveals answers that need techniques beyond a naked pair;
// anything harder comes back as "no directly solvable cell".
package hint

import (
	"context"
	"fmt"

	"svw.info/gridoku/internal/domain"
)

type Oracle struct{}

func New() *Oracle { return &Oracle{} }

// Hint finds one teaching move in strict priority order: naked
// single (row-major), hidden single (row, column, then box scans),
// then a naked pair whose elimination leaves some other cell of the
// unit with one candidate. The solution grid, when supplied, is used
// only to sanity-check the move; it is never exposed. The first
// qualifying result wins.
func (o *Oracle) Hint(ctx context.Context, g, solution domain.Grid) (domain.Hint, bool, error) {
	if !domain.SupportedSize(g.Size) || !g.Consistent() {
		return none(), false, nil
	}
	n := g.Size
	cands := make([][]domain.Mask, n)
	for r := 0; r < n; r++ {
		cands[r] = make([]domain.Mask, n)
		for c := 0; c < n; c++ {
			cands[r][c] = g.Candidates(r, c)
		}
	}

	if h, ok := o.nakedSingle(g, cands); ok {
		return o.check(g, solution, h)
	}
	if h, ok := o.hiddenSingle(g, cands); ok {
		return o.check(g, solution, h)
	}
	if h, ok := o.nakedPair(g, cands); ok {
		return o.check(g, solution, h)
	}
	return none(), false, nil
}

func none() domain.Hint {
	return domain.Hint{Message: "no directly solvable cell", Confidence: 0}
}

// check verifies the proposed value against the known solution.
// A mismatch means the player's grid already contradicts the
// solution, so no hint is offered at all.
func (o *Oracle) check(g, solution domain.Grid, h domain.Hint) (domain.Hint, bool, error) {
	if solution.Size == g.Size {
		if want := solution.Get(h.Cell.Row, h.Cell.Col); want != 0 && want != h.Value {
			return none(), false, nil
		}
	}
	return h, true, nil
}

func (o *Oracle) nakedSingle(g domain.Grid, cands [][]domain.Mask) (domain.Hint, bool) {
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if g.Cells[r][c] != 0 {
				continue
			}
			if v, ok := cands[r][c].Sole(); ok {
				return domain.Hint{
					Message:    fmt.Sprintf("Naked single: only %d fits here", v),
					Strategy:   domain.NakedSingle,
					Cell:       domain.CellCoord{Row: r, Col: c},
					Value:      v,
					Confidence: 1,
				}, true
			}
		}
	}
	return domain.Hint{}, false
}

func (o *Oracle) hiddenSingle(g domain.Grid, cands [][]domain.Mask) (domain.Hint, bool) {
	for _, u := range units(g.Size) {
		for v := uint8(1); int(v) <= g.Size; v++ {
			bit := domain.Mask(1) << v
			var target domain.CellCoord
			count := 0
			placed := false
			for _, cc := range u.cells {
				if g.Cells[cc.Row][cc.Col] == v {
					placed = true
					break
				}
				if cands[cc.Row][cc.Col]&bit != 0 {
					count++
					target = cc
				}
			}
			if placed || count != 1 {
				continue
			}
			supporting := make([]domain.CellCoord, 0, len(u.cells)-1)
			for _, cc := range u.cells {
				if cc != target {
					supporting = append(supporting, cc)
				}
			}
			return domain.Hint{
				Message:    fmt.Sprintf("Hidden single: %d can only go here in this %s", v, u.kind),
				Strategy:   domain.HiddenSingle,
				Cell:       target,
				Value:      v,
				Confidence: 1,
				Supporting: supporting,
			}, true
		}
	}
	return domain.Hint{}, false
}

// nakedPair looks for a two-cell pair whose elimination drops some
// other cell of the same unit to a single remaining candidate. That
// cell is the target; the pair cells are the supporting explanation.
func (o *Oracle) nakedPair(g domain.Grid, cands [][]domain.Mask) (domain.Hint, bool) {
	for _, u := range units(g.Size) {
		for i := 0; i < len(u.cells); i++ {
			a := u.cells[i]
			ma := cands[a.Row][a.Col]
			if g.Cells[a.Row][a.Col] != 0 || ma.Count() != 2 {
				continue
			}
			for j := i + 1; j < len(u.cells); j++ {
				b := u.cells[j]
				if g.Cells[b.Row][b.Col] != 0 || cands[b.Row][b.Col] != ma {
					continue
				}
				for _, cc := range u.cells {
					if cc == a || cc == b || g.Cells[cc.Row][cc.Col] != 0 {
						continue
					}
					if v, ok := (cands[cc.Row][cc.Col] &^ ma).Sole(); ok && cands[cc.Row][cc.Col]&ma != 0 {
						pair := ma.Values()
						return domain.Hint{
							Message:    fmt.Sprintf("Naked pair %d/%d leaves only %d here", pair[0], pair[1], v),
							Strategy:   domain.NakedPair,
							Cell:       cc,
							Value:      v,
							Confidence: 1,
							Supporting: []domain.CellCoord{a, b},
						}, true
					}
				}
			}
		}
	}
	return domain.Hint{}, false
}

type unit struct {
	kind  string
	cells []domain.CellCoord
}

// units enumerates rows, then columns, then boxes, preserving the
// first-match-wins scan order.
func units(n int) []unit {
	var out []unit
	for r := 0; r < n; r++ {
		u := unit{kind: "row"}
		for c := 0; c < n; c++ {
			u.cells = append(u.cells, domain.CellCoord{Row: r, Col: c})
		}
		out = append(out, u)
	}
	for c := 0; c < n; c++ {
		u := unit{kind: "column"}
		for r := 0; r < n; r++ {
			u.cells = append(u.cells, domain.CellCoord{Row: r, Col: c})
		}
		out = append(out, u)
	}
	br, bc := domain.BoxDims(n)
	for or := 0; or < n; or += br {
		for oc := 0; oc < n; oc += bc {
			u := unit{kind: "box"}
			for dr := 0; dr < br; dr++ {
				for dc := 0; dc < bc; dc++ {
					u.cells = append(u.cells, domain.CellCoord{Row: or + dr, Col: oc + dc})
				}
			}
			out = append(out, u)
		}
	}
	return out
}
