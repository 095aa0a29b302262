package solver

import (
	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/ports"
)

// StrategySolver simulates human deduction: it applies the highest
// priority technique that makes progress, updates the candidate
// cache, and restarts from the top until nothing advances. It is
// authoritative for actual difficulty; the brute-force solvers only
// verify uniqueness.
type StrategySolver struct {
	// Classifier, when set, relabels each placement for telemetry.
	// It never influences solving or grading.
	Classifier ports.Classifier
}

func NewStrategySolver() *StrategySolver { return &StrategySolver{} }

// state is the per-run working grid plus the incrementally updated
// candidate cache. It is rebuilt on every call; nothing is shared.
type state struct {
	g     domain.Grid
	cands [][]domain.Mask
	units []unit
}

type unit struct {
	kind  string // "row", "col", "box"
	cells []domain.CellCoord
}

func newState(g domain.Grid) *state {
	st := &state{g: g.Clone()}
	n := g.Size
	st.cands = make([][]domain.Mask, n)
	for r := 0; r < n; r++ {
		st.cands[r] = make([]domain.Mask, n)
		for c := 0; c < n; c++ {
			st.cands[r][c] = st.g.Candidates(r, c)
		}
	}
	for r := 0; r < n; r++ {
		u := unit{kind: "row"}
		for c := 0; c < n; c++ {
			u.cells = append(u.cells, domain.CellCoord{Row: r, Col: c})
		}
		st.units = append(st.units, u)
	}
	for c := 0; c < n; c++ {
		u := unit{kind: "col"}
		for r := 0; r < n; r++ {
			u.cells = append(u.cells, domain.CellCoord{Row: r, Col: c})
		}
		st.units = append(st.units, u)
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
			st.units = append(st.units, u)
		}
	}
	return st
}

// place writes v and strips it from every peer's candidate set.
func (st *state) place(r, c int, v uint8) {
	st.g.Cells[r][c] = v
	st.cands[r][c] = 0
	bit := domain.Mask(1) << v
	n := st.g.Size
	for i := 0; i < n; i++ {
		st.cands[r][i] &^= bit
		st.cands[i][c] &^= bit
	}
	br, bc := domain.BoxDims(n)
	or, oc := st.g.BoxOrigin(r, c)
	for dr := 0; dr < br; dr++ {
		for dc := 0; dc < bc; dc++ {
			st.cands[or+dr][oc+dc] &^= bit
		}
	}
}

// stuck reports an empty cell with no candidates left, which means
// the position cannot be completed.
func (st *state) stuck() bool {
	for r := 0; r < st.g.Size; r++ {
		for c := 0; c < st.g.Size; c++ {
			if st.g.Cells[r][c] == 0 && st.cands[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// Run drives the technique loop to a fixpoint. A grid that arrives
// complete reports solved immediately with zero steps; a grid the
// techniques cannot finish is tagged as needing guesswork.
func (s *StrategySolver) Run(g domain.Grid) domain.StrategyRun {
	res := domain.StrategyRun{MaxDifficulty: domain.Beginner}
	if !domain.SupportedSize(g.Size) {
		res.Grid = g
		return res
	}
	st := newState(g)
	if !st.g.Consistent() {
		res.Grid = st.g
		return res
	}
	if st.g.IsComplete() {
		res.Solved = st.g.IsSolved()
		res.Grid = st.g
		return res
	}

	type technique struct {
		kind  domain.Strategy
		apply func(*state) (domain.Step, bool)
	}
	techniques := []technique{
		{domain.NakedSingle, s.nakedSingle},
		{domain.HiddenSingle, s.hiddenSingle},
		{domain.NakedPair, s.nakedPair},
		{domain.PointingPair, s.pointingPair},
		{domain.BoxLine, s.boxLine},
	}

	for {
		if st.g.IsComplete() {
			res.Solved = st.g.IsSolved()
			break
		}
		if st.stuck() {
			break
		}
		progressed := false
		for _, t := range techniques {
			step, ok := t.apply(st)
			if !ok {
				continue
			}
			step.Technique = t.kind
			step.Tag = s.tag(st, step)
			res.Steps = append(res.Steps, step)
			if !res.Used(t.kind) {
				res.StrategiesUsed = append(res.StrategiesUsed, t.kind)
			}
			if d := t.kind.Difficulty(); d > res.MaxDifficulty {
				res.MaxDifficulty = d
			}
			progressed = true
			break // restart from the top priority
		}
		if !progressed {
			break
		}
	}

	if !res.Solved {
		if !res.Used(domain.Guessing) {
			res.StrategiesUsed = append(res.StrategiesUsed, domain.Guessing)
		}
		res.MaxDifficulty = domain.Expert
	}
	res.Grid = st.g
	return res
}

// Analyze grades the clue grid by running to completion.
func (s *StrategySolver) Analyze(g domain.Grid) (domain.Difficulty, []domain.Strategy) {
	run := s.Run(g)
	return run.MaxDifficulty, run.StrategiesUsed
}

func (s *StrategySolver) tag(st *state, step domain.Step) domain.Strategy {
	if s.Classifier == nil || step.Value == 0 {
		return step.Technique
	}
	tag, err := s.Classifier.Classify(domain.MoveContext{
		Grid:     st.g,
		Cell:     step.Cell,
		Value:    step.Value,
		Detected: step.Technique,
	})
	if err != nil {
		return step.Technique
	}
	return tag
}

// nakedSingle places the first cell (row-major) with exactly one
// candidate.
func (s *StrategySolver) nakedSingle(st *state) (domain.Step, bool) {
	for r := 0; r < st.g.Size; r++ {
		for c := 0; c < st.g.Size; c++ {
			if st.g.Cells[r][c] != 0 {
				continue
			}
			if v, ok := st.cands[r][c].Sole(); ok {
				st.place(r, c, v)
				return domain.Step{
					Cell:  domain.CellCoord{Row: r, Col: c},
					Value: v,
				}, true
			}
		}
	}
	return domain.Step{}, false
}

// hiddenSingle places a value that fits only one cell of some unit.
func (s *StrategySolver) hiddenSingle(st *state) (domain.Step, bool) {
	n := st.g.Size
	for _, u := range st.units {
		for v := uint8(1); int(v) <= n; v++ {
			bit := domain.Mask(1) << v
			target := domain.CellCoord{Row: -1}
			count := 0
			placed := false
			for _, cc := range u.cells {
				if st.g.Cells[cc.Row][cc.Col] == v {
					placed = true
					break
				}
				if st.cands[cc.Row][cc.Col]&bit != 0 {
					count++
					target = cc
				}
			}
			if placed || count != 1 {
				continue
			}
			st.place(target.Row, target.Col, v)
			supporting := make([]domain.CellCoord, 0, len(u.cells)-1)
			for _, cc := range u.cells {
				if cc != target {
					supporting = append(supporting, cc)
				}
			}
			return domain.Step{
				Cell:       target,
				Value:      v,
				Supporting: supporting,
			}, true
		}
	}
	return domain.Step{}, false
}

// nakedPair finds two cells of a unit sharing an identical two-value
// candidate set and strips those values from the rest of the unit.
// It is elimination only: no placement happens here.
func (s *StrategySolver) nakedPair(st *state) (domain.Step, bool) {
	for _, u := range st.units {
		for i := 0; i < len(u.cells); i++ {
			a := u.cells[i]
			ma := st.cands[a.Row][a.Col]
			if st.g.Cells[a.Row][a.Col] != 0 || ma.Count() != 2 {
				continue
			}
			for j := i + 1; j < len(u.cells); j++ {
				b := u.cells[j]
				if st.g.Cells[b.Row][b.Col] != 0 || st.cands[b.Row][b.Col] != ma {
					continue
				}
				changed := false
				for _, cc := range u.cells {
					if cc == a || cc == b || st.g.Cells[cc.Row][cc.Col] != 0 {
						continue
					}
					if st.cands[cc.Row][cc.Col]&ma != 0 {
						st.cands[cc.Row][cc.Col] &^= ma
						changed = true
					}
				}
				if changed {
					return domain.Step{
						Cell:       a,
						Eliminated: ma.Values(),
						Supporting: []domain.CellCoord{a, b},
					}, true
				}
			}
		}
	}
	return domain.Step{}, false
}

// pointingPair: when every candidate for v inside a box sits in one
// row (or column), v cannot appear elsewhere in that row (column).
func (s *StrategySolver) pointingPair(st *state) (domain.Step, bool) {
	n := st.g.Size
	br, bc := domain.BoxDims(n)
	for or := 0; or < n; or += br {
		for oc := 0; oc < n; oc += bc {
			for v := uint8(1); int(v) <= n; v++ {
				bit := domain.Mask(1) << v
				var spots []domain.CellCoord
				for dr := 0; dr < br; dr++ {
					for dc := 0; dc < bc; dc++ {
						r, c := or+dr, oc+dc
						if st.g.Cells[r][c] == 0 && st.cands[r][c]&bit != 0 {
							spots = append(spots, domain.CellCoord{Row: r, Col: c})
						}
					}
				}
				if len(spots) < 2 {
					continue
				}
				sameRow, sameCol := true, true
				for _, cc := range spots[1:] {
					if cc.Row != spots[0].Row {
						sameRow = false
					}
					if cc.Col != spots[0].Col {
						sameCol = false
					}
				}
				changed := false
				if sameRow {
					r := spots[0].Row
					for c := 0; c < n; c++ {
						if c >= oc && c < oc+bc {
							continue // inside the box
						}
						if st.g.Cells[r][c] == 0 && st.cands[r][c]&bit != 0 {
							st.cands[r][c] &^= bit
							changed = true
						}
					}
				} else if sameCol {
					c := spots[0].Col
					for r := 0; r < n; r++ {
						if r >= or && r < or+br {
							continue
						}
						if st.g.Cells[r][c] == 0 && st.cands[r][c]&bit != 0 {
							st.cands[r][c] &^= bit
							changed = true
						}
					}
				}
				if changed {
					return domain.Step{
						Cell:       spots[0],
						Eliminated: []uint8{v},
						Supporting: spots,
					}, true
				}
			}
		}
	}
	return domain.Step{}, false
}

// boxLine: when every candidate for v in a row (or column) sits in
// one box, v cannot appear elsewhere in that box.
func (s *StrategySolver) boxLine(st *state) (domain.Step, bool) {
	n := st.g.Size
	br, bc := domain.BoxDims(n)
	lines := []struct {
		cell func(line, i int) (int, int)
	}{
		{func(line, i int) (int, int) { return line, i }}, // rows
		{func(line, i int) (int, int) { return i, line }}, // cols
	}
	for _, ln := range lines {
		for line := 0; line < n; line++ {
			for v := uint8(1); int(v) <= n; v++ {
				bit := domain.Mask(1) << v
				var spots []domain.CellCoord
				for i := 0; i < n; i++ {
					r, c := ln.cell(line, i)
					if st.g.Cells[r][c] == 0 && st.cands[r][c]&bit != 0 {
						spots = append(spots, domain.CellCoord{Row: r, Col: c})
					}
				}
				if len(spots) < 2 {
					continue
				}
				or0, oc0 := st.g.BoxOrigin(spots[0].Row, spots[0].Col)
				oneBox := true
				for _, cc := range spots[1:] {
					or, oc := st.g.BoxOrigin(cc.Row, cc.Col)
					if or != or0 || oc != oc0 {
						oneBox = false
						break
					}
				}
				if !oneBox {
					continue
				}
				changed := false
				for dr := 0; dr < br; dr++ {
					for dc := 0; dc < bc; dc++ {
						r, c := or0+dr, oc0+dc
						onLine := false
						for _, cc := range spots {
							if cc.Row == r && cc.Col == c {
								onLine = true
								break
							}
						}
						// outside the originating line but inside the box
						if !onLine && !sameLine(ln.cell, line, r, c, n) && st.g.Cells[r][c] == 0 && st.cands[r][c]&bit != 0 {
							st.cands[r][c] &^= bit
							changed = true
						}
					}
				}
				if changed {
					return domain.Step{
						Cell:       spots[0],
						Eliminated: []uint8{v},
						Supporting: spots,
					}, true
				}
			}
		}
	}
	return domain.Step{}, false
}

func sameLine(cell func(line, i int) (int, int), line, r, c, n int) bool {
	for i := 0; i < n; i++ {
		rr, cc := cell(line, i)
		if rr == r && cc == c {
			return true
		}
	}
	return false
}
