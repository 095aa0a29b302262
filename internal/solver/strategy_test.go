package solver

import (
	"errors"
	"testing"

	"svw.info/gridoku/internal/domain"
)

func TestStrategyNakedSingle4x4(t *testing.T) {
	g := domain.FromCells([][]uint8{
		{1, 2, 3, 0},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	run := NewStrategySolver().Run(g)
	if !run.Solved {
		t.Fatal("expected solved grid")
	}
	if len(run.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(run.Steps))
	}
	step := run.Steps[0]
	if step.Technique != domain.NakedSingle || step.Cell != (domain.CellCoord{Row: 0, Col: 3}) || step.Value != 4 {
		t.Fatalf("step = %+v, want naked single (0,3)=4", step)
	}
	if len(run.StrategiesUsed) != 1 || run.StrategiesUsed[0] != domain.NakedSingle {
		t.Fatalf("strategiesUsed = %v, want [naked_single]", run.StrategiesUsed)
	}
	if run.MaxDifficulty != domain.Beginner {
		t.Fatalf("maxDifficulty = %v, want beginner", run.MaxDifficulty)
	}
}

func TestStrategyAlreadySolved(t *testing.T) {
	g := domain.FromCells([][]uint8{
		{1, 2, 3, 4},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	run := NewStrategySolver().Run(g)
	if !run.Solved || len(run.Steps) != 0 {
		t.Fatalf("solved=%v steps=%d, want true and 0", run.Solved, len(run.Steps))
	}
	if len(run.StrategiesUsed) != 0 {
		t.Fatalf("strategiesUsed = %v, want none", run.StrategiesUsed)
	}
}

func TestStrategyLastCellInRowThenGuessing(t *testing.T) {
	// Row 8 holds 1..8; single detection must fill (8,8)=9, after
	// which the otherwise-empty grid needs non-logical search.
	g := domain.NewGrid(9)
	for c := 0; c < 8; c++ {
		g.Cells[8][c] = uint8(c + 1)
	}
	run := NewStrategySolver().Run(g)
	if run.Grid.Cells[8][8] != 9 {
		t.Fatalf("(8,8) = %d, want 9", run.Grid.Cells[8][8])
	}
	if run.Solved {
		t.Fatal("a nearly-empty grid cannot be finished by logic")
	}
	if !run.Used(domain.Guessing) {
		t.Fatalf("strategiesUsed = %v, want guessing tagged", run.StrategiesUsed)
	}
	if run.MaxDifficulty != domain.Expert {
		t.Fatalf("maxDifficulty = %v, want expert", run.MaxDifficulty)
	}
}

func TestStrategyHiddenSingle(t *testing.T) {
	// 1 is blocked out of box 0 rows 0 and 1, and out of (2,0) and
	// (2,1); the only home left in row 2 is (2,2).
	g := domain.NewGrid(9)
	g.Cells[0][5] = 1
	g.Cells[1][8] = 1
	g.Cells[2][0] = 5
	g.Cells[2][1] = 6
	run := NewStrategySolver().Run(g)
	if len(run.Steps) == 0 {
		t.Fatal("no steps applied")
	}
	step := run.Steps[0]
	if step.Technique != domain.HiddenSingle || step.Cell != (domain.CellCoord{Row: 2, Col: 2}) || step.Value != 1 {
		t.Fatalf("first step = %+v, want hidden single (2,2)=1", step)
	}
	if !run.Used(domain.HiddenSingle) {
		t.Fatalf("strategiesUsed = %v", run.StrategiesUsed)
	}
}

func TestStrategyUnsolvableInput(t *testing.T) {
	g := domain.NewGrid(9)
	g.Cells[4][0] = 2
	g.Cells[4][7] = 2
	run := NewStrategySolver().Run(g)
	if run.Solved {
		t.Fatal("contradictory givens reported solved")
	}
}

func TestNakedPairElimination(t *testing.T) {
	// Build the candidate cache directly: (0,0) and (0,1) lock 1/2,
	// so the rest of row 0 loses both values.
	st := newState(domain.NewGrid(9))
	pair := domain.Mask(1<<1 | 1<<2)
	st.cands[0][0] = pair
	st.cands[0][1] = pair
	st.cands[0][2] = pair | 1<<3

	step, ok := NewStrategySolver().nakedPair(st)
	if !ok {
		t.Fatal("naked pair not found")
	}
	if len(step.Supporting) != 2 || step.Supporting[0] != (domain.CellCoord{Row: 0, Col: 0}) {
		t.Fatalf("supporting = %v", step.Supporting)
	}
	if st.cands[0][2] != 1<<3 {
		t.Fatalf("cands(0,2) = %v, want only 3", st.cands[0][2].Values())
	}
	if st.cands[0][8].Has(1) || st.cands[0][8].Has(2) {
		t.Error("pair values not stripped from the rest of the row")
	}
	if st.cands[0][0] != pair || st.cands[0][1] != pair {
		t.Error("pair cells themselves were modified")
	}
}

func TestPointingPairElimination(t *testing.T) {
	// In box 0, value 1 only fits in (0,0) and (0,1): it must be
	// eliminated from the rest of row 0 outside the box.
	st := newState(domain.NewGrid(9))
	bit := domain.Mask(1) << 1
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r == 0 && c < 2 {
				continue
			}
			st.cands[r][c] &^= bit
		}
	}
	step, ok := NewStrategySolver().pointingPair(st)
	if !ok {
		t.Fatal("pointing pair not found")
	}
	if len(step.Eliminated) != 1 || step.Eliminated[0] != 1 {
		t.Fatalf("eliminated = %v, want [1]", step.Eliminated)
	}
	for c := 3; c < 9; c++ {
		if st.cands[0][c].Has(1) {
			t.Fatalf("1 still a candidate at (0,%d)", c)
		}
	}
	if !st.cands[0][0].Has(1) || !st.cands[0][1].Has(1) {
		t.Error("box candidates must keep the value")
	}
}

func TestBoxLineElimination(t *testing.T) {
	// In row 0, value 1 only fits inside box 0: it must be
	// eliminated from the box cells off that row.
	st := newState(domain.NewGrid(9))
	bit := domain.Mask(1) << 1
	for c := 3; c < 9; c++ {
		st.cands[0][c] &^= bit
	}
	step, ok := NewStrategySolver().boxLine(st)
	if !ok {
		t.Fatal("box/line reduction not found")
	}
	if len(step.Eliminated) != 1 || step.Eliminated[0] != 1 {
		t.Fatalf("eliminated = %v, want [1]", step.Eliminated)
	}
	for r := 1; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if st.cands[r][c].Has(1) {
				t.Fatalf("1 still a candidate at (%d,%d)", r, c)
			}
		}
	}
	for c := 0; c < 3; c++ {
		if !st.cands[0][c].Has(1) {
			t.Error("row cells inside the box must keep the value")
		}
	}
}

// stubClassifier relabels everything, or fails on demand.
type stubClassifier struct {
	tag  domain.Strategy
	fail bool
}

func (s stubClassifier) Classify(mc domain.MoveContext) (domain.Strategy, error) {
	if s.fail {
		return 0, errors.New("classifier offline")
	}
	return s.tag, nil
}

func TestClassifierRelabelsWithoutAffectingGrade(t *testing.T) {
	g := domain.FromCells([][]uint8{
		{1, 2, 3, 0},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	s := NewStrategySolver()
	s.Classifier = stubClassifier{tag: domain.Guessing}
	run := s.Run(g)
	if !run.Solved {
		t.Fatal("expected solved grid")
	}
	if run.Steps[0].Tag != domain.Guessing {
		t.Fatalf("tag = %v, want relabeled", run.Steps[0].Tag)
	}
	if run.Steps[0].Technique != domain.NakedSingle || run.MaxDifficulty != domain.Beginner {
		t.Fatal("classifier must never change the detected technique or grade")
	}
}

func TestClassifierFailureIsIgnored(t *testing.T) {
	g := domain.FromCells([][]uint8{
		{1, 2, 3, 0},
		{3, 4, 1, 2},
		{2, 1, 4, 3},
		{4, 3, 2, 1},
	})
	s := NewStrategySolver()
	s.Classifier = stubClassifier{fail: true}
	run := s.Run(g)
	if !run.Solved || run.Steps[0].Tag != domain.NakedSingle {
		t.Fatalf("failing classifier changed the result: %+v", run.Steps[0])
	}
}

func TestTechniqueDifficultyTable(t *testing.T) {
	cases := []struct {
		s domain.Strategy
		d domain.Difficulty
	}{
		{domain.NakedSingle, domain.Beginner},
		{domain.HiddenSingle, domain.Easy},
		{domain.NakedPair, domain.Medium},
		{domain.PointingPair, domain.Hard},
		{domain.BoxLine, domain.Hard},
		{domain.Guessing, domain.Expert},
	}
	for _, tc := range cases {
		if got := tc.s.Difficulty(); got != tc.d {
			t.Errorf("%v.Difficulty() = %v, want %v", tc.s, got, tc.d)
		}
	}
}
