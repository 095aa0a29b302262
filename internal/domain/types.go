package domain

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Puzzle is an immutable generation result. Consumers clone it and
// never mutate the stored copy.
type Puzzle struct {
	ID         string     `json:"id"`
	Seed       int64      `json:"seed"`
	Size       int        `json:"size"`
	Requested  Difficulty `json:"requested"`
	Actual     Difficulty `json:"actual"`
	Strategies []Strategy `json:"strategies,omitempty"`
	Givens     Grid       `json:"givens"`
	Solution   Grid       `json:"solution"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// Clone deep-copies the puzzle.
func (p *Puzzle) Clone() *Puzzle {
	out := *p
	out.Givens = p.Givens.Clone()
	out.Solution = p.Solution.Clone()
	out.Strategies = append([]Strategy(nil), p.Strategies...)
	return &out
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Size      int        `json:"size"`
	Actual    Difficulty `json:"actual"`
	CreatedAt int64      `json:"createdAt"`
}

// Hint describes one teaching move for the UI to highlight.
// Confidence is 1 for a certain move and 0 when nothing directly
// solvable was found.
type Hint struct {
	Message    string      `json:"message,omitempty"`
	Strategy   Strategy    `json:"strategy"`
	Cell       CellCoord   `json:"cell"`
	Value      uint8       `json:"value,omitempty"`
	Confidence float64     `json:"confidence"`
	Supporting []CellCoord `json:"supporting,omitempty"`
}

// Step records one technique application during a strategy run.
// Value is 0 for pure eliminations.
type Step struct {
	Technique  Strategy    `json:"technique"`
	Tag        Strategy    `json:"tag"`
	Cell       CellCoord   `json:"cell"`
	Value      uint8       `json:"value,omitempty"`
	Eliminated []uint8     `json:"eliminated,omitempty"`
	Supporting []CellCoord `json:"supporting,omitempty"`
}

// StrategyRun is the outcome of running the human-technique solver
// to a fixpoint.
type StrategyRun struct {
	Solved         bool       `json:"solved"`
	Grid           Grid       `json:"grid"`
	StrategiesUsed []Strategy `json:"strategiesUsed,omitempty"`
	MaxDifficulty  Difficulty `json:"maxDifficulty"`
	Steps          []Step     `json:"steps,omitempty"`
}

// Used reports whether the run needed the given technique.
func (r StrategyRun) Used(s Strategy) bool {
	for _, u := range r.StrategiesUsed {
		if u == s {
			return true
		}
	}
	return false
}

// MoveContext is handed to an optional move classifier. The detected
// technique is always present; a classifier may relabel it for
// telemetry but never changes solver behavior.
type MoveContext struct {
	Grid     Grid
	Cell     CellCoord
	Value    uint8
	Detected Strategy
}
