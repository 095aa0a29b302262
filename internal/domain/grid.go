package domain

import "math/bits"

// Box shapes per supported size: rows x cols of each box.
var boxShapes = map[int][2]int{
	4: {2, 2},
	6: {2, 3},
	9: {3, 3},
}

// SupportedSize reports whether grids of side n can be built.
func SupportedSize(n int) bool {
	_, ok := boxShapes[n]
	return ok
}

// BoxDims returns the box shape (rows, cols) for side n, or (0, 0)
// when n is unsupported.
func BoxDims(n int) (int, int) {
	s, ok := boxShapes[n]
	if !ok {
		return 0, 0
	}
	return s[0], s[1]
}

// Mask is a candidate set: bit v set means value v is possible.
// Bit 0 is unused so masks read the same way values do.
type Mask uint16

// FullMask has bits 1..n set.
func FullMask(n int) Mask {
	return Mask(((1 << n) - 1) << 1)
}

func (m Mask) Has(v uint8) bool { return m&(1<<v) != 0 }

func (m Mask) Count() int { return bits.OnesCount16(uint16(m)) }

// Sole returns the single value in the set, if there is exactly one.
func (m Mask) Sole() (uint8, bool) {
	if m.Count() != 1 {
		return 0, false
	}
	return uint8(bits.TrailingZeros16(uint16(m))), true
}

// Values expands the set into ascending order.
func (m Mask) Values() []uint8 {
	out := make([]uint8, 0, m.Count())
	for v := uint8(1); v <= 15; v++ {
		if m.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// Grid holds cell values for an N x N board; 0 is empty.
type Grid struct {
	Size  int       `json:"size"`
	Cells [][]uint8 `json:"cells"`
}

// NewGrid returns an empty grid of side n. Unsupported sizes
// yield the zero Grid.
func NewGrid(n int) Grid {
	if !SupportedSize(n) {
		return Grid{}
	}
	cells := make([][]uint8, n)
	for i := range cells {
		cells[i] = make([]uint8, n)
	}
	return Grid{Size: n, Cells: cells}
}

// FromCells wraps a square cell matrix, inferring the size.
func FromCells(cells [][]uint8) Grid {
	return Grid{Size: len(cells), Cells: cells}
}

// WellFormed reports whether the cell matrix is square with side
// Size. Decoded payloads can carry ragged rows; everything past the
// boundary indexes cells assuming rectangularity, so adapters check
// this before handing a grid to the core.
func (g Grid) WellFormed() bool {
	if len(g.Cells) != g.Size {
		return false
	}
	for _, row := range g.Cells {
		if len(row) != g.Size {
			return false
		}
	}
	return true
}

// Clone deep-copies the grid so the caller owns the result.
func (g Grid) Clone() Grid {
	out := Grid{Size: g.Size, Cells: make([][]uint8, len(g.Cells))}
	for i, row := range g.Cells {
		out.Cells[i] = make([]uint8, len(row))
		copy(out.Cells[i], row)
	}
	return out
}

func (g Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Size && c >= 0 && c < g.Size
}

// Get returns the value at (r, c), or 0 when out of bounds.
func (g Grid) Get(r, c int) uint8 {
	if !g.InBounds(r, c) {
		return 0
	}
	return g.Cells[r][c]
}

// Set writes v at (r, c); out-of-bounds writes are dropped.
func (g Grid) Set(r, c int, v uint8) {
	if g.InBounds(r, c) {
		g.Cells[r][c] = v
	}
}

// BoxOrigin returns the top-left cell of the box containing (r, c).
func (g Grid) BoxOrigin(r, c int) (int, int) {
	br, bc := BoxDims(g.Size)
	if br == 0 {
		return 0, 0
	}
	return (r / br) * br, (c / bc) * bc
}

// Legal reports whether v could sit at (r, c) without duplicating a
// value in its row, column, or box. The cell itself is ignored, so
// Legal also holds for values already placed. Out-of-range input is
// simply false.
func (g Grid) Legal(r, c int, v uint8) bool {
	if !g.InBounds(r, c) || v < 1 || int(v) > g.Size {
		return false
	}
	for i := 0; i < g.Size; i++ {
		if i != c && g.Cells[r][i] == v {
			return false
		}
		if i != r && g.Cells[i][c] == v {
			return false
		}
	}
	br, bc := BoxDims(g.Size)
	or, oc := g.BoxOrigin(r, c)
	for dr := 0; dr < br; dr++ {
		for dc := 0; dc < bc; dc++ {
			rr, cc := or+dr, oc+dc
			if (rr != r || cc != c) && g.Cells[rr][cc] == v {
				return false
			}
		}
	}
	return true
}

// Candidates computes the legal-value set for an empty cell.
// Filled or out-of-range cells have no candidates.
func (g Grid) Candidates(r, c int) Mask {
	if !g.InBounds(r, c) || g.Cells[r][c] != 0 {
		return 0
	}
	var used Mask
	for i := 0; i < g.Size; i++ {
		used |= 1 << g.Cells[r][i]
		used |= 1 << g.Cells[i][c]
	}
	br, bc := BoxDims(g.Size)
	or, oc := g.BoxOrigin(r, c)
	for dr := 0; dr < br; dr++ {
		for dc := 0; dc < bc; dc++ {
			used |= 1 << g.Cells[or+dr][oc+dc]
		}
	}
	return FullMask(g.Size) &^ used
}

// CandidateValues is Candidates expanded to an ascending slice.
func (g Grid) CandidateValues(r, c int) []uint8 {
	return g.Candidates(r, c).Values()
}

// IsComplete reports whether every cell is filled.
func (g Grid) IsComplete() bool {
	for _, row := range g.Cells {
		for _, v := range row {
			if v == 0 {
				return false
			}
		}
	}
	return g.Size > 0
}

// Consistent reports whether the filled cells respect unit
// uniqueness; empty cells are fine.
func (g Grid) Consistent() bool {
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			v := g.Cells[r][c]
			if v != 0 && !g.Legal(r, c, v) {
				return false
			}
		}
	}
	return true
}

// IsSolved reports whether the grid is complete and every row,
// column, and box is a permutation of 1..N.
func (g Grid) IsSolved() bool {
	if !g.IsComplete() {
		return false
	}
	full := FullMask(g.Size)
	for i := 0; i < g.Size; i++ {
		var rm, cm Mask
		for j := 0; j < g.Size; j++ {
			rm |= 1 << g.Cells[i][j]
			cm |= 1 << g.Cells[j][i]
		}
		if rm != full || cm != full {
			return false
		}
	}
	br, bc := BoxDims(g.Size)
	for or := 0; or < g.Size; or += br {
		for oc := 0; oc < g.Size; oc += bc {
			var m Mask
			for dr := 0; dr < br; dr++ {
				for dc := 0; dc < bc; dc++ {
					m |= 1 << g.Cells[or+dr][oc+dc]
				}
			}
			if m != full {
				return false
			}
		}
	}
	return true
}

// Clues counts the filled cells.
func (g Grid) Clues() int {
	n := 0
	for _, row := range g.Cells {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
