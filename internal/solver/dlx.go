package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/gridoku/internal/domain"
	"svw.info/gridoku/internal/ports"
)

// DLXSolver implements Algorithm X / Dancing Links over the exact-cover
// formulation of the placement problem. For side n there are 4*n*n
// constraint columns and n*n*n candidate rows:
// Columns: [0, n*n)        -> cell (r,c) is filled
//          [n*n, 2*n*n)    -> row r has number v
//          [2*n*n, 3*n*n)  -> col c has number v
//          [3*n*n, 4*n*n)  -> box b has number v
type DLXSolver struct{}

func NewDLXSolver() *DLXSolver { return &DLXSolver{} }

// node/column structures (classic dancing links)
type node struct {
	left, right, up, down *node
	col                   *column
	rowIdx                int // identifies (r,c,v)
}
type column struct {
	node
	size   int
	name   int
	active bool // whether this constraint column is currently uncovered
}

type dlx struct {
	n, boxRows, boxCols int
	cols                []*column
	rowHead             []*node
	sol                 []*node
	solLen              int
	nodes               int
	activeCnt           int // number of active (uncovered) columns
}

func newDLX(n int) (*dlx, error) {
	boxRows, boxCols := domain.BoxDims(n)
	if boxRows == 0 {
		return nil, errUnsupportedSize
	}
	cells := n * n
	d := &dlx{
		n:       n,
		boxRows: boxRows,
		boxCols: boxCols,
		cols:    make([]*column, 4*cells),
		rowHead: make([]*node, cells*n),
		sol:     make([]*node, cells),
	}
	for i := range d.cols {
		c := &column{name: i, active: true}
		c.up = &c.node
		c.down = &c.node
		d.cols[i] = c
	}
	d.activeCnt = len(d.cols)

	// build rows for all (r,c,v)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			for v := 1; v <= n; v++ {
				row := d.rowIndex(r, c, v)
				cols := d.rowColumns(r, c, v)
				var first *node
				var prev *node
				for _, colID := range cols {
					col := d.cols[colID]
					nd := &node{col: col, rowIdx: row}
					// vertical insert (at bottom)
					nd.down = &col.node
					nd.up = col.node.up
					col.node.up.down = nd
					col.node.up = nd
					col.size++
					// horizontal ring for the 4 nodes of the row
					if first == nil {
						first = nd
						nd.left = nd
						nd.right = nd
					} else {
						nd.left = prev
						nd.right = prev.right
						prev.right.left = nd
						prev.right = nd
					}
					prev = nd
				}
				d.rowHead[row] = first
			}
		}
	}
	return d, nil
}

func (d *dlx) rowIndex(r, c, v int) int {
	return (r*d.n+c)*d.n + (v - 1)
}

func (d *dlx) rowColumns(r, c, v int) [4]int {
	cells := d.n * d.n
	cell := r*d.n + c
	rowN := cells + r*d.n + (v - 1)
	colN := 2*cells + c*d.n + (v - 1)
	box := (r/d.boxRows)*(d.n/d.boxCols) + c/d.boxCols
	boxN := 3*cells + box*d.n + (v - 1)
	return [4]int{cell, rowN, colN, boxN}
}

func (d *dlx) decodeRow(row int) (r, c, v int) {
	cell := row / d.n
	v = (row % d.n) + 1
	r = cell / d.n
	c = cell % d.n
	return
}

// core operations
func (d *dlx) cover(col *column) {
	if col.active {
		col.active = false
		d.activeCnt--
	}
	for i := col.down; i != &col.node; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *dlx) uncover(col *column) {
	for i := col.up; i != &col.node; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		d.activeCnt++
	}
}

// choose the active column with the smallest size
func (d *dlx) chooseColumn() *column {
	var best *column
	for _, c := range d.cols {
		if c.active {
			if best == nil || c.size < best.size {
				best = c
				if best.size == 0 {
					break
				}
			}
		}
	}
	return best
}

func (d *dlx) search(ctx context.Context, k int, wantCount int, found *int) bool {
	select {
	case <-ctx.Done():
		return true // stop search
	default:
	}
	// all constraints covered -> solution
	if d.activeCnt == 0 {
		d.solLen = k
		(*found)++
		return *found >= wantCount
	}

	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	for r := c.down; r != &c.node; r = r.down {
		d.nodes++
		d.sol[k] = r
		for j := r.right; j != r; j = j.right {
			if j.col.active {
				d.cover(j.col)
			}
		}
		if d.search(ctx, k+1, wantCount, found) {
			// back out coverings done for this row before exiting
			for j := r.left; j != r; j = j.left {
				d.uncover(j.col)
			}
			d.uncover(c)
			return true
		}
		// backtrack: uncover in reverse order
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
	}
	d.uncover(c)
	return false
}

// apply givens by selecting corresponding rows and covering their columns
func (d *dlx) applyGiven(r, c, v int) error {
	row := d.rowIndex(r, c, v)
	head := d.rowHead[row]
	if head == nil {
		return errors.New("invalid row mapping")
	}
	for j := head; ; j = j.right {
		d.cover(j.col)
		if j.right == head {
			break
		}
	}
	return nil
}

func (d *dlx) applyGivens(g domain.Grid) error {
	for r := 0; r < d.n; r++ {
		for c := 0; c < d.n; c++ {
			if v := int(g.Cells[r][c]); v > 0 {
				if v > d.n {
					return errors.New("invalid given")
				}
				if err := d.applyGiven(r, c, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *DLXSolver) Solve(ctx context.Context, b domain.Grid) (domain.Grid, ports.Stats, error) {
	start := time.Now()
	d, err := newDLX(b.Size)
	if err != nil {
		return domain.Grid{}, ports.Stats{}, err
	}
	if !b.Consistent() {
		return domain.Grid{}, ports.Stats{Duration: time.Since(start)}, errors.New("grid violates unit uniqueness")
	}
	if err := d.applyGivens(b); err != nil {
		return domain.Grid{}, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, 1, &found)
	if found < 1 {
		return domain.Grid{}, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, errors.New("no solution")
	}
	// reconstruct the board from chosen rows plus the original givens
	out := b.Clone()
	for i := 0; i < d.solLen; i++ {
		r, c, v := d.decodeRow(d.sol[i].rowIdx)
		out.Cells[r][c] = uint8(v)
	}
	return out, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, nil
}

func (s *DLXSolver) CountSolutions(ctx context.Context, b domain.Grid, limit int) (int, ports.Stats, error) {
	start := time.Now()
	d, err := newDLX(b.Size)
	if err != nil {
		return 0, ports.Stats{}, err
	}
	if limit < 1 {
		limit = 1
	}
	if !b.Consistent() {
		return 0, ports.Stats{Duration: time.Since(start)}, nil
	}
	if err := d.applyGivens(b); err != nil {
		return 0, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, limit, &found)
	return found, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, nil
}
