package main

import (
	"fmt"
	"strings"

	"svw.info/gridoku/internal/domain"
)

// parseGrid reads a flat cell string: one digit per cell, '.' or '0'
// for empty, whitespace ignored. Length decides the board size.
func parseGrid(s string) (domain.Grid, error) {
	var cells []uint8
	for _, ch := range s {
		switch {
		case ch == '.' || ch == '0':
			cells = append(cells, 0)
		case ch >= '1' && ch <= '9':
			cells = append(cells, uint8(ch-'0'))
		case ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' || ch == '|' || ch == '+' || ch == '-':
			// separators are fine
		default:
			return domain.Grid{}, fmt.Errorf("unexpected character %q in grid", ch)
		}
	}
	for _, n := range []int{4, 6, 9} {
		if len(cells) == n*n {
			g := domain.NewGrid(n)
			for i, v := range cells {
				g.Cells[i/n][i%n] = v
			}
			return g, nil
		}
	}
	return domain.Grid{}, fmt.Errorf("grid has %d cells; want 16, 36, or 81", len(cells))
}

// renderGrid prints a grid with box separators for terminal output.
func renderGrid(g domain.Grid) string {
	br, bc := domain.BoxDims(g.Size)
	var b strings.Builder
	for r := 0; r < g.Size; r++ {
		if r > 0 && r%br == 0 {
			for c := 0; c < g.Size; c++ {
				if c > 0 && c%bc == 0 {
					b.WriteString("+-")
				}
				b.WriteString("--")
			}
			b.WriteString("\n")
		}
		for c := 0; c < g.Size; c++ {
			if c > 0 && c%bc == 0 {
				b.WriteString("| ")
			}
			if v := g.Cells[r][c]; v == 0 {
				b.WriteString(". ")
			} else {
				fmt.Fprintf(&b, "%d ", v)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
