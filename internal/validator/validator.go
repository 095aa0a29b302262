package validator

import (
	"context"
	"fmt"

	"svw.info/gridoku/internal/domain"
)

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate scans rows, columns, and boxes with bitmasks and reports
// every cell that repeats a value already seen in its unit.
func (v *FastValidator) Validate(ctx context.Context, g domain.Grid) (bool, []domain.CellCoord, error) {
	if !domain.SupportedSize(g.Size) {
		return false, nil, fmt.Errorf("unsupported grid size %d", g.Size)
	}
	conf := make([]domain.CellCoord, 0, 8)
	n := g.Size
	// rows
	for r := 0; r < n; r++ {
		var m domain.Mask
		for c := 0; c < n; c++ {
			val := g.Cells[r][c]
			if val == 0 {
				continue
			}
			bit := domain.Mask(1) << val
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// cols
	for c := 0; c < n; c++ {
		var m domain.Mask
		for r := 0; r < n; r++ {
			val := g.Cells[r][c]
			if val == 0 {
				continue
			}
			bit := domain.Mask(1) << val
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// boxes
	br, bc := domain.BoxDims(n)
	for or := 0; or < n; or += br {
		for oc := 0; oc < n; oc += bc {
			var m domain.Mask
			for dr := 0; dr < br; dr++ {
				for dc := 0; dc < bc; dc++ {
					r, c := or+dr, oc+dc
					val := g.Cells[r][c]
					if val == 0 {
						continue
					}
					bit := domain.Mask(1) << val
					if m&bit != 0 {
						conf = append(conf, domain.CellCoord{Row: r, Col: c})
					}
					m |= bit
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}
