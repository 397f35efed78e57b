package stats

import (
	"fmt"
	"io"
)

// Preview draws an occupancy map as braille, at most width cells wide.
// Each dot is set when any source cell it covers is occupied.
func Preview(w io.Writer, rows [][]bool, width int) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	srcH, srcW := len(rows), len(rows[0])
	if width <= 0 {
		width = TerminalWidth()
	}
	cellsW := min(width, (srcW+1)/2)
	dotsW := cellsW * 2
	dotsH := max(1, dotsW*srcH/srcW)
	c := NewCanvas(cellsW, (dotsH+3)/4)

	for dy := 0; dy < dotsH; dy++ {
		y0, y1 := dy*srcH/dotsH, max(dy*srcH/dotsH+1, (dy+1)*srcH/dotsH)
		for dx := 0; dx < dotsW; dx++ {
			x0, x1 := dx*srcW/dotsW, max(dx*srcW/dotsW+1, (dx+1)*srcW/dotsW)
			if anyOccupied(rows, x0, y0, x1, y1) {
				c.Set(dx, dy)
			}
		}
	}
	for _, row := range c.Rows() {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

func anyOccupied(rows [][]bool, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1 && y < len(rows); y++ {
		for x := x0; x < x1 && x < len(rows[y]); x++ {
			if rows[y][x] {
				return true
			}
		}
	}
	return false
}
