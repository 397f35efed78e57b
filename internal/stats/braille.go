// Package stats renders word statistics and layout previews for the terminal.
package stats

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const terminalWidthBackup = 80

// Canvas is a grid of braille cells, each holding 2x4 dots.
type Canvas struct {
	cells [][]uint8
}

// NewCanvas returns a canvas of width x height cells.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &Canvas{cells: cells}
}

// DotsWide returns the horizontal dot resolution.
func (c *Canvas) DotsWide() int {
	return len(c.cells[0]) * 2
}

// DotsHigh returns the vertical dot resolution.
func (c *Canvas) DotsHigh() int {
	return len(c.cells) * 4
}

// Set turns on the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= len(c.cells) || cx >= len(c.cells[cy]) {
		return
	}
	c.cells[cy][cx] |= dotMask(x%2, y%4)
}

// Line draws a straight line between two dots.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rows renders each cell row as a string of braille runes.
func (c *Canvas) Rows() []string {
	out := make([]string, len(c.cells))
	for y, row := range c.cells {
		var b strings.Builder
		for _, m := range row {
			b.WriteRune(rune(0x2800 + int(m)))
		}
		out[y] = b.String()
	}
	return out
}

func dotMask(x, y int) uint8 {
	if y == 3 {
		if x == 0 {
			return 0x40
		}
		return 0x80
	}
	if x == 0 {
		return 1 << y
	}
	return 0x08 << y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TerminalWidth returns the stdout width or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
