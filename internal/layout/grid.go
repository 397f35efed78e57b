package layout

import (
	"image"

	"github.com/verte-zerg/tagcloud/internal/mask"
	"github.com/verte-zerg/tagcloud/internal/textmetrics"
)

// Grid is the occupancy map over the canvas in cells of Size pixels.
type Grid struct {
	Size   int
	Width  int
	Height int
	cells  []bool
}

// NewGrid covers the whole cells of a width x height canvas. A cell
// touching any blocked mask pixel starts occupied.
func NewGrid(width, height, size int, m *mask.Bitmap) *Grid {
	gw := width / size
	gh := height / size
	g := &Grid{Size: size, Width: gw, Height: gh, cells: make([]bool, gw*gh)}
	if m == nil {
		return g
	}
	for cy := 0; cy < gh; cy++ {
		for cx := 0; cx < gw; cx++ {
			if m.AnyBlocked(image.Rect(cx*size, cy*size, (cx+1)*size, (cy+1)*size)) {
				g.cells[cy*gw+cx] = true
			}
		}
	}
	return g
}

// Occupied reports whether cell (x, y) is taken. Cells off the grid are.
func (g *Grid) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return true
	}
	return g.cells[y*g.Width+x]
}

// Fits reports whether shape anchored with its top-left cell at (x, y)
// touches only free cells.
func (g *Grid) Fits(s *Shape, x, y int) bool {
	for _, c := range s.Cells {
		if g.Occupied(x+c.X, y+c.Y) {
			return false
		}
	}
	return true
}

// Fill marks shape's cells at (x, y) and returns their indexes.
func (g *Grid) Fill(s *Shape, x, y int) []int {
	out := make([]int, 0, len(s.Cells))
	for _, c := range s.Cells {
		idx := (y+c.Y)*g.Width + x + c.X
		g.cells[idx] = true
		out = append(out, idx)
	}
	return out
}

// Rows returns a copy of the occupancy map, one slice per grid row.
func (g *Grid) Rows() [][]bool {
	out := make([][]bool, g.Height)
	for y := range out {
		out[y] = make([]bool, g.Width)
		copy(out[y], g.cells[y*g.Width:(y+1)*g.Width])
	}
	return out
}

// Shape is a rasterized word reduced to grid cells.
type Shape struct {
	// Pixel size of the rotated glyph.
	PixelW, PixelH int
	// Span in cells.
	CellsW, CellsH int
	Cells          []image.Point
}

// NewShape collects the cells holding ink in img when its top-left
// corner sits on a cell corner.
func NewShape(img *image.Alpha, size int) *Shape {
	b := img.Bounds()
	s := &Shape{
		PixelW: b.Dx(),
		PixelH: b.Dy(),
		CellsW: (b.Dx() + size - 1) / size,
		CellsH: (b.Dy() + size - 1) / size,
	}
	for cy := 0; cy < s.CellsH; cy++ {
		for cx := 0; cx < s.CellsW; cx++ {
			if cellHasInk(img, b.Min.X+cx*size, b.Min.Y+cy*size, size) {
				s.Cells = append(s.Cells, image.Pt(cx, cy))
			}
		}
	}
	return s
}

func cellHasInk(img *image.Alpha, x0, y0, size int) bool {
	b := img.Bounds()
	for y := y0; y < y0+size && y < b.Max.Y; y++ {
		for x := x0; x < x0+size && x < b.Max.X; x++ {
			if textmetrics.Ink(img, x, y) {
				return true
			}
		}
	}
	return false
}
