// Package layout packs weighted words onto a canvas.
package layout

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/verte-zerg/tagcloud/internal/mask"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/palette"
	"github.com/verte-zerg/tagcloud/internal/rotation"
	"github.com/verte-zerg/tagcloud/internal/textmetrics"
)

// DefaultGridSize is the cell edge in pixels.
const DefaultGridSize = 8

// ErrUnsupported is returned when no text metrics are available.
var ErrUnsupported = errors.New("text layout unsupported")

// Options configures a layout run.
type Options struct {
	Width    int
	Height   int
	GridSize int
	// MinSize is the smallest font size drawn. Smaller words are dropped.
	MinSize float64
	// Weight maps a datum weight to a font size. Nil means identity.
	Weight   func(weight float64) float64
	Rotation model.RotationSettings
	Seed     int64
	Mask     *mask.Bitmap
	// Origin overrides the spiral center in pixels.
	Origin *image.Point
	// MaxSteps caps spiral positions tried per word; 0 searches the whole canvas.
	MaxSteps int
	Colors   palette.Policy
	Metrics  textmetrics.Provider
}

// Result is the outcome of a layout run.
type Result struct {
	// Placements holds one entry per input datum, in input order.
	Placements []model.Placement
	// Order lists input indexes in the order they were processed.
	Order []int
	// Cells holds the grid cells taken by each placement, in input order.
	Cells [][]int
	// Grid is the occupancy after the run.
	Grid        *Grid
	Unsupported bool
}

// PlacedCount returns the number of words that found a position.
func (r Result) PlacedCount() int {
	n := 0
	for _, p := range r.Placements {
		if p.Placed {
			n++
		}
	}
	return n
}

// Engine runs layouts with fixed options.
type Engine struct {
	opts Options
}

// New returns an Engine for opts.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Layout places data heaviest first. Words that do not fit are reported
// with Placed false; that is not an error.
func (e *Engine) Layout(data []model.Datum) (Result, error) {
	opts := e.opts
	if opts.Metrics == nil {
		return Result{Unsupported: true}, ErrUnsupported
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return Result{}, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}
	weight := opts.Weight
	if weight == nil {
		weight = func(w float64) float64 { return w }
	}

	grid := NewGrid(opts.Width, opts.Height, opts.GridSize, opts.Mask)
	ox, oy := origin(opts)
	points := Spiral(ox/opts.GridSize, oy/opts.GridSize,
		math.Hypot(float64(grid.Width), float64(grid.Height)), 0)
	if opts.MaxSteps > 0 && len(points) > opts.MaxSteps {
		points = points[:opts.MaxSteps]
	}

	order := make([]int, len(data))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return data[order[a]].Weight > data[order[b]].Weight
	})

	diagonal := math.Hypot(float64(opts.Width), float64(opts.Height))
	chooser := rotation.New(opts.Rotation, opts.Seed)
	res := Result{
		Placements: make([]model.Placement, len(data)),
		Order:      order,
		Cells:      make([][]int, len(data)),
		Grid:       grid,
	}
	placed := 0
	for _, idx := range order {
		d := data[idx]
		size := weight(d.Weight)
		p := model.Placement{Text: d.Text, Weight: d.Weight, FontSize: size, Color: color.RGBA{A: 0xff}}
		if size <= 0 || size < opts.MinSize || math.IsNaN(size) {
			res.Placements[idx] = p
			continue
		}
		p.Rotation = chooser.Next()
		// A glyph taller than the diagonal cannot fit at any angle.
		if size > diagonal {
			res.Placements[idx] = p
			continue
		}

		img, err := opts.Metrics.Rasterize(d.Text, size)
		if errors.Is(err, textmetrics.ErrNoFont) {
			return Result{Unsupported: true}, ErrUnsupported
		}
		if errors.Is(err, textmetrics.ErrTooLarge) {
			res.Placements[idx] = p
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to measure %q: %w", d.Text, err)
		}
		if b := img.Bounds(); float64(b.Dx()) > diagonal {
			res.Placements[idx] = p
			continue
		}
		shape := NewShape(textmetrics.Rotate(img, p.Rotation), opts.GridSize)
		if len(shape.Cells) == 0 {
			res.Placements[idx] = p
			continue
		}

		for _, pt := range points {
			x := pt.X - shape.CellsW/2
			y := pt.Y - shape.CellsH/2
			if !grid.Fits(shape, x, y) {
				continue
			}
			res.Cells[idx] = grid.Fill(shape, x, y)
			left := float64(x * opts.GridSize)
			top := float64(y * opts.GridSize)
			p.Bounds = model.Rect{
				X0: left,
				Y0: top,
				X1: left + float64(shape.PixelW),
				Y1: top + float64(shape.PixelH),
			}
			p.X = left + float64(shape.PixelW)/2
			p.Y = top + float64(shape.PixelH)/2
			p.Placed = true
			if opts.Colors != nil {
				p.Color = opts.Colors.Color(palette.ColorInput{
					Index:    placed,
					Text:     d.Text,
					FontSize: size,
					Rotation: p.Rotation,
					X:        p.X,
					Y:        p.Y,
					CenterX:  float64(opts.Width) / 2,
					CenterY:  float64(opts.Height) / 2,
				})
			}
			placed++
			break
		}
		res.Placements[idx] = p
	}
	return res, nil
}

func origin(opts Options) (int, int) {
	if opts.Origin != nil {
		return opts.Origin.X, opts.Origin.Y
	}
	if opts.Mask != nil {
		if x, y, ok := opts.Mask.Centroid(); ok {
			return int(x), int(y)
		}
	}
	return opts.Width / 2, opts.Height / 2
}
