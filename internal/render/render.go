// Package render rasterizes a layout result.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/verte-zerg/tagcloud/internal/layout"
	"github.com/verte-zerg/tagcloud/internal/textmetrics"
)

// Options describes the canvas behind the words.
type Options struct {
	Width      int
	Height     int
	Background color.RGBA
	// BackgroundImage, when set, is scaled to cover the canvas and
	// drawn over Background.
	BackgroundImage image.Image
	Metrics         textmetrics.Provider
}

// Draw paints every placed word of res onto a new canvas.
func Draw(res layout.Result, opts Options) (*image.RGBA, error) {
	if res.Unsupported || opts.Metrics == nil {
		return nil, layout.ErrUnsupported
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)
	if opts.BackgroundImage != nil {
		Cover(dst, opts.BackgroundImage)
	}

	for _, idx := range res.Order {
		p := res.Placements[idx]
		if !p.Placed {
			continue
		}
		glyph, err := opts.Metrics.Rasterize(p.Text, p.FontSize)
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize %q: %w", p.Text, err)
		}
		glyph = textmetrics.Rotate(glyph, p.Rotation)
		gb := glyph.Bounds()
		at := image.Pt(int(p.Bounds.X0), int(p.Bounds.Y0))
		r := image.Rectangle{Min: at, Max: at.Add(gb.Size())}
		draw.DrawMask(dst, r, &image.Uniform{C: p.Color}, image.Point{}, glyph, gb.Min, draw.Over)
	}
	return dst, nil
}

// Cover scales src to fill dst entirely, keeping its aspect ratio and
// cropping the overflow evenly on both sides.
func Cover(dst draw.Image, src image.Image) {
	db, sb := dst.Bounds(), src.Bounds()
	if sb.Empty() || db.Empty() {
		return
	}
	scale := float64(db.Dx()) / float64(sb.Dx())
	if s := float64(db.Dy()) / float64(sb.Dy()); s > scale {
		scale = s
	}
	cw := int(float64(db.Dx()) / scale)
	ch := int(float64(db.Dy()) / scale)
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	x0 := sb.Min.X + (sb.Dx()-cw)/2
	y0 := sb.Min.Y + (sb.Dy()-ch)/2
	draw.CatmullRom.Scale(dst, db, src, image.Rect(x0, y0, x0+cw, y0+ch), draw.Over, nil)
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
