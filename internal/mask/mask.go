// Package mask turns a raster image into a placement bitmap.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("empty mask image")

// DefaultThreshold blocks pixels darker than mid grey.
const DefaultThreshold = 0.5

// Space selects how a ColorRange is compared.
type Space string

const (
	SpaceRGB Space = "rgb"
	SpaceHSV Space = "hsv"
)

// ParseSpace resolves a color space name.
func ParseSpace(s string) (Space, error) {
	switch sp := Space(strings.ToLower(strings.TrimSpace(s))); sp {
	case SpaceRGB, SpaceHSV:
		return sp, nil
	default:
		return "", fmt.Errorf("unknown color space %q", s)
	}
}

// ColorRange matches pixels whose channels fall inside [Min, Max].
// RGB channels are 0-255; HSV is hue 0-360 with saturation and value 0-1.
type ColorRange struct {
	Space Space
	Min   [3]float64
	Max   [3]float64
}

// Contains reports whether c lies inside the range.
func (r ColorRange) Contains(c color.Color) bool {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return false
	}
	var v [3]float64
	switch r.Space {
	case SpaceHSV:
		v[0], v[1], v[2] = cc.Hsv()
	default:
		r8, g8, b8 := cc.RGB255()
		v = [3]float64{float64(r8), float64(g8), float64(b8)}
	}
	for i := range v {
		lo, hi := r.Min[i], r.Max[i]
		if lo > hi {
			lo, hi = hi, lo
		}
		if v[i] < lo || v[i] > hi {
			return false
		}
	}
	return true
}

// Options controls which pixels block placement.
// Without a Range, pixels with luminance below Threshold block.
type Options struct {
	Threshold float64
	Range     *ColorRange
	Invert    bool
}

// Bitmap is a per-pixel blocked map at canvas resolution.
type Bitmap struct {
	Width   int
	Height  int
	blocked []bool
}

// New returns an all-allowed bitmap.
func New(width, height int) *Bitmap {
	return &Bitmap{Width: width, Height: height, blocked: make([]bool, width*height)}
}

// FromImage resamples img to width x height and classifies every pixel.
// Transparent areas are composited over white first.
func FromImage(img image.Image, width, height int, opts Options) (*Bitmap, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid mask size %dx%d", width, height)
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), img, img.Bounds(), draw.Over, nil)

	b := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := canvas.RGBAAt(x, y)
			var hit bool
			if opts.Range != nil {
				hit = opts.Range.Contains(px)
			} else {
				hit = luminance(px) < threshold
			}
			b.blocked[y*width+x] = hit != opts.Invert
		}
	}
	return b, nil
}

func luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// Blocked reports whether (x, y) is off limits. Outside the bitmap is blocked.
func (b *Bitmap) Blocked(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return true
	}
	return b.blocked[y*b.Width+x]
}

// Set marks (x, y) blocked or allowed.
func (b *Bitmap) Set(x, y int, blocked bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.blocked[y*b.Width+x] = blocked
}

// AnyBlocked reports whether any pixel in the rectangle is blocked.
func (b *Bitmap) AnyBlocked(r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if b.Blocked(x, y) {
				return true
			}
		}
	}
	return false
}

// Coverage returns the fraction of allowed pixels.
func (b *Bitmap) Coverage() float64 {
	if len(b.blocked) == 0 {
		return 0
	}
	allowed := 0
	for _, v := range b.blocked {
		if !v {
			allowed++
		}
	}
	return float64(allowed) / float64(len(b.blocked))
}

// Centroid returns the mean position of allowed pixels.
// ok is false when nothing is allowed.
func (b *Bitmap) Centroid() (x, y float64, ok bool) {
	var sx, sy float64
	n := 0
	for i, v := range b.blocked {
		if v {
			continue
		}
		sx += float64(i%b.Width) + 0.5
		sy += float64(i/b.Width) + 0.5
		n++
	}
	if n == 0 {
		return float64(b.Width) / 2, float64(b.Height) / 2, false
	}
	return sx / float64(n), sy / float64(n), true
}
