// Package textmetrics measures and rasterizes words for collision tests.
package textmetrics

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// MaxDimension bounds the width and height of a rasterized word.
const MaxDimension = 1 << 14

// ErrTooLarge is returned when a word would rasterize beyond MaxDimension.
var ErrTooLarge = errors.New("text too large to rasterize")

// checkDimensions rejects negative, NaN or oversized dimensions.
func checkDimensions(w, h float64) error {
	if math.IsNaN(w) || math.IsNaN(h) || w < 0 || h < 0 || w > MaxDimension || h > MaxDimension {
		return ErrTooLarge
	}
	return nil
}

// Provider rasterizes text into an alpha coverage image. Implementations
// must be deterministic for a given text and size.
type Provider interface {
	Rasterize(text string, size float64) (*image.Alpha, error)
}

// Rotate returns src rotated clockwise by theta radians about its center,
// on a canvas just large enough to hold the result.
func Rotate(src *image.Alpha, theta float64) *image.Alpha {
	if theta == 0 || src.Bounds().Empty() {
		return src
	}
	sb := src.Bounds()
	w, h := float64(sb.Dx()), float64(sb.Dy())
	cos, sin := math.Cos(theta), math.Sin(theta)
	dw := int(math.Ceil(math.Abs(w*cos) + math.Abs(h*sin) - 1e-9))
	dh := int(math.Ceil(math.Abs(w*sin) + math.Abs(h*cos) - 1e-9))
	dst := image.NewAlpha(image.Rect(0, 0, dw, dh))

	sx0, sy0 := float64(sb.Min.X)+w/2, float64(sb.Min.Y)+h/2
	dx0, dy0 := float64(dw)/2, float64(dh)/2
	s2d := f64.Aff3{
		cos, -sin, dx0 - (cos*sx0 - sin*sy0),
		sin, cos, dy0 - (sin*sx0 + cos*sy0),
	}
	draw.BiLinear.Transform(dst, s2d, src, sb, draw.Over, nil)
	return dst
}

// Threshold is the coverage above which a pixel counts as ink.
const Threshold = 0x40

// Ink reports whether the pixel at (x, y) is drawn.
func Ink(img *image.Alpha, x, y int) bool {
	return img.AlphaAt(x, y).A >= Threshold
}
