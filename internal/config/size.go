package config

import (
	"fmt"
	"math"
)

// ResizeKeepingAspect changes one side of a w x h canvas and derives the
// other from the current ratio. A non-positive side is left unchanged.
func ResizeKeepingAspect(w, h, newW, newH int) (int, int) {
	if w <= 0 || h <= 0 {
		return newW, newH
	}
	ratio := float64(w) / float64(h)
	switch {
	case newW > 0 && newW != w:
		return newW, max(1, int(math.Round(float64(newW)/ratio)))
	case newH > 0 && newH != h:
		return max(1, int(math.Round(float64(newH)*ratio))), newH
	default:
		return w, h
	}
}

// AspectRatio reduces w:h, e.g. "4 : 3".
func AspectRatio(w, h int) string {
	g := gcd(w, h)
	if g == 0 {
		return "0 : 0"
	}
	return fmt.Sprintf("%d : %d", w/g, h/g)
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
