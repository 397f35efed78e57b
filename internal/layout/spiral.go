package layout

import (
	"image"
	"math"
)

// Spiral lists distinct grid points along an Archimedean spiral
// r = theta / 4pi around (cx, cy), stopping once the radius reaches
// maxRadius or limit points were produced (limit <= 0 means no limit).
// Turns are half a cell apart and consecutive samples half a cell apart
// along the curve, so cells inside the radius are visited roughly in order of
// distance from the center.
func Spiral(cx, cy int, maxRadius float64, limit int) []image.Point {
	seen := map[image.Point]struct{}{}
	out := []image.Point{image.Pt(cx, cy)}
	seen[out[0]] = struct{}{}

	theta := 0.0
	for {
		if limit > 0 && len(out) >= limit {
			return out
		}
		r := theta / (4 * math.Pi)
		if r > maxRadius {
			return out
		}
		p := image.Pt(
			cx+int(math.Round(r*math.Cos(theta))),
			cy+int(math.Round(r*math.Sin(theta))),
		)
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
		theta += 0.5 / math.Max(r, 1)
	}
}
