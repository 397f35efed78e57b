package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b), rgba(r,g,b,a)
// and "transparent". rgba alpha is in [0, 1].
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return color.RGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	default:
		return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
	}
}

func parseHex(s string) (color.RGBA, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return toRGBA(c, alpha), nil
}

func parseFunc(body string, n int) (color.RGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return color.RGBA{}, fmt.Errorf("expected %d components, got %d", n, len(parts))
	}
	var rgb [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("invalid component %q", strings.TrimSpace(parts[i]))
		}
		rgb[i] = v / 255
	}
	alpha := 1.0
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("invalid alpha %q", strings.TrimSpace(parts[3]))
		}
		alpha = a
	}
	return toRGBA(colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, alpha), nil
}

// FormatColor renders c as #rrggbb, or #rrggbbaa when translucent.
func FormatColor(c color.RGBA) string {
	if c.A == 0 {
		return "#00000000"
	}
	un := color.NRGBAModel.Convert(c).(color.NRGBA)
	if un.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", un.R, un.G, un.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", un.R, un.G, un.B, un.A)
}
