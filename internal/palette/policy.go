package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strings"
)

// ColorInput describes a placed word.
type ColorInput struct {
	Index    int
	Text     string
	FontSize float64
	Rotation float64
	X, Y     float64
	CenterX  float64
	CenterY  float64
}

// Policy assigns a color to a placed word.
type Policy interface {
	Color(in ColorInput) color.RGBA
}

// Mode names a policy.
type Mode string

const (
	ModeCycle      Mode = "cycle"
	ModeRandom     Mode = "random"
	ModePositional Mode = "positional"
)

// ParseMode resolves a policy name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCycle, ModeRandom, ModePositional:
		return m, nil
	case "":
		return ModeCycle, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

// NewPolicy builds the policy for mode over colors.
func NewPolicy(mode Mode, colors []color.RGBA, seed int64) Policy {
	switch mode {
	case ModeRandom:
		return Random{Colors: colors, Seed: seed}
	case ModePositional:
		return Positional{Colors: colors}
	default:
		return Cycle{Colors: colors}
	}
}

var black = color.RGBA{A: 0xff}

// Cycle gives the i-th placed word colors[i mod n].
type Cycle struct {
	Colors []color.RGBA
}

func (p Cycle) Color(in ColorInput) color.RGBA {
	if len(p.Colors) == 0 {
		return black
	}
	return p.Colors[mod(in.Index, len(p.Colors))]
}

// Random picks a color per word from a seeded source.
type Random struct {
	Colors []color.RGBA
	Seed   int64
}

func (p Random) Color(in ColorInput) color.RGBA {
	if len(p.Colors) == 0 {
		return black
	}
	r := rand.New(rand.NewSource(p.Seed*1_000_003 + int64(in.Index)))
	return p.Colors[r.Intn(len(p.Colors))]
}

// Positional hashes distance from the canvas center, rotation and font size.
type Positional struct {
	Colors []color.RGBA
}

func (p Positional) Color(in ColorInput) color.RGBA {
	if len(p.Colors) == 0 {
		return black
	}
	distance := math.Hypot(in.X-in.CenterX, in.Y-in.CenterY)
	key := math.Floor(distance * math.Abs(in.Rotation) * in.FontSize)
	if math.IsNaN(key) || math.IsInf(key, 0) || key > math.MaxInt32 {
		key = math.Mod(key, float64(len(p.Colors)))
		if math.IsNaN(key) {
			key = 0
		}
	}
	return p.Colors[mod(int(key), len(p.Colors))]
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
