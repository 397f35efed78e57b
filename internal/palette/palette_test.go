package palette

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestInterpolatedSchemeSamplesEndpoints(t *testing.T) {
	colors, err := Colors("spring", 8)
	if err != nil {
		t.Fatalf("colors: %v", err)
	}
	if len(colors) != 8 {
		t.Fatalf("expected 8 colors, got %d", len(colors))
	}
	if colors[0] != (color.RGBA{R: 255, G: 0, B: 255, A: 255}) {
		t.Fatalf("unexpected first color: %+v", colors[0])
	}
	if colors[7] != (color.RGBA{R: 255, G: 255, B: 0, A: 255}) {
		t.Fatalf("unexpected last color: %+v", colors[7])
	}
}

func TestDiscreteSchemeIgnoresResolution(t *testing.T) {
	colors, err := Colors("tab10", 3)
	if err != nil {
		t.Fatalf("colors: %v", err)
	}
	if len(colors) != 10 {
		t.Fatalf("expected 10 colors, got %d", len(colors))
	}
}

func TestUnknownPalette(t *testing.T) {
	if _, err := Colors("nope", 8); !errors.Is(err, ErrUnknownPalette) {
		t.Fatalf("expected ErrUnknownPalette, got %v", err)
	}
}

func TestSwatchOverrideAndReset(t *testing.T) {
	s, err := NewSwatch("tab10", 0, map[int]color.RGBA{42: {A: 255}})
	if err != nil {
		t.Fatalf("swatch: %v", err)
	}
	if len(s.Overrides()) != 0 {
		t.Fatalf("expected out of range override to be dropped")
	}
	red := color.RGBA{R: 255, A: 255}
	if err := s.Set(1, red); err != nil {
		t.Fatalf("set: %v", err)
	}
	if s.Colors()[1] != red {
		t.Fatalf("override not applied")
	}
	if err := s.Set(10, red); err == nil {
		t.Fatalf("expected out of range error")
	}
	s.Reset()
	base, _ := Colors("tab10", 0)
	if s.Colors()[1] != base[1] {
		t.Fatalf("reset did not restore base color")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"#f00":                 {R: 255, A: 255},
		"#00ff00":              {G: 255, A: 255},
		"rgb(0, 0, 255)":       {B: 255, A: 255},
		"rgba(255,255,255,0)":  {},
		"transparent":          {},
		"#ffffff80":            {R: 128, G: 128, B: 128, A: 128},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	for _, bad := range []string{"red", "rgb(1,2)", "rgba(1,2,3,4)", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFormatColorRoundTripsOpaque(t *testing.T) {
	c, _ := ParseColor("#1f77b4")
	if got := FormatColor(c); got != "#1f77b4" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestCyclePolicy(t *testing.T) {
	colors := []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}}
	p := NewPolicy(ModeCycle, colors, 0)
	if p.Color(ColorInput{Index: 4}) != colors[1] {
		t.Fatalf("expected cycle to wrap")
	}
}

func TestRandomPolicyIsSeeded(t *testing.T) {
	colors := []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}, {R: 4, A: 255}}
	a := NewPolicy(ModeRandom, colors, 7)
	b := NewPolicy(ModeRandom, colors, 7)
	for i := 0; i < 20; i++ {
		if a.Color(ColorInput{Index: i}) != b.Color(ColorInput{Index: i}) {
			t.Fatalf("index %d differs for same seed", i)
		}
	}
}

func TestPositionalPolicy(t *testing.T) {
	colors := []color.RGBA{{R: 0, A: 255}, {R: 1, A: 255}, {R: 2, A: 255}}
	p := Positional{Colors: colors}
	in := ColorInput{X: 13, Y: 10, CenterX: 10, CenterY: 10, FontSize: 10, Rotation: -math.Pi / 2}
	// floor(3 * pi/2 * 10) = 47, 47 mod 3 = 2
	if got := p.Color(in); got != colors[2] {
		t.Fatalf("unexpected color %+v", got)
	}
	in.Rotation = 0
	if got := p.Color(in); got != colors[0] {
		t.Fatalf("expected first color for unrotated word, got %+v", got)
	}
	if (Positional{}).Color(in) != black {
		t.Fatalf("expected black for empty palette")
	}
}
