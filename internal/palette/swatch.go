package palette

import (
	"fmt"
	"image/color"
	"sort"
)

// Swatch is a named scheme with per-index user overrides.
type Swatch struct {
	name      string
	base      []color.RGBA
	overrides map[int]color.RGBA
}

// NewSwatch loads the named scheme and applies overrides.
// Overrides outside the scheme's index range are dropped.
func NewSwatch(name string, resolution int, overrides map[int]color.RGBA) (*Swatch, error) {
	base, err := Colors(name, resolution)
	if err != nil {
		return nil, err
	}
	s := &Swatch{name: name, base: base, overrides: map[int]color.RGBA{}}
	for i, c := range overrides {
		if i >= 0 && i < len(base) {
			s.overrides[i] = c
		}
	}
	return s, nil
}

// Name returns the scheme name.
func (s *Swatch) Name() string {
	return s.name
}

// Len returns the number of colors.
func (s *Swatch) Len() int {
	return len(s.base)
}

// Set overrides the color at index i.
func (s *Swatch) Set(i int, c color.RGBA) error {
	if i < 0 || i >= len(s.base) {
		return fmt.Errorf("index %d out of range for %s (0-%d)", i, s.name, len(s.base)-1)
	}
	s.overrides[i] = c
	return nil
}

// Reset drops every override.
func (s *Swatch) Reset() {
	s.overrides = map[int]color.RGBA{}
}

// Overrides returns the user edits sorted by index.
func (s *Swatch) Overrides() []Override {
	out := make([]Override, 0, len(s.overrides))
	for i, c := range s.overrides {
		out = append(out, Override{Index: i, Color: c})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Index < out[b].Index })
	return out
}

// Colors returns the effective colors.
func (s *Swatch) Colors() []color.RGBA {
	out := make([]color.RGBA, len(s.base))
	copy(out, s.base)
	for i, c := range s.overrides {
		out[i] = c
	}
	return out
}

// Override is a single user edit.
type Override struct {
	Index int
	Color color.RGBA
}
