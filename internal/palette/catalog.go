// Package palette holds named color schemes and the policies that pick a
// color for each placed word.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultName is the scheme used when none is configured.
const DefaultName = "spring"

// DefaultResolution is the number of stops sampled from a gradient.
const DefaultResolution = 8

// ErrUnknownPalette is returned for names missing from the catalog.
var ErrUnknownPalette = errors.New("unknown palette")

// Scheme is either a discrete color list or a gradient through its stops.
type Scheme struct {
	Name        string
	Interpolate bool
	Stops       []string
}

var catalog = map[string]Scheme{
	"spring":  {Name: "spring", Interpolate: true, Stops: []string{"#ff00ff", "#ffff00"}},
	"summer":  {Name: "summer", Interpolate: true, Stops: []string{"#008066", "#ffff66"}},
	"autumn":  {Name: "autumn", Interpolate: true, Stops: []string{"#ff0000", "#ffff00"}},
	"winter":  {Name: "winter", Interpolate: true, Stops: []string{"#0000ff", "#00ff80"}},
	"cool":    {Name: "cool", Interpolate: true, Stops: []string{"#00ffff", "#ff00ff"}},
	"hot":     {Name: "hot", Interpolate: true, Stops: []string{"#0b0000", "#ff0000", "#ffff00", "#ffffff"}},
	"greys":   {Name: "greys", Interpolate: true, Stops: []string{"#ffffff", "#000000"}},
	"viridis": {Name: "viridis", Interpolate: true, Stops: []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}},
	"magma":   {Name: "magma", Interpolate: true, Stops: []string{"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"}},
	"tab10": {Name: "tab10", Stops: []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}},
	"set1": {Name: "set1", Stops: []string{
		"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
		"#ffff33", "#a65628", "#f781bf", "#999999",
	}},
	"dark2": {Name: "dark2", Stops: []string{
		"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e",
		"#e6ab02", "#a6761d", "#666666",
	}},
	"pastel1": {Name: "pastel1", Stops: []string{
		"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
		"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
	}},
}

// Names lists the catalog in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the scheme registered under name.
func Lookup(name string) (Scheme, error) {
	s, ok := catalog[name]
	if !ok {
		return Scheme{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return s, nil
}

// Colors returns the colors of the named scheme. Gradients are sampled
// at resolution evenly spaced stops; resolution < 2 uses the default.
func Colors(name string, resolution int) ([]color.RGBA, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.Colors(resolution)
}

// Colors materializes the scheme.
func (s Scheme) Colors(resolution int) ([]color.RGBA, error) {
	stops := make([]colorful.Color, len(s.Stops))
	for i, hex := range s.Stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s stop %d: %w", s.Name, i, err)
		}
		stops[i] = c
	}
	if !s.Interpolate {
		out := make([]color.RGBA, len(stops))
		for i, c := range stops {
			out[i] = toRGBA(c, 1)
		}
		return out, nil
	}
	if resolution < 2 {
		resolution = DefaultResolution
	}
	out := make([]color.RGBA, resolution)
	for i := range out {
		out[i] = toRGBA(sample(stops, float64(i)/float64(resolution-1)), 1)
	}
	return out, nil
}

// sample returns the gradient color at t in [0, 1].
func sample(stops []colorful.Color, t float64) colorful.Color {
	if len(stops) == 1 || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	return stops[i].BlendRgb(stops[i+1], pos-float64(i))
}

func toRGBA(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := uint8(alpha*255 + 0.5)
	// color.RGBA is alpha premultiplied.
	return color.RGBA{
		R: uint8(uint16(r) * uint16(a) / 255),
		G: uint8(uint16(g) * uint16(a) / 255),
		B: uint8(uint16(b) * uint16(a) / 255),
		A: a,
	}
}
