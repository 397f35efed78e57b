// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Render   RenderConfig   `toml:"render"`
	Filters  FiltersConfig  `toml:"filters"`
	Rotation RotationConfig `toml:"rotation"`
	Size     SizeConfig     `toml:"size"`
	Mask     MaskConfig     `toml:"mask"`
	Log      LogConfig      `toml:"log"`
}

// RenderConfig maps canvas, font and color settings.
type RenderConfig struct {
	Width           *int     `toml:"width"`
	Height          *int     `toml:"height"`
	KeepAspect      *bool    `toml:"keep-aspect"`
	Grid            *int     `toml:"grid"`
	MinSize         *float64 `toml:"min-size"`
	MaxSteps        *int     `toml:"max-steps"`
	Font            *string  `toml:"font"`
	Metrics         *string  `toml:"metrics"`
	Seed            *int64   `toml:"seed"`
	Palette         *string  `toml:"palette"`
	ColorMode       *string  `toml:"color-mode"`
	Resolution      *int     `toml:"resolution"`
	Background      *string  `toml:"background"`
	BackgroundImage *string  `toml:"background-image"`
	Output          *string  `toml:"output"`
	Tokenizer       *string  `toml:"tokenizer"`
	BaseForm        *bool    `toml:"base-form"`
}

// FiltersConfig maps filter toggles and the deny list.
type FiltersConfig struct {
	Enabled  []string `toml:"enabled"`
	Deny     *string  `toml:"deny"`
	DenyFile *string  `toml:"deny-file"`
}

// RotationConfig maps the rotation policy. Angles are in degrees.
type RotationConfig struct {
	Probability *float64 `toml:"probability"`
	MinDeg      *float64 `toml:"min"`
	MaxDeg      *float64 `toml:"max"`
	Steps       *int     `toml:"steps"`
}

// SizeConfig maps the count to font size polynomial.
type SizeConfig struct {
	A   *float64 `toml:"a"`
	B   *float64 `toml:"b"`
	C   *float64 `toml:"c"`
	Min *float64 `toml:"min"`
	Max *float64 `toml:"max"`
}

// MaskConfig maps the placement mask.
type MaskConfig struct {
	Path      *string   `toml:"path"`
	Threshold *float64  `toml:"threshold"`
	Invert    *bool     `toml:"invert"`
	Space     *string   `toml:"space"`
	Min       []float64 `toml:"min"`
	Max       []float64 `toml:"max"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Mask.validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

func (m MaskConfig) validate() error {
	if (m.Min == nil) != (m.Max == nil) {
		return fmt.Errorf("mask min and max must be set together")
	}
	if m.Min != nil && (len(m.Min) != 3 || len(m.Max) != 3) {
		return fmt.Errorf("mask min and max need three components")
	}
	return nil
}

// Template is written by `tagcloud config` when no file exists.
const Template = `# tagcloud configuration

[render]
# width = 800
# height = 600
# grid = 8
# min-size = 4
# font = "/path/to/font.ttf"
# metrics = "font"        # font | box
# palette = "spring"
# color-mode = "cycle"    # cycle | random | positional
# background = "#ffffff"
# tokenizer = "lexicon"   # whitespace | lexicon
# base-form = false

[filters]
# enabled = ["class", "length", "freq", "words"]
# deny = "the a an"
# deny-file = "/path/to/stopwords.txt"

[rotation]
# probability = 0.1
# min = -90
# max = 90
# steps = 0

[size]
# a = 0.0
# b = 8.0
# c = 10.0
# min = 10.0
# max = 120.0

[mask]
# path = "/path/to/silhouette.png"
# threshold = 0.5
# invert = false
# space = "hsv"
# min = [0.0, 0.5, 0.5]
# max = [20.0, 1.0, 1.0]

[log]
# level = "warn"
`
