package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tagcloud/internal/config"
	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/layout"
	"github.com/verte-zerg/tagcloud/internal/mask"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/palette"
	"github.com/verte-zerg/tagcloud/internal/pipeline"
	"github.com/verte-zerg/tagcloud/internal/render"
	"github.com/verte-zerg/tagcloud/internal/rotation"
	"github.com/verte-zerg/tagcloud/internal/store"
	"github.com/verte-zerg/tagcloud/internal/textmetrics"
	"github.com/verte-zerg/tagcloud/internal/tokenize"
	"github.com/verte-zerg/tagcloud/internal/transform"
	"github.com/verte-zerg/tagcloud/internal/wordlist"
)

const (
	defaultWidth      = 800
	defaultHeight     = 600
	defaultMinSize    = 4
	defaultBackground = "#ffffff"
	defaultOutput     = "tagcloud.png"
)

// defaultSize turns raw counts into readable font sizes.
var defaultSize = transform.SizeMap{A: 0, B: 8, C: 10, Min: 10, Max: 120}

var (
	cloudWidth           int
	cloudHeight          int
	cloudKeepAspect      bool
	cloudGrid            int
	cloudMinSize         float64
	cloudMaxSteps        int
	cloudFont            string
	cloudMetrics         string
	cloudSeed            int64
	cloudPalette         string
	cloudColorMode       string
	cloudResolution      int
	cloudBackground      string
	cloudBackgroundImage string
	cloudOutput          string
	cloudTokenizer       string
	cloudBaseForm        bool

	rotateProb  float64
	rotateMin   float64
	rotateMax   float64
	rotateSteps int

	sizeA   float64
	sizeB   float64
	sizeC   float64
	sizeMin float64
	sizeMax float64

	maskPath      string
	maskThreshold float64
	maskInvert    bool
	maskSpace     string
	maskMin       []float64
	maskMax       []float64

	filtersEnabled []string
	denyText       string
	denyFile       string
	lengthRange    string
	freqRange      string
)

func addCloudFlags(cmd *cobra.Command) {
	def := rotation.Default()
	size := defaultSize
	f := cmd.Flags()
	f.IntVar(&cloudWidth, "width", defaultWidth, "canvas width in pixels")
	f.IntVar(&cloudHeight, "height", defaultHeight, "canvas height in pixels")
	f.BoolVar(&cloudKeepAspect, "keep-aspect", false, "derive height from the mask or background image aspect ratio")
	f.IntVar(&cloudGrid, "grid", layout.DefaultGridSize, "grid cell size in pixels")
	f.Float64Var(&cloudMinSize, "min-size", defaultMinSize, "smallest font size drawn")
	f.IntVar(&cloudMaxSteps, "max-steps", 0, "spiral positions tried per word (0 = whole canvas)")
	f.StringVar(&cloudFont, "font", "", "TTF font path (default: Go Regular)")
	f.StringVar(&cloudMetrics, "metrics", "font", "text metrics: font or box")
	f.Int64Var(&cloudSeed, "seed", 0, "random seed for rotation and colors")
	f.StringVar(&cloudPalette, "palette", palette.DefaultName, "palette name")
	f.StringVar(&cloudColorMode, "color-mode", string(palette.ModeCycle), "color mode: cycle, random or positional")
	f.IntVar(&cloudResolution, "resolution", palette.DefaultResolution, "colors sampled from gradient palettes")
	f.StringVar(&cloudBackground, "background", defaultBackground, "background color")
	f.StringVar(&cloudBackgroundImage, "background-image", "", "image drawn to cover the canvas")
	f.StringVar(&cloudOutput, "output", defaultOutput, "output PNG path")
	f.StringVar(&cloudTokenizer, "tokenizer", "whitespace", "tokenizer: whitespace or lexicon")
	f.BoolVar(&cloudBaseForm, "base-form", false, "count base forms instead of surface forms")

	f.Float64Var(&rotateProb, "rotate-prob", def.Probability, "probability a word is rotated (0-1)")
	f.Float64Var(&rotateMin, "rotate-min", def.Min*180/math.Pi, "minimum rotation in degrees")
	f.Float64Var(&rotateMax, "rotate-max", def.Max*180/math.Pi, "maximum rotation in degrees")
	f.IntVar(&rotateSteps, "rotate-steps", def.Steps, "number of rotation angles (0 = continuous)")

	f.Float64Var(&sizeA, "size-a", size.A, "quadratic size coefficient")
	f.Float64Var(&sizeB, "size-b", size.B, "linear size coefficient")
	f.Float64Var(&sizeC, "size-c", size.C, "constant size term")
	f.Float64Var(&sizeMin, "size-min", size.Min, "smallest mapped size")
	f.Float64Var(&sizeMax, "size-max", size.Max, "largest mapped size")

	f.StringVar(&maskPath, "mask", "", "mask image; dark pixels block placement")
	f.Float64Var(&maskThreshold, "mask-threshold", mask.DefaultThreshold, "luminance below which mask pixels block (0-1)")
	f.BoolVar(&maskInvert, "mask-invert", false, "invert the mask")
	f.StringVar(&maskSpace, "mask-space", string(mask.SpaceRGB), "color space for --mask-min/--mask-max: rgb or hsv")
	f.Float64SliceVar(&maskMin, "mask-min", nil, "lower color bound, three components")
	f.Float64SliceVar(&maskMax, "mask-max", nil, "upper color bound, three components")

	f.StringSliceVar(&filtersEnabled, "filters", nil, "enabled filters: class, length, freq, words")
	f.StringVar(&denyText, "deny", "", "words to hide, separated by spaces")
	f.StringVar(&denyFile, "deny-file", config.DefaultDenyListPath(), "file with words to hide")
	f.StringVar(&lengthRange, "length", "", "length range MIN:MAX")
	f.StringVar(&freqRange, "freq", "", "frequency range MIN:MAX")
}

func applyCloudConfig(cmd *cobra.Command, fc config.FileConfig) {
	r := fc.Render
	applyIntConfig(cmd, "width", &cloudWidth, r.Width)
	applyIntConfig(cmd, "height", &cloudHeight, r.Height)
	applyBoolConfig(cmd, "keep-aspect", &cloudKeepAspect, r.KeepAspect)
	applyIntConfig(cmd, "grid", &cloudGrid, r.Grid)
	applyFloatConfig(cmd, "min-size", &cloudMinSize, r.MinSize)
	applyIntConfig(cmd, "max-steps", &cloudMaxSteps, r.MaxSteps)
	applyStringConfig(cmd, "font", &cloudFont, r.Font)
	applyStringConfig(cmd, "metrics", &cloudMetrics, r.Metrics)
	applyInt64Config(cmd, "seed", &cloudSeed, r.Seed)
	applyStringConfig(cmd, "palette", &cloudPalette, r.Palette)
	applyStringConfig(cmd, "color-mode", &cloudColorMode, r.ColorMode)
	applyIntConfig(cmd, "resolution", &cloudResolution, r.Resolution)
	applyStringConfig(cmd, "background", &cloudBackground, r.Background)
	applyStringConfig(cmd, "background-image", &cloudBackgroundImage, r.BackgroundImage)
	applyStringConfig(cmd, "output", &cloudOutput, r.Output)
	applyStringConfig(cmd, "tokenizer", &cloudTokenizer, r.Tokenizer)
	applyBoolConfig(cmd, "base-form", &cloudBaseForm, r.BaseForm)

	applyFloatConfig(cmd, "rotate-prob", &rotateProb, fc.Rotation.Probability)
	applyFloatConfig(cmd, "rotate-min", &rotateMin, fc.Rotation.MinDeg)
	applyFloatConfig(cmd, "rotate-max", &rotateMax, fc.Rotation.MaxDeg)
	applyIntConfig(cmd, "rotate-steps", &rotateSteps, fc.Rotation.Steps)

	applyFloatConfig(cmd, "size-a", &sizeA, fc.Size.A)
	applyFloatConfig(cmd, "size-b", &sizeB, fc.Size.B)
	applyFloatConfig(cmd, "size-c", &sizeC, fc.Size.C)
	applyFloatConfig(cmd, "size-min", &sizeMin, fc.Size.Min)
	applyFloatConfig(cmd, "size-max", &sizeMax, fc.Size.Max)

	applyStringConfig(cmd, "mask", &maskPath, fc.Mask.Path)
	applyFloatConfig(cmd, "mask-threshold", &maskThreshold, fc.Mask.Threshold)
	applyBoolConfig(cmd, "mask-invert", &maskInvert, fc.Mask.Invert)
	applyStringConfig(cmd, "mask-space", &maskSpace, fc.Mask.Space)
	applyFloatsConfig(cmd, "mask-min", &maskMin, fc.Mask.Min)
	applyFloatsConfig(cmd, "mask-max", &maskMax, fc.Mask.Max)

	applyStringsConfig(cmd, "filters", &filtersEnabled, fc.Filters.Enabled)
	applyStringConfig(cmd, "deny", &denyText, fc.Filters.Deny)
	applyStringConfig(cmd, "deny-file", &denyFile, fc.Filters.DenyFile)
}

// applyStoredSettings fills palette, color mode and rotation from the
// last render when neither a flag nor the config file sets them.
func applyStoredSettings(ctx context.Context, cmd *cobra.Command, fc config.FileConfig, st *store.Store) error {
	if !cmd.Flags().Changed("palette") && fc.Render.Palette == nil {
		name, err := store.Load(ctx, st, store.KeyPalette, cloudPalette)
		if err != nil {
			return err
		}
		cloudPalette = name
	}
	if !cmd.Flags().Changed("color-mode") && fc.Render.ColorMode == nil {
		mode, err := store.Load(ctx, st, store.KeyColorMode, cloudColorMode)
		if err != nil {
			return err
		}
		cloudColorMode = mode
	}
	rotationSet := fc.Rotation.Probability != nil || fc.Rotation.MinDeg != nil ||
		fc.Rotation.MaxDeg != nil || fc.Rotation.Steps != nil
	for _, name := range []string{"rotate-prob", "rotate-min", "rotate-max", "rotate-steps"} {
		rotationSet = rotationSet || cmd.Flags().Changed(name)
	}
	if !rotationSet {
		var rs model.RotationSettings
		if err := st.Get(ctx, store.KeyRotation, &rs); err == nil {
			rotateProb = rs.Probability
			rotateMin = rs.Min * 180 / math.Pi
			rotateMax = rs.Max * 180 / math.Pi
			rotateSteps = rs.Steps
		}
	}
	return nil
}

// cloud is everything a command needs to run and draw the pipeline.
type cloud struct {
	pipe    *pipeline.Pipeline
	draw    render.Options
	palette string
	mode    palette.Mode
	logger  zerolog.Logger
}

func buildCloud(ctx context.Context, st *store.Store, logger zerolog.Logger) (*cloud, error) {
	tok, err := tokenizerFor(cloudTokenizer)
	if err != nil {
		return nil, err
	}
	metrics, err := loadMetrics()
	if err != nil {
		return nil, err
	}

	width, height := cloudWidth, cloudHeight
	var bgImage image.Image
	if cloudBackgroundImage != "" {
		bgImage, err = mask.LoadImage(cloudBackgroundImage)
		if err != nil {
			return nil, fmt.Errorf("failed to load background image: %w", err)
		}
	}
	var maskImage image.Image
	if maskPath != "" {
		maskImage, err = mask.LoadImage(maskPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load mask: %w", err)
		}
	}
	if cloudKeepAspect {
		ref := maskImage
		if ref == nil {
			ref = bgImage
		}
		if ref != nil {
			b := ref.Bounds()
			width, height = config.ResizeKeepingAspect(b.Dx(), b.Dy(), width, 0)
			logger.Debug().
				Int("width", width).
				Int("height", height).
				Str("aspect", config.AspectRatio(width, height)).
				Msg("canvas sized from image")
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("--width and --height must be > 0")
	}

	var bitmap *mask.Bitmap
	if maskImage != nil {
		opts, err := maskOptions()
		if err != nil {
			return nil, err
		}
		bitmap, err = mask.FromImage(maskImage, width, height, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build mask: %w", err)
		}
		coverage := bitmap.Coverage()
		logger.Debug().Float64("coverage", coverage).Msg("mask loaded")
		if coverage == 0 {
			logErrln("mask blocks the whole canvas; no words will be placed")
		}
	}

	colors, err := paletteColors(ctx, st, cloudPalette, cloudResolution)
	if err != nil {
		return nil, err
	}
	mode, err := palette.ParseMode(cloudColorMode)
	if err != nil {
		return nil, err
	}
	bg, err := palette.ParseColor(cloudBackground)
	if err != nil {
		return nil, fmt.Errorf("invalid --background: %w", err)
	}

	filters, err := buildFilters(ctx, st)
	if err != nil {
		return nil, err
	}

	cfg := pipeline.Config{
		Tokenizer:   tok,
		UseBaseForm: cloudBaseForm,
		Size:        transform.SizeMap{A: sizeA, B: sizeB, C: sizeC, Min: sizeMin, Max: sizeMax},
		Layout: layout.Options{
			Width:    width,
			Height:   height,
			GridSize: cloudGrid,
			MinSize:  cloudMinSize,
			Rotation: rotationSettings(),
			Seed:     cloudSeed,
			Mask:     bitmap,
			MaxSteps: cloudMaxSteps,
			Colors:   palette.NewPolicy(mode, colors, cloudSeed),
			Metrics:  metrics,
		},
	}
	logger.Debug().
		Int("width", width).
		Int("height", height).
		Str("palette", cloudPalette).
		Str("mode", string(mode)).
		Bool("mask", bitmap != nil).
		Msg("cloud configured")

	return &cloud{
		pipe: pipeline.New(cfg, filters, logger),
		draw: render.Options{
			Width:           width,
			Height:          height,
			Background:      bg,
			BackgroundImage: bgImage,
			Metrics:         metrics,
		},
		palette: cloudPalette,
		mode:    mode,
		logger:  logger,
	}, nil
}

func tokenizerFor(name string) (tokenize.Tokenizer, error) {
	tok, ok := tokenize.ForName(name)
	if !ok {
		return nil, fmt.Errorf("unknown tokenizer %q (want whitespace or lexicon)", name)
	}
	return tok, nil
}

func loadMetrics() (textmetrics.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cloudMetrics)) {
	case "box":
		return textmetrics.Box{}, nil
	case "", "font":
		if cloudFont == "" {
			f, err := textmetrics.DefaultFont()
			if err != nil {
				return nil, fmt.Errorf("failed to load default font: %w", err)
			}
			return f, nil
		}
		f, err := textmetrics.LoadFont(cloudFont)
		if err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown metrics %q (want font or box)", cloudMetrics)
	}
}

func maskOptions() (mask.Options, error) {
	opts := mask.Options{Threshold: maskThreshold, Invert: maskInvert}
	if maskMin == nil && maskMax == nil {
		return opts, nil
	}
	if len(maskMin) != 3 || len(maskMax) != 3 {
		return opts, fmt.Errorf("--mask-min and --mask-max need three components each")
	}
	space, err := mask.ParseSpace(maskSpace)
	if err != nil {
		return opts, err
	}
	cr := &mask.ColorRange{Space: space}
	copy(cr.Min[:], maskMin)
	copy(cr.Max[:], maskMax)
	opts.Range = cr
	return opts, nil
}

func rotationSettings() model.RotationSettings {
	return rotation.Normalize(model.RotationSettings{
		Probability: rotateProb,
		Min:         rotateMin * math.Pi / 180,
		Max:         rotateMax * math.Pi / 180,
		Steps:       rotateSteps,
	})
}

// paletteColors resolves a palette and applies stored overrides.
func paletteColors(ctx context.Context, st *store.Store, name string, resolution int) ([]color.RGBA, error) {
	sw, err := loadSwatch(ctx, st, name, resolution)
	if err != nil {
		return nil, err
	}
	return sw.Colors(), nil
}

func loadSwatch(ctx context.Context, st *store.Store, name string, resolution int) (*palette.Swatch, error) {
	stored, err := st.PaletteOverrides(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load palette overrides: %w", err)
	}
	overrides := make(map[int]color.RGBA, len(stored))
	for idx, raw := range stored {
		c, err := palette.ParseColor(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid stored color %q for %s[%d]: %w", raw, name, idx, err)
		}
		overrides[idx] = c
	}
	sw, err := palette.NewSwatch(name, resolution, overrides)
	if err != nil {
		return nil, err
	}
	return sw, nil
}

// buildFilters restores persisted filter state, then applies flags.
func buildFilters(ctx context.Context, st *store.Store) (*filter.Set, error) {
	set := filter.DefaultSet()
	if err := store.LoadFilters(ctx, st, set); err != nil {
		return nil, fmt.Errorf("failed to load filter settings: %w", err)
	}
	if filtersEnabled != nil {
		kinds := make([]filter.Kind, 0, len(filtersEnabled))
		for _, name := range filtersEnabled {
			k, err := filter.ParseKind(name)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
		set.EnableOnly(kinds)
	}

	deny := set.Deny()
	if denyText != "" {
		deny.SetDenyText(denyText)
	}
	fileWords, err := wordlist.LoadDenyList(denyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load deny list: %w", err)
	}
	if len(fileWords) > 0 {
		deny.SetDenyWords(append(strings.Fields(deny.Text()), fileWords...))
	}

	if lengthRange != "" {
		r, err := parseRange(lengthRange)
		if err != nil {
			return nil, fmt.Errorf("invalid --length: %w", err)
		}
		set.Length().SetRange(r)
	}
	if freqRange != "" {
		r, err := parseRange(freqRange)
		if err != nil {
			return nil, fmt.Errorf("invalid --freq: %w", err)
		}
		set.Freq().SetRange(r)
	}
	return set, nil
}

// parseRange reads "MIN:MAX"; either side may be omitted for an open end.
func parseRange(s string) (model.Range, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return model.Range{}, fmt.Errorf("expected MIN:MAX, got %q", s)
	}
	r := model.Range{Min: 1, Max: math.MaxInt32}
	if lo = strings.TrimSpace(lo); lo != "" {
		v, err := strconv.Atoi(lo)
		if err != nil {
			return model.Range{}, fmt.Errorf("invalid minimum %q", lo)
		}
		r.Min = v
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v, err := strconv.Atoi(hi)
		if err != nil {
			return model.Range{}, fmt.Errorf("invalid maximum %q", hi)
		}
		r.Max = v
	}
	if r.Min > r.Max {
		return model.Range{}, fmt.Errorf("minimum %d exceeds maximum %d", r.Min, r.Max)
	}
	return r, nil
}

// saveSettings remembers the palette, color mode and rotation of a
// successful render.
func saveSettings(ctx context.Context, st *store.Store, c *cloud) error {
	if err := st.Set(ctx, store.KeyPalette, c.palette); err != nil {
		return err
	}
	if err := st.Set(ctx, store.KeyColorMode, string(c.mode)); err != nil {
		return err
	}
	return st.Set(ctx, store.KeyRotation, c.pipe.Config().Layout.Rotation)
}
