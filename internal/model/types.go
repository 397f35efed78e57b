// Package model defines shared data structures.
package model

import (
	"image/color"
	"time"
)

// WildcardTag is the part-of-speech tag used when no tokenizer is available.
const WildcardTag = "*"

// Word is a token text with its part-of-speech tag.
// Two words are equal when both Text and Tag match.
type Word struct {
	Text string
	Tag  string
}

// ScoredWord is a Word with a score under some metric.
type ScoredWord struct {
	Word
	Score int
}

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Ordered returns the range with Min and Max swapped if inverted.
func (r Range) Ordered() Range {
	if r.Min > r.Max {
		return Range{Min: r.Max, Max: r.Min}
	}
	return r
}

// Datum is a word and its weight fed to the layout engine.
type Datum struct {
	Text   string
	Weight float64
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Placement is the layout result for a single datum.
type Placement struct {
	Text     string
	Weight   float64
	FontSize float64
	// Rotation in radians, positive is clockwise on screen.
	Rotation float64
	// X, Y is the center of the rotated word in canvas pixels.
	X, Y   float64
	Bounds Rect
	Color  color.RGBA
	Placed bool
}

// RotationSettings controls how words are rotated.
type RotationSettings struct {
	// Probability that a word is rotated at all (0-1).
	Probability float64
	// Min and Max angle in radians.
	Min float64
	Max float64
	// Steps is the number of evenly spaced angles; 0 means continuous.
	Steps int
}

// RenderRecord summarizes a completed render for history.
type RenderRecord struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Words      int
	Placed     int
	Width      int
	Height     int
	Palette    string
	OutputPath string
}
