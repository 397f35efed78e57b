// Package rotation picks word angles from a rotation policy.
package rotation

import (
	"math"
	"math/rand"

	"github.com/verte-zerg/tagcloud/internal/model"
)

// Default rotates one word in ten by up to a quarter turn either way.
func Default() model.RotationSettings {
	return model.RotationSettings{Probability: 0.1, Min: -math.Pi / 2, Max: math.Pi / 2, Steps: 0}
}

// Normalize clamps probability to [0, 1], angles to [-pi, pi] and orders them.
func Normalize(s model.RotationSettings) model.RotationSettings {
	s.Probability = math.Min(math.Max(s.Probability, 0), 1)
	s.Min = math.Min(math.Max(s.Min, -math.Pi), math.Pi)
	s.Max = math.Min(math.Max(s.Max, -math.Pi), math.Pi)
	if s.Min > s.Max {
		s.Min, s.Max = s.Max, s.Min
	}
	if s.Steps < 0 {
		s.Steps = 0
	}
	return s
}

// Angles lists the discrete angles for s, or nil when rotation is continuous.
// One step means only Min; n steps span Min..Max inclusive.
func Angles(s model.RotationSettings) []float64 {
	s = Normalize(s)
	if s.Steps == 0 {
		return nil
	}
	if s.Steps == 1 || s.Min == s.Max {
		return []float64{s.Min}
	}
	out := make([]float64, s.Steps)
	step := (s.Max - s.Min) / float64(s.Steps-1)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out
}

// Chooser draws rotation angles from a seeded source.
type Chooser struct {
	rnd      *rand.Rand
	settings model.RotationSettings
	angles   []float64
}

// New returns a Chooser with a fixed seed.
func New(s model.RotationSettings, seed int64) *Chooser {
	s = Normalize(s)
	return &Chooser{rnd: rand.New(rand.NewSource(seed)), settings: s, angles: Angles(s)}
}

// Next returns 0 unless the probability roll succeeds, then an angle
// from the discrete set or uniformly from [Min, Max].
func (c *Chooser) Next() float64 {
	if c.settings.Probability <= 0 {
		return 0
	}
	if c.rnd.Float64() >= c.settings.Probability {
		return 0
	}
	if len(c.angles) > 0 {
		return c.angles[c.rnd.Intn(len(c.angles))]
	}
	return c.settings.Min + c.rnd.Float64()*(c.settings.Max-c.settings.Min)
}

// Settings returns the normalized policy.
func (c *Chooser) Settings() model.RotationSettings {
	return c.settings
}
