// Package transform maps word counts to layout weights.
package transform

import "math"

// SizeMap is a clamped quadratic: clamp(A*c*c + B*c + C, Min, Max).
type SizeMap struct {
	A   float64
	B   float64
	C   float64
	Min float64
	Max float64
}

// Default returns the identity map clamped to [1, 100].
func Default() SizeMap {
	return SizeMap{A: 0, B: 1, C: 0, Min: 1, Max: 100}
}

// Normalize orders the limits.
func (m SizeMap) Normalize() SizeMap {
	if m.Min > m.Max {
		m.Min, m.Max = m.Max, m.Min
	}
	return m
}

// Apply maps a count to a weight.
func (m SizeMap) Apply(count float64) float64 {
	m = m.Normalize()
	v := m.A*count*count + m.B*count + m.C
	if math.IsNaN(v) {
		return m.Min
	}
	return math.Min(math.Max(v, m.Min), m.Max)
}

// ApplyAll maps every count in order.
func (m SizeMap) ApplyAll(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = m.Apply(float64(c))
	}
	return out
}
