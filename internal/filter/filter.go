// Package filter derives per-word allowed masks and combines them.
package filter

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/tagcloud/internal/model"
)

// Kind identifies a filter type.
type Kind string

const (
	KindClass  Kind = "class"
	KindLength Kind = "length"
	KindFreq   Kind = "freq"
	KindWords  Kind = "words"
)

// Kinds lists every filter kind in default evaluation order.
var Kinds = []Kind{KindClass, KindLength, KindFreq, KindWords}

// ParseKind resolves a filter kind name.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindClass, KindLength, KindFreq, KindWords:
		return k, nil
	case "deny":
		return KindWords, nil
	case "frequency":
		return KindFreq, nil
	default:
		return "", fmt.Errorf("unknown filter %q", name)
	}
}

// Filter produces an allowed mask aligned with the input word list.
type Filter interface {
	Kind() Kind
	Apply(ws []model.Word) []bool
}

// Resize pads mask with true or truncates it so it has length n.
func Resize(mask []bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = i >= len(mask) || mask[i]
	}
	return out
}

// Combine ANDs masks position-wise into a mask of length n.
func Combine(n int, masks ...[]bool) []bool {
	out := AllTrue(n)
	for _, m := range masks {
		m = Resize(m, n)
		for i := range out {
			out[i] = out[i] && m[i]
		}
	}
	return out
}

// AllTrue returns a mask of n true values.
func AllTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

// Surviving returns the words whose mask entry is true.
func Surviving(ws []model.Word, mask []bool) []model.Word {
	mask = Resize(mask, len(ws))
	out := make([]model.Word, 0, len(ws))
	for i, w := range ws {
		if mask[i] {
			out = append(out, w)
		}
	}
	return out
}
