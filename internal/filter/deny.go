package filter

import (
	"strings"

	"github.com/verte-zerg/tagcloud/internal/model"
)

// DenyFilter rejects words whose text is on a block list.
type DenyFilter struct {
	text string
	deny map[string]struct{}
}

// NewDenyFilter returns a deny filter with an empty block list.
func NewDenyFilter() *DenyFilter {
	return &DenyFilter{deny: map[string]struct{}{}}
}

// Kind implements Filter.
func (f *DenyFilter) Kind() Kind {
	return KindWords
}

// SetDenyText replaces the block list with the whitespace separated words of text.
func (f *DenyFilter) SetDenyText(text string) {
	f.text = text
	f.setWords(strings.Fields(text))
}

// SetDenyWords replaces the block list.
func (f *DenyFilter) SetDenyWords(ws []string) {
	f.text = strings.Join(ws, "\n")
	f.setWords(ws)
}

func (f *DenyFilter) setWords(ws []string) {
	f.deny = make(map[string]struct{}, len(ws))
	for _, w := range ws {
		if w == "" {
			continue
		}
		f.deny[w] = struct{}{}
	}
}

// Text returns the block list as last set.
func (f *DenyFilter) Text() string {
	return f.text
}

// Denied reports whether text is blocked.
func (f *DenyFilter) Denied(text string) bool {
	_, ok := f.deny[text]
	return ok
}

// Apply implements Filter.
func (f *DenyFilter) Apply(ws []model.Word) []bool {
	out := make([]bool, len(ws))
	for i, w := range ws {
		out[i] = !f.Denied(w.Text)
	}
	return out
}
