package filter

import "github.com/verte-zerg/tagcloud/internal/model"

// ClassCount describes a tag with its current distinct word count.
type ClassCount struct {
	Tag     string
	Words   int
	Allowed bool
}

// ClassFilter allows words whose part-of-speech tag is enabled.
// Tags default to allowed; explicit choices survive a tag disappearing
// from the input and coming back.
type ClassFilter struct {
	seen    []string
	counts  map[string]int
	choices map[string]bool
}

// NewClassFilter returns a class filter with every tag allowed.
func NewClassFilter() *ClassFilter {
	return &ClassFilter{
		counts:  map[string]int{},
		choices: map[string]bool{},
	}
}

// Kind implements Filter.
func (f *ClassFilter) Kind() Kind {
	return KindClass
}

// Update regroups ws by tag and records newly seen tags.
func (f *ClassFilter) Update(ws []model.Word) {
	for tag := range f.counts {
		f.counts[tag] = 0
	}
	distinct := map[model.Word]struct{}{}
	for _, w := range ws {
		if _, ok := f.counts[w.Tag]; !ok {
			f.seen = append(f.seen, w.Tag)
			f.counts[w.Tag] = 0
		}
		if _, ok := distinct[w]; ok {
			continue
		}
		distinct[w] = struct{}{}
		f.counts[w.Tag]++
	}
}

// Apply implements Filter.
func (f *ClassFilter) Apply(ws []model.Word) []bool {
	f.Update(ws)
	out := make([]bool, len(ws))
	for i, w := range ws {
		out[i] = f.Allowed(w.Tag)
	}
	return out
}

// Allowed reports whether words tagged tag pass the filter.
func (f *ClassFilter) Allowed(tag string) bool {
	allowed, ok := f.choices[tag]
	return !ok || allowed
}

// SetAllowed records an explicit choice for tag.
func (f *ClassFilter) SetAllowed(tag string, allowed bool) {
	f.choices[tag] = allowed
	if _, ok := f.counts[tag]; !ok {
		f.seen = append(f.seen, tag)
		f.counts[tag] = 0
	}
}

// Toggle flips the choice for tag and returns the new state.
func (f *ClassFilter) Toggle(tag string) bool {
	next := !f.Allowed(tag)
	f.SetAllowed(tag, next)
	return next
}

// Choices returns a copy of the explicit choices.
func (f *ClassFilter) Choices() map[string]bool {
	out := make(map[string]bool, len(f.choices))
	for k, v := range f.choices {
		out[k] = v
	}
	return out
}

// Classes lists every tag seen so far in first-seen order.
func (f *ClassFilter) Classes() []ClassCount {
	out := make([]ClassCount, 0, len(f.seen))
	for _, tag := range f.seen {
		out = append(out, ClassCount{Tag: tag, Words: f.counts[tag], Allowed: f.Allowed(tag)})
	}
	return out
}
