package filter

import "github.com/verte-zerg/tagcloud/internal/model"

type slot struct {
	filter  Filter
	enabled bool
}

// Set runs independently enabled filters over the same word list and
// ANDs their masks.
type Set struct {
	slots []slot
}

// NewSet returns a set of enabled filters in the given order.
func NewSet(filters ...Filter) *Set {
	s := &Set{}
	for _, f := range filters {
		s.slots = append(s.slots, slot{filter: f, enabled: true})
	}
	return s
}

// DefaultSet returns class, length, freq and deny filters, all enabled.
func DefaultSet() *Set {
	return NewSet(NewClassFilter(), NewLengthFilter(), NewFreqFilter(), NewDenyFilter())
}

// Enable turns the filter of the given kind on or off.
// It reports false when the set has no such filter.
func (s *Set) Enable(kind Kind, enabled bool) bool {
	for i := range s.slots {
		if s.slots[i].filter.Kind() == kind {
			s.slots[i].enabled = enabled
			return true
		}
	}
	return false
}

// EnableOnly enables exactly the given kinds.
func (s *Set) EnableOnly(kinds []Kind) {
	want := map[Kind]bool{}
	for _, k := range kinds {
		want[k] = true
	}
	for i := range s.slots {
		s.slots[i].enabled = want[s.slots[i].filter.Kind()]
	}
}

// Enabled reports whether the filter of the given kind is on.
func (s *Set) Enabled(kind Kind) bool {
	for _, sl := range s.slots {
		if sl.filter.Kind() == kind {
			return sl.enabled
		}
	}
	return false
}

// Get returns the filter of the given kind.
func (s *Set) Get(kind Kind) (Filter, bool) {
	for _, sl := range s.slots {
		if sl.filter.Kind() == kind {
			return sl.filter, true
		}
	}
	return nil, false
}

// Class returns the class filter, or nil.
func (s *Set) Class() *ClassFilter {
	f, _ := s.Get(KindClass)
	c, _ := f.(*ClassFilter)
	return c
}

// Length returns the length range filter, or nil.
func (s *Set) Length() *RangeFilter {
	f, _ := s.Get(KindLength)
	r, _ := f.(*RangeFilter)
	return r
}

// Freq returns the frequency range filter, or nil.
func (s *Set) Freq() *RangeFilter {
	f, _ := s.Get(KindFreq)
	r, _ := f.(*RangeFilter)
	return r
}

// Deny returns the deny filter, or nil.
func (s *Set) Deny() *DenyFilter {
	f, _ := s.Get(KindWords)
	d, _ := f.(*DenyFilter)
	return d
}

// Apply runs every filter over ws and returns the combined mask.
// Disabled filters still update their state but contribute all-true.
func (s *Set) Apply(ws []model.Word) []bool {
	active := make([][]bool, 0, len(s.slots))
	for _, sl := range s.slots {
		mask := sl.filter.Apply(ws)
		if sl.enabled {
			active = append(active, mask)
		}
	}
	return Combine(len(ws), active...)
}
