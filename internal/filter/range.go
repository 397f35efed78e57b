package filter

import (
	"sort"

	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/words"
)

// ScoreGroup lists the distinct words sharing a score.
type ScoreGroup struct {
	Score int
	Words []model.Word
}

// RangeFilter allows words whose score lies within a user range.
type RangeFilter struct {
	kind   Kind
	metric words.Metric

	bounds    model.Range
	rng       model.Range
	hasBounds bool
	hasRange  bool

	first  map[model.Word]int
	groups []ScoreGroup
}

// NewLengthFilter filters by code point length.
func NewLengthFilter() *RangeFilter {
	return &RangeFilter{kind: KindLength, metric: words.MetricLength}
}

// NewFreqFilter filters by occurrence count.
func NewFreqFilter() *RangeFilter {
	return &RangeFilter{kind: KindFreq, metric: words.MetricFrequency}
}

// Kind implements Filter.
func (f *RangeFilter) Kind() Kind {
	return f.kind
}

// Metric returns the scoring metric.
func (f *RangeFilter) Metric() words.Metric {
	return f.metric
}

// Update rescores ws and reconciles the range with the new bounds.
func (f *RangeFilter) Update(ws []model.Word) {
	scored := words.Score(ws, f.metric)
	newBounds := words.Bounds(scored)

	f.first = make(map[model.Word]int, len(scored))
	byScore := map[int][]model.Word{}
	for _, s := range scored {
		if _, ok := f.first[s.Word]; ok {
			continue
		}
		f.first[s.Word] = s.Score
		byScore[s.Score] = append(byScore[s.Score], s.Word)
	}
	f.groups = f.groups[:0]
	for score, group := range byScore {
		f.groups = append(f.groups, ScoreGroup{Score: score, Words: group})
	}
	sort.Slice(f.groups, func(i, j int) bool {
		return f.groups[i].Score < f.groups[j].Score
	})

	switch {
	case !f.hasRange:
		f.rng = newBounds
		f.hasRange = true
	case f.hasBounds && newBounds != f.bounds:
		f.rng = Reconcile(f.rng, f.bounds, newBounds)
	case !f.hasBounds:
		f.rng = Reconcile(f.rng, newBounds, newBounds)
	}
	f.bounds = newBounds
	f.hasBounds = true
}

// Apply implements Filter.
func (f *RangeFilter) Apply(ws []model.Word) []bool {
	f.Update(ws)
	out := make([]bool, len(ws))
	for i, w := range ws {
		score, ok := f.first[w]
		out[i] = ok && f.rng.Contains(score)
	}
	return out
}

// SetRange stores r as the active range without validating it. The next
// update clamps r into the current bounds instead of shifting it.
func (f *RangeFilter) SetRange(r model.Range) {
	f.rng = r
	f.hasRange = true
	f.hasBounds = false
}

// RangeState is a range together with the score bounds it was chosen
// against. Bounds is nil when the filter has not seen any words yet.
type RangeState struct {
	Range  model.Range  `json:"range"`
	Bounds *model.Range `json:"bounds,omitempty"`
}

// State returns the active range and, once known, its bounds.
func (f *RangeFilter) State() RangeState {
	st := RangeState{Range: f.rng}
	if f.hasBounds {
		b := f.bounds
		st.Bounds = &b
	}
	return st
}

// Restore reinstates a saved state. When the next input has different
// bounds the range moves with them, so a full span stays a full span.
func (f *RangeFilter) Restore(st RangeState) {
	if st.Bounds == nil {
		f.SetRange(st.Range)
		return
	}
	f.rng = st.Range
	f.bounds = *st.Bounds
	f.hasRange = true
	f.hasBounds = true
}

// Range returns the active range.
func (f *RangeFilter) Range() model.Range {
	return f.rng
}

// Bounds returns the score bounds from the last update.
func (f *RangeFilter) Bounds() model.Range {
	if !f.hasBounds {
		return model.Range{Min: 1, Max: 1}
	}
	return f.bounds
}

// ScoreCounts returns the distinct words at each score, ascending.
func (f *RangeFilter) ScoreCounts() []ScoreGroup {
	out := make([]ScoreGroup, len(f.groups))
	copy(out, f.groups)
	return out
}

// Reconcile moves r by the amount each bound moved, clamps it into
// newBounds and restores Min <= Max. A range that ends up entirely
// outside newBounds resets to newBounds.
func Reconcile(r, oldBounds, newBounds model.Range) model.Range {
	shifted := model.Range{
		Min: r.Min + newBounds.Min - oldBounds.Min,
		Max: r.Max + newBounds.Max - oldBounds.Max,
	}
	lo, hi := shifted.Ordered().Min, shifted.Ordered().Max
	if hi < newBounds.Min || lo > newBounds.Max {
		return newBounds
	}
	return clampRange(shifted, newBounds)
}

func clampRange(r, bounds model.Range) model.Range {
	return model.Range{
		Min: clampInt(r.Min, bounds.Min, bounds.Max),
		Max: clampInt(r.Max, bounds.Min, bounds.Max),
	}.Ordered()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
