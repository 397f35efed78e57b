// Package words provides word frequency counting and scoring.
package words

import "github.com/verte-zerg/tagcloud/internal/model"

// Entry is a distinct word with its occurrence count.
type Entry struct {
	Word  model.Word
	Count int
}

// FrequencyTable maps each distinct word to its occurrence count.
// Entries keep the order in which words were first seen.
type FrequencyTable struct {
	index   map[model.Word]int
	entries []Entry
	total   int
}

// CalcFrequency counts occurrences of each distinct (text, tag) pair.
func CalcFrequency(ws []model.Word) *FrequencyTable {
	ft := &FrequencyTable{index: make(map[model.Word]int)}
	for _, w := range ws {
		ft.add(w)
	}
	return ft
}

func (ft *FrequencyTable) add(w model.Word) {
	ft.total++
	if i, ok := ft.index[w]; ok {
		ft.entries[i].Count++
		return
	}
	ft.index[w] = len(ft.entries)
	ft.entries = append(ft.entries, Entry{Word: w, Count: 1})
}

// Count returns the number of occurrences of w, or 0 when absent.
func (ft *FrequencyTable) Count(w model.Word) int {
	i, ok := ft.index[w]
	if !ok {
		return 0
	}
	return ft.entries[i].Count
}

// Len returns the number of distinct words.
func (ft *FrequencyTable) Len() int {
	return len(ft.entries)
}

// Total returns the sum of all counts.
func (ft *FrequencyTable) Total() int {
	return ft.total
}

// Entries returns a copy of the entries in first-seen order.
func (ft *FrequencyTable) Entries() []Entry {
	out := make([]Entry, len(ft.entries))
	copy(out, ft.entries)
	return out
}
