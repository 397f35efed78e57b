package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/layout"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/pipeline"
	"github.com/verte-zerg/tagcloud/internal/store"
	"github.com/verte-zerg/tagcloud/internal/textmetrics"
	"github.com/verte-zerg/tagcloud/internal/tokenize"
	"github.com/verte-zerg/tagcloud/internal/transform"
)

func newTestPipeline(text string) *pipeline.Pipeline {
	p := pipeline.New(pipeline.Config{
		Size: transform.SizeMap{B: 10, Min: 1, Max: 100},
		Layout: layout.Options{
			Width:   200,
			Height:  120,
			Metrics: textmetrics.Box{},
		},
	}, nil, zerolog.Nop())
	p.SetText(text)
	return p
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func hasData(snap pipeline.Snapshot, text string) bool {
	for _, d := range snap.Data {
		if d.Text == text {
			return true
		}
	}
	return false
}

func TestFreezeKeepsLayoutUntilUnfrozen(t *testing.T) {
	m := NewModel(newTestPipeline("the cat the hat"), nil, nil)
	send(m, "f")
	if !m.pipe.Frozen() || m.status != "layout frozen" {
		t.Fatalf("expected frozen pipeline, status %q", m.status)
	}

	m.pipe.Filters().Deny().SetDenyText("the")
	m.applyChanges()
	if !hasData(m.snap, "the") {
		t.Fatalf("expected frozen layout to keep denied word")
	}
	if len(m.preview.Surviving) != 2 {
		t.Fatalf("expected filter preview to update while frozen, got %d", len(m.preview.Surviving))
	}

	send(m, "f")
	if m.pipe.Frozen() || hasData(m.snap, "the") {
		t.Fatalf("expected live layout without denied word")
	}
}

func TestDenyEditAppliesOnEnter(t *testing.T) {
	m := NewModel(newTestPipeline("the cat the hat"), nil, nil)
	m.activeTab = tabDeny
	send(m, "enter")
	if !m.denyMode {
		t.Fatalf("expected deny input to open")
	}
	send(m, "t", "h", "e", "enter")
	if m.denyMode {
		t.Fatalf("expected deny input to close")
	}
	if got := m.pipe.Filters().Deny().Text(); got != "the" {
		t.Fatalf("unexpected deny text %q", got)
	}
	if hasData(m.snap, "the") {
		t.Fatalf("expected denied word removed from layout data")
	}

	send(m, "enter", "x", "esc")
	if got := m.pipe.Filters().Deny().Text(); got != "the" {
		t.Fatalf("expected escape to discard edit, got %q", got)
	}
}

func TestWordCursorTogglesDeny(t *testing.T) {
	m := NewModel(newTestPipeline("a b c"), nil, nil)
	m.activeTab = tabWords
	send(m, "n", "x")
	if !m.pipe.Filters().Deny().Denied("b") {
		t.Fatalf("expected b denied")
	}
	send(m, "x")
	if m.pipe.Filters().Deny().Denied("b") {
		t.Fatalf("expected b allowed again")
	}
	send(m, "n", "n", "n")
	if m.wordCursor != 2 {
		t.Fatalf("expected cursor clamped to last word, got %d", m.wordCursor)
	}
}

func TestClassToggleAndFilterSwitch(t *testing.T) {
	p := pipeline.New(pipeline.Config{
		Tokenizer: fixedTokens{
			{Surface: "cat", Base: "cat", POS: "NOUN"},
			{Surface: "runs", Base: "run", POS: "VERB"},
		},
		Size:   transform.SizeMap{B: 10, Min: 1, Max: 100},
		Layout: layout.Options{Width: 200, Height: 120, Metrics: textmetrics.Box{}},
	}, nil, zerolog.Nop())
	p.SetText("ignored")
	m := NewModel(p, nil, nil)

	send(m, " ")
	if m.pipe.Filters().Class().Allowed("NOUN") {
		t.Fatalf("expected first class disallowed")
	}
	if len(m.snap.Data) != 1 || m.snap.Data[0].Text != "runs" {
		t.Fatalf("unexpected data %+v", m.snap.Data)
	}

	send(m, "e")
	if m.pipe.Filters().Enabled(filter.KindClass) || len(m.snap.Data) != 2 {
		t.Fatalf("expected class filter off and both words back")
	}
	if !strings.Contains(m.renderSummary(), "Off: class") {
		t.Fatalf("expected summary to list disabled filter: %s", m.renderSummary())
	}
}

func TestStepRange(t *testing.T) {
	bounds := model.Range{Min: 1, Max: 5}
	cases := []struct {
		r          model.Range
		dMin, dMax int
		want       model.Range
	}{
		{model.Range{Min: 1, Max: 5}, -1, 0, model.Range{Min: 1, Max: 5}},
		{model.Range{Min: 1, Max: 5}, 1, 0, model.Range{Min: 2, Max: 5}},
		{model.Range{Min: 3, Max: 3}, 1, 0, model.Range{Min: 3, Max: 3}},
		{model.Range{Min: 3, Max: 3}, 0, -1, model.Range{Min: 3, Max: 3}},
		{model.Range{Min: 2, Max: 4}, 0, 1, model.Range{Min: 2, Max: 5}},
	}
	for _, tc := range cases {
		if got := stepRange(tc.r, bounds, tc.dMin, tc.dMax); got != tc.want {
			t.Fatalf("stepRange(%+v, %d, %d) = %+v, want %+v", tc.r, tc.dMin, tc.dMax, got, tc.want)
		}
	}
}

func TestRangeKeysNarrowLength(t *testing.T) {
	m := NewModel(newTestPipeline("a bb ccc"), nil, nil)
	m.activeTab = tabRanges
	send(m, "[", "]", "}")
	if got := m.pipe.Filters().Length().Range(); got != (model.Range{Min: 2, Max: 3}) {
		t.Fatalf("unexpected length range %+v", got)
	}
	if hasData(m.snap, "a") || !hasData(m.snap, "ccc") {
		t.Fatalf("unexpected data %+v", m.snap.Data)
	}
	send(m, "r")
	if got := m.pipe.Filters().Length().Range(); got != (model.Range{Min: 1, Max: 3}) {
		t.Fatalf("expected reset to bounds, got %+v", got)
	}
}

func TestSaveKey(t *testing.T) {
	var saved pipeline.Snapshot
	m := NewModel(newTestPipeline("a b"), nil, func(snap pipeline.Snapshot) (string, error) {
		saved = snap
		return "/tmp/cloud.png", nil
	})
	send(m, "ctrl+s")
	if m.status != "saved /tmp/cloud.png" || len(saved.Data) != 2 {
		t.Fatalf("unexpected save status %q", m.status)
	}

	m.save = func(pipeline.Snapshot) (string, error) { return "", errors.New("disk full") }
	send(m, "ctrl+s")
	if !strings.Contains(m.errMsg, "disk full") {
		t.Fatalf("expected save error, got %q", m.errMsg)
	}
}

func TestEditsPersistToStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "tagcloud.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("close store: %v", cerr)
		}
	}()

	m := NewModel(newTestPipeline("the cat"), st, nil)
	m.activeTab = tabWords
	send(m, "x")

	got, err := store.Load(context.Background(), st, store.KeyDenyText, "")
	if err != nil || got != "the" {
		t.Fatalf("expected persisted deny text, got %q (%v)", got, err)
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := NewModel(newTestPipeline("one two three two"), nil, nil)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	for tab := range m.tabs {
		m.activeTab = tab
		if lines := strings.Split(m.View(), "\n"); len(lines) != 20 {
			t.Fatalf("tab %d: expected 20 lines, got %d", tab, len(lines))
		}
	}
}

type fixedTokens []tokenize.Token

func (f fixedTokens) Tokenize(string) []tokenize.Token {
	return f
}
