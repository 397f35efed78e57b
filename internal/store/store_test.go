package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "tagcloud.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	var r model.Range
	if err := s.Get(ctx, KeyFreqRange, &r); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, KeyFreqRange, model.Range{Min: 2, Max: 5}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, KeyFreqRange, model.Range{Min: 3, Max: 4}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.Get(ctx, KeyFreqRange, &r); err != nil || r != (model.Range{Min: 3, Max: 4}) {
		t.Fatalf("unexpected value %+v (%v)", r, err)
	}
	if err := s.Delete(ctx, KeyFreqRange); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := Load(ctx, s, KeyFreqRange, model.Range{Min: 1, Max: 1})
	if err != nil || got != (model.Range{Min: 1, Max: 1}) {
		t.Fatalf("expected default after delete, got %+v (%v)", got, err)
	}
}

func TestPaletteOverridesAndReset(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SetPaletteColor(ctx, "spring", 2, "#ff0000"); err != nil {
		t.Fatalf("set color: %v", err)
	}
	if err := s.SetPaletteColor(ctx, "spring", 2, "#00ff00"); err != nil {
		t.Fatalf("overwrite color: %v", err)
	}
	if err := s.SetPaletteColor(ctx, "tab10", 0, "#000000"); err != nil {
		t.Fatalf("set other palette: %v", err)
	}
	got, err := s.PaletteOverrides(ctx, "spring")
	if err != nil {
		t.Fatalf("overrides: %v", err)
	}
	if len(got) != 1 || got[2] != "#00ff00" {
		t.Fatalf("unexpected overrides %v", got)
	}
	if err := s.ResetPalette(ctx, "spring"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got, _ := s.PaletteOverrides(ctx, "spring"); len(got) != 0 {
		t.Fatalf("expected no overrides after reset, got %v", got)
	}
	if got, _ := s.PaletteOverrides(ctx, "tab10"); len(got) != 1 {
		t.Fatalf("expected other palette untouched, got %v", got)
	}
}

func TestRenderHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := s.InsertRender(ctx, model.RenderRecord{
		StartedAt: base, EndedAt: base.Add(time.Second), Words: 10, Placed: 8,
		Width: 800, Height: 600, Palette: "spring", OutputPath: "a.png",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := s.InsertRender(ctx, model.RenderRecord{
		StartedAt: base.Add(time.Minute), EndedAt: base.Add(2 * time.Minute), Words: 3, Placed: 3,
		Width: 100, Height: 100, Palette: "tab10", OutputPath: "b.png",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first == "" || first == second {
		t.Fatalf("expected distinct generated ids, got %q and %q", first, second)
	}

	list, err := s.ListRenders(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second {
		t.Fatalf("expected newest first, got %+v", list)
	}
	rec, err := s.FindRender(ctx, first)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rec.Placed != 8 || !rec.EndedAt.Equal(base.Add(time.Second)) {
		t.Fatalf("unexpected record %+v", rec)
	}
	if short, err := s.FindRender(ctx, first[:8]); err != nil || short.ID != first {
		t.Fatalf("expected prefix lookup to find %q, got %+v (%v)", first, short, err)
	}
	if _, err := s.FindRender(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if limited, _ := s.ListRenders(ctx, 1); len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestFilterStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	set := filter.DefaultSet()
	set.Length().SetRange(model.Range{Min: 3, Max: 7})
	set.Deny().SetDenyText("the a")
	set.Class().SetAllowed("VERB", false)
	set.Enable(filter.KindFreq, false)
	if err := SaveFilters(ctx, s, set); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := filter.DefaultSet()
	if err := LoadFilters(ctx, s, loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Length().Range() != (model.Range{Min: 3, Max: 7}) {
		t.Fatalf("unexpected length range %+v", loaded.Length().Range())
	}
	if !loaded.Deny().Denied("the") || loaded.Deny().Denied("cat") {
		t.Fatalf("unexpected deny list %q", loaded.Deny().Text())
	}
	if loaded.Class().Allowed("VERB") || !loaded.Class().Allowed("NOUN") {
		t.Fatalf("unexpected class choices %v", loaded.Class().Choices())
	}
	if loaded.Enabled(filter.KindFreq) || !loaded.Enabled(filter.KindLength) {
		t.Fatalf("unexpected enabled filters")
	}
}

func TestLoadFiltersWithEmptyStore(t *testing.T) {
	s := openTestStore(t)
	set := filter.DefaultSet()
	if err := LoadFilters(context.Background(), s, set); err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, k := range filter.Kinds {
		if !set.Enabled(k) {
			t.Fatalf("expected %s enabled by default", k)
		}
	}
}

func TestSavedFullSpanFollowsNewText(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	word := func(text string) model.Word { return model.Word{Text: text, Tag: "*"} }

	first := filter.DefaultSet()
	first.Apply([]model.Word{word("a"), word("a"), word("b")})
	if got := first.Freq().Range(); got != (model.Range{Min: 1, Max: 2}) {
		t.Fatalf("unexpected first range %+v", got)
	}
	if err := SaveFilters(ctx, s, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	next := filter.DefaultSet()
	if err := LoadFilters(ctx, s, next); err != nil {
		t.Fatalf("load: %v", err)
	}
	ws := []model.Word{word("cloud"), word("cloud"), word("cloud"), word("cloud"), word("cloud"), word("rare")}
	mask := next.Apply(ws)
	for i, ok := range mask {
		if !ok {
			t.Fatalf("word %d (%s) filtered out, mask %v", i, ws[i].Text, mask)
		}
	}
	if got := next.Freq().Range(); got != (model.Range{Min: 1, Max: 5}) {
		t.Fatalf("expected full span of new bounds, got %+v", got)
	}
}

func TestSavedNarrowRangeShiftsWithBounds(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := filter.DefaultSet()
	first.Apply([]model.Word{{Text: "a", Tag: "*"}, {Text: "abcde", Tag: "*"}})
	first.Length().SetRange(model.Range{Min: 2, Max: 4})
	first.Apply([]model.Word{{Text: "a", Tag: "*"}, {Text: "abcde", Tag: "*"}})
	if err := SaveFilters(ctx, s, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	next := filter.DefaultSet()
	if err := LoadFilters(ctx, s, next); err != nil {
		t.Fatalf("load: %v", err)
	}
	next.Apply([]model.Word{{Text: "a", Tag: "*"}, {Text: "abcdefgh", Tag: "*"}})
	if got := next.Length().Range(); got != (model.Range{Min: 2, Max: 7}) {
		t.Fatalf("expected range shifted with the upper bound, got %+v", got)
	}
}
