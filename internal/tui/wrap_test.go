package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tagcloud/internal/model"
)

func words(texts ...string) []model.Word {
	out := make([]model.Word, len(texts))
	for i, t := range texts {
		out[i] = model.Word{Text: t, Tag: model.WildcardTag}
	}
	return out
}

func TestBuildStyledWordsDeduplicates(t *testing.T) {
	cells := buildStyledWords(words("the", "cat", "the"), []bool{false, true, false}, -1)
	if len(cells) != 3 {
		t.Fatalf("expected word, space, word; got %d cells", len(cells))
	}
	if cells[0].s != filteredStyle.Render("the") {
		t.Fatalf("expected filtered style for denied word")
	}
	if !cells[1].isSpace {
		t.Fatalf("expected separator cell")
	}
	if cells[2].s != survivingStyle.Render("cat") {
		t.Fatalf("expected surviving style for kept word")
	}
}

func TestBuildStyledWordsCursor(t *testing.T) {
	cells := buildStyledWords(words("a", "b"), []bool{true, true}, 1)
	if cells[2].s != survivingStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor word")
	}
}

func TestWrapCellsBreaksAtSpaces(t *testing.T) {
	cells := buildStyledWords(words("one", "two", "three"), nil, -1)
	out := wrapCells(cells, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "one") || !strings.Contains(lines[0], "two") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "three") || strings.HasPrefix(lines[1], " ") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestWrapCellsLongWordGetsOwnLine(t *testing.T) {
	cells := buildStyledWords(words("a", "supercalifragilistic", "b"), nil, -1)
	lines := strings.Split(wrapCells(cells, 5), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
}

func TestWrapCellsWideRunes(t *testing.T) {
	cells := buildStyledWords(words("日本", "語"), nil, -1)
	if cells[0].width != 4 {
		t.Fatalf("expected double-width cell, got %d", cells[0].width)
	}
	if lines := strings.Split(wrapCells(cells, 5), "\n"); len(lines) != 2 {
		t.Fatalf("expected wide words to wrap, got %q", lines)
	}
}

func TestFitLinesPadsAndTrims(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected fit %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}
