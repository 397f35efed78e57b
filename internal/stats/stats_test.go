package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/store"
	"github.com/verte-zerg/tagcloud/internal/words"
)

func TestCanvasDots(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(99, 99)
	rows := c.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0] != "⠁⢀" {
		t.Fatalf("unexpected braille %q", rows[0])
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Line(0, 0, 3, 0)
	if got := c.Rows()[0]; got != "⠉⠉" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Count"}
	rows := [][]string{
		{"cat", "12"},
		{"日本", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "cat     12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "日本     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTopWordsOrdersByCount(t *testing.T) {
	ft := words.CalcFrequency([]model.Word{
		{Text: "b", Tag: "*"}, {Text: "a", Tag: "*"}, {Text: "c", Tag: "*"}, {Text: "c", Tag: "*"},
	})
	top := TopWords(ft.Entries(), 2)
	if len(top) != 2 || top[0].Word.Text != "c" || top[1].Word.Text != "a" {
		t.Fatalf("unexpected order %+v", top)
	}
	if got := RankCounts(ft); len(got) != 3 || got[0] != 2 || got[2] != 1 {
		t.Fatalf("unexpected rank counts %v", got)
	}
}

func TestRenderFrequencyTable(t *testing.T) {
	var buf bytes.Buffer
	ft := words.CalcFrequency([]model.Word{{Text: "a", Tag: "*"}, {Text: "a", Tag: "*"}, {Text: "b", Tag: "*"}})
	if err := RenderFrequencyTable(&buf, ft, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "66.7%") || !strings.Contains(out, "3 words, 2 distinct") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderScoreGroupsMarksActiveRange(t *testing.T) {
	var buf bytes.Buffer
	groups := []filter.ScoreGroup{
		{Score: 1, Words: []model.Word{{Text: "x"}, {Text: "y"}, {Text: "z"}}},
		{Score: 4, Words: []model.Word{{Text: "long"}}},
	}
	if err := RenderScoreGroups(&buf, groups, model.Range{Min: 2, Max: 5}, 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1(3) x y +1 more") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "* 4(1) long") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestHistogram(t *testing.T) {
	var buf bytes.Buffer
	bars := []Bar{{Label: "1", Value: 4}, {Label: "2", Value: 0}, {Label: "3", Value: 2}}
	if err := Histogram(&buf, "Length", bars, 6, 2, false); err != nil {
		t.Fatalf("histogram: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, 2 rows and footer, got %q", buf.String())
	}
	if lines[0] != "Length" || !strings.HasPrefix(lines[1], "4 │ ") || !strings.HasPrefix(lines[2], "0 │ ") {
		t.Fatalf("unexpected axis: %q", buf.String())
	}
	if !strings.HasSuffix(lines[3], "1 … 3") {
		t.Fatalf("unexpected footer %q", lines[3])
	}
	if Histogram(&buf, "", nil, 0, 0, false) != nil {
		t.Fatalf("expected no error for empty bars")
	}
}

func TestLineChart(t *testing.T) {
	var buf bytes.Buffer
	if err := LineChart(&buf, "Rank", []float64{5, 3, 2, 1, 1}, 10, 4, false); err != nil {
		t.Fatalf("line chart: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 || lines[0] != "Rank" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80, 4); got != 80-4-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0, 4); got != minPlotWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}

func TestPreview(t *testing.T) {
	rows := [][]bool{
		{true, false, false, false},
		{false, false, false, true},
	}
	var buf bytes.Buffer
	if err := Preview(&buf, rows, 80); err != nil {
		t.Fatalf("preview: %v", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out != "⠁⠐" {
		t.Fatalf("unexpected preview %q", out)
	}
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "tagcloud.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("close store: %v", cerr)
		}
	}()
	now := time.Now()
	if _, err := st.InsertRender(ctx, model.RenderRecord{
		StartedAt: now, EndedAt: now, Words: 4, Placed: 3, Width: 10, Height: 20, Palette: "spring", OutputPath: "x.png",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	h, err := BuildHistory(ctx, st, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var buf bytes.Buffer
	if err := h.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "3/4") || !strings.Contains(buf.String(), "10x20") {
		t.Fatalf("unexpected history %q", buf.String())
	}
	if rates := h.PlacementRate(); len(rates) != 1 || rates[0] != 0.75 {
		t.Fatalf("unexpected rates %v", rates)
	}
}
