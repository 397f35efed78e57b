package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/words"
)

// TopWords returns entries by count descending, ties by text then tag.
// n <= 0 returns all.
func TopWords(entries []words.Entry, n int) []words.Entry {
	out := make([]words.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Word.Text != out[j].Word.Text {
			return out[i].Word.Text < out[j].Word.Text
		}
		return out[i].Word.Tag < out[j].Word.Tag
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// RenderFrequencyTable prints word, tag, count and share of total.
func RenderFrequencyTable(w io.Writer, ft *words.FrequencyTable, n int) error {
	top := TopWords(ft.Entries(), n)
	rows := make([][]string, 0, len(top))
	for _, e := range top {
		share := 0.0
		if ft.Total() > 0 {
			share = float64(e.Count) / float64(ft.Total()) * 100
		}
		rows = append(rows, []string{e.Word.Text, e.Word.Tag, strconv.Itoa(e.Count), fmt.Sprintf("%.1f%%", share)})
	}
	lines := formatTable([]string{"Word", "Tag", "Count", "Share"}, rows, map[int]bool{2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d words, %d distinct\n", ft.Total(), ft.Len())
	return err
}

// RenderScoreGroups prints "score(count): words" per score value.
// At most sample words are listed per group; sample <= 0 lists all.
func RenderScoreGroups(w io.Writer, groups []filter.ScoreGroup, active model.Range, sample int) error {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		marker := " "
		if active.Contains(g.Score) {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d(%d)", g.Score, len(g.Words)),
			joinWords(g.Words, sample),
		})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ScoreBars converts score groups into histogram bars.
func ScoreBars(groups []filter.ScoreGroup) []Bar {
	out := make([]Bar, len(groups))
	for i, g := range groups {
		out[i] = Bar{Label: strconv.Itoa(g.Score), Value: float64(len(g.Words))}
	}
	return out
}

// RankCounts returns counts sorted descending, for rank plots.
func RankCounts(ft *words.FrequencyTable) []float64 {
	top := TopWords(ft.Entries(), 0)
	out := make([]float64, len(top))
	for i, e := range top {
		out[i] = float64(e.Count)
	}
	return out
}

func joinWords(ws []model.Word, sample int) string {
	parts := make([]string, 0, len(ws))
	for i, w := range ws {
		if sample > 0 && i == sample {
			parts = append(parts, fmt.Sprintf("+%d more", len(ws)-sample))
			break
		}
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}
