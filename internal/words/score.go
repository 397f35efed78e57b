package words

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/tagcloud/internal/model"
)

// Metric names a scoring function.
type Metric string

const (
	MetricLength    Metric = "length"
	MetricFrequency Metric = "freq"
)

// ParseMetric resolves a metric name.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "length", "len":
		return MetricLength, nil
	case "freq", "frequency":
		return MetricFrequency, nil
	default:
		return "", fmt.Errorf("unknown metric %q (want length or freq)", name)
	}
}

// Score scores every word of ws under the given metric, preserving order.
func Score(ws []model.Word, metric Metric) []model.ScoredWord {
	switch metric {
	case MetricLength:
		return LengthScores(ws)
	case MetricFrequency:
		return FrequencyScores(ws)
	default:
		out := make([]model.ScoredWord, len(ws))
		for i, w := range ws {
			out[i] = model.ScoredWord{Word: w}
		}
		return out
	}
}

// LengthScores scores each word by its code point count.
func LengthScores(ws []model.Word) []model.ScoredWord {
	out := make([]model.ScoredWord, len(ws))
	for i, w := range ws {
		out[i] = model.ScoredWord{Word: w, Score: utf8.RuneCountInString(w.Text)}
	}
	return out
}

// FrequencyScores scores each word by how often it occurs in ws.
func FrequencyScores(ws []model.Word) []model.ScoredWord {
	ft := CalcFrequency(ws)
	out := make([]model.ScoredWord, len(ws))
	for i, w := range ws {
		out[i] = model.ScoredWord{Word: w, Score: ft.Count(w)}
	}
	return out
}

// Bounds returns the minimum and maximum score, or {1,1} when empty.
func Bounds(scored []model.ScoredWord) model.Range {
	if len(scored) == 0 {
		return model.Range{Min: 1, Max: 1}
	}
	r := model.Range{Min: scored[0].Score, Max: scored[0].Score}
	for _, s := range scored[1:] {
		if s.Score < r.Min {
			r.Min = s.Score
		}
		if s.Score > r.Max {
			r.Max = s.Score
		}
	}
	return r
}
