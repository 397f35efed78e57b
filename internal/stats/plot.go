package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " │ "
	colorCyan         = "\x1b[36m"
	colorReset        = "\x1b[0m"
)

// Bar is one histogram column.
type Bar struct {
	Label string
	Value float64
}

// PlotWidthFor returns the cell width left for a plot next to an axis
// label of labelWidth columns.
func PlotWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	w := totalWidth - labelWidth - utf8.RuneCountInString(axisSeparator)
	if w < minPlotWidth {
		w = minPlotWidth
	}
	return w
}

// Histogram draws bars bottom-up, scaled to the largest value.
// width and height are in terminal cells; zero picks defaults.
func Histogram(w io.Writer, title string, bars []Bar, width, height int, forceColor bool) error {
	if len(bars) == 0 {
		return nil
	}
	maxVal := 0.0
	for _, b := range bars {
		maxVal = math.Max(maxVal, b.Value)
	}
	top := formatValue(maxVal)
	if height <= 1 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(TerminalWidth(), runewidth.StringWidth(top))
		if need := len(bars); need < width {
			width = need
		}
	}

	c := NewCanvas(width, height)
	dotsW, dotsH := c.DotsWide(), c.DotsHigh()
	perBar := float64(dotsW) / float64(len(bars))
	for x := 0; x < dotsW; x++ {
		idx := int(float64(x) / perBar)
		if idx >= len(bars) {
			idx = len(bars) - 1
		}
		if perBar >= 2 && int(float64(x+1)/perBar) != idx {
			continue
		}
		h := 0
		if maxVal > 0 {
			h = int(math.Round(bars[idx].Value / maxVal * float64(dotsH)))
		}
		if bars[idx].Value > 0 && h == 0 {
			h = 1
		}
		for y := 0; y < h; y++ {
			c.Set(x, dotsH-1-y)
		}
	}

	labels := make([]string, height)
	labels[0] = top
	labels[height-1] = "0"
	return writePlot(w, title, c, labels, axisFooter(bars), shouldUseColor(w, forceColor))
}

// LineChart draws values left to right, resampled to width cells.
func LineChart(w io.Writer, title string, values []float64, width, height int, forceColor bool) error {
	if len(values) == 0 {
		return nil
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}
	top, bottom := formatValue(maxVal), formatValue(minVal)
	if height <= 1 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(TerminalWidth(), max(runewidth.StringWidth(top), runewidth.StringWidth(bottom)))
	}

	c := NewCanvas(width, height)
	dotsH := c.DotsHigh()
	points := resample(values, c.DotsWide())
	prevX, prevY := -1, -1
	for x, v := range points {
		y := int(math.Round((1 - (v-minVal)/(maxVal-minVal)) * float64(dotsH-1)))
		if prevX >= 0 {
			c.Line(prevX, prevY, x, y)
		} else {
			c.Set(x, y)
		}
		prevX, prevY = x, y
	}

	labels := make([]string, height)
	labels[0] = top
	labels[height-1] = bottom
	return writePlot(w, title, c, labels, "", shouldUseColor(w, forceColor))
}

func writePlot(w io.Writer, title string, c *Canvas, labels []string, footer string, useColor bool) error {
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, row := range c.Rows() {
		label := runewidth.FillLeft(labels[i], labelWidth)
		if useColor {
			row = colorCyan + row + colorReset
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", label, axisSeparator, row); err != nil {
			return err
		}
	}
	if footer != "" {
		pad := strings.Repeat(" ", labelWidth+utf8.RuneCountInString(axisSeparator))
		if _, err := fmt.Fprintln(w, pad+footer); err != nil {
			return err
		}
	}
	return nil
}

func axisFooter(bars []Bar) string {
	if len(bars) == 1 {
		return bars[0].Label
	}
	return bars[0].Label + " … " + bars[len(bars)-1].Label
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// resample stretches or averages values onto n points.
func resample(values []float64, n int) []float64 {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	out := make([]float64, n)
	switch {
	case len(values) == n:
		copy(out, values)
	case len(values) > n:
		for i := range out {
			start := i * len(values) / n
			end := max(start+1, (i+1)*len(values)/n)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || n == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(n-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}
