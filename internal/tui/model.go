// Package tui provides the Bubble Tea filter editor.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/layout"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/palette"
	"github.com/verte-zerg/tagcloud/internal/pipeline"
	"github.com/verte-zerg/tagcloud/internal/stats"
	"github.com/verte-zerg/tagcloud/internal/store"
)

const (
	tabClasses = iota
	tabRanges
	tabDeny
	tabWords
	tabLayout
)

const (
	scoreSample   = 8
	topPlacements = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	survivingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	filteredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A")).Strikethrough(true)
	denyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// SaveFunc renders snap to disk and returns the written path.
type SaveFunc func(snap pipeline.Snapshot) (string, error)

// Model implements the Bubble Tea filter editor. Every edit recomputes
// the pipeline unless it is frozen, and persists filter state when a
// store is attached.
type Model struct {
	pipe  *pipeline.Pipeline
	store *store.Store
	save  SaveFunc

	snap    pipeline.Snapshot
	preview pipeline.Snapshot

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	classTable table.Model
	rangeKind  filter.Kind
	wordCursor int

	denyMode  bool
	denyInput textinput.Model

	width  int
	height int

	status string
	errMsg string
}

// NewModel constructs an editor over pipe. st and save may be nil.
func NewModel(pipe *pipeline.Pipeline, st *store.Store, save SaveFunc) *Model {
	m := &Model{
		pipe:      pipe,
		store:     st,
		save:      save,
		tabs:      []string{"Classes", "Ranges", "Deny", "Words", "Layout"},
		rangeKind: filter.KindLength,
	}
	m.denyInput = newInput("Deny: ")
	m.classTable = table.New(
		table.WithColumns(classColumns()),
		table.WithHeight(1),
		table.WithFocused(true),
	)
	m.classTable.SetStyles(classTableStyles())
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.denyMode {
			return m.updateDeny(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l":
			m.moveTab(1)
			return m, nil
		case "f":
			m.toggleFreeze()
			return m, nil
		case "ctrl+s":
			m.saveImage()
			return m, nil
		case "e":
			m.toggleFilter()
			return m, nil
		}
		return m.updateTab(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case tabClasses:
		switch msg.String() {
		case " ", "enter":
			m.toggleClass()
			return m, nil
		}
		var cmd tea.Cmd
		m.classTable, cmd = m.classTable.Update(msg)
		return m, cmd
	case tabRanges:
		switch msg.String() {
		case "t", "tab":
			if m.rangeKind == filter.KindLength {
				m.rangeKind = filter.KindFreq
			} else {
				m.rangeKind = filter.KindLength
			}
			m.renderTabContents()
			return m, nil
		case "[":
			m.adjustRange(-1, 0)
			return m, nil
		case "]":
			m.adjustRange(1, 0)
			return m, nil
		case "{":
			m.adjustRange(0, -1)
			return m, nil
		case "}":
			m.adjustRange(0, 1)
			return m, nil
		case "r":
			m.resetRange()
			return m, nil
		}
	case tabDeny:
		switch msg.String() {
		case "enter", "i":
			return m.startDeny()
		}
	case tabWords:
		switch msg.String() {
		case "n":
			m.moveWordCursor(1)
			return m, nil
		case "p":
			m.moveWordCursor(-1)
			return m, nil
		case "x":
			m.toggleDenyWord()
			return m, nil
		}
	}
	vp := m.viewports[m.activeTab]
	var cmd tea.Cmd
	vp, cmd = vp.Update(msg)
	m.viewports[m.activeTab] = vp
	return m, cmd
}

func (m *Model) updateDeny(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.denyMode = false
		m.denyInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.denyMode = false
		m.denyInput.Blur()
		if deny := m.pipe.Filters().Deny(); deny != nil {
			deny.SetDenyText(m.denyInput.Value())
			m.applyChanges()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.denyInput, cmd = m.denyInput.Update(msg)
	return m, cmd
}

func (m *Model) startDeny() (tea.Model, tea.Cmd) {
	deny := m.pipe.Filters().Deny()
	if deny == nil {
		return m, nil
	}
	m.denyMode = true
	m.denyInput.SetValue(strings.Join(strings.Fields(deny.Text()), " "))
	m.denyInput.CursorEnd()
	return m, m.denyInput.Focus()
}

// refresh recomputes the pipeline and rebuilds every view.
func (m *Model) refresh() {
	m.snap = m.pipe.Result()
	m.preview = m.pipe.Preview()
	m.errMsg = ""
	if m.snap.Err != nil {
		if errors.Is(m.snap.Err, layout.ErrUnsupported) {
			m.errMsg = "text layout unsupported: no font metrics"
		} else {
			m.errMsg = m.snap.Err.Error()
		}
	}
	m.classTable.SetRows(classRows(m.pipe.Filters()))
	m.clampWordCursor()
	m.renderTabContents()
}

func (m *Model) applyChanges() {
	m.refresh()
	m.persist()
}

func (m *Model) persist() {
	if m.store == nil {
		return
	}
	if err := store.SaveFilters(context.Background(), m.store, m.pipe.Filters()); err != nil {
		m.errMsg = fmt.Sprintf("failed to save settings: %v", err)
	}
}

func (m *Model) toggleFreeze() {
	m.pipe.Freeze(!m.pipe.Frozen())
	m.refresh()
	if m.pipe.Frozen() {
		m.status = "layout frozen"
	} else {
		m.status = "layout live"
	}
}

func (m *Model) saveImage() {
	if m.save == nil {
		m.errMsg = "saving is not available"
		return
	}
	path, err := m.save(m.snap)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to save image: %v", err)
		return
	}
	m.status = "saved " + path
}

func (m *Model) currentKind() (filter.Kind, bool) {
	switch m.activeTab {
	case tabClasses:
		return filter.KindClass, true
	case tabRanges:
		return m.rangeKind, true
	case tabDeny, tabWords:
		return filter.KindWords, true
	default:
		return "", false
	}
}

func (m *Model) toggleFilter() {
	kind, ok := m.currentKind()
	if !ok {
		return
	}
	set := m.pipe.Filters()
	if !set.Enable(kind, !set.Enabled(kind)) {
		return
	}
	m.applyChanges()
}

func (m *Model) toggleClass() {
	class := m.pipe.Filters().Class()
	if class == nil {
		return
	}
	classes := class.Classes()
	idx := m.classTable.Cursor()
	if idx < 0 || idx >= len(classes) {
		return
	}
	class.Toggle(classes[idx].Tag)
	m.applyChanges()
}

func (m *Model) rangeFilter() *filter.RangeFilter {
	if m.rangeKind == filter.KindFreq {
		return m.pipe.Filters().Freq()
	}
	return m.pipe.Filters().Length()
}

func (m *Model) adjustRange(dMin, dMax int) {
	f := m.rangeFilter()
	if f == nil {
		return
	}
	f.SetRange(stepRange(f.Range(), f.Bounds(), dMin, dMax))
	m.applyChanges()
}

func (m *Model) resetRange() {
	f := m.rangeFilter()
	if f == nil {
		return
	}
	f.SetRange(f.Bounds())
	m.applyChanges()
}

// stepRange moves one end of r inside bounds. The moved end stops at
// the other one.
func stepRange(r, bounds model.Range, dMin, dMax int) model.Range {
	r.Min = clamp(r.Min+dMin, bounds.Min, bounds.Max)
	r.Max = clamp(r.Max+dMax, bounds.Min, bounds.Max)
	if r.Min > r.Max {
		if dMin != 0 {
			r.Min = r.Max
		} else {
			r.Max = r.Min
		}
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) distinctWords() []model.Word {
	seen := map[model.Word]struct{}{}
	var out []model.Word
	for _, w := range m.preview.Words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func (m *Model) moveWordCursor(delta int) {
	m.wordCursor += delta
	m.clampWordCursor()
	m.renderTabContents()
}

func (m *Model) clampWordCursor() {
	n := len(m.distinctWords())
	if m.wordCursor >= n {
		m.wordCursor = n - 1
	}
	if m.wordCursor < 0 {
		m.wordCursor = 0
	}
}

// toggleDenyWord adds the word under the cursor to the deny list, or
// removes it when already denied.
func (m *Model) toggleDenyWord() {
	deny := m.pipe.Filters().Deny()
	ws := m.distinctWords()
	if deny == nil || m.wordCursor >= len(ws) {
		return
	}
	text := ws[m.wordCursor].Text
	list := strings.Fields(deny.Text())
	next := list[:0:0]
	for _, w := range list {
		if w != text {
			next = append(next, w)
		}
	}
	if len(next) == len(list) {
		next = append(next, text)
	}
	deny.SetDenyWords(next)
	m.applyChanges()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabClasses {
		m.classTable.Focus()
	} else {
		m.classTable.Blur()
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.classTable.SetWidth(m.width)
	m.classTable.SetHeight(max(1, bodyHeight-1))
	m.denyInput.Width = max(10, m.width-lipgloss.Width(m.denyInput.Prompt)-2)
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.contentWidth()
	m.viewports[tabRanges].SetContent(m.renderRanges(width))
	m.viewports[tabDeny].SetContent(m.renderDeny(width))
	m.viewports[tabWords].SetContent(m.renderWords(width))
	m.viewports[tabLayout].SetContent(m.renderLayout(width))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := truncateLine(m.renderSummary(), m.width)
	return tabs + "\n" + headerStyle.Render(summary)
}

func (m *Model) renderSummary() string {
	placed, total := m.snap.Layout.PlacedCount(), len(m.snap.Data)
	segments := []string{
		fmt.Sprintf("Words %d", len(m.preview.Words)),
		fmt.Sprintf("Surviving %d", len(m.preview.Surviving)),
		fmt.Sprintf("Placed %d/%d", placed, total),
	}
	if m.pipe.Frozen() {
		segments = append(segments, "Frozen")
	} else {
		segments = append(segments, "Live")
	}
	var off []string
	for _, k := range filter.Kinds {
		if _, ok := m.pipe.Filters().Get(k); ok && !m.pipe.Filters().Enabled(k) {
			off = append(off, string(k))
		}
	}
	if len(off) > 0 {
		segments = append(segments, "Off: "+strings.Join(off, ","))
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderHelp() string {
	common := "left/right: tabs  f: freeze  ctrl+s: save  q: quit"
	var help string
	switch m.activeTab {
	case tabClasses:
		help = "space: toggle class  e: filter on/off  "
	case tabRanges:
		help = "t: switch  [ ]: min  { }: max  r: reset  e: filter on/off  "
	case tabDeny:
		if m.denyMode {
			return "enter: apply  esc: cancel"
		}
		help = "enter: edit  e: filter on/off  "
	case tabWords:
		help = "n/p: move  x: deny/allow  "
	}
	return help + common
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render(truncateLine(m.renderHelp(), m.width))
	switch {
	case m.errMsg != "":
		return help + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	case m.status != "":
		return help + "\n" + statusStyle.Render(truncateLine(m.status, m.width))
	default:
		return help
	}
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabClasses:
		if len(m.classTable.Rows()) == 0 {
			return "No classes yet."
		}
		return m.classTable.View()
	case tabDeny:
		if m.denyMode {
			return m.denyInput.View() + "\n\n" + m.viewports[tabDeny].View()
		}
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderRanges(width int) string {
	set := m.pipe.Filters()
	var sections []string
	for _, f := range []*filter.RangeFilter{set.Length(), set.Freq()} {
		if f == nil {
			continue
		}
		r, b := f.Range(), f.Bounds()
		title := fmt.Sprintf("%s %d..%d (bounds %d..%d)", rangeLabel(f.Kind()), r.Min, r.Max, b.Min, b.Max)
		if !set.Enabled(f.Kind()) {
			title += " off"
		}
		style := headerStyle
		if f.Kind() == m.rangeKind {
			style = selectedStyle
		}
		var buf bytes.Buffer
		if err := stats.RenderScoreGroups(&buf, f.ScoreCounts(), r, scoreSample); err != nil {
			return fmt.Sprintf("Failed to render score groups: %v", err)
		}
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		for i, line := range lines {
			lines[i] = truncateLine(line, width)
		}
		sections = append(sections, style.Render(title)+"\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

func rangeLabel(kind filter.Kind) string {
	if kind == filter.KindFreq {
		return "Frequency"
	}
	return "Length"
}

func (m *Model) renderDeny(width int) string {
	deny := m.pipe.Filters().Deny()
	if deny == nil {
		return "No deny filter."
	}
	list := strings.Fields(deny.Text())
	if len(list) == 0 {
		return "No denied words. Press enter to edit."
	}
	removed := 0
	for _, w := range m.preview.Words {
		if deny.Denied(w.Text) {
			removed++
		}
	}
	cells := make([]styledCell, 0, 2*len(list))
	for i, w := range list {
		if i > 0 {
			cells = append(cells, styledCell{s: " ", width: 1, isSpace: true})
		}
		cells = append(cells, styledCell{s: denyStyle.Render(w), width: lipgloss.Width(w)})
	}
	header := headerStyle.Render(fmt.Sprintf("%d denied, %d occurrences removed", len(list), removed))
	return header + "\n" + wrapCells(cells, width)
}

func (m *Model) renderWords(width int) string {
	distinct := m.distinctWords()
	if len(distinct) == 0 {
		return "No words."
	}
	header := fmt.Sprintf("%d distinct, %d surviving", len(distinct), m.preview.Frequency.Len())
	if m.wordCursor < len(distinct) {
		w := distinct[m.wordCursor]
		header += fmt.Sprintf("  cursor: %s [%s]", w.Text, w.Tag)
	}
	cells := buildStyledWords(m.preview.Words, m.preview.Mask, m.wordCursor)
	return headerStyle.Render(truncateLine(header, width)) + "\n" + wrapCells(cells, width)
}

func (m *Model) renderLayout(width int) string {
	if m.snap.Err != nil {
		return fmt.Sprintf("Layout unavailable: %v", m.snap.Err)
	}
	res := m.snap.Layout
	opts := m.pipe.Config().Layout
	lines := []string{headerStyle.Render(fmt.Sprintf("Placed %d of %d words on %dx%d",
		res.PlacedCount(), len(res.Placements), opts.Width, opts.Height))}
	if res.Grid != nil {
		var buf bytes.Buffer
		if err := stats.Preview(&buf, res.Grid.Rows(), width); err != nil {
			return fmt.Sprintf("Failed to render preview: %v", err)
		}
		lines = append(lines, strings.TrimRight(buf.String(), "\n"))
	}
	shown := 0
	for _, idx := range res.Order {
		if shown == topPlacements {
			break
		}
		p := res.Placements[idx]
		if !p.Placed {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.FormatColor(opaque(p.Color)))).Render("■")
		line := fmt.Sprintf("%s %-16s size %5.1f  rot %4.0f°  at %.0f,%.0f", swatch, truncateLine(p.Text, 16), p.FontSize, p.Rotation*180/math.Pi, p.X, p.Y)
		lines = append(lines, line)
		shown++
	}
	return strings.Join(lines, "\n")
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Placeholder = "words to hide, separated by spaces"
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func classColumns() []table.Column {
	return []table.Column{
		{Title: "On", Width: 3},
		{Title: "Class", Width: 14},
		{Title: "Words", Width: 7},
	}
}

func classRows(set *filter.Set) []table.Row {
	class := set.Class()
	if class == nil {
		return nil
	}
	classes := class.Classes()
	rows := make([]table.Row, 0, len(classes))
	for _, c := range classes {
		mark := " "
		if c.Allowed {
			mark = "x"
		}
		rows = append(rows, table.Row{mark, c.Tag, fmt.Sprintf("%d", c.Words)})
	}
	return rows
}

func classTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
