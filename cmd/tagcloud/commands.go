package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tagcloud/internal/config"
	"github.com/verte-zerg/tagcloud/internal/palette"
	"github.com/verte-zerg/tagcloud/internal/pipeline"
	"github.com/verte-zerg/tagcloud/internal/stats"
	"github.com/verte-zerg/tagcloud/internal/store"
	"github.com/verte-zerg/tagcloud/internal/tui"
	"github.com/verte-zerg/tagcloud/internal/words"
	"github.com/verte-zerg/tagcloud/internal/wordlist"
)

const (
	defaultTopWords    = 20
	defaultScoreSample = 8
	defaultHistory     = 20
	plotHeight         = 8
)

var (
	wordsBy   string
	wordsTop  int
	wordsPlot bool

	historyLast int
	historyPlot bool
)

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words [files|globs...]",
		Short: "Show word frequencies and score groups after filtering",
		RunE:  runWordsCmd,
	}
	addCloudFlags(cmd)
	cmd.Flags().StringVar(&wordsBy, "by", string(words.MetricFrequency), "score groups by freq or length")
	cmd.Flags().IntVar(&wordsTop, "top", defaultTopWords, "number of words listed (0 = all)")
	cmd.Flags().BoolVar(&wordsPlot, "plot", false, "draw a histogram of the score groups")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, args []string) error {
	fileCfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	applyCloudConfig(cmd, fileCfg)
	metric, err := words.ParseMetric(wordsBy)
	if err != nil {
		return err
	}
	paths, err := wordlist.ExpandInputs(args)
	if err != nil {
		return err
	}
	text, err := wordlist.ReadText(paths, cmd.InOrStdin())
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	filters, err := buildFilters(ctx, st)
	if err != nil {
		return err
	}
	tok, err := tokenizerFor(cloudTokenizer)
	if err != nil {
		return err
	}
	pipe := pipeline.New(pipeline.Config{Tokenizer: tok, UseBaseForm: cloudBaseForm}, filters, logger)
	pipe.SetText(text)
	snap := pipe.Preview()

	out := cmd.OutOrStdout()
	if err := stats.RenderFrequencyTable(out, snap.Frequency, wordsTop); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	rf := filters.Freq()
	title := "Frequency groups"
	if metric == words.MetricLength {
		rf = filters.Length()
		title = "Length groups"
	}
	r, b := rf.Range(), rf.Bounds()
	header := fmt.Sprintf("%s: range %d..%d of %d..%d", title, r.Min, r.Max, b.Min, b.Max)
	if !filters.Enabled(rf.Kind()) {
		header += " (filter off)"
	}
	if err := writeLines(out, "", header); err != nil {
		return err
	}
	groups := rf.ScoreCounts()
	if err := stats.RenderScoreGroups(out, groups, r, defaultScoreSample); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !wordsPlot {
		return nil
	}
	if err := writeLines(out, ""); err != nil {
		return err
	}
	if err := stats.Histogram(out, title, stats.ScoreBars(groups), 0, plotHeight, false); err != nil {
		return fmt.Errorf("failed to draw histogram: %w", err)
	}
	rank := stats.RankCounts(snap.Frequency)
	if len(rank) > 1 {
		if err := writeLines(out, ""); err != nil {
			return err
		}
		if err := stats.LineChart(out, "Count by rank", rank, 0, plotHeight, false); err != nil {
			return fmt.Errorf("failed to draw rank chart: %w", err)
		}
	}
	return nil
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [files|globs...]",
		Short: "Edit filters interactively with a live layout",
		RunE:  runEditCmd,
	}
	addCloudFlags(cmd)
	return cmd
}

func runEditCmd(cmd *cobra.Command, args []string) error {
	fileCfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	applyCloudConfig(cmd, fileCfg)
	paths, err := wordlist.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("edit needs input files; stdin is used by the editor")
	}
	text, err := wordlist.ReadText(paths, nil)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if err := applyStoredSettings(ctx, cmd, fileCfg, st); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	c, err := buildCloud(ctx, st, logger)
	if err != nil {
		return err
	}
	c.pipe.SetText(text)

	outDir := config.DefaultOutputDir()
	save := func(snap pipeline.Snapshot) (string, error) {
		path := cloudOutput
		if !cmd.Flags().Changed("output") {
			path = filepath.Join(outDir, time.Now().Format("20060102-150405")+".png")
		}
		return saveSnapshot(ctx, st, c, snap, path, time.Now())
	}

	m := tui.NewModel(c.pipe, st, save)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := saveSettings(ctx, st, c); err != nil {
		logger.Warn().Err(err).Msg("failed to remember editor settings")
	}
	return nil
}

func newPalettesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List palettes",
		Args:  cobra.NoArgs,
		RunE:  runPalettesListCmd,
	}
	cmd.PersistentFlags().IntVar(&cloudResolution, "resolution", palette.DefaultResolution, "colors sampled from gradient palettes")
	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Show the colors of a palette, with overrides",
		Args:  cobra.ExactArgs(1),
		RunE:  runPalettesShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set NAME INDEX COLOR",
		Short: "Override one color of a palette",
		Args:  cobra.ExactArgs(3),
		RunE:  runPalettesSetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset NAME",
		Short: "Drop all overrides of a palette",
		Args:  cobra.ExactArgs(1),
		RunE:  runPalettesResetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "use NAME",
		Short: "Make NAME the default palette",
		Args:  cobra.ExactArgs(1),
		RunE:  runPalettesUseCmd,
	})
	return cmd
}

func runPalettesListCmd(cmd *cobra.Command, _ []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	current, err := store.Load(ctx, st, store.KeyPalette, palette.DefaultName)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	names := palette.Names()
	nameWidth := 0
	for _, name := range names {
		nameWidth = max(nameWidth, runewidth.StringWidth(name))
	}
	for _, name := range names {
		sw, err := loadSwatch(ctx, st, name, cloudResolution)
		if err != nil {
			return err
		}
		marker := " "
		if name == current {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s  %s", marker, runewidth.FillRight(name, nameWidth), swatchBar(sw))
		if n := len(sw.Overrides()); n > 0 {
			line += fmt.Sprintf("  (%d overridden)", n)
		}
		if err := writeLines(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}
	return nil
}

func runPalettesShowCmd(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	sw, err := loadSwatch(context.Background(), st, args[0], cloudResolution)
	if err != nil {
		return err
	}
	overridden := map[int]bool{}
	for _, o := range sw.Overrides() {
		overridden[o.Index] = true
	}
	for i, c := range sw.Colors() {
		hex := palette.FormatColor(c)
		line := fmt.Sprintf("%2d  %s  %s", i, swatchBlock(hex), hex)
		if overridden[i] {
			line += "  (override)"
		}
		if err := writeLines(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}
	return nil
}

func runPalettesSetCmd(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	name := args[0]
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[1])
	}
	c, err := palette.ParseColor(args[2])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	sw, err := loadSwatch(ctx, st, name, cloudResolution)
	if err != nil {
		return err
	}
	if err := sw.Set(idx, c); err != nil {
		return err
	}
	if err := st.SetPaletteColor(ctx, name, idx, palette.FormatColor(c)); err != nil {
		return fmt.Errorf("failed to save palette color: %w", err)
	}
	return writeLines(cmd.OutOrStdout(), fmt.Sprintf("%s[%d] = %s", name, idx, palette.FormatColor(c)))
}

func runPalettesResetCmd(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	if _, err := palette.Lookup(args[0]); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := st.ResetPalette(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to reset palette: %w", err)
	}
	return nil
}

func runPalettesUseCmd(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	if _, err := palette.Lookup(args[0]); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := st.Set(context.Background(), store.KeyPalette, args[0]); err != nil {
		return fmt.Errorf("failed to save palette: %w", err)
	}
	return nil
}

func swatchBar(sw *palette.Swatch) string {
	var b strings.Builder
	for _, c := range sw.Colors() {
		b.WriteString(swatchBlock(palette.FormatColor(c)))
	}
	return b.String()
}

func swatchBlock(hex string) string {
	if len(hex) > 7 {
		hex = hex[:7]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent renders",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistory, "number of renders listed")
	cmd.Flags().BoolVar(&historyPlot, "plot", false, "plot the share of words placed per render")
	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show one render; ID may be the short form listed by history",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShowCmd,
	})
	return cmd
}

func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	rec, err := st.FindRender(context.Background(), strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("failed to load render: %w", err)
	}
	rate := 0.0
	if rec.Words > 0 {
		rate = float64(rec.Placed) / float64(rec.Words) * 100
	}
	return writeLines(cmd.OutOrStdout(),
		"ID:       "+rec.ID,
		"Started:  "+rec.StartedAt.Local().Format(time.DateTime),
		"Took:     "+rec.EndedAt.Sub(rec.StartedAt).Round(time.Millisecond).String(),
		fmt.Sprintf("Canvas:   %dx%d (%s)", rec.Width, rec.Height, config.AspectRatio(rec.Width, rec.Height)),
		fmt.Sprintf("Placed:   %d/%d (%.0f%%)", rec.Placed, rec.Words, rate),
		"Palette:  "+rec.Palette,
		"Output:   "+rec.OutputPath,
	)
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if _, _, err := setup(cmd); err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	h, err := stats.BuildHistory(context.Background(), st, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := h.Render(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	rate := h.PlacementRate()
	if !historyPlot || len(rate) < 2 {
		return nil
	}
	if err := writeLines(out, ""); err != nil {
		return err
	}
	return stats.LineChart(out, "Placed share (oldest to newest)", rate, 0, plotHeight, false)
}
