package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/pipeline"
	"github.com/verte-zerg/tagcloud/internal/render"
	"github.com/verte-zerg/tagcloud/internal/stats"
	"github.com/verte-zerg/tagcloud/internal/store"
	"github.com/verte-zerg/tagcloud/internal/wordlist"
)

const watchDebounce = 200 * time.Millisecond

var (
	renderWatch   bool
	renderPreview bool
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [files|globs...]",
		Short: "Render a word cloud PNG from text files or stdin",
		RunE:  runRenderCmd,
	}
	addCloudFlags(cmd)
	cmd.Flags().BoolVar(&renderWatch, "watch", false, "re-render when an input file changes")
	cmd.Flags().BoolVar(&renderPreview, "preview", false, "print a braille preview of the layout")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, args []string) error {
	fileCfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	applyCloudConfig(cmd, fileCfg)

	paths, err := wordlist.ExpandInputs(args)
	if err != nil {
		return err
	}
	if renderWatch && len(paths) == 0 {
		return fmt.Errorf("--watch needs input files")
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

	run := func() error {
		text, err := wordlist.ReadText(paths, cmd.InOrStdin())
		if err != nil {
			return err
		}
		c.pipe.SetText(text)
		snap := c.pipe.Result()
		if snap.Err != nil {
			return fmt.Errorf("failed to lay out words: %w", snap.Err)
		}
		if len(snap.Data) == 0 {
			logErrln("no words left after filtering; writing an empty canvas")
		}
		path, err := saveSnapshot(ctx, st, c, snap, cloudOutput, time.Now())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if renderPreview && snap.Layout.Grid != nil {
			if err := stats.Preview(out, snap.Layout.Grid.Rows(), stats.TerminalWidth()); err != nil {
				return fmt.Errorf("failed to write preview: %w", err)
			}
		}
		if _, err := fmt.Fprintf(out, "%s (%d/%d words placed)\n", path, snap.Layout.PlacedCount(), len(snap.Data)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := run(); err != nil {
		return err
	}
	if err := saveSettings(ctx, st, c); err != nil {
		logger.Warn().Err(err).Msg("failed to remember render settings")
	}
	if !renderWatch {
		return nil
	}

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	logErrf("Watching %d file(s); press ctrl+c to stop\n", len(paths))
	return watchInputs(watchCtx, paths, func() {
		if err := run(); err != nil {
			logger.Error().Err(err).Msg("re-render failed")
		}
	})
}

// saveSnapshot draws snap, writes it to path and records the render.
func saveSnapshot(ctx context.Context, st *store.Store, c *cloud, snap pipeline.Snapshot, path string, startedAt time.Time) (string, error) {
	img, err := render.Draw(snap.Layout, c.draw)
	if err != nil {
		return "", fmt.Errorf("failed to draw cloud: %w", err)
	}
	if err := render.WritePNG(path, img); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	rec := model.RenderRecord{
		StartedAt:  startedAt,
		EndedAt:    time.Now(),
		Words:      len(snap.Data),
		Placed:     snap.Layout.PlacedCount(),
		Width:      c.draw.Width,
		Height:     c.draw.Height,
		Palette:    c.palette,
		OutputPath: path,
	}
	id, err := st.InsertRender(ctx, rec)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to record render")
	} else {
		c.logger.Info().Str("id", id).Str("path", path).Int("placed", rec.Placed).Msg("render saved")
	}
	return path, nil
}

// watchInputs calls onChange after writes to any of paths settle. The
// parent directories are watched so editors that replace files on save
// are still seen.
func watchInputs(ctx context.Context, paths []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			// Best-effort close on shutdown.
			_ = cerr
		}
	}()

	wanted := map[string]struct{}{}
	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		wanted[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := wanted[abs]; !ok {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				timer.Reset(watchDebounce)
				continue
			}
			return fmt.Errorf("watch failed: %w", err)
		case <-timer.C:
			onChange()
		}
	}
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
