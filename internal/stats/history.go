package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/store"
)

// History lists recent renders.
type History struct {
	Renders []model.RenderRecord
}

// BuildHistory loads the last n renders.
func BuildHistory(ctx context.Context, st *store.Store, n int) (History, error) {
	recs, err := st.ListRenders(ctx, n)
	if err != nil {
		return History{}, err
	}
	return History{Renders: recs}, nil
}

// Render prints one row per render, newest first.
func (h History) Render(w io.Writer) error {
	if len(h.Renders) == 0 {
		_, err := fmt.Fprintln(w, "No renders yet.")
		return err
	}
	rows := make([][]string, 0, len(h.Renders))
	for _, r := range h.Renders {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d/%d", r.Placed, r.Words),
			r.Palette,
			r.OutputPath,
			shortID(r.ID),
		})
	}
	lines := formatTable([]string{"When", "Size", "Placed", "Palette", "Output", "ID"}, rows, map[int]bool{2: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PlacementRate returns placed/words per render, oldest first.
func (h History) PlacementRate() []float64 {
	out := make([]float64, 0, len(h.Renders))
	for i := len(h.Renders) - 1; i >= 0; i-- {
		r := h.Renders[i]
		if r.Words == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, float64(r.Placed)/float64(r.Words))
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
