// Package pipeline turns text into a laid out word cloud: tokenize,
// filter, count, size and place.
package pipeline

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tagcloud/internal/filter"
	"github.com/verte-zerg/tagcloud/internal/layout"
	"github.com/verte-zerg/tagcloud/internal/model"
	"github.com/verte-zerg/tagcloud/internal/tokenize"
	"github.com/verte-zerg/tagcloud/internal/transform"
	"github.com/verte-zerg/tagcloud/internal/words"
)

// Config holds the non-filter inputs.
type Config struct {
	Tokenizer   tokenize.Tokenizer
	UseBaseForm bool
	Size        transform.SizeMap
	Layout      layout.Options
}

// Snapshot is every intermediate value of one run.
type Snapshot struct {
	Words     []model.Word
	Mask      []bool
	Surviving []model.Word
	Frequency *words.FrequencyTable
	Data      []model.Datum
	Layout    layout.Result
	Err       error
	// Fingerprint identifies the layout input.
	Fingerprint uint64
}

// Pipeline recomputes on demand and memoizes the layout by input
// fingerprint. While frozen it keeps serving the last snapshot.
type Pipeline struct {
	cfg     Config
	filters *filter.Set
	text    string
	log     zerolog.Logger

	cfgVersion uint64
	frozen     bool
	hasLast    bool
	last       Snapshot
	hasGood    bool
	good       Snapshot

	tokensKey uint64
	tokens    []model.Word
}

// New returns a pipeline over filters. A nil filter set uses DefaultSet.
func New(cfg Config, filters *filter.Set, logger zerolog.Logger) *Pipeline {
	if filters == nil {
		filters = filter.DefaultSet()
	}
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = tokenize.Whitespace{}
	}
	return &Pipeline{cfg: cfg, filters: filters, log: logger}
}

// Filters exposes the filter set for editing.
func (p *Pipeline) Filters() *filter.Set {
	return p.filters
}

// SetText replaces the source text.
func (p *Pipeline) SetText(text string) {
	p.text = text
}

// Text returns the source text.
func (p *Pipeline) Text() string {
	return p.text
}

// Config returns the current configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// SetConfig replaces the configuration.
func (p *Pipeline) SetConfig(cfg Config) {
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = tokenize.Whitespace{}
	}
	p.cfg = cfg
	p.cfgVersion++
}

// SetLayoutOptions replaces only the layout options.
func (p *Pipeline) SetLayoutOptions(opts layout.Options) {
	p.cfg.Layout = opts
	p.cfgVersion++
}

// SetSizeMap replaces only the size map.
func (p *Pipeline) SetSizeMap(m transform.SizeMap) {
	p.cfg.Size = m
	p.cfgVersion++
}

// Freeze stops or resumes recomputation. Unfreezing recomputes at once.
func (p *Pipeline) Freeze(frozen bool) {
	p.frozen = frozen
	if !frozen {
		p.Result()
	}
}

// Frozen reports whether recomputation is paused.
func (p *Pipeline) Frozen() bool {
	return p.frozen
}

// Result returns the current snapshot, recomputing unless frozen. A
// frozen pipeline serves the most recent successful snapshot.
func (p *Pipeline) Result() Snapshot {
	if p.frozen {
		if p.hasGood {
			return p.good
		}
		if p.hasLast {
			return p.last
		}
	}
	p.last = p.compute()
	p.hasLast = true
	if p.last.Err == nil {
		p.good = p.last
		p.hasGood = true
	}
	return p.last
}

// Preview runs tokenize and filters only. It ignores freeze so editors
// can show filter effects while the layout stays fixed.
func (p *Pipeline) Preview() Snapshot {
	ws := p.words()
	mask := p.filters.Apply(ws)
	surviving := filter.Surviving(ws, mask)
	return Snapshot{Words: ws, Mask: mask, Surviving: surviving, Frequency: words.CalcFrequency(surviving)}
}

func (p *Pipeline) words() []model.Word {
	key := p.textKey()
	if p.tokens != nil && key == p.tokensKey {
		return p.tokens
	}
	p.tokens = tokenize.ToWords(p.cfg.Tokenizer.Tokenize(p.text), p.cfg.UseBaseForm)
	p.tokensKey = key
	return p.tokens
}

func (p *Pipeline) textKey() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(p.text)
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], p.cfgVersion)
	if p.cfg.UseBaseForm {
		buf[8] = 1
	}
	_, _ = d.Write(buf[:])
	return d.Sum64()
}

func (p *Pipeline) compute() Snapshot {
	start := time.Now()
	snap := p.Preview()
	snap.Data = Data(snap.Frequency, p.cfg.Size)
	snap.Fingerprint = p.layoutKey(snap.Surviving)

	if p.hasLast && p.last.Err == nil && p.last.Fingerprint == snap.Fingerprint {
		snap.Layout = p.last.Layout
		p.log.Debug().Uint64("fingerprint", snap.Fingerprint).Msg("layout input unchanged")
		return snap
	}

	res, err := layout.New(p.cfg.Layout).Layout(snap.Data)
	snap.Layout = res
	snap.Err = err
	if err != nil {
		p.log.Warn().Err(err).Msg("layout failed")
		return snap
	}
	p.log.Debug().
		Int("words", len(snap.Words)).
		Int("surviving", len(snap.Surviving)).
		Int("placed", res.PlacedCount()).
		Dur("took", time.Since(start)).
		Msg("layout done")
	return snap
}

// layoutKey identifies the layout input: the surviving words plus the
// configuration version that sizes and places them.
func (p *Pipeline) layoutKey(surviving []model.Word) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], words.Fingerprint(surviving))
	binary.LittleEndian.PutUint64(buf[8:], p.cfgVersion)
	return xxhash.Sum64(buf[:])
}

// Data converts a frequency table into layout input. Entries sharing a
// text under different tags are summed so each text is drawn once.
func Data(ft *words.FrequencyTable, size transform.SizeMap) []model.Datum {
	entries := ft.Entries()
	index := make(map[string]int, len(entries))
	counts := make([]int, 0, len(entries))
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		i, ok := index[e.Word.Text]
		if !ok {
			i = len(texts)
			index[e.Word.Text] = i
			texts = append(texts, e.Word.Text)
			counts = append(counts, 0)
		}
		counts[i] += e.Count
	}
	out := make([]model.Datum, len(texts))
	for i, text := range texts {
		out[i] = model.Datum{Text: text, Weight: size.Apply(float64(counts[i]))}
	}
	return out
}
