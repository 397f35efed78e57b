package store

import (
	"context"
	"errors"

	"github.com/verte-zerg/tagcloud/internal/filter"
)

// Setting keys.
const (
	KeyLengthRange    = "filters.length.range"
	KeyFreqRange      = "filters.freq.range"
	KeyDenyText       = "filters.deny.text"
	KeyClassChoices   = "filters.class.choices"
	KeyEnabledFilters = "filters.enabled"
	KeyPalette        = "palette.name"
	KeyColorMode      = "palette.mode"
	KeyRotation       = "rotation"
)

// LoadFilters applies stored filter state to set. Missing keys leave the
// filter at its default.
func LoadFilters(ctx context.Context, s *Store, set *filter.Set) error {
	if err := loadRange(ctx, s, KeyLengthRange, set.Length()); err != nil {
		return err
	}
	if err := loadRange(ctx, s, KeyFreqRange, set.Freq()); err != nil {
		return err
	}
	if f := set.Deny(); f != nil {
		text, err := Load(ctx, s, KeyDenyText, "")
		if err != nil {
			return err
		}
		f.SetDenyText(text)
	}
	if f := set.Class(); f != nil {
		choices, err := Load(ctx, s, KeyClassChoices, map[string]bool{})
		if err != nil {
			return err
		}
		for tag, allowed := range choices {
			f.SetAllowed(tag, allowed)
		}
	}
	var enabled []filter.Kind
	if err := s.Get(ctx, KeyEnabledFilters, &enabled); err == nil {
		set.EnableOnly(enabled)
	} else if !isNotFound(err) {
		return err
	}
	return nil
}

// SaveFilters writes the current filter state.
func SaveFilters(ctx context.Context, s *Store, set *filter.Set) error {
	if f := set.Length(); f != nil {
		if err := s.Set(ctx, KeyLengthRange, f.State()); err != nil {
			return err
		}
	}
	if f := set.Freq(); f != nil {
		if err := s.Set(ctx, KeyFreqRange, f.State()); err != nil {
			return err
		}
	}
	if f := set.Deny(); f != nil {
		if err := s.Set(ctx, KeyDenyText, f.Text()); err != nil {
			return err
		}
	}
	if f := set.Class(); f != nil {
		if err := s.Set(ctx, KeyClassChoices, f.Choices()); err != nil {
			return err
		}
	}
	enabled := []filter.Kind{}
	for _, k := range filter.Kinds {
		if set.Enabled(k) {
			enabled = append(enabled, k)
		}
	}
	return s.Set(ctx, KeyEnabledFilters, enabled)
}

func loadRange(ctx context.Context, s *Store, key string, f *filter.RangeFilter) error {
	if f == nil {
		return nil
	}
	var st filter.RangeState
	if err := s.Get(ctx, key, &st); err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	f.Restore(st)
	return nil
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}
