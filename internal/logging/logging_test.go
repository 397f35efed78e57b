package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn default, got %v (%v)", lvl, err)
	}
	if lvl, err := ParseLevel(" DEBUG "); err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v (%v)", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.InfoLevel)
	logger.Debug().Msg("hidden")
	logger.Info().Int("words", 3).Msg("layout done")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug message filtered, got %q", out)
	}
	if !strings.Contains(out, "layout done") || !strings.Contains(out, "words=3") {
		t.Fatalf("unexpected output %q", out)
	}
}
