package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadWordsSkipsCommentsAndSplitsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deny.txt")
	writeFile(t, path, "# stop words\nthe a\n\n  an \n")
	got, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"the", "a", "an"}) {
		t.Fatalf("unexpected words %v", got)
	}
}

func TestLoadDenyListMissingIsEmpty(t *testing.T) {
	got, err := LoadDenyList(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", got, err)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "beta")
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.txt"), "gamma")
	writeFile(t, filepath.Join(dir, "sub", "skip.md"), "no")

	got, err := ExpandInputs([]string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "**", "*.txt")})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "sub", "b.txt"),
		filepath.Join(dir, "sub", "deep", "c.txt"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := ExpandInputs([]string{filepath.Join(dir, "*.csv")}); err == nil {
		t.Fatalf("expected error for glob without matches")
	}
	if _, err := ExpandInputs([]string{dir}); err == nil {
		t.Fatalf("expected error for directory input")
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "one two")
	writeFile(t, b, "three")
	got, err := ReadText([]string{a, b}, nil)
	if err != nil || got != "one two\nthree" {
		t.Fatalf("unexpected text %q (%v)", got, err)
	}
	got, err = ReadText(nil, strings.NewReader("from stdin"))
	if err != nil || got != "from stdin" {
		t.Fatalf("unexpected stdin text %q (%v)", got, err)
	}
}
