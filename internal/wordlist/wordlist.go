// Package wordlist loads input text and deny lists from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadWords reads whitespace separated words from path. Blank lines and
// lines starting with # are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return words, nil
}

// LoadDenyList reads a deny list, treating a missing file as empty.
func LoadDenyList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	words, err := LoadWords(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return words, err
}
