// Package tokenize turns raw text into tagged words.
package tokenize

import (
	"strings"

	"github.com/verte-zerg/tagcloud/internal/model"
)

// Token is a tokenizer output triple.
type Token struct {
	Surface string
	Base    string
	POS     string
}

// Tokenizer splits text into tokens.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// Whitespace splits on runs of whitespace and tags every token with "*".
type Whitespace struct{}

// Tokenize implements Tokenizer.
func (Whitespace) Tokenize(text string) []Token {
	fields := strings.Fields(text)
	out := make([]Token, 0, len(fields))
	for _, f := range fields {
		out = append(out, Token{Surface: f, Base: f, POS: model.WildcardTag})
	}
	return out
}

// ToWords converts tokens to words using either the surface or base form.
// Tokens whose chosen form is empty fall back to the surface form.
func ToWords(tokens []Token, useBaseForm bool) []model.Word {
	out := make([]model.Word, 0, len(tokens))
	for _, t := range tokens {
		text := t.Surface
		if useBaseForm && t.Base != "" {
			text = t.Base
		}
		if text == "" {
			continue
		}
		tag := t.POS
		if tag == "" {
			tag = model.WildcardTag
		}
		out = append(out, model.Word{Text: text, Tag: tag})
	}
	return out
}

// ForName returns the tokenizer registered under name.
func ForName(name string) (Tokenizer, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "whitespace":
		return Whitespace{}, true
	case "lexicon", "en":
		return NewLexicon(), true
	default:
		return nil, false
	}
}
