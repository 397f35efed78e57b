package tokenize

import (
	"strings"
	"unicode"
)

// Part-of-speech tags produced by Lexicon.
const (
	TagNoun        = "NOUN"
	TagProperNoun  = "PROPN"
	TagVerb        = "VERB"
	TagAuxiliary   = "AUX"
	TagAdjective   = "ADJ"
	TagAdverb      = "ADV"
	TagDeterminer  = "DET"
	TagPreposition = "ADP"
	TagPronoun     = "PRON"
	TagConjunction = "CONJ"
	TagNumber      = "NUM"
)

// Lexicon is a small dictionary and suffix based English tagger.
type Lexicon struct {
	lexicon map[string]string
}

// NewLexicon returns a tagger with the built-in word lists.
func NewLexicon() *Lexicon {
	l := &Lexicon{lexicon: make(map[string]string)}
	l.loadDefaults()
	return l
}

// Tokenize implements Tokenizer.
func (l *Lexicon) Tokenize(text string) []Token {
	spans := splitWords(text)
	surfaces := make([]string, len(spans))
	tags := make([]string, len(spans))
	for i, sp := range spans {
		surfaces[i] = sp.text
		tags[i] = l.baseline(sp.text, sp.sentenceStart)
	}
	for i := 1; i < len(tags); i++ {
		prev := tags[i-1]
		switch {
		case (prev == TagDeterminer || prev == TagAdjective) && tags[i] == TagVerb:
			tags[i] = TagNoun
		case strings.EqualFold(surfaces[i-1], "to") && tags[i] == TagNoun:
			tags[i] = TagVerb
		}
	}
	out := make([]Token, len(surfaces))
	for i, s := range surfaces {
		out[i] = Token{Surface: s, Base: baseForm(s, tags[i]), POS: tags[i]}
	}
	return out
}

func (l *Lexicon) baseline(word string, atStart bool) string {
	lower := strings.ToLower(word)
	if pos, ok := l.lexicon[lower]; ok {
		return pos
	}
	if isNumber(word) {
		return TagNumber
	}
	first := []rune(word)[0]
	if unicode.IsUpper(first) && !atStart {
		return TagProperNoun
	}
	switch {
	case strings.HasSuffix(lower, "ly"):
		return TagAdverb
	case strings.HasSuffix(lower, "ing"), strings.HasSuffix(lower, "ed"):
		return TagVerb
	case hasAnySuffix(lower, "ful", "less", "ous", "ive", "able", "ible", "al"):
		return TagAdjective
	default:
		return TagNoun
	}
}

func baseForm(word, tag string) string {
	lower := strings.ToLower(word)
	if tag != TagNoun {
		return lower
	}
	n := len(lower)
	switch {
	case n > 4 && strings.HasSuffix(lower, "ies"):
		return lower[:n-3] + "y"
	case n > 3 && strings.HasSuffix(lower, "s") && !hasAnySuffix(lower, "ss", "us", "is"):
		return lower[:n-1]
	}
	return lower
}

type span struct {
	text          string
	sentenceStart bool
}

// splitWords returns runs of letters, digits and inner apostrophes.
func splitWords(text string) []span {
	var out []span
	var b strings.Builder
	start := true
	runes := []rune(text)
	flush := func() {
		if b.Len() == 0 {
			return
		}
		out = append(out, span{text: b.String(), sentenceStart: start})
		b.Reset()
		start = false
	}
	for i, r := range runes {
		inner := (r == '\'' || r == '’') && b.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || inner {
			b.WriteRune(r)
			continue
		}
		flush()
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			start = true
		}
	}
	flush()
	return out
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func (l *Lexicon) add(tag string, words ...string) {
	for _, w := range words {
		l.lexicon[w] = tag
	}
}

func (l *Lexicon) loadDefaults() {
	l.add(TagDeterminer, "the", "a", "an", "this", "that", "these", "those", "my", "your",
		"his", "her", "its", "our", "their", "some", "any", "no", "every", "each", "all", "both")
	l.add(TagPreposition, "in", "on", "at", "to", "for", "with", "by", "from", "of", "about",
		"into", "through", "during", "before", "after", "above", "below", "between", "under", "over",
		"against", "among", "around", "behind", "near", "toward", "upon", "within", "without", "across")
	l.add(TagAuxiliary, "is", "are", "was", "were", "be", "been", "being", "am",
		"have", "has", "had", "do", "does", "did", "can", "could", "will", "would",
		"shall", "should", "may", "might", "must")
	l.add(TagConjunction, "and", "or", "but", "nor", "yet", "so", "because", "although",
		"while", "if", "unless", "until", "since", "when", "where", "whether")
	l.add(TagPronoun, "i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them",
		"who", "whom", "whose", "which", "what", "myself", "yourself", "itself", "themselves")
	l.add(TagAdjective, "old", "new", "good", "bad", "great", "small", "large", "big", "little",
		"young", "long", "short", "high", "low", "early", "late", "first", "last", "dark",
		"bright", "black", "white", "red", "blue", "green")
	l.add(TagAdverb, "very", "quite", "rather", "really", "too", "just", "only",
		"now", "then", "here", "there", "always", "never", "often", "sometimes", "already", "still", "even", "not")
	l.add(TagVerb, "go", "went", "gone", "come", "came", "say", "said", "see", "saw", "seen",
		"know", "knew", "known", "take", "took", "taken", "get", "got", "make", "made",
		"run", "ran", "think", "thought", "want", "use", "find", "found", "give", "gave",
		"tell", "told", "work", "call", "try", "ask", "need", "feel", "felt", "become", "leave", "put", "talk")
}
