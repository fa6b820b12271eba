// Package tokenize splits stripped record text into sentence-like spans,
// gates each span on the presence of Vietnamese diacritics, and extracts a
// deduplicated set of lowercase tokens from the spans that pass.
package tokenize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Diacritics is the fixed Vietnamese diacritic alphabet behind the sentence
// gate. A span qualifies when its lowercased form contains at least one of
// these runes.
const Diacritics = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ"

// wordPattern matches maximal runs of the extended Vietnamese Latin
// alphabet: ASCII letters plus the enumerated diacritic letters.
var wordPattern = regexp.MustCompile(`[a-zA-ZàáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđĐ]+`)

// sentencePattern splits plain text into sentence-like spans: sentence
// punctuation followed by whitespace, or line breaks.
var sentencePattern = regexp.MustCompile(`[.!?;]\s+|\n+`)

// Options configures an Extractor.
type Options struct {
	// MinRunes is the minimum token length in runes. Zero means 2.
	MinRunes int
	// Stopwords are tokens excluded from extraction. Optional.
	Stopwords []string
}

// Extractor turns stripped record text into a sorted token set.
type Extractor struct {
	minRunes   int
	stopwords  map[string]struct{}
	diacritics map[rune]struct{}
}

// New builds an Extractor.
func New(opts Options) *Extractor {
	min := opts.MinRunes
	if min <= 0 {
		min = 2
	}
	stops := make(map[string]struct{}, len(opts.Stopwords))
	for _, w := range opts.Stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	dia := make(map[rune]struct{}, utf8.RuneCountInString(Diacritics))
	for _, r := range Diacritics {
		dia[r] = struct{}{}
	}
	return &Extractor{minRunes: min, stopwords: stops, diacritics: dia}
}

// HasDiacritic reports whether the span contains at least one character
// from the diacritic alphabet, case-insensitively.
func (e *Extractor) HasDiacritic(span string) bool {
	for _, r := range strings.ToLower(span) {
		if _, ok := e.diacritics[r]; ok {
			return true
		}
	}
	return false
}

// Extract returns the record's token set, sorted, with within-record
// duplicates removed. Spans without diacritics contribute nothing.
// Duplicates across records are intentionally left for the global dedup
// phase. Extract is total: any input yields a (possibly empty) result.
func (e *Extractor) Extract(text string) []string {
	// Decomposed diacritics would slip past the alphabet otherwise.
	text = norm.NFC.String(text)

	seen := make(map[string]struct{})
	for _, span := range sentencePattern.Split(text, -1) {
		if !e.HasDiacritic(span) {
			continue
		}
		for _, w := range wordPattern.FindAllString(span, -1) {
			w = strings.ToLower(w)
			if utf8.RuneCountInString(w) < e.minRunes {
				continue
			}
			if _, stop := e.stopwords[w]; stop {
				continue
			}
			seen[w] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(seen))
	for w := range seen {
		tokens = append(tokens, w)
	}
	sort.Strings(tokens)
	return tokens
}
