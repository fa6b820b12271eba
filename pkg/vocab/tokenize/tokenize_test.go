package tokenize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDiacriticGate(t *testing.T) {
	ext := New(Options{})

	// "Xin chào" qualifies; "Hello world" has no diacritic and must
	// contribute nothing.
	tokens := ext.Extract("Xin chào. Hello world.")
	assert.Equal(t, []string{"chào", "xin"}, tokens)
}

func TestExtractNoDiacriticsNoTokens(t *testing.T) {
	ext := New(Options{})
	assert.Empty(t, ext.Extract("This is plain English text. No accents at all."))
}

func TestHasDiacritic(t *testing.T) {
	ext := New(Options{})

	tests := []struct {
		span string
		want bool
	}{
		{"xin chào", true},
		{"CHÀO", true}, // gate is case-insensitive
		{"hello", false},
		{"", false},
		{"đi", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ext.HasDiacritic(tt.span), tt.span)
	}
}

func TestExtractMinLength(t *testing.T) {
	ext := New(Options{})

	// "ở" is a real word but a single rune; the length floor drops it.
	tokens := ext.Extract("ở đây")
	assert.Equal(t, []string{"đây"}, tokens)
}

func TestExtractTokenAlphabet(t *testing.T) {
	ext := New(Options{})

	tokens := ext.Extract("năm 2024, giá 5.000đ!")
	for _, tok := range tokens {
		assert.NotContains(t, tok, "2")
		assert.NotContains(t, tok, ".")
		assert.NotContains(t, tok, " ")
		assert.GreaterOrEqual(t, utf8.RuneCountInString(tok), 2)
		assert.Equal(t, strings.ToLower(tok), tok)
	}
}

func TestExtractWithinRecordDedup(t *testing.T) {
	ext := New(Options{})

	tokens := ext.Extract("chào bạn. chào bạn. chào bạn.")
	assert.Equal(t, []string{"bạn", "chào"}, tokens)
}

func TestExtractSplitsOnLineBreaks(t *testing.T) {
	ext := New(Options{})

	// The diacritic line qualifies on its own; the ASCII line is a
	// separate span and is dropped.
	tokens := ext.Extract("dòng có dấu\nplain ascii line")
	assert.Equal(t, []string{"có", "dòng", "dấu"}, tokens)
	assert.NotContains(t, tokens, "plain")
}

func TestExtractNormalizesNFC(t *testing.T) {
	ext := New(Options{})

	// "chào" with a combining grave accent instead of the precomposed rune.
	decomposed := "xin cha\u0300o"
	require.NotEqual(t, "xin chào", decomposed)

	tokens := ext.Extract(decomposed)
	assert.Equal(t, []string{"chào", "xin"}, tokens)
}

func TestExtractStopwords(t *testing.T) {
	ext := New(Options{Stopwords: []string{"và"}})

	tokens := ext.Extract("sách và vở")
	assert.Equal(t, []string{"sách", "vở"}, tokens)
}

func TestExtractIsTotal(t *testing.T) {
	ext := New(Options{})
	assert.Empty(t, ext.Extract(""))
	assert.Empty(t, ext.Extract("\n\n\n"))
	assert.Empty(t, ext.Extract("...!!!;;;"))
}
