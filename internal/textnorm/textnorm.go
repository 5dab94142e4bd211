// Package textnorm provides accent-insensitive text normalization and
// tokenization for Portuguese queries and documents.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalize strips diacritics (NFD decomposition, combining marks
// dropped), lowercases and trims the input. Total on any string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// transform.Chain carries state, so build a fresh transformer per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		// Fold failures only happen on broken UTF-8; fall back to the raw text.
		folded = text
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// ExtractWords tokenizes normalized text into a word set. With
// removeStopwords it also drops the fixed Portuguese stopword list.
func ExtractWords(text string, removeStopwords bool) map[string]struct{} {
	if text == "" {
		return map[string]struct{}{}
	}

	tokens := wordRegex.FindAllString(Normalize(text), -1)
	words := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if removeStopwords {
			if _, stop := stopwords[tok]; stop {
				continue
			}
		}
		words[tok] = struct{}{}
	}
	return words
}

// Overlap counts the words present in both sets.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// Intersects reports whether the sets share at least one word.
func Intersects(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for w := range a {
		if _, ok := b[w]; ok {
			return true
		}
	}
	return false
}
