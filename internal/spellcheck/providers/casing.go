// Package providers contains the spell check engines and the registry
// that selects between them.
package providers

import (
	"strings"
	"unicode"
)

// matchCase reshapes a lower-cased suggestion to follow the casing of
// the word it replaces.
func matchCase(word, suggestion string) string {
	if word == strings.ToUpper(word) && len(word) > 1 {
		return strings.ToUpper(suggestion)
	}
	runes := []rune(word)
	if len(runes) > 0 && unicode.IsUpper(runes[0]) {
		sr := []rune(suggestion)
		if len(sr) > 0 {
			sr[0] = unicode.ToUpper(sr[0])
		}
		return string(sr)
	}
	return suggestion
}

// isAbbreviation reports whether a word looks like an acronym or
// identifier rather than prose.
func isAbbreviation(word string) bool {
	if len(word) > 1 && word == strings.ToUpper(word) {
		return true
	}
	for _, r := range word {
		if unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// isLikelyProperNoun reports whether a capitalized word sits mid-sentence,
// which usually means it names something rather than misspells something.
func isLikelyProperNoun(text string, startPos int, word string) bool {
	runes := []rune(word)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	i := startPos - 1
	for i >= 0 && (text[i] == ' ' || text[i] == '\t' || text[i] == '"' || text[i] == '\'') {
		i--
	}
	if i < 0 {
		return false
	}
	switch text[i] {
	case '.', '!', '?', '\n':
		return false
	}
	return true
}
