package spellcheck

import "regexp"

// Token is a word extracted from a text together with its byte offsets.
type Token struct {
	Word     string
	StartPos int
	EndPos   int
}

// wordPattern matches maximal runs of alphanumeric/underscore characters.
// All providers share this rule so error positions are comparable across
// engines.
var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Tokenize extracts words with their start and end byte positions.
func Tokenize(text string) []Token {
	matches := wordPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{
			Word:     text[m[0]:m[1]],
			StartPos: m[0],
			EndPos:   m[1],
		})
	}
	return tokens
}
