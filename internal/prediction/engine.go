// Package prediction provides inline text continuation engines for the
// editor. Engines are purely statistical; no network calls are involved.
package prediction

import (
	"context"
	"strings"
)

// DefaultMaxPredictions caps the continuation list when the client does
// not ask for a specific count.
const DefaultMaxPredictions = 5

// Request carries the editor context around the cursor.
//
// Cursor is a byte offset into CurrentText and is clamped by the
// engines, so out-of-range values from the client are safe.
type Request struct {
	PrevContext    string
	CurrentText    string
	AfterContext   string
	Cursor         int
	MaxPredictions int
}

// Engine produces ranked text continuations for a cursor position.
// Returned strings are ready to insert as-is: they carry any leading or
// trailing space needed to keep the insertion from running into the
// adjacent characters.
type Engine interface {
	Name() string
	Predict(ctx context.Context, req Request) []string
}

// splitAtCursor clamps the cursor and splits the current text around it.
func splitAtCursor(text string, cursor int) (before, after string) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	return text[:cursor], text[cursor:]
}

// surroundingSpaces computes the padding a continuation needs so that
// inserting it at the cursor never glues it to a neighbouring word.
func surroundingSpaces(before, after string) (prefix, suffix string) {
	if before != "" && !strings.HasSuffix(before, " ") {
		prefix = " "
	}
	if after != "" && !strings.HasPrefix(after, " ") {
		suffix = " "
	}
	return prefix, suffix
}

func maxPredictions(req Request) int {
	if req.MaxPredictions <= 0 {
		return DefaultMaxPredictions
	}
	return req.MaxPredictions
}

// lastWords returns the trailing word tokens of the text before the
// cursor, lower-cased.
func lastWords(before string, n int) []string {
	words := strings.Fields(strings.ToLower(before))
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return words
}
