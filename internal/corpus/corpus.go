// Package corpus embeds a frequency-ranked list of common English words,
// most frequent first. It backs the offline spell check engines and the
// text prediction engines.
package corpus

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed words.txt
var data string

var (
	once  sync.Once
	words []string
	ranks map[string]int
)

func load() {
	once.Do(func() {
		ranks = make(map[string]int)
		for _, line := range strings.Split(data, "\n") {
			word := strings.TrimSpace(line)
			if word == "" {
				continue
			}
			if _, seen := ranks[word]; seen {
				continue
			}
			ranks[word] = len(words)
			words = append(words, word)
		}
	})
}

// Words returns the corpus in frequency order. Callers must not modify
// the returned slice.
func Words() []string {
	load()
	return words
}

// Contains reports whether the lower-cased word is in the corpus.
func Contains(word string) bool {
	load()
	_, ok := ranks[strings.ToLower(word)]
	return ok
}

// Rank returns the frequency rank of the lower-cased word, 0 being the
// most frequent. The second result is false for unknown words.
func Rank(word string) (int, bool) {
	load()
	rank, ok := ranks[strings.ToLower(word)]
	return rank, ok
}
