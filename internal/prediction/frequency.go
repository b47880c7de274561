package prediction

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// seedText gives the frequency tables something to work with before any
// document text has been observed.
const seedText = `
The quick brown fox jumps over the lazy dog. This is a sample text.
We need to provide some basic patterns for prediction. The system
should be able to predict common word sequences. For example, when
you type the word the, it might suggest quick or best or most.
A good prediction system will help users write more efficiently.
`

// FrequencyEngine predicts from word, bigram and trigram frequency
// tables. It keeps learning from document edits as they arrive, so its
// suggestions drift toward the user's own vocabulary over time.
type FrequencyEngine struct {
	mu       sync.RWMutex
	words    map[string]int
	bigrams  map[string]map[string]int
	trigrams map[string]map[string]int
}

func NewFrequencyEngine() *FrequencyEngine {
	e := &FrequencyEngine{
		words:    make(map[string]int),
		bigrams:  make(map[string]map[string]int),
		trigrams: make(map[string]map[string]int),
	}
	e.Learn(seedText)
	return e
}

func (e *FrequencyEngine) Name() string { return "frequency" }

// Learn folds the text's word sequences into the frequency tables.
func (e *FrequencyEngine) Learn(text string) {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, w := range words {
		e.words[w]++
	}
	for i := 0; i+1 < len(words); i++ {
		if e.bigrams[words[i]] == nil {
			e.bigrams[words[i]] = make(map[string]int)
		}
		e.bigrams[words[i]][words[i+1]]++
	}
	for i := 0; i+2 < len(words); i++ {
		key := words[i] + " " + words[i+1]
		if e.trigrams[key] == nil {
			e.trigrams[key] = make(map[string]int)
		}
		e.trigrams[key][words[i+2]]++
	}
}

func (e *FrequencyEngine) Predict(ctx context.Context, req Request) []string {
	before, after := splitAtCursor(req.CurrentText, req.Cursor)
	if strings.TrimSpace(before) == "" {
		return nil
	}

	words := wordPattern.FindAllString(strings.ToLower(before), -1)
	if len(words) == 0 {
		return nil
	}

	prefix, suffix := surroundingSpaces(before, after)
	limit := maxPredictions(req)

	e.mu.RLock()
	defer e.mu.RUnlock()

	var ranked []string
	if len(words) >= 2 {
		ranked = topByCount(e.trigrams[words[len(words)-2]+" "+words[len(words)-1]], limit)
	}
	if len(ranked) == 0 {
		ranked = topByCount(e.bigrams[words[len(words)-1]], limit)
	}
	if len(ranked) == 0 {
		last := words[len(words)-1]
		for _, w := range topByCount(e.words, limit+1) {
			if w != last {
				ranked = append(ranked, w)
			}
			if len(ranked) == limit {
				break
			}
		}
	}

	out := make([]string, 0, len(ranked))
	for _, w := range ranked {
		out = append(out, prefix+w+suffix)
	}
	return out
}

func topByCount(counts map[string]int, limit int) []string {
	if len(counts) == 0 {
		return nil
	}
	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for w, c := range counts {
		entries = append(entries, entry{word: w, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.word
	}
	return out
}
