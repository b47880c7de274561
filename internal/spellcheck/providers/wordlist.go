package providers

import (
	"context"
	"sort"
	"strings"

	"github.com/mrlokans/scribe/internal/corpus"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

const wordlistMaxDistance = 2

// WordlistProvider checks words against the embedded corpus and suggests
// replacements by edit distance. It has no external dependencies and is
// the fallback when every other engine is unavailable.
type WordlistProvider struct {
	initialized bool
}

func NewWordlistProvider() *WordlistProvider {
	return &WordlistProvider{}
}

func (p *WordlistProvider) Name() string { return "wordlist" }

func (p *WordlistProvider) Initialize(ctx context.Context) bool {
	p.initialized = len(corpus.Words()) > 0
	return p.initialized
}

func (p *WordlistProvider) Available() bool { return p.initialized }

func (p *WordlistProvider) Languages() []string { return []string{"en"} }

func (p *WordlistProvider) Close() error { return nil }

func (p *WordlistProvider) Check(ctx context.Context, text, language string) spellcheck.Result {
	result := spellcheck.EmptyResult(text, language, p.Name())
	if !p.initialized || strings.TrimSpace(text) == "" {
		return result
	}

	for _, token := range spellcheck.Tokenize(text) {
		if ctx.Err() != nil {
			return spellcheck.EmptyResult(text, language, p.Name())
		}
		if isAbbreviation(token.Word) {
			continue
		}
		if corpus.Contains(token.Word) {
			continue
		}
		result.Errors = append(result.Errors, spellcheck.Error{
			Word:        token.Word,
			StartPos:    token.StartPos,
			EndPos:      token.EndPos,
			Suggestions: p.suggest(token.Word),
		})
	}
	return result
}

func (p *WordlistProvider) suggest(word string) []string {
	lower := strings.ToLower(word)

	type candidate struct {
		word     string
		distance int
		rank     int
	}
	var candidates []candidate

	for rank, known := range corpus.Words() {
		if abs(len(known)-len(lower)) > wordlistMaxDistance {
			continue
		}
		d := editDistance(lower, known, wordlistMaxDistance)
		if d > wordlistMaxDistance {
			continue
		}
		candidates = append(candidates, candidate{word: known, distance: d, rank: rank})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].rank < candidates[j].rank
	})

	suggestions := make([]string, 0, spellcheck.MaxSuggestions)
	for _, c := range candidates {
		suggestions = append(suggestions, matchCase(word, c.word))
		if len(suggestions) == spellcheck.MaxSuggestions {
			break
		}
	}
	return suggestions
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// editDistance computes Damerau-Levenshtein distance, bailing out early
// once the distance provably exceeds max.
func editDistance(a, b string, max int) int {
	la, lb := len(a), len(b)
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		best := curr[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if prev2[j-2]+1 < curr[j] {
					curr[j] = prev2[j-2] + 1
				}
			}
			if curr[j] < best {
				best = curr[j]
			}
		}
		if best > max {
			return max + 1
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
