package prediction

import (
	"context"
	"sort"
	"strings"

	"github.com/mrlokans/scribe/internal/corpus"
)

// bigrams maps a finished word to its most likely continuations, best
// first.
var bigrams = map[string][]string{
	"the":   {"quick", "best", "most", "first", "last", "only", "same", "next"},
	"a":     {"new", "good", "great", "small", "large", "simple", "quick", "long"},
	"an":    {"example", "important", "interesting", "easy", "effective", "old"},
	"is":    {"a", "the", "not", "very", "also", "often", "always", "still"},
	"was":   {"a", "the", "not", "very", "also", "once", "never", "still"},
	"are":   {"not", "also", "very", "often", "always", "still", "usually"},
	"will":  {"be", "not", "also", "never", "always", "probably"},
	"can":   {"be", "not", "also", "never", "always", "often", "sometimes"},
	"have":  {"been", "not", "also", "never", "always", "often", "already"},
	"this":  {"is", "was", "will", "can", "should", "might", "would"},
	"that":  {"is", "was", "will", "can", "should", "might", "would"},
	"in":    {"the", "a", "this", "that", "order", "fact", "general"},
	"on":    {"the", "a", "this", "that", "top", "behalf", "time"},
	"at":    {"the", "a", "this", "that", "least", "most", "first"},
	"for":   {"the", "a", "this", "that", "example", "instance"},
	"with":  {"the", "a", "this", "that", "respect", "regard"},
	"by":    {"the", "a", "this", "that", "way", "means", "using"},
	"to":    {"be", "have", "do", "get", "make", "take", "go", "come"},
	"of":    {"the", "a", "this", "that", "course", "all", "some"},
	"and":   {"the", "a", "this", "that", "then", "so", "also"},
	"or":    {"not", "a", "the", "more", "less", "other", "another"},
	"but":   {"not", "also", "the", "it", "they", "we"},
	"if":    {"you", "we", "they", "it", "the", "not", "possible"},
	"when":  {"you", "we", "they", "it", "the", "not", "possible"},
	"where": {"you", "we", "they", "it", "the", "not", "possible"},
	"how":   {"to", "do", "can", "will", "would", "should", "might"},
	"what":  {"is", "was", "will", "can", "should", "might", "would"},
	"who":   {"is", "was", "will", "can", "should", "might", "would"},
	"why":   {"is", "was", "will", "can", "should", "might", "would"},
}

var questionWords = []string{"what", "how", "why", "when", "where", "who"}

// programmingContinuations fires when the user appears to be writing
// code-flavoured prose.
var programmingContinuations = map[string]string{
	"def":    "function_name():",
	"class":  "ClassName:",
	"import": "module_name",
	"return": "result",
}

// HeuristicEngine predicts continuations from a curated bigram table,
// corpus-backed partial word completion, and a handful of rules for
// questions and code-like text.
type HeuristicEngine struct{}

func NewHeuristicEngine() *HeuristicEngine {
	return &HeuristicEngine{}
}

func (e *HeuristicEngine) Name() string { return "heuristic" }

func (e *HeuristicEngine) Predict(ctx context.Context, req Request) []string {
	before, after := splitAtCursor(req.CurrentText, req.Cursor)
	if strings.TrimSpace(before) == "" {
		return nil
	}

	prefix, suffix := surroundingSpaces(before, after)
	limit := maxPredictions(req)

	pad := func(words []string) []string {
		out := make([]string, 0, len(words))
		for _, w := range words {
			out = append(out, prefix+w+suffix)
			if len(out) == limit {
				break
			}
		}
		return out
	}

	words := lastWords(before, 2)
	midWord := !strings.HasSuffix(before, " ")

	// Mid-word: complete the partial word instead of predicting the next
	// one. The completion replaces nothing, so only the missing tail is
	// returned.
	if midWord && len(words) > 0 {
		partial := words[len(words)-1]
		if completions := completePartial(partial, limit); len(completions) > 0 {
			out := make([]string, 0, len(completions))
			for _, c := range completions {
				out = append(out, strings.TrimPrefix(c, partial)+suffix)
			}
			return out
		}
	}

	if !midWord && len(words) > 0 {
		last := words[len(words)-1]
		if next, ok := bigrams[last]; ok {
			return pad(next)
		}
		if continuation, ok := programmingContinuations[last]; ok {
			return pad([]string{continuation})
		}
	}

	lower := strings.ToLower(strings.TrimSpace(before))
	for _, q := range questionWords {
		if strings.HasPrefix(lower, q+" ") || lower == q {
			return pad([]string{"is the answer to this question"})
		}
	}

	return pad([]string{statisticalGuess(words)})
}

// completePartial finds corpus words extending the partial word, ranked
// by frequency then length.
func completePartial(partial string, limit int) []string {
	if len(partial) < 2 {
		return nil
	}

	type candidate struct {
		word string
		rank int
	}
	var candidates []candidate
	for rank, word := range corpus.Words() {
		if len(word) > len(partial) && strings.HasPrefix(word, partial) {
			candidates = append(candidates, candidate{word: word, rank: rank})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		return len(candidates[i].word) < len(candidates[j].word)
	})

	out := make([]string, 0, limit)
	for _, c := range candidates {
		out = append(out, c.word)
		if len(out) == limit {
			break
		}
	}
	return out
}

func statisticalGuess(words []string) string {
	if len(words) == 0 {
		return "the"
	}
	last := words[len(words)-1]
	switch {
	case strings.HasSuffix(last, "ing"), strings.HasSuffix(last, "ly"):
		return "the"
	case strings.HasSuffix(last, "ed"):
		return "and"
	case strings.HasSuffix(last, "er"):
		return "is"
	default:
		return "and"
	}
}
