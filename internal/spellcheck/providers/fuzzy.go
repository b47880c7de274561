package providers

import (
	"context"
	"strings"

	"github.com/sajari/fuzzy"

	"github.com/mrlokans/scribe/internal/corpus"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

// FuzzyProvider wraps a sajari/fuzzy model trained on the embedded
// corpus. It tends to give better-ranked suggestions than the plain
// wordlist scan for common typos.
type FuzzyProvider struct {
	model       *fuzzy.Model
	initialized bool
}

func NewFuzzyProvider() *FuzzyProvider {
	return &FuzzyProvider{}
}

func (p *FuzzyProvider) Name() string { return "fuzzy" }

func (p *FuzzyProvider) Initialize(ctx context.Context) bool {
	words := corpus.Words()
	if len(words) == 0 {
		return false
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(words)

	p.model = model
	p.initialized = true
	return true
}

func (p *FuzzyProvider) Available() bool { return p.initialized }

func (p *FuzzyProvider) Languages() []string { return []string{"en"} }

func (p *FuzzyProvider) Close() error { return nil }

func (p *FuzzyProvider) Check(ctx context.Context, text, language string) spellcheck.Result {
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
		lower := strings.ToLower(token.Word)
		if corpus.Contains(lower) {
			continue
		}
		result.Errors = append(result.Errors, spellcheck.Error{
			Word:        token.Word,
			StartPos:    token.StartPos,
			EndPos:      token.EndPos,
			Suggestions: p.suggest(token.Word, lower),
		})
	}
	return result
}

func (p *FuzzyProvider) suggest(word, lower string) []string {
	seen := make(map[string]bool)
	suggestions := make([]string, 0, spellcheck.MaxSuggestions)

	appendOne := func(s string) {
		if s == "" || s == lower || seen[s] {
			return
		}
		seen[s] = true
		suggestions = append(suggestions, matchCase(word, s))
	}

	if best := p.model.SpellCheck(lower); best != "" {
		appendOne(best)
	}
	for _, s := range p.model.Suggestions(lower, false) {
		if len(suggestions) == spellcheck.MaxSuggestions {
			break
		}
		appendOne(s)
	}
	return suggestions
}
