package providers

import (
	"context"
	"log"
	"strings"

	"github.com/trustmaster/go-aspell"

	"github.com/mrlokans/scribe/internal/spellcheck"
)

// AspellProvider checks words through the system aspell library. It has
// proper morphological dictionaries, so it beats the corpus-based engines
// on inflected forms, but it only works when the native library and a
// dictionary for the requested language are installed.
type AspellProvider struct {
	speller     aspell.Speller
	language    string
	initialized bool
}

func NewAspellProvider(language string) *AspellProvider {
	if language == "" {
		language = "en"
	}
	return &AspellProvider{language: language}
}

func (p *AspellProvider) Name() string { return "aspell" }

func (p *AspellProvider) Initialize(ctx context.Context) bool {
	speller, err := aspell.NewSpeller(map[string]string{
		"lang":     aspellLang(p.language),
		"sug-mode": "normal",
		"encoding": "utf-8",
	})
	if err != nil {
		log.Printf("aspell unavailable: %v", err)
		return false
	}
	p.speller = speller
	p.initialized = true
	return true
}

func (p *AspellProvider) Available() bool { return p.initialized }

func (p *AspellProvider) Languages() []string { return []string{p.language} }

func (p *AspellProvider) Close() error {
	if p.initialized {
		p.speller.Delete()
		p.initialized = false
	}
	return nil
}

func (p *AspellProvider) Check(ctx context.Context, text, language string) spellcheck.Result {
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
		if isLikelyProperNoun(text, token.StartPos, token.Word) {
			continue
		}
		if p.speller.Check(token.Word) {
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

// suggest keeps aspell's ranking but floats suggestions whose casing
// already matches the typed word to the front.
func (p *AspellProvider) suggest(word string) []string {
	raw := p.speller.Suggest(word)
	if len(raw) > spellcheck.MaxSuggestions {
		raw = raw[:spellcheck.MaxSuggestions]
	}

	wordUpper := word == strings.ToUpper(word) && len(word) > 1
	wordTitle := !wordUpper && word != "" && word[:1] == strings.ToUpper(word[:1])

	matching := make([]string, 0, len(raw))
	rest := make([]string, 0, len(raw))
	for _, s := range raw {
		sTitle := s != "" && s[:1] == strings.ToUpper(s[:1])
		if wordTitle == sTitle {
			matching = append(matching, s)
		} else {
			rest = append(rest, s)
		}
	}
	return append(matching, rest...)
}

func aspellLang(language string) string {
	switch language {
	case "en":
		return "en_US"
	default:
		return language
	}
}
