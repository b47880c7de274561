// Package services contains the business logic sitting between the
// transport handlers and the storage and engine layers.
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/scribe/internal/entities"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

// CheckOutcome is the result of checking a batch of lines.
type CheckOutcome struct {
	// Errors maps line index to that line's spelling errors. Lines
	// without errors are absent.
	Errors map[int][]spellcheck.Error

	LinesChecked int
	EngineUsed   string
	LanguageUsed string

	// RequestedEngine is set when the client asked for an engine the
	// service could not use and a fallback was substituted.
	RequestedEngine string

	// ProviderAvailable is false when no engine at all could serve the
	// request. This is a normal degraded condition, not an error.
	ProviderAvailable bool
}

// Checker runs spell checks through the configured engines, backed by
// the result cache and filtered by the custom dictionary.
type Checker struct {
	providers  ProviderSource
	cache      ResultCache
	dictionary WordStore
}

// NewChecker creates a new spell checking service.
func NewChecker(providers ProviderSource, cache ResultCache, dictionary WordStore) *Checker {
	return &Checker{
		providers:  providers,
		cache:      cache,
		dictionary: dictionary,
	}
}

// resolveProvider picks the engine for a request. An explicitly named
// engine that is unknown or unavailable falls back to the best available
// one; the caller discloses the substitution to the client.
func (c *Checker) resolveProvider(name string) (provider spellcheck.Provider, fellBack bool) {
	if name != "" {
		if p := c.providers.Get(name); p != nil && p.Available() {
			return p, false
		}
		return c.providers.Best(), true
	}
	return c.providers.Best(), false
}

// CheckLines spell checks each line independently. Blank lines are
// skipped but still counted. Dictionary words never surface as errors.
func (c *Checker) CheckLines(ctx context.Context, lines []string, language, engineName string) (CheckOutcome, error) {
	outcome := CheckOutcome{
		Errors:       make(map[int][]spellcheck.Error),
		LinesChecked: len(lines),
		LanguageUsed: language,
	}

	provider, fellBack := c.resolveProvider(engineName)
	if provider == nil {
		return outcome, nil
	}
	outcome.ProviderAvailable = true
	outcome.EngineUsed = provider.Name()
	if fellBack {
		outcome.RequestedEngine = engineName
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		result, err := c.checkLine(ctx, provider, line, language)
		if err != nil {
			return outcome, fmt.Errorf("check line %d: %w", i, err)
		}

		filtered, err := c.filterDictionaryWords(result.Errors)
		if err != nil {
			return outcome, fmt.Errorf("filter line %d: %w", i, err)
		}
		if len(filtered) > 0 {
			outcome.Errors[i] = filtered
		}
	}
	return outcome, nil
}

// checkLine serves a single line from the cache when possible. Raw
// engine output is cached; dictionary filtering happens afterwards so
// dictionary edits only need to invalidate, never recompute.
func (c *Checker) checkLine(ctx context.Context, provider spellcheck.Provider, line, language string) (spellcheck.Result, error) {
	cached, err := c.cache.Lookup(line, provider.Name())
	if err != nil {
		return spellcheck.Result{}, fmt.Errorf("cache lookup: %w", err)
	}
	if cached != nil {
		return *cached, nil
	}

	result := provider.Check(ctx, line, language)
	if err := c.cache.Store(line, provider.Name(), result); err != nil {
		return spellcheck.Result{}, fmt.Errorf("cache store: %w", err)
	}
	return result, nil
}

func (c *Checker) filterDictionaryWords(errs []spellcheck.Error) ([]spellcheck.Error, error) {
	if len(errs) == 0 {
		return nil, nil
	}
	filtered := make([]spellcheck.Error, 0, len(errs))
	for _, e := range errs {
		listed, err := c.dictionary.Contains(e.Word)
		if err != nil {
			return nil, err
		}
		if !listed {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// WarmCache runs the batch check purely for its caching side effect and
// returns the number of non-blank lines processed. Used by background
// tasks after a document save.
func (c *Checker) WarmCache(ctx context.Context, lines []string, language string) (int, error) {
	outcome, err := c.CheckLines(ctx, lines, language, "")
	if err != nil {
		return 0, err
	}
	if !outcome.ProviderAvailable {
		return 0, nil
	}
	checked := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			checked++
		}
	}
	return checked, nil
}

// AddWord puts a word into the custom dictionary and drops every cached
// result that flagged it.
func (c *Checker) AddWord(word string) (bool, error) {
	added, err := c.dictionary.Add(word)
	if err != nil {
		return false, fmt.Errorf("add word: %w", err)
	}
	if added {
		if removed, err := c.cache.InvalidateWord(word); err != nil {
			log.Printf("Failed to invalidate cache for %q: %v", word, err)
		} else if removed > 0 {
			log.Printf("Invalidated %d cached results mentioning %q", removed, word)
		}
	}
	return added, nil
}

// RemoveWord deletes a word from the dictionary. Cached results are
// invalidated symmetrically with AddWord: entries computed while the
// word was listed may omit it, so they cannot be trusted either.
func (c *Checker) RemoveWord(word string) (bool, error) {
	removed, err := c.dictionary.Remove(word)
	if err != nil {
		return false, fmt.Errorf("remove word: %w", err)
	}
	if removed {
		if _, err := c.cache.InvalidateWord(word); err != nil {
			log.Printf("Failed to invalidate cache for %q: %v", word, err)
		}
	}
	return removed, nil
}

// IsWordValid reports whether a word passes spell check: either an
// engine considers it correct or the user has added it to the
// dictionary. With no engine available only the dictionary decides.
func (c *Checker) IsWordValid(ctx context.Context, word, language string) (bool, error) {
	listed, err := c.dictionary.Contains(word)
	if err != nil {
		return false, fmt.Errorf("dictionary lookup: %w", err)
	}
	if listed {
		return true, nil
	}

	provider := c.providers.Best()
	if provider == nil {
		return false, nil
	}
	result := provider.Check(ctx, word, language)
	return !result.HasErrors(), nil
}

// ListWords returns the dictionary contents in alphabetical order.
func (c *Checker) ListWords() ([]entities.DictionaryWord, error) {
	return c.dictionary.List()
}

// InvalidateAll drops the entire result cache. Called when the preferred
// engine changes.
func (c *Checker) InvalidateAll() (int64, error) {
	return c.cache.InvalidateAll()
}
