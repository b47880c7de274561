package services

import (
	"time"

	"github.com/mrlokans/scribe/internal/entities"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

// ResultCache stores per-line spell check results keyed by text and
// engine. Use this interface when you need cached lookups.
type ResultCache interface {
	Lookup(text, engine string) (*spellcheck.Result, error)
	Store(text, engine string, result spellcheck.Result) error
	InvalidateWord(word string) (int64, error)
	InvalidateAll() (int64, error)
	Prune(olderThan time.Time) (int64, error)
}

// WordStore persists the user's custom dictionary.
type WordStore interface {
	Add(word string) (bool, error)
	Remove(word string) (bool, error)
	Contains(word string) (bool, error)
	List() ([]entities.DictionaryWord, error)
	Count() (int64, error)
}

// ProviderSource resolves spell check engines by name or priority.
type ProviderSource interface {
	Get(name string) spellcheck.Provider
	Best() spellcheck.Provider
}
