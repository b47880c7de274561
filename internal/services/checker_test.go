package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/scribe/internal/database/cache"
	"github.com/mrlokans/scribe/internal/database/dictionary"
	"github.com/mrlokans/scribe/internal/entities"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

// stubProvider flags every occurrence of configured words and counts
// Check calls so tests can assert on cache behaviour.
type stubProvider struct {
	name      string
	bad       map[string][]string
	available bool
	calls     int
}

func (p *stubProvider) Name() string                        { return p.name }
func (p *stubProvider) Initialize(ctx context.Context) bool { return p.available }
func (p *stubProvider) Available() bool                     { return p.available }
func (p *stubProvider) Languages() []string                 { return []string{"en"} }
func (p *stubProvider) Close() error                        { return nil }

func (p *stubProvider) Check(ctx context.Context, text, language string) spellcheck.Result {
	p.calls++
	result := spellcheck.EmptyResult(text, language, p.name)
	for _, token := range spellcheck.Tokenize(text) {
		if suggestions, ok := p.bad[token.Word]; ok {
			result.Errors = append(result.Errors, spellcheck.Error{
				Word:        token.Word,
				StartPos:    token.StartPos,
				EndPos:      token.EndPos,
				Suggestions: suggestions,
			})
		}
	}
	return result
}

type stubProviders struct {
	byName map[string]*stubProvider
	best   *stubProvider
}

func (s *stubProviders) Get(name string) spellcheck.Provider {
	p, ok := s.byName[name]
	if !ok {
		return nil
	}
	return p
}

func (s *stubProviders) Best() spellcheck.Provider {
	if s.best == nil {
		return nil
	}
	return s.best
}

func setupChecker(t *testing.T, providers *stubProviders) (*Checker, func()) {
	dbPath := "./test_checker_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.CacheEntry{}, &entities.DictionaryWord{})
	require.NoError(t, err)

	checker := NewChecker(providers, cache.NewRepository(db), dictionary.NewRepository(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return checker, cleanup
}

func misspellingStub() *stubProviders {
	p := &stubProvider{
		name:      "stub",
		available: true,
		bad: map[string][]string{
			"sentance": {"sentence"},
			"recieve":  {"receive"},
		},
	}
	return &stubProviders{byName: map[string]*stubProvider{"stub": p}, best: p}
}

func TestChecker_CheckLines(t *testing.T) {
	providers := misspellingStub()
	checker, cleanup := setupChecker(t, providers)
	defer cleanup()

	lines := []string{"this is a sentance", "", "all good here"}
	outcome, err := checker.CheckLines(context.Background(), lines, "en", "")

	require.NoError(t, err)
	assert.True(t, outcome.ProviderAvailable)
	assert.Equal(t, "stub", outcome.EngineUsed)
	assert.Equal(t, 3, outcome.LinesChecked)
	require.Contains(t, outcome.Errors, 0)
	assert.NotContains(t, outcome.Errors, 1)
	assert.NotContains(t, outcome.Errors, 2)

	lineErrors := outcome.Errors[0]
	require.Len(t, lineErrors, 1)
	assert.Equal(t, "sentance", lineErrors[0].Word)
	assert.Equal(t, []string{"sentence"}, lineErrors[0].Suggestions)
	assert.Equal(t, lineErrors[0].Word, lines[0][lineErrors[0].StartPos:lineErrors[0].EndPos])
}

func TestChecker_CacheIdempotent(t *testing.T) {
	providers := misspellingStub()
	checker, cleanup := setupChecker(t, providers)
	defer cleanup()

	lines := []string{"this is a sentance"}
	first, err := checker.CheckLines(context.Background(), lines, "en", "")
	require.NoError(t, err)
	second, err := checker.CheckLines(context.Background(), lines, "en", "")
	require.NoError(t, err)

	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, 1, providers.best.calls)
}

func TestChecker_DictionarySuppression(t *testing.T) {
	providers := misspellingStub()
	checker, cleanup := setupChecker(t, providers)
	defer cleanup()

	lines := []string{"we recieve mail"}
	outcome, err := checker.CheckLines(context.Background(), lines, "en", "")
	require.NoError(t, err)
	require.Contains(t, outcome.Errors, 0)

	added, err := checker.AddWord("recieve")
	require.NoError(t, err)
	require.True(t, added)

	outcome, err = checker.CheckLines(context.Background(), lines, "en", "")
	require.NoError(t, err)
	assert.Empty(t, outcome.Errors)
}

func TestChecker_RemoveWordRestoresErrors(t *testing.T) {
	providers := misspellingStub()
	checker, cleanup := setupChecker(t, providers)
	defer cleanup()

	_, err := checker.AddWord("recieve")
	require.NoError(t, err)

	lines := []string{"we recieve mail"}
	outcome, err := checker.CheckLines(context.Background(), lines, "en", "")
	require.NoError(t, err)
	require.Empty(t, outcome.Errors)

	removed, err := checker.RemoveWord("recieve")
	require.NoError(t, err)
	require.True(t, removed)

	outcome, err = checker.CheckLines(context.Background(), lines, "en", "")
	require.NoError(t, err)
	require.Contains(t, outcome.Errors, 0)
	assert.Equal(t, "recieve", outcome.Errors[0][0].Word)
}

func TestChecker_FallbackDisclosed(t *testing.T) {
	providers := misspellingStub()
	checker, cleanup := setupChecker(t, providers)
	defer cleanup()

	outcome, err := checker.CheckLines(context.Background(), []string{"hello"}, "en", "neural")

	require.NoError(t, err)
	assert.Equal(t, "stub", outcome.EngineUsed)
	assert.Equal(t, "neural", outcome.RequestedEngine)
}

func TestChecker_NoProviderAvailable(t *testing.T) {
	checker, cleanup := setupChecker(t, &stubProviders{byName: map[string]*stubProvider{}})
	defer cleanup()

	outcome, err := checker.CheckLines(context.Background(), []string{"anything"}, "en", "")

	require.NoError(t, err)
	assert.False(t, outcome.ProviderAvailable)
	assert.Empty(t, outcome.Errors)
}

func TestChecker_IsWordValid(t *testing.T) {
	providers := misspellingStub()
	checker, cleanup := setupChecker(t, providers)
	defer cleanup()

	valid, err := checker.IsWordValid(context.Background(), "hello", "en")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = checker.IsWordValid(context.Background(), "sentance", "en")
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = checker.AddWord("sentance")
	require.NoError(t, err)

	valid, err = checker.IsWordValid(context.Background(), "sentance", "en")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestChecker_ListWords(t *testing.T) {
	checker, cleanup := setupChecker(t, misspellingStub())
	defer cleanup()

	_, err := checker.AddWord("zig")
	require.NoError(t, err)
	_, err = checker.AddWord("ada")
	require.NoError(t, err)

	words, err := checker.ListWords()

	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "ada", words[0].Word)
	assert.Equal(t, "zig", words[1].Word)
}
