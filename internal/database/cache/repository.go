// Package cache provides database operations for the spell check result
// cache.
//
// Entries are keyed by a fingerprint of the normalized text and the engine
// that produced the result. The cache is append-mostly: entries are never
// mutated after creation except for their last-used timestamp, and are
// only removed by explicit invalidation.
package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/scribe/internal/entities"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

// Repository handles all spell cache database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new spell cache repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Lookup returns the cached result for a (text, engine) pair, or nil on a
// miss. A hit touches the entry's last-used timestamp but never alters the
// stored error content.
func (r *Repository) Lookup(text, engine string) (*spellcheck.Result, error) {
	fingerprint := spellcheck.Fingerprint(text, engine)

	var entry entities.CacheEntry
	err := r.db.Where("fingerprint = ?", fingerprint).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(&entry).Update("last_used_at", time.Now()).Error; err != nil {
		return nil, err
	}

	var errs []spellcheck.Error
	if err := json.Unmarshal([]byte(entry.Errors), &errs); err != nil {
		return nil, fmt.Errorf("failed to decode cached errors: %w", err)
	}

	return &spellcheck.Result{
		OriginalText: entry.OriginalText,
		Errors:       errs,
		Language:     entry.Language,
		Engine:       engine,
	}, nil
}

// Store upserts a result by fingerprint. Storing the same (text, engine)
// pair twice is idempotent.
func (r *Repository) Store(text, engine string, result spellcheck.Result) error {
	serialized, err := json.Marshal(result.Errors)
	if err != nil {
		return fmt.Errorf("failed to encode errors: %w", err)
	}

	fingerprint := spellcheck.Fingerprint(text, engine)
	now := time.Now()

	var existing entities.CacheEntry
	lookupErr := r.db.Where("fingerprint = ?", fingerprint).First(&existing).Error

	if lookupErr == gorm.ErrRecordNotFound {
		entry := entities.CacheEntry{
			Fingerprint:  fingerprint,
			OriginalText: text,
			Errors:       string(serialized),
			Language:     result.Language,
			LastUsedAt:   now,
		}
		return r.db.Create(&entry).Error
	} else if lookupErr != nil {
		return lookupErr
	}

	existing.OriginalText = text
	existing.Errors = string(serialized)
	existing.Language = result.Language
	existing.LastUsedAt = now
	return r.db.Save(&existing).Error
}

// InvalidateWord deletes every entry whose serialized error list mentions
// the word. The match is a case-insensitive substring on the quoted word
// token; deliberately coarse so no word-to-entry index is needed, at the
// accepted cost of occasional over-invalidation.
func (r *Repository) InvalidateWord(word string) (int64, error) {
	pattern := "%" + `"` + strings.ToLower(word) + `"` + "%"
	result := r.db.Where("LOWER(errors) LIKE ?", pattern).Delete(&entities.CacheEntry{})
	return result.RowsAffected, result.Error
}

// InvalidateAll removes every cached entry. Used when the active engine
// preference changes, since all cached error sets were computed by the
// previous engine.
func (r *Repository) InvalidateAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entities.CacheEntry{})
	return result.RowsAffected, result.Error
}

// Prune deletes entries not used since the cutoff. Only called by the
// optional maintenance scheduler; the cache has no other eviction.
func (r *Repository) Prune(olderThan time.Time) (int64, error) {
	result := r.db.Where("last_used_at < ?", olderThan).Delete(&entities.CacheEntry{})
	return result.RowsAffected, result.Error
}

// Count returns the number of cached entries.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.CacheEntry{}).Count(&count).Error
	return count, err
}
