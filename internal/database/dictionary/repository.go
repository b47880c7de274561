// Package dictionary provides database operations for the user's custom
// word list. Words stored here are treated as correct by every spell
// check engine regardless of what the engine itself thinks.
package dictionary

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/scribe/internal/entities"
)

// Repository handles all custom dictionary database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new dictionary repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add stores a word in lower-cased form. Adding a word that is already
// present is a no-op and reports false.
func (r *Repository) Add(word string) (bool, error) {
	normalized := normalize(word)
	if normalized == "" {
		return false, nil
	}

	var existing entities.DictionaryWord
	err := r.db.Where("word = ?", normalized).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	entry := entities.DictionaryWord{
		Word:    normalized,
		AddedAt: time.Now(),
	}
	if err := r.db.Create(&entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a word from the dictionary. Reports whether a row was
// actually removed.
func (r *Repository) Remove(word string) (bool, error) {
	result := r.db.Where("word = ?", normalize(word)).Delete(&entities.DictionaryWord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Contains reports whether the word is in the dictionary. The comparison
// is case-insensitive.
func (r *Repository) Contains(word string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.DictionaryWord{}).
		Where("word = ?", normalize(word)).
		Count(&count).Error
	return count > 0, err
}

// List returns all dictionary words ordered alphabetically.
func (r *Repository) List() ([]entities.DictionaryWord, error) {
	var words []entities.DictionaryWord
	err := r.db.Order("word ASC").Find(&words).Error
	return words, err
}

// Count returns the number of words in the dictionary.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.DictionaryWord{}).Count(&count).Error
	return count, err
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
