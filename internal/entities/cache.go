package entities

import "time"

// CacheEntry stores the outcome of one spell check for a single line of
// text, keyed by a fingerprint of the normalized text and the engine that
// produced it. Entries are never mutated after creation except for
// LastUsedAt, which is touched on every cache hit.
type CacheEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Fingerprint  string    `gorm:"uniqueIndex;size:64" json:"fingerprint"`
	OriginalText string    `gorm:"type:text" json:"original_text"`
	Errors       string    `gorm:"type:text" json:"errors"` // JSON-serialized error list
	Language     string    `gorm:"size:10" json:"language"`
	CreatedAt    time.Time `json:"created_at"`
	LastUsedAt   time.Time `gorm:"index" json:"last_used_at"`
}

func (CacheEntry) TableName() string {
	return "spell_cache"
}
