package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Preferred spell check engine; changing it invalidates the whole
	// result cache since cached error sets were computed by another engine.
	SettingKeyPreferredEngine = "preferred_engine"

	// Default language for spell checking when a request omits one.
	SettingKeyDefaultLanguage = "default_language"

	// Preferred prediction engine for the editor UI.
	SettingKeyPredictionEngine = "prediction_engine"
)
