package entities

import "time"

// DictionaryWord is a user-approved word. Its presence suppresses the word
// as a spelling error in all future and cached checks. Words are stored
// lower-cased and are unique.
type DictionaryWord struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Word    string    `gorm:"uniqueIndex;size:100" json:"word"`
	AddedAt time.Time `json:"added_at"`
}

func (DictionaryWord) TableName() string {
	return "user_dictionary"
}
