package models

import "time"

// Favorite existence is the whole relationship; the composite primary key
// doubles as the uniqueness backstop when two toggles race.
type Favorite struct {
	UserID  string `json:"user_id" gorm:"primaryKey;size:36"`
	QuoteID uint   `json:"quote_id" gorm:"primaryKey"`

	CreatedAt time.Time `json:"created_at"`
}
