package models

import "time"

// Quote rows are immutable once seeded; clients only ever read them.
type Quote struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Text     string  `json:"text" gorm:"type:text"`
	Author   *string `json:"author"`
	Category string  `json:"category" gorm:"index;size:50"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// AllCategories is the sentinel value that disables category filtering.
const AllCategories = "All"
