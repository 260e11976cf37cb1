package models

import "time"

type Collection struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"index;size:36"`
	Title  string `json:"title" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// CollectionQuote is the membership row between a collection and a quote.
// Deleting the owning collection cascades here at the schema level.
type CollectionQuote struct {
	CollectionID uint `json:"collection_id" gorm:"primaryKey"`
	QuoteID      uint `json:"quote_id" gorm:"primaryKey"`

	Collection Collection `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type CollectionWithQuotes struct {
	Collection
	Quotes     []Quote `json:"quotes"`
	QuoteCount int     `json:"quoteCount"`
}
