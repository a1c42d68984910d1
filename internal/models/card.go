package models

import "gorm.io/gorm"

// Stored card categories. CategoryAll is a query-filter sentinel only and is
// never persisted on a card.
const (
	CategoryPokemon  = "Pokemon"
	CategoryBaseball = "Baseball"
	CategoryFootball = "Football"
	CategoryAll      = "All"
)

// Card represents a sellable item in the catalog.
type Card struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" gorm:"type:varchar(200)" validate:"required,max=200"`
	Category    string  `json:"category" gorm:"type:varchar(32);index" validate:"required,oneof=Pokemon Baseball Football"`
	Language    string  `json:"language" gorm:"type:varchar(8);index" validate:"required,oneof=en th jp"`
	SetName     string  `json:"setName" gorm:"type:varchar(200)" validate:"required"`
	Year        int     `json:"year" validate:"required"`
	Condition   string  `json:"condition" gorm:"type:varchar(100)" validate:"required"`
	ManualPrice float64 `json:"manualPrice" validate:"gte=0"`
	// ImageURL is a legacy convenience field kept for older consumers. On
	// reads it is overwritten with Images[0].URL whenever Images is
	// non-empty, so it can only stand alone as a fallback display source.
	ImageURL string      `json:"imageUrl" gorm:"type:varchar(512)"`
	Images   []CardImage `json:"images" gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" validate:"max=10,dive"`
	gorm.Model
}

// CardImage is one picture belonging to exactly one card. SortOrder is the
// 0-based display position; position 0 is the cover/thumbnail.
type CardImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CardID    string `json:"cardId" gorm:"index;type:varchar(36)"`
	URL       string `json:"url" gorm:"type:varchar(512)" validate:"required"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

// PricePoint is one entry of a card's price-history series. The series is
// synthetic, recomputed per request and never persisted.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}
