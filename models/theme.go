package models

import "github.com/lib/pq"

// Theme represents a themed catalog (electronics, fashion).
// It carries the ordered category list and the default price bounds
// the filter resets to.
type Theme struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Icon       string         `json:"icon"`
	Categories pq.StringArray `gorm:"type:text[]" json:"categories"`
	PriceMin   int64          `gorm:"not null;default:0" json:"price_min"`
	PriceMax   int64          `gorm:"not null" json:"price_max"`
	Products   []Product      `gorm:"foreignKey:ThemeID" json:"products,omitempty"`
}

func (t *Theme) TableName() string {
	return "themes"
}
