package models

import (
	"github.com/lib/pq"
)

// Product represents an immutable catalog entry.
// Descriptive attributes live in Specs; fashion items also list the
// sizes and colors they are offered in.
type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ThemeID     string         `gorm:"index;not null" json:"theme"`
	Name        string         `gorm:"not null" json:"name"`
	Brand       string         `gorm:"index;not null" json:"brand"`
	Category    string         `gorm:"index;not null" json:"category"`
	Price       int64          `gorm:"not null" json:"price"`
	Specs       Specs          `gorm:"serializer:json" json:"specs"`
	Sizes       pq.StringArray `gorm:"type:text[]" json:"sizes,omitempty"`
	Colors      pq.StringArray `gorm:"type:text[]" json:"colors,omitempty"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	InStock     bool           `gorm:"not null;default:true" json:"in_stock"`
	Reviews     []Review       `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

func (p *Product) TableName() string {
	return "products"
}

// AverageRating returns the mean review rating, or 0 without reviews.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}

// HasSize reports whether the product is offered in size.
func (p *Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor reports whether the product is offered in color.
func (p *Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Spec is a single named product attribute, e.g. power = "9 W".
type Spec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Specs keeps attributes in display order.
type Specs []Spec

// Get returns the value of the named attribute.
func (s Specs) Get(name string) (string, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec.Value, true
		}
	}
	return "", false
}

// Review is a customer review shown on the product page.
type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	Author    string `gorm:"not null" json:"author"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `json:"comment"`
	Date      string `json:"date"`
}

func (r *Review) TableName() string {
	return "reviews"
}
