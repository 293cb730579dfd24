package models

import (
	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetThemes loads every theme with its products and their reviews.
func (r *ProductsRepository) GetThemes() ([]Theme, error) {
	var themes []Theme
	if err := r.db.
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.id")
		}).
		Preload("Products.Reviews").
		Order("themes.id").
		Find(&themes).Error; err != nil {
		return nil, errors.Wrap(err, "load themes")
	}
	return themes, nil
}

// SaveThemes upserts themes together with their products and reviews.
func (r *ProductsRepository) SaveThemes(themes []Theme) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range themes {
			if err := tx.
				Session(&gorm.Session{FullSaveAssociations: true}).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&themes[i]).Error; err != nil {
				return errors.Wrapf(err, "save theme %q", themes[i].ID)
			}
		}
		return nil
	})
}

// Migrate creates or updates the storefront tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Theme{}, &Product{}, &Review{}, &Order{}); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}
