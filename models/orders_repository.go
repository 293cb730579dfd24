package models

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

// OrdersRepository keeps the order history in postgres.
type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// Load returns the order history, newest first.
func (r *OrdersRepository) Load(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	return orders, nil
}

func (r *OrdersRepository) Append(ctx context.Context, order Order) error {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return errors.Wrapf(err, "insert order %d", order.ID)
	}
	return nil
}
