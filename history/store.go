// Package history persists the order history behind a small interface so
// the backing store can be swapped without touching checkout.
package history

import (
	"context"
	"sync"

	"github.com/mytheresa/storefront/models"
)

// Store loads and appends orders. Load returns newest first.
type Store interface {
	Load(ctx context.Context) ([]models.Order, error)
	Append(ctx context.Context, order models.Order) error
}

// MemoryStore keeps the history in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *MemoryStore) Append(_ context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]models.Order{order}, m.orders...)
	return nil
}

// Summary aggregates the history for the profile page.
type Summary struct {
	Orders     int   `json:"orders"`
	TotalSpent int64 `json:"total_spent"`
	Delivered  int   `json:"delivered"`
}

func Summarize(orders []models.Order) Summary {
	s := Summary{Orders: len(orders)}
	for _, o := range orders {
		s.TotalSpent += o.Total
		if o.Status == models.OrderStatusDelivered {
			s.Delivered++
		}
	}
	return s
}
