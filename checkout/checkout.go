// Package checkout turns a cart into an Order and appends it to the
// order history.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/history"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/promo"
)

// ErrEmptyCart is returned when submitting a cart without lines.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError lists the required customer fields left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Validate trims the customer fields and checks the required ones.
func Validate(c models.Customer) (models.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.Comment = strings.TrimSpace(c.Comment)

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return c, &ValidationError{Fields: missing}
	}
	return c, nil
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for order IDs and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service finalizes orders.
type Service struct {
	store history.Store
	now   func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewService(store history.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the input, snapshots the cart into an Order and
// appends it to the history. Nothing is persisted on failure.
func (s *Service) Submit(ctx context.Context, lines []models.CartLine, customer models.Customer, applied *models.PromoCode) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	customer, err := Validate(customer)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderLine, len(lines))
	var subtotal int64
	for i, l := range lines {
		items[i] = models.OrderLine{
			ID:       l.Product.ID,
			Name:     l.Product.Name,
			Price:    l.Product.Price,
			Quantity: l.Quantity,
		}
		subtotal += l.Total()
	}

	now := s.now().UTC()
	order := models.Order{
		ID:       s.nextID(now),
		Date:     now,
		Items:    items,
		Subtotal: subtotal,
		Total:    subtotal,
		Customer: customer,
		Status:   models.OrderStatusProcessing,
	}
	if applied != nil {
		order.PromoCode = applied.Code
		order.Discount = promo.Discount(*applied, subtotal)
		order.Total = subtotal - order.Discount
	}

	if err := s.store.Append(ctx, order); err != nil {
		return nil, errors.Wrap(err, "append order")
	}
	return &order, nil
}

// nextID returns the millisecond timestamp, bumped past the previous ID
// when two orders share a millisecond.
func (s *Service) nextID(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
