// Package cart implements the cart ledger: one line per product, every
// line holding a quantity of at least one.
package cart

import (
	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/models"
)

// MaxQuantity is the largest quantity a single line may hold.
const MaxQuantity = 999

var (
	// ErrOutOfStock is returned when adding a product that is not in stock.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrInvalidQuantity is returned when a line would hold fewer than
	// one or more than MaxQuantity units.
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 999")
)

// Ledger holds the cart lines in the order they were first added.
// It is not safe for concurrent use.
type Ledger struct {
	lines []models.CartLine
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add adds one unit of product.
func (l *Ledger) Add(product models.Product) error {
	return l.AddQuantity(product, 1)
}

// AddQuantity increments the product's line by n, creating it when
// absent. The resulting quantity may not exceed MaxQuantity.
func (l *Ledger) AddQuantity(product models.Product, n int) error {
	if n < 1 || n > MaxQuantity {
		return ErrInvalidQuantity
	}
	if !product.InStock {
		return ErrOutOfStock
	}
	if i := l.find(product.ID); i >= 0 {
		if l.lines[i].Quantity > MaxQuantity-n {
			return ErrInvalidQuantity
		}
		l.lines[i].Quantity += n
		return nil
	}
	l.lines = append(l.lines, models.CartLine{Product: product, Quantity: n})
	return nil
}

// UpdateQuantity sets the line's quantity. A quantity below one removes
// the line; one above MaxQuantity fails and leaves it unchanged. It
// reports whether the line existed.
func (l *Ledger) UpdateQuantity(productID uint, quantity int) (bool, error) {
	if quantity < 1 {
		return l.Remove(productID), nil
	}
	i := l.find(productID)
	if i < 0 {
		return false, nil
	}
	if quantity > MaxQuantity {
		return true, ErrInvalidQuantity
	}
	l.lines[i].Quantity = quantity
	return true, nil
}

// Remove deletes the line and reports whether it existed.
func (l *Ledger) Remove(productID uint) bool {
	i := l.find(productID)
	if i < 0 {
		return false
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	return true
}

func (l *Ledger) Clear() {
	l.lines = nil
}

// Lines returns a copy of the lines.
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

// TotalItems is the sum of all line quantities.
func (l *Ledger) TotalItems() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price * quantity over all lines.
func (l *Ledger) TotalPrice() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.Total()
	}
	return total
}

func (l *Ledger) find(productID uint) int {
	for i, line := range l.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}
