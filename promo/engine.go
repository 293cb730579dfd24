// Package promo validates promo codes and computes discounts.
package promo

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/storefront/models"
)

// ErrUnknownCode is returned when a code is not in the registry.
var ErrUnknownCode = errors.New("promo code not found")

var hundred = decimal.NewFromInt(100)

// DefaultCodes is the static registry offered by the store.
var DefaultCodes = []models.PromoCode{
	{Code: "ELECTRO2025", Kind: models.DiscountPercentage, Amount: 15, Description: "15% off the whole order"},
	{Code: "NEWCLIENT", Kind: models.DiscountFixed, Amount: 500, Description: "500 off for new customers"},
	{Code: "VIP10", Kind: models.DiscountPercentage, Amount: 10, Description: "VIP discount 10%"},
	{Code: "MEGA20", Kind: models.DiscountPercentage, Amount: 20, Description: "Mega discount 20%"},
}

// Result is the outcome of applying a code to a cart total.
type Result struct {
	Success  bool
	Promo    *models.PromoCode
	Discount int64
}

// Engine looks codes up in a read-only registry.
type Engine struct {
	codes map[string]models.PromoCode
}

// NewEngine builds an engine over codes. Codes are keyed
// case-insensitively; a percentage above 100 or a negative amount is
// rejected.
func NewEngine(codes []models.PromoCode) (*Engine, error) {
	e := &Engine{codes: make(map[string]models.PromoCode, len(codes))}
	for _, c := range codes {
		key := normalize(c.Code)
		if key == "" {
			return nil, errors.New("promo code without code")
		}
		if _, dup := e.codes[key]; dup {
			return nil, errors.Errorf("duplicate promo code %q", c.Code)
		}
		switch c.Kind {
		case models.DiscountPercentage:
			if c.Amount < 0 || c.Amount > 100 {
				return nil, errors.Errorf("promo code %q: percentage must be 0-100", c.Code)
			}
		case models.DiscountFixed:
			if c.Amount < 0 {
				return nil, errors.Errorf("promo code %q: fixed discount cannot be negative", c.Code)
			}
		default:
			return nil, errors.Errorf("promo code %q: invalid kind %q", c.Code, c.Kind)
		}
		e.codes[key] = c
	}
	return e, nil
}

// Default returns an engine over DefaultCodes.
func Default() *Engine {
	e, err := NewEngine(DefaultCodes)
	if err != nil {
		panic(err)
	}
	return e
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup finds a code, ignoring case and surrounding whitespace.
func (e *Engine) Lookup(code string) (models.PromoCode, error) {
	c, ok := e.codes[normalize(code)]
	if !ok {
		return models.PromoCode{}, ErrUnknownCode
	}
	return c, nil
}

// Apply looks code up and computes its discount on cartTotal. On no
// match the result is unsuccessful with a zero discount.
func (e *Engine) Apply(code string, cartTotal int64) Result {
	c, err := e.Lookup(code)
	if err != nil {
		return Result{}
	}
	return Result{Success: true, Promo: &c, Discount: Discount(c, cartTotal)}
}

// Codes lists the registry sorted by code.
func (e *Engine) Codes() []models.PromoCode {
	out := make([]models.PromoCode, 0, len(e.codes))
	for _, c := range e.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Discount computes the discount of p on total. Percentages round down;
// the discount never exceeds the total.
func Discount(p models.PromoCode, total int64) int64 {
	if total <= 0 {
		return 0
	}
	var d int64
	switch p.Kind {
	case models.DiscountPercentage:
		d = decimal.NewFromInt(total).
			Mul(decimal.NewFromInt(p.Amount)).
			Div(hundred).
			Floor().
			IntPart()
	case models.DiscountFixed:
		d = p.Amount
	}
	if d > total {
		d = total
	}
	return d
}

// FinalTotal is total minus the discount of p, or total when p is nil.
func FinalTotal(p *models.PromoCode, total int64) int64 {
	if p == nil {
		return total
	}
	return total - Discount(*p, total)
}
