// Package storefront owns the per-client application state: active
// theme, cart, comparison and applied promo code.
package storefront

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/cart"
	"github.com/mytheresa/storefront/catalog"
	"github.com/mytheresa/storefront/checkout"
	"github.com/mytheresa/storefront/compare"
	"github.com/mytheresa/storefront/history"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/promo"
)

var (
	// ErrUnknownTheme is returned when switching to a theme the catalog
	// does not have.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrOtherTheme is returned when comparing a product outside the
	// active theme.
	ErrOtherTheme = errors.New("product belongs to another theme")
)

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Catalog  *catalog.Store
	Promos   *promo.Engine
	Checkout *checkout.Service
	History  history.Store
	Logger   *zap.Logger
}

// CartView is the cart with its derived totals.
type CartView struct {
	Lines      []models.CartLine
	TotalItems int
	Subtotal   int64
	Promo      *models.PromoCode
	Discount   int64
	Total      int64
}

// Session is the application state of one client. All methods are
// safe for concurrent use and run one at a time.
type Session struct {
	id   string
	deps Deps
	log  *zap.Logger

	mu      sync.Mutex
	theme   string
	ledger  *cart.Ledger
	compare *compare.Set
	applied *models.PromoCode
}

func newSession(id string, deps Deps) *Session {
	return &Session{
		id:      id,
		deps:    deps,
		log:     deps.Logger.With(zap.String("session_id", id)),
		theme:   deps.Catalog.DefaultTheme(),
		ledger:  cart.NewLedger(),
		compare: compare.NewSet(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SwitchTheme activates another catalog. Product identities are not
// comparable across catalogs, so the comparison is cleared.
func (s *Session) SwitchTheme(id string) error {
	if _, err := s.deps.Catalog.Theme(id); err != nil {
		return ErrUnknownTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == id {
		return nil
	}
	s.log.Debug("switching theme", zap.String("from", s.theme), zap.String("to", id))
	s.theme = id
	s.compare.Clear()
	return nil
}

// Browse returns the active theme's products passing f.
func (s *Session) Browse(f catalog.FilterState) ([]models.Product, error) {
	theme := s.Theme()
	facets, err := s.deps.Catalog.Facets(theme)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(facets); err != nil {
		return nil, err
	}
	products, err := s.deps.Catalog.Products(theme)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(products, f), nil
}

// AddToCart adds quantity units of the product.
func (s *Session) AddToCart(productID uint, quantity int) error {
	p, err := s.deps.Catalog.Product(productID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.AddQuantity(p, quantity); err != nil {
		return err
	}
	s.log.Debug("added to cart", zap.Uint("product_id", productID), zap.Int("quantity", quantity))
	return nil
}

// UpdateQuantity sets a line's quantity; below one removes it. It
// reports whether the line existed.
func (s *Session) UpdateQuantity(productID uint, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.ledger.UpdateQuantity(productID, quantity)
	if ok && err == nil {
		s.log.Debug("updated quantity", zap.Uint("product_id", productID), zap.Int("quantity", quantity))
	}
	return ok, err
}

func (s *Session) RemoveFromCart(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.ledger.Remove(productID)
	if ok {
		s.log.Debug("removed from cart", zap.Uint("product_id", productID))
	}
	return ok
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) cartView() CartView {
	subtotal := s.ledger.TotalPrice()
	v := CartView{
		Lines:      s.ledger.Lines(),
		TotalItems: s.ledger.TotalItems(),
		Subtotal:   subtotal,
		Total:      subtotal,
	}
	if s.applied != nil {
		p := *s.applied
		v.Promo = &p
		v.Discount = promo.Discount(p, subtotal)
		v.Total = subtotal - v.Discount
	}
	return v
}

// ApplyPromo replaces any applied code with code. An unknown code
// leaves the cart untouched.
func (s *Session) ApplyPromo(code string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.deps.Promos.Apply(code, s.ledger.TotalPrice())
	if !res.Success {
		return s.cartView(), promo.ErrUnknownCode
	}
	s.applied = res.Promo
	s.log.Debug("applied promo code", zap.String("code", res.Promo.Code), zap.Int64("discount", res.Discount))
	return s.cartView(), nil
}

// RemovePromo restores the undiscounted total.
func (s *Session) RemovePromo() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
	return s.cartView()
}

// ToggleCompare adds or removes the product from the comparison. Only
// products of the active theme can be added.
func (s *Session) ToggleCompare(productID uint) (bool, error) {
	p, err := s.deps.Catalog.Product(productID)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ThemeID != s.theme && !s.compare.Contains(p.ID) {
		return false, ErrOtherTheme
	}
	return s.compare.Toggle(p)
}

func (s *Session) Compared() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compare.Products()
}

func (s *Session) ClearCompare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compare.Clear()
}

// Checkout submits the cart. On success the cart and the applied promo
// code are cleared.
func (s *Session) Checkout(ctx context.Context, customer models.Customer) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.deps.Checkout.Submit(ctx, s.ledger.Lines(), customer, s.applied)
	if err != nil {
		return nil, err
	}
	s.ledger.Clear()
	s.applied = nil
	s.log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.Int64("total", order.Total),
		zap.String("promo_code", order.PromoCode))
	return order, nil
}

// Orders returns the order history, newest first.
func (s *Session) Orders(ctx context.Context) ([]models.Order, error) {
	return s.deps.History.Load(ctx)
}
