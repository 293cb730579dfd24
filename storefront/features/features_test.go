package features

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/mytheresa/storefront/catalog"
	"github.com/mytheresa/storefront/checkout"
	"github.com/mytheresa/storefront/history"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/promo"
	"github.com/mytheresa/storefront/storefront"
)

func testCatalog() (*catalog.Store, error) {
	return catalog.NewStore([]models.Theme{
		{
			ID:         "electronics",
			Categories: []string{"Power tools", "Lighting", "Gifts"},
			PriceMax:   20000,
			Products: []models.Product{
				{ID: 1, Name: "Cordless drill", Brand: "Bosch", Category: "Power tools", Price: 12990, InStock: true},
				{ID: 2, Name: "Rotary hammer", Brand: "Makita", Category: "Power tools", Price: 18500, InStock: true},
				{ID: 3, Name: "Angle grinder", Brand: "DeWalt", Category: "Power tools", Price: 8990, InStock: true},
				{ID: 4, Name: "LED bulb", Brand: "Philips", Category: "Lighting", Price: 450, InStock: true},
				{ID: 6, Name: "Chandelier", Brand: "Lucia", Category: "Lighting", Price: 5990, InStock: false},
				{ID: 90, Name: "Gift set", Brand: "Bosch", Category: "Gifts", Price: 10000, InStock: true},
			},
		},
		{
			ID:         "fashion",
			Categories: []string{"Dresses"},
			PriceMax:   500000,
			Products: []models.Product{
				{ID: 101, Name: "Evening dress", Brand: "Valentino", Category: "Dresses", Price: 145000, InStock: true},
			},
		},
	})
}

type storefrontTestContext struct {
	session *storefront.Session
	orders  *history.MemoryStore
	err     error
}

func (c *storefrontTestContext) reset() {
	c.session = nil
	c.orders = nil
	c.err = nil
}

func (c *storefrontTestContext) aNewSession() error {
	store, err := testCatalog()
	if err != nil {
		return err
	}
	c.orders = history.NewMemoryStore()
	m := storefront.NewManager(storefront.Deps{
		Catalog:  store,
		Promos:   promo.Default(),
		Checkout: checkout.NewService(c.orders),
		History:  c.orders,
	})
	c.session = m.New()
	return nil
}

func (c *storefrontTestContext) productIsInTheCart(id int) error {
	return c.session.AddToCart(uint(id), 1)
}

func (c *storefrontTestContext) theCartTotals(total int) error {
	if total != 10000 {
		return fmt.Errorf("the test catalog only supports a 10000 cart, got %d", total)
	}
	return c.session.AddToCart(90, 1)
}

func (c *storefrontTestContext) thePromoCodeIsApplied(code string) error {
	_, err := c.session.ApplyPromo(code)
	return err
}

func (c *storefrontTestContext) productsAreCompared(a, b, d int) error {
	for _, id := range []int{a, b, d} {
		if _, err := c.session.ToggleCompare(uint(id)); err != nil {
			return err
		}
	}
	return nil
}

func (c *storefrontTestContext) iAddProductToTheCart(id int) error {
	c.err = c.session.AddToCart(uint(id), 1)
	return nil
}

func (c *storefrontTestContext) iSetTheQuantityOfProductTo(id, quantity int) error {
	ok, err := c.session.UpdateQuantity(uint(id), quantity)
	if !ok {
		return fmt.Errorf("product %d is not in the cart", id)
	}
	c.err = err
	return nil
}

func (c *storefrontTestContext) iApplyThePromoCode(code string) error {
	_, c.err = c.session.ApplyPromo(code)
	return nil
}

func (c *storefrontTestContext) iRemoveThePromoCode() error {
	c.session.RemovePromo()
	return nil
}

func (c *storefrontTestContext) iToggleProductForComparison(id int) error {
	_, c.err = c.session.ToggleCompare(uint(id))
	return nil
}

func (c *storefrontTestContext) iSwitchToTheTheme(theme string) error {
	return c.session.SwitchTheme(theme)
}

func (c *storefrontTestContext) iCheckOutAs(name, email, phone, address string) error {
	_, c.err = c.session.Checkout(context.Background(), models.Customer{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: address,
	})
	return nil
}

func (c *storefrontTestContext) theOperationFailsWith(fragment string) error {
	if c.err == nil {
		return fmt.Errorf("expected an error containing %q", fragment)
	}
	if !strings.Contains(c.err.Error(), fragment) {
		return fmt.Errorf("expected error containing %q, got %q", fragment, c.err.Error())
	}
	return nil
}

func (c *storefrontTestContext) theCartHasLines(n int) error {
	if got := len(c.session.Cart().Lines); got != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) theCartLineForProductHasQuantity(id, quantity int) error {
	for _, l := range c.session.Cart().Lines {
		if l.Product.ID == uint(id) {
			if l.Quantity != quantity {
				return fmt.Errorf("expected quantity %d, got %d", quantity, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %d is not in the cart", id)
}

func (c *storefrontTestContext) theCartHasItemsTotalling(items, total int) error {
	view := c.session.Cart()
	if view.TotalItems != items {
		return fmt.Errorf("expected %d items, got %d", items, view.TotalItems)
	}
	if view.Subtotal != int64(total) {
		return fmt.Errorf("expected subtotal %d, got %d", total, view.Subtotal)
	}
	return nil
}

func (c *storefrontTestContext) theDiscountIs(discount int) error {
	if got := c.session.Cart().Discount; got != int64(discount) {
		return fmt.Errorf("expected discount %d, got %d", discount, got)
	}
	return nil
}

func (c *storefrontTestContext) theCartTotalIs(total int) error {
	if got := c.session.Cart().Total; got != int64(total) {
		return fmt.Errorf("expected total %d, got %d", total, got)
	}
	return nil
}

func (c *storefrontTestContext) productsAreComparedCount(n int) error {
	if got := len(c.session.Compared()); got != n {
		return fmt.Errorf("expected %d compared products, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) theOrderHistoryHasOrders(n int) error {
	orders, err := c.orders.Load(context.Background())
	if err != nil {
		return err
	}
	if len(orders) != n {
		return fmt.Errorf("expected %d orders, got %d", n, len(orders))
	}
	return nil
}

func (c *storefrontTestContext) theLatestOrderTotalIs(total int) error {
	orders, err := c.orders.Load(context.Background())
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return fmt.Errorf("no orders")
	}
	if orders[0].Total != int64(total) {
		return fmt.Errorf("expected order total %d, got %d", total, orders[0].Total)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a new session$`, tc.aNewSession)
	ctx.Step(`^product (\d+) is in the cart$`, tc.productIsInTheCart)
	ctx.Step(`^the cart totals (\d+)$`, tc.theCartTotals)
	ctx.Step(`^the promo code "([^"]*)" is applied$`, tc.thePromoCodeIsApplied)
	ctx.Step(`^products (\d+), (\d+) and (\d+) are compared$`, tc.productsAreCompared)

	// When steps
	ctx.Step(`^I add product (\d+) to the cart$`, tc.iAddProductToTheCart)
	ctx.Step(`^I set the quantity of product (\d+) to (\d+)$`, tc.iSetTheQuantityOfProductTo)
	ctx.Step(`^I apply the promo code "([^"]*)"$`, tc.iApplyThePromoCode)
	ctx.Step(`^I remove the promo code$`, tc.iRemoveThePromoCode)
	ctx.Step(`^I toggle product (\d+) for comparison$`, tc.iToggleProductForComparison)
	ctx.Step(`^I switch to the "([^"]*)" theme$`, tc.iSwitchToTheTheme)
	ctx.Step(`^I check out as "([^"]*)" with email "([^"]*)", phone "([^"]*)", address "([^"]*)"$`, tc.iCheckOutAs)

	// Then steps
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart line for product (\d+) has quantity (\d+)$`, tc.theCartLineForProductHasQuantity)
	ctx.Step(`^the cart has (\d+) items totalling (\d+)$`, tc.theCartHasItemsTotalling)
	ctx.Step(`^the discount is (\d+)$`, tc.theDiscountIs)
	ctx.Step(`^the cart total is (\d+)$`, tc.theCartTotalIs)
	ctx.Step(`^(\d+) products are compared$`, tc.productsAreComparedCount)
	ctx.Step(`^the order history has (\d+) orders$`, tc.theOrderHistoryHasOrders)
	ctx.Step(`^the latest order total is (\d+)$`, tc.theLatestOrderTotalIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"storefront.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
