// Package cart serves the session cart and promo code endpoints.
package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	ledger "github.com/mytheresa/storefront/cart"
	"github.com/mytheresa/storefront/catalog"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/promo"
	"github.com/mytheresa/storefront/storefront"
)

type Item struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
}

type Response struct {
	Items      []Item            `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   int64             `json:"subtotal"`
	Promo      *models.PromoCode `json:"promo,omitempty"`
	Discount   int64             `json:"discount"`
	Total      int64             `json:"total"`
}

// PromoLister lists the codes customers can redeem.
type PromoLister interface {
	Codes() []models.PromoCode
}

type CartHandler struct {
	promos PromoLister
}

func NewCartHandler(p PromoLister) *CartHandler {
	return &CartHandler{promos: p}
}

// HandleGet handles GET /cart.
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	respond.JSON(w, http.StatusOK, toResponse(s.Cart()))
}

// HandleAdd handles POST /cart/items. Quantity defaults to one.
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID uint `json:"product_id"`
		Quantity  *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.ProductID == 0 {
		respond.Error(w, http.StatusBadRequest, "Missing product_id")
		return
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	s := session.FromContext(r.Context())
	err := s.AddToCart(input.ProductID, quantity)
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	case errors.Is(err, ledger.ErrOutOfStock):
		respond.Error(w, http.StatusConflict, "Product is out of stock")
		return
	case errors.Is(err, ledger.ErrInvalidQuantity):
		respond.Error(w, http.StatusBadRequest, "Quantity must be between 1 and 999")
		return
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(s.Cart()))
}

// HandleUpdate handles PUT /cart/items/{id}. A quantity below one
// removes the line.
func (h *CartHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var input struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Quantity == nil {
		respond.Error(w, http.StatusBadRequest, "Missing quantity")
		return
	}

	s := session.FromContext(r.Context())
	ok, err := s.UpdateQuantity(id, *input.Quantity)
	if !ok {
		respond.Error(w, http.StatusNotFound, "Item not in cart")
		return
	}
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Quantity must be between 1 and 999")
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(s.Cart()))
}

// HandleRemove handles DELETE /cart/items/{id}.
func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s := session.FromContext(r.Context())
	if !s.RemoveFromCart(id) {
		respond.Error(w, http.StatusNotFound, "Item not in cart")
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(s.Cart()))
}

// HandleApplyPromo handles POST /cart/promo.
func (h *CartHandler) HandleApplyPromo(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Code == "" {
		respond.Error(w, http.StatusBadRequest, "Missing code")
		return
	}

	s := session.FromContext(r.Context())
	view, err := s.ApplyPromo(input.Code)
	if errors.Is(err, promo.ErrUnknownCode) {
		respond.Error(w, http.StatusNotFound, "Promo code not found")
		return
	}
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to apply promo code")
		return
	}
	respond.JSON(w, http.StatusOK, toResponse(view))
}

// HandleRemovePromo handles DELETE /cart/promo.
func (h *CartHandler) HandleRemovePromo(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	respond.JSON(w, http.StatusOK, toResponse(s.RemovePromo()))
}

// HandleListPromos handles GET /promos.
func (h *CartHandler) HandleListPromos(w http.ResponseWriter, r *http.Request) {
	codes := h.promos.Codes()
	if codes == nil {
		codes = []models.PromoCode{}
	}
	respond.JSON(w, http.StatusOK, codes)
}

func productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Item not in cart")
		return 0, false
	}
	return uint(id), true
}

func toResponse(v storefront.CartView) Response {
	items := make([]Item, len(v.Lines))
	for i, l := range v.Lines {
		items[i] = Item{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Brand:     l.Product.Brand,
			Image:     l.Product.Image,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
			Total:     l.Total(),
		}
	}
	return Response{
		Items:      items,
		TotalItems: v.TotalItems,
		Subtotal:   v.Subtotal,
		Promo:      v.Promo,
		Discount:   v.Discount,
		Total:      v.Total,
	}
}
