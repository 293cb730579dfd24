// Package checkout serves order submission.
package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/checkout"
	"github.com/mytheresa/storefront/models"
)

type CheckoutHandler struct {
	log *zap.Logger
}

func NewCheckoutHandler(log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{log: log}
}

// HandleSubmit handles POST /checkout. The body is the customer's
// contact details.
func (h *CheckoutHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	s := session.FromContext(r.Context())
	order, err := s.Checkout(r.Context(), customer)

	var invalid *checkout.ValidationError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respond.JSON(w, http.StatusConflict, map[string]string{
			"error":    "Cart is empty",
			"redirect": "/",
		})
		return
	case errors.As(err, &invalid):
		respond.JSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Fill in all required fields",
			"fields": invalid.Fields,
		})
		return
	case err != nil:
		h.log.Error("checkout failed", zap.String("session_id", s.ID()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	respond.JSON(w, http.StatusCreated, order)
}
