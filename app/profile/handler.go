// Package profile serves the order history page.
package profile

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/history"
	"github.com/mytheresa/storefront/models"
)

type Response struct {
	Orders  []models.Order  `json:"orders"`
	Summary history.Summary `json:"summary"`
}

type ProfileHandler struct {
	log *zap.Logger
}

func NewProfileHandler(log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{log: log}
}

// HandleGetOrders handles GET /profile/orders.
func (h *ProfileHandler) HandleGetOrders(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	orders, err := s.Orders(r.Context())
	if err != nil {
		h.log.Error("failed to load orders", zap.String("session", s.ID()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respond.JSON(w, http.StatusOK, Response{
		Orders:  orders,
		Summary: history.Summarize(orders),
	})
}
