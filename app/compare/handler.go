// Package compare serves the session's product comparison.
package compare

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/catalog"
	set "github.com/mytheresa/storefront/compare"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/storefront"
)

type Response struct {
	Products []models.Product `json:"products"`
	Table    []set.Row        `json:"table"`
}

type CompareHandler struct{}

func NewCompareHandler() *CompareHandler {
	return &CompareHandler{}
}

// HandleGet handles GET /compare.
func (h *CompareHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	respond.JSON(w, http.StatusOK, toResponse(s.Compared()))
}

// HandleToggle handles POST /compare/{id}.
func (h *CompareHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	s := session.FromContext(r.Context())
	added, err := s.ToggleCompare(uint(id))
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	case errors.Is(err, storefront.ErrOtherTheme):
		respond.Error(w, http.StatusConflict, "Product is not in the active theme")
		return
	case errors.Is(err, set.ErrLimitReached):
		respond.Error(w, http.StatusConflict, "You can compare up to 3 products")
		return
	case err != nil:
		respond.Error(w, http.StatusInternalServerError, "Failed to update comparison")
		return
	}

	resp := toResponse(s.Compared())
	respond.JSON(w, http.StatusOK, struct {
		Added bool `json:"added"`
		Response
	}{added, resp})
}

// HandleClear handles DELETE /compare.
func (h *CompareHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	s.ClearCompare()
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(products []models.Product) Response {
	return Response{
		Products: products,
		Table:    set.Table(products),
	}
}
