package themes

import (
	"net/http"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/catalog"
	"github.com/mytheresa/storefront/models"
)

type ThemeResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Icon       string   `json:"icon"`
	Categories []string `json:"categories"`
	PriceMin   int64    `json:"price_min"`
	PriceMax   int64    `json:"price_max"`
	Products   int      `json:"products"`
}

type ThemeProvider interface {
	Themes() []models.Theme
	Products(themeID string) ([]models.Product, error)
	Facets(themeID string) (catalog.Facets, error)
}

type ThemeHandler struct {
	repo ThemeProvider
}

func NewThemeHandler(r ThemeProvider) *ThemeHandler {
	return &ThemeHandler{repo: r}
}

func (h *ThemeHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	themes := h.repo.Themes()

	response := make([]ThemeResponse, len(themes))
	for i, t := range themes {
		products, err := h.repo.Products(t.ID)
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, "failed to fetch themes")
			return
		}
		categories := []string(t.Categories)
		if categories == nil {
			categories = []string{}
		}
		response[i] = ThemeResponse{
			ID:         t.ID,
			Name:       t.Name,
			Icon:       t.Icon,
			Categories: categories,
			PriceMin:   t.PriceMin,
			PriceMax:   t.PriceMax,
			Products:   len(products),
		}
	}

	respond.JSON(w, http.StatusOK, response)
}

func (h *ThemeHandler) HandleGetFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.repo.Facets(r.PathValue("theme"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Theme not found")
		return
	}
	respond.JSON(w, http.StatusOK, facets)
}
