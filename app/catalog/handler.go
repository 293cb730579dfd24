package catalog

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/app/session"
	store "github.com/mytheresa/storefront/catalog"
	"github.com/mytheresa/storefront/models"
)

type Response struct {
	Total         int       `json:"total"`
	FiltersActive bool      `json:"filters_active"`
	Products      []Product `json:"products"`
}

type Product struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Brand    string       `json:"brand"`
	Category string       `json:"category"`
	Price    int64        `json:"price"`
	Image    string       `json:"image"`
	InStock  bool         `json:"in_stock"`
	Specs    models.Specs `json:"specs"`
	Sizes    []string     `json:"sizes,omitempty"`
	Colors   []string     `json:"colors,omitempty"`
}

type ProductDetail struct {
	Product
	Theme       string          `json:"theme"`
	Description string          `json:"description"`
	Rating      float64         `json:"rating"`
	Reviews     []models.Review `json:"reviews"`
}

type ProductProvider interface {
	Theme(id string) (models.Theme, error)
	Products(themeID string) ([]models.Product, error)
	Facets(themeID string) (store.Facets, error)
	Product(id uint) (models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleGet handles GET /themes/{theme}/products.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	theme, err := h.repo.Theme(r.PathValue("theme"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Theme not found")
		return
	}
	filter, offset, limit := parseQuery(r.URL.Query(), theme)

	facets, err := h.repo.Facets(theme.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	if err := filter.Validate(facets); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	all, err := h.repo.Products(theme.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	respond.JSON(w, http.StatusOK, page(store.Filter(all, filter), filter.Active(theme), offset, limit))
}

// HandleBrowse handles GET /catalog, the session's active theme.
func (h *CatalogHandler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	theme, err := h.repo.Theme(s.Theme())
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Theme not found")
		return
	}
	filter, offset, limit := parseQuery(r.URL.Query(), theme)

	res, err := s.Browse(filter)
	if errors.Is(err, store.ErrInvalidFilter) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	respond.JSON(w, http.StatusOK, page(res, filter.Active(theme), offset, limit))
}

// parseQuery reads pagination and filter params. Unparsable numbers
// keep their defaults.
func parseQuery(query url.Values, theme models.Theme) (filter store.FilterState, offset, limit int) {
	limit = 10
	if oStr := query.Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}
	if lStr := query.Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	filter = store.DefaultFilter(theme)
	if category := query.Get("category"); category != "" {
		filter.Category = category
	}
	if brand := query.Get("brand"); brand != "" {
		filter.Brand = brand
	}
	if minStr := query.Get("price_min"); minStr != "" {
		if v, err := strconv.ParseInt(minStr, 10, 64); err == nil {
			filter.PriceMin = v
		}
	}
	if maxStr := query.Get("price_max"); maxStr != "" {
		if v, err := strconv.ParseInt(maxStr, 10, 64); err == nil {
			filter.PriceMax = v
		}
	}
	filter.Sizes = query["size"]
	filter.Colors = query["color"]
	return filter, offset, limit
}

func page(res []models.Product, active bool, offset, limit int) Response {
	total := len(res)
	start := min(offset, total)
	end := start + min(limit, total-start)

	products := make([]Product, 0, end-start)
	for _, p := range res[start:end] {
		products = append(products, toProduct(p))
	}
	return Response{
		Total:         total,
		FiltersActive: active,
		Products:      products,
	}
}

// HandleGetProduct handles GET /products/{id}.
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	product, err := h.repo.Product(uint(id))
	if errors.Is(err, store.ErrProductNotFound) {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	reviews := product.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	respond.JSON(w, http.StatusOK, ProductDetail{
		Product:     toProduct(product),
		Theme:       product.ThemeID,
		Description: product.Description,
		Rating:      product.AverageRating(),
		Reviews:     reviews,
	})
}

func toProduct(p models.Product) Product {
	specs := p.Specs
	if specs == nil {
		specs = models.Specs{}
	}
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Price:    p.Price,
		Image:    p.Image,
		InStock:  p.InStock,
		Specs:    specs,
		Sizes:    p.Sizes,
		Colors:   p.Colors,
	}
}
