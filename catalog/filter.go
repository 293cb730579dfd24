package catalog

import (
	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/models"
)

// All is the category/brand selection that matches every product.
const All = "all"

// ErrInvalidFilter is returned by FilterState.Validate.
var ErrInvalidFilter = errors.New("invalid filter")

// FilterState is the user's current facet selection. An empty Category
// or Brand is treated as All.
type FilterState struct {
	Category string
	Brand    string
	PriceMin int64
	PriceMax int64
	Sizes    []string
	Colors   []string
}

// DefaultFilter is the reset state for a theme.
func DefaultFilter(t models.Theme) FilterState {
	return FilterState{
		Category: All,
		Brand:    All,
		PriceMin: t.PriceMin,
		PriceMax: t.PriceMax,
	}
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Matches reports whether p passes every active predicate. Sizes and
// colors are OR within the facet and AND across facets.
func (f FilterState) Matches(p models.Product) bool {
	if !isAll(f.Category) && p.Category != f.Category {
		return false
	}
	if !isAll(f.Brand) && p.Brand != f.Brand {
		return false
	}
	if p.Price < f.PriceMin || p.Price > f.PriceMax {
		return false
	}
	if len(f.Sizes) > 0 && !anyOf(f.Sizes, p.HasSize) {
		return false
	}
	if len(f.Colors) > 0 && !anyOf(f.Colors, p.HasColor) {
		return false
	}
	return true
}

func anyOf(values []string, has func(string) bool) bool {
	for _, v := range values {
		if has(v) {
			return true
		}
	}
	return false
}

// Filter returns the products that match f, keeping catalog order. The
// result is never nil.
func Filter(products []models.Product, f FilterState) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks f against the facets of the theme it is applied to.
func (f FilterState) Validate(facets Facets) error {
	if f.PriceMin < 0 || f.PriceMax < 0 {
		return errors.Wrap(ErrInvalidFilter, "price bounds must not be negative")
	}
	if f.PriceMin > f.PriceMax {
		return errors.Wrapf(ErrInvalidFilter, "price_min %d is greater than price_max %d", f.PriceMin, f.PriceMax)
	}
	if !isAll(f.Category) && !contains(facets.Categories, f.Category) {
		return errors.Wrapf(ErrInvalidFilter, "unknown category %q", f.Category)
	}
	if !isAll(f.Brand) && !contains(facets.Brands, f.Brand) {
		return errors.Wrapf(ErrInvalidFilter, "unknown brand %q", f.Brand)
	}
	for _, size := range f.Sizes {
		if !contains(facets.Sizes, size) {
			return errors.Wrapf(ErrInvalidFilter, "unknown size %q", size)
		}
	}
	for _, color := range f.Colors {
		if !contains(facets.Colors, color) {
			return errors.Wrapf(ErrInvalidFilter, "unknown color %q", color)
		}
	}
	return nil
}

// Active reports whether f differs from the theme's reset state.
func (f FilterState) Active(t models.Theme) bool {
	return !isAll(f.Category) ||
		!isAll(f.Brand) ||
		f.PriceMin != t.PriceMin ||
		f.PriceMax != t.PriceMax ||
		len(f.Sizes) > 0 ||
		len(f.Colors) > 0
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
