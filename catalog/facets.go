package catalog

import (
	"sort"

	"github.com/mytheresa/storefront/models"
)

// sizeOrder is the canonical clothing size order.
var sizeOrder = map[string]int{"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5}

// Facets lists the selectable values of every filterable attribute of a
// theme. Categories and Brands start with the All sentinel.
type Facets struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	PriceMin   int64    `json:"price_min"`
	PriceMax   int64    `json:"price_max"`
}

func (s *Store) Facets(themeID string) (Facets, error) {
	i, ok := s.index[themeID]
	if !ok {
		return Facets{}, ErrThemeNotFound
	}
	return FacetsOf(s.themes[i], s.themes[i].Products), nil
}

// FacetsOf derives the facet values of products within theme t.
func FacetsOf(t models.Theme, products []models.Product) Facets {
	f := Facets{
		Categories: []string{All},
		Brands:     []string{All},
		Sizes:      []string{},
		Colors:     []string{},
		PriceMin:   t.PriceMin,
		PriceMax:   t.PriceMax,
	}
	seen := map[string]bool{}
	add := func(dst *[]string, kind, v string) {
		key := kind + "\x00" + v
		if v == "" || seen[key] {
			return
		}
		seen[key] = true
		*dst = append(*dst, v)
	}
	for _, c := range t.Categories {
		add(&f.Categories, "category", c)
	}
	for _, p := range products {
		add(&f.Categories, "category", p.Category)
		add(&f.Brands, "brand", p.Brand)
		for _, size := range p.Sizes {
			add(&f.Sizes, "size", size)
		}
		for _, color := range p.Colors {
			add(&f.Colors, "color", color)
		}
	}
	sort.SliceStable(f.Sizes, func(i, j int) bool {
		oi, iok := sizeOrder[f.Sizes[i]]
		oj, jok := sizeOrder[f.Sizes[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return f.Sizes[i] < f.Sizes[j]
		}
	})
	return f
}
