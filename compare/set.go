// Package compare keeps the bounded set of products shown side by side.
package compare

import (
	"strconv"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/models"
)

// Capacity is the maximum number of compared products.
const Capacity = 3

// ErrLimitReached is returned when toggling a product into a full set.
var ErrLimitReached = errors.New("comparison is limited to 3 products")

// Set is an insertion-ordered set of products keyed by product ID.
type Set struct {
	products []models.Product
}

func NewSet() *Set {
	return &Set{}
}

// Toggle removes p when present and adds it otherwise. Adding to a full
// set fails with ErrLimitReached and leaves the set unchanged.
func (s *Set) Toggle(p models.Product) (added bool, err error) {
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return false, nil
		}
	}
	if len(s.products) >= Capacity {
		return false, ErrLimitReached
	}
	s.products = append(s.products, p)
	return true, nil
}

func (s *Set) Contains(id uint) bool {
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Set) Clear() {
	s.products = nil
}

func (s *Set) Len() int {
	return len(s.products)
}

// Products returns a copy of the compared products.
func (s *Set) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Missing is rendered for attributes a product does not have.
const Missing = "—"

// Row is one attribute of the comparison table.
type Row struct {
	Attribute string   `json:"attribute"`
	Values    []string `json:"values"`
}

// Table lays products out attribute by attribute: brand, category,
// price and stock first, then every spec name in first-seen order.
func Table(products []models.Product) []Row {
	rows := []Row{
		{Attribute: "brand", Values: []string{}},
		{Attribute: "category", Values: []string{}},
		{Attribute: "price", Values: []string{}},
		{Attribute: "in_stock", Values: []string{}},
	}
	for _, p := range products {
		rows[0].Values = append(rows[0].Values, p.Brand)
		rows[1].Values = append(rows[1].Values, p.Category)
		rows[2].Values = append(rows[2].Values, strconv.FormatInt(p.Price, 10))
		rows[3].Values = append(rows[3].Values, strconv.FormatBool(p.InStock))
	}

	var names []string
	seen := map[string]bool{}
	for _, p := range products {
		for _, spec := range p.Specs {
			if !seen[spec.Name] {
				seen[spec.Name] = true
				names = append(names, spec.Name)
			}
		}
	}
	for _, name := range names {
		row := Row{Attribute: name, Values: make([]string, len(products))}
		for i, p := range products {
			v, ok := p.Specs.Get(name)
			if !ok {
				v = Missing
			}
			row.Values[i] = v
		}
		rows = append(rows, row)
	}
	return rows
}
