// Package catalog holds the themed product catalogs and the filter
// engine that narrows them.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"

	"github.com/go-faster/errors"

	"github.com/mytheresa/storefront/models"
)

//go:embed themes.json
var embeddedThemes []byte

var (
	// ErrThemeNotFound is returned for an unknown theme ID.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrProductNotFound is returned for an unknown product ID.
	ErrProductNotFound = models.ErrProductNotFound
)

// ThemeProvider supplies themes with their products, e.g. the products
// repository.
type ThemeProvider interface {
	GetThemes() ([]models.Theme, error)
}

// Store is the read-only catalog. It is built once at startup and safe
// for concurrent use.
type Store struct {
	themes   []models.Theme
	index    map[string]int
	products map[uint]models.Product
}

// NewStore validates themes and indexes their products.
func NewStore(themes []models.Theme) (*Store, error) {
	if len(themes) == 0 {
		return nil, errors.New("catalog has no themes")
	}
	s := &Store{
		themes:   make([]models.Theme, len(themes)),
		index:    make(map[string]int, len(themes)),
		products: make(map[uint]models.Product),
	}
	for i, t := range themes {
		if t.ID == "" {
			return nil, errors.Errorf("theme #%d has no id", i)
		}
		if _, dup := s.index[t.ID]; dup {
			return nil, errors.Errorf("duplicate theme %q", t.ID)
		}
		if t.PriceMin < 0 || t.PriceMin > t.PriceMax {
			return nil, errors.Errorf("theme %q: invalid price bounds [%d, %d]", t.ID, t.PriceMin, t.PriceMax)
		}
		products := make([]models.Product, len(t.Products))
		for j, p := range t.Products {
			if p.ID == 0 {
				return nil, errors.Errorf("theme %q: product #%d has no id", t.ID, j)
			}
			if _, dup := s.products[p.ID]; dup {
				return nil, errors.Errorf("duplicate product id %d", p.ID)
			}
			if p.Price < 0 {
				return nil, errors.Errorf("product %d: negative price", p.ID)
			}
			p.ThemeID = t.ID
			products[j] = p
			s.products[p.ID] = p
		}
		t.Products = products
		s.themes[i] = t
		s.index[t.ID] = i
	}
	return s, nil
}

// Load decodes a JSON array of themes.
func Load(r io.Reader) (*Store, error) {
	var themes []models.Theme
	if err := json.NewDecoder(r).Decode(&themes); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return NewStore(themes)
}

// LoadEmbedded builds the store from the catalog bundled with the binary.
func LoadEmbedded() (*Store, error) {
	return Load(bytes.NewReader(embeddedThemes))
}

// LoadFrom builds the store from a theme provider.
func LoadFrom(p ThemeProvider) (*Store, error) {
	themes, err := p.GetThemes()
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	return NewStore(themes)
}

// EmbeddedThemes returns the bundled catalog, used to seed a database.
func EmbeddedThemes() ([]models.Theme, error) {
	var themes []models.Theme
	if err := json.Unmarshal(embeddedThemes, &themes); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return themes, nil
}

// Themes returns the themes in catalog order without their products.
func (s *Store) Themes() []models.Theme {
	out := make([]models.Theme, len(s.themes))
	for i, t := range s.themes {
		t.Products = nil
		out[i] = t
	}
	return out
}

// DefaultTheme is the first theme of the catalog.
func (s *Store) DefaultTheme() string {
	return s.themes[0].ID
}

// Theme returns the theme without its products.
func (s *Store) Theme(id string) (models.Theme, error) {
	i, ok := s.index[id]
	if !ok {
		return models.Theme{}, ErrThemeNotFound
	}
	t := s.themes[i]
	t.Products = nil
	return t, nil
}

// Products returns a copy of the theme's product list.
func (s *Store) Products(themeID string) ([]models.Product, error) {
	i, ok := s.index[themeID]
	if !ok {
		return nil, ErrThemeNotFound
	}
	src := s.themes[i].Products
	out := make([]models.Product, len(src))
	copy(out, src)
	return out, nil
}

func (s *Store) Product(id uint) (models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}
