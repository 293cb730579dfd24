package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/storefront/app/session"
	store "github.com/mytheresa/storefront/catalog"
	"github.com/mytheresa/storefront/promo"
	"github.com/mytheresa/storefront/storefront"
)

func TestHandleBrowse(t *testing.T) {
	testCases := []struct {
		name               string
		theme              string
		url                string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Default theme",
			url:                "/catalog",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, 8, resp.Total)
				assert.Equal(t, uint(1), resp.Products[0].ID)
				assert.False(t, resp.FiltersActive)
			},
		},
		{
			name:               "Switched theme",
			theme:              "fashion",
			url:                "/catalog?limit=2",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, 6, resp.Total)
				assert.Len(t, resp.Products, 2)
				assert.Equal(t, uint(101), resp.Products[0].ID)
			},
		},
		{
			name:               "Filters apply to the active theme",
			url:                "/catalog?brand=Bosch",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, 1, resp.Total)
				assert.True(t, resp.FiltersActive)
			},
		},
		{
			name:               "Category of another theme is rejected",
			url:                "/catalog?category=Dresses",
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Huge offset",
			url:                "/catalog?offset=9223372036854775807",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, 8, resp.Total)
				assert.Empty(t, resp.Products)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			cat, err := store.LoadEmbedded()
			require.NoError(t, err)
			s := storefront.NewManager(storefront.Deps{Catalog: cat, Promos: promo.Default()}).New()
			if tc.theme != "" {
				require.NoError(t, s.SwitchTheme(tc.theme))
			}
			handler := NewCatalogHandler(cat)
			req := httptest.NewRequest("GET", tc.url, nil)
			req = req.WithContext(session.NewContext(req.Context(), s))
			rec := httptest.NewRecorder()

			// Act
			handler.HandleBrowse(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
