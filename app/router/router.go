package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/checkout"
	"github.com/mytheresa/storefront/app/compare"
	"github.com/mytheresa/storefront/app/profile"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/themes"
)

type Handlers struct {
	Session  *session.Handler
	Themes   *themes.ThemeHandler
	Catalog  *catalog.CatalogHandler
	Cart     *cart.CartHandler
	Compare  *compare.CompareHandler
	Checkout *checkout.CheckoutHandler
	Profile  *profile.ProfileHandler
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// New registers every route. Routes that read or change per-client
// state go through the session middleware.
func New(h *Handlers, sessions session.Resolver, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	withSession := session.Middleware(sessions)
	stateful := func(fn http.HandlerFunc) http.Handler {
		return withSession(fn)
	}

	mux.HandleFunc("GET /ping", pingHandler)

	// Catalog
	mux.HandleFunc("GET /themes", h.Themes.HandleGetAll)
	mux.HandleFunc("GET /themes/{theme}/facets", h.Themes.HandleGetFacets)
	mux.HandleFunc("GET /themes/{theme}/products", h.Catalog.HandleGet)
	mux.HandleFunc("GET /products/{id}", h.Catalog.HandleGetProduct)
	mux.HandleFunc("GET /promos", h.Cart.HandleListPromos)

	// Session
	mux.Handle("GET /session", stateful(h.Session.HandleGet))
	mux.Handle("GET /catalog", stateful(h.Catalog.HandleBrowse))
	mux.Handle("PUT /session/theme", stateful(h.Session.HandleSwitchTheme))

	// Cart
	mux.Handle("GET /cart", stateful(h.Cart.HandleGet))
	mux.Handle("POST /cart/items", stateful(h.Cart.HandleAdd))
	mux.Handle("PUT /cart/items/{id}", stateful(h.Cart.HandleUpdate))
	mux.Handle("DELETE /cart/items/{id}", stateful(h.Cart.HandleRemove))
	mux.Handle("POST /cart/promo", stateful(h.Cart.HandleApplyPromo))
	mux.Handle("DELETE /cart/promo", stateful(h.Cart.HandleRemovePromo))

	// Comparison
	mux.Handle("GET /compare", stateful(h.Compare.HandleGet))
	mux.Handle("POST /compare/{id}", stateful(h.Compare.HandleToggle))
	mux.Handle("DELETE /compare", stateful(h.Compare.HandleClear))

	// Checkout and history
	mux.Handle("POST /checkout", stateful(h.Checkout.HandleSubmit))
	mux.Handle("GET /profile/orders", stateful(h.Profile.HandleGetOrders))

	return accessLog(log, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func accessLog(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
