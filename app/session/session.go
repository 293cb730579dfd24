// Package session attaches the client's storefront session to each
// request.
package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/storefront"
)

// Header carries the session ID in both directions.
const Header = "X-Session-ID"

type Resolver interface {
	Resolve(id string) (*storefront.Session, bool)
}

type contextKey struct{}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s *storefront.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by Middleware, or nil.
func FromContext(ctx context.Context) *storefront.Session {
	s, _ := ctx.Value(contextKey{}).(*storefront.Session)
	return s
}

// Middleware resolves the request's session, creating one when the
// header is missing or unknown, and echoes its ID in the response.
func Middleware(res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := res.Resolve(r.Header.Get(Header))
			w.Header().Set(Header, s.ID())
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
		})
	}
}

// Handler serves session-level endpoints.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// HandleGet returns the session ID and active theme.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s := FromContext(r.Context())
	respond.JSON(w, http.StatusOK, map[string]string{
		"session_id": s.ID(),
		"theme":      s.Theme(),
	})
}

// HandleSwitchTheme handles PUT /session/theme.
func (h *Handler) HandleSwitchTheme(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Theme == "" {
		respond.Error(w, http.StatusBadRequest, "Missing theme")
		return
	}
	s := FromContext(r.Context())
	if err := s.SwitchTheme(input.Theme); err != nil {
		respond.Error(w, http.StatusNotFound, "Theme not found")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"session_id": s.ID(),
		"theme":      s.Theme(),
	})
}
