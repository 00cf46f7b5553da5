package httpserver

import (
	"net/http"

	libauth "sitecms/backend/libs/auth"
	libhttp "sitecms/backend/libs/httpserver"
	"sitecms/backend/services/api-gateway/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Pricing       http.Handler
	Content       http.Handler
	Auth          http.Handler
	HealthHandler http.HandlerFunc
}

// NewRouter wires the public API. Reads are anonymous; edit actions need a token and a role.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	guarded := func(min libauth.Role, h http.Handler) http.Handler {
		return libhttp.Chain(h, authMiddleware, middleware.RequireRole(min))
	}

	mux.Handle("GET /health", deps.HealthHandler)

	mux.Handle("POST /api/pricing/calculate", deps.Pricing)
	mux.Handle("GET /api/pricing/tiers", deps.Pricing)
	mux.Handle("GET /api/pricing/tiers/export", deps.Pricing)
	mux.Handle("GET /api/pricing/currencies", deps.Pricing)
	mux.Handle("PUT /api/pricing/tiers", guarded(libauth.RoleAdmin, deps.Pricing))
	mux.Handle("DELETE /api/pricing/tiers", guarded(libauth.RoleAdmin, deps.Pricing))

	mux.Handle("GET /api/content/styles", deps.Content)
	mux.Handle("GET /api/content/styles/resolve", deps.Content)
	mux.Handle("GET /api/content/styles/{elementID}", deps.Content)
	mux.Handle("GET /api/content/tokens", deps.Content)
	mux.Handle("GET /api/content/tokens/contrast", deps.Content)
	mux.Handle("PUT /api/content/styles/{elementID}", guarded(libauth.RoleEditor, deps.Content))
	mux.Handle("DELETE /api/content/styles/{elementID}", guarded(libauth.RoleEditor, deps.Content))

	mux.Handle("POST /api/auth/signup", deps.Auth)
	mux.Handle("POST /api/auth/login", deps.Auth)
	mux.Handle("GET /api/auth/me", guarded(libauth.RoleViewer, deps.Auth))
	mux.Handle("PUT /api/auth/users/{id}/role", guarded(libauth.RoleAdmin, deps.Auth))

	return mux
}
