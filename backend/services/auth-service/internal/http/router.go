package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	Signup  http.HandlerFunc
	Login   http.HandlerFunc
	Me      http.HandlerFunc
	SetRole http.HandlerFunc
	Health  http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	handle(mux, "POST /auth/signup", routes.Signup)
	handle(mux, "POST /auth/login", routes.Login)
	handle(mux, "GET /auth/me", routes.Me)
	handle(mux, "PUT /auth/users/{id}/role", routes.SetRole)
	handle(mux, "GET /health", routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	if handler != nil {
		mux.Handle(pattern, handler)
	}
}
