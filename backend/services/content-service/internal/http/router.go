package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	ListStyles    http.HandlerFunc
	ResolveStyle  http.HandlerFunc
	GetStyle      http.HandlerFunc
	PutStyle      http.HandlerFunc
	DeleteStyle   http.HandlerFunc
	Tokens        http.HandlerFunc
	TokenContrast http.HandlerFunc
	WebSocket     http.Handler
	Health        http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	handle(mux, "GET /content/styles", routes.ListStyles)
	handle(mux, "GET /content/styles/resolve", routes.ResolveStyle)
	handle(mux, "GET /content/styles/{elementID}", routes.GetStyle)
	handle(mux, "PUT /content/styles/{elementID}", routes.PutStyle)
	handle(mux, "DELETE /content/styles/{elementID}", routes.DeleteStyle)
	handle(mux, "GET /content/tokens", routes.Tokens)
	handle(mux, "GET /content/tokens/contrast", routes.TokenContrast)
	if routes.WebSocket != nil {
		mux.Handle("GET /content/ws", routes.WebSocket)
	}
	handle(mux, "GET /health", routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	if handler != nil {
		mux.Handle(pattern, handler)
	}
}
