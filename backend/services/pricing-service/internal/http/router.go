package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	Calculate   http.HandlerFunc
	GetTiers    http.HandlerFunc
	PutTiers    http.HandlerFunc
	DeleteTiers http.HandlerFunc
	ExportTiers http.HandlerFunc
	Currencies  http.HandlerFunc
	Health      http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	handle(mux, "POST /pricing/calculate", routes.Calculate)
	handle(mux, "GET /pricing/tiers", routes.GetTiers)
	handle(mux, "PUT /pricing/tiers", routes.PutTiers)
	handle(mux, "DELETE /pricing/tiers", routes.DeleteTiers)
	handle(mux, "GET /pricing/tiers/export", routes.ExportTiers)
	handle(mux, "GET /pricing/currencies", routes.Currencies)
	handle(mux, "GET /health", routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	if handler != nil {
		mux.Handle(pattern, handler)
	}
}
