package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	libhttp "sitecms/backend/libs/httpserver"
	"sitecms/backend/services/api-gateway/internal/clients"
	"sitecms/backend/services/api-gateway/internal/http/middleware"
)

// APIPrefix is stripped before requests reach a backend.
const APIPrefix = "/api"

const maxRequestBytes = 1 << 20

var (
	forwardedRequestHeaders = []string{"Content-Type", "Accept", "Accept-Language", libhttp.RequestIDHeader}
	copiedResponseHeaders   = []string{"Content-Type", "Content-Disposition", "Cache-Control"}
)

// Forwarder sends a request to a backend service.
type Forwarder interface {
	Name() string
	Forward(ctx context.Context, method, pathAndQuery string, body []byte, headers http.Header) (*clients.Response, error)
}

// Proxy relays /api/... requests to one backend.
type Proxy struct {
	backend Forwarder
	logger  *zap.Logger
}

// NewProxy returns a proxy for backend.
func NewProxy(backend Forwarder, logger *zap.Logger) *Proxy {
	return &Proxy{backend: backend, logger: logger}
}

// ServeHTTP forwards the request. The Authorization header travels only once AuthMiddleware has
// verified it; backends check the token again on their write routes.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	headers := http.Header{}
	for _, name := range forwardedRequestHeaders {
		if v := r.Header.Get(name); v != "" {
			headers.Set(name, v)
		}
	}
	if _, ok := middleware.IdentityFromContext(r.Context()); ok {
		headers.Set("Authorization", r.Header.Get("Authorization"))
	}

	target := strings.TrimPrefix(r.URL.Path, APIPrefix)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	resp, err := p.backend.Forward(r.Context(), r.Method, target, body, headers)
	if err != nil {
		p.logger.Error("proxy request failed",
			zap.String("service", p.backend.Name()),
			zap.String("method", r.Method),
			zap.String("path", target),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, p.backend.Name()+" service unavailable")
		return
	}

	for _, name := range copiedResponseHeaders {
		if v := resp.Header.Get(name); v != "" {
			w.Header().Set(name, v)
		}
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
