package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker reports a backend's /health status code.
type HealthChecker interface {
	Name() string
	Health(ctx context.Context) (int, error)
}

// NewHealthHandler returns GET /health. It reports every backend and answers 503 when any is down.
func NewHealthHandler(backends ...HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := "ok"
		services := make(map[string]string, len(backends))
		for _, b := range backends {
			code, err := b.Health(ctx)
			if err != nil || code != http.StatusOK {
				services[b.Name()] = "down"
				status = "degraded"
				continue
			}
			services[b.Name()] = "ok"
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{"status": status, "services": services})
	}
}
