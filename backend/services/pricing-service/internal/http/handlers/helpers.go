package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	libauth "sitecms/backend/libs/auth"
	"sitecms/backend/services/pricing-service/internal/currency"
	"sitecms/backend/services/pricing-service/internal/pricing"
	"sitecms/backend/services/pricing-service/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInvalidRevenue),
		errors.Is(err, pricing.ErrInvalidLocations),
		errors.Is(err, pricing.ErrInvalidTiers),
		errors.Is(err, pricing.ErrUnknownContract),
		errors.Is(err, pricing.ErrUnknownPlan),
		errors.Is(err, currency.ErrUnsupportedCurrency),
		errors.Is(err, currency.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrOverridesDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requireAdmin verifies the bearer token of r and admits admins only.
func requireAdmin(w http.ResponseWriter, r *http.Request, secret []byte) bool {
	claims, err := libauth.FromRequest(secret, r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "valid bearer token required")
		return false
	}
	if !claims.Role.Allows(libauth.RoleAdmin) {
		writeError(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}
