package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	libauth "sitecms/backend/libs/auth"
	"sitecms/backend/services/content-service/internal/repository"
	"sitecms/backend/services/content-service/internal/service"
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

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidElement),
		errors.Is(err, service.ErrUnknownIcon),
		errors.Is(err, service.ErrEmptyOverride):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrOverrideNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// requireEditor verifies the bearer token of r and admits editors and admins.
func requireEditor(w http.ResponseWriter, r *http.Request, secret []byte) (*libauth.Claims, bool) {
	claims, err := libauth.FromRequest(secret, r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "valid bearer token required")
		return nil, false
	}
	if !claims.Role.Allows(libauth.RoleEditor) {
		writeError(w, http.StatusForbidden, "editor role required")
		return nil, false
	}
	return claims, true
}
