package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	libauth "sitecms/backend/libs/auth"
	"sitecms/backend/services/auth-service/internal/password"
	"sitecms/backend/services/auth-service/internal/repository"
	"sitecms/backend/services/auth-service/internal/service"
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
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, password.ErrWeakPassword),
		errors.Is(err, libauth.ErrInvalidRole),
		errors.Is(err, service.ErrOwnRole):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// TokenValidator verifies issued tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*libauth.Claims, error)
}

// identity verifies the bearer token of r.
func identity(r *http.Request, tokens TokenValidator) (int64, libauth.Role, bool) {
	raw, err := libauth.BearerToken(r)
	if err != nil {
		return 0, "", false
	}
	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		return 0, "", false
	}
	return claims.UserID, claims.Role, true
}
