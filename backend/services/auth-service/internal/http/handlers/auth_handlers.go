package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	libauth "sitecms/backend/libs/auth"
	"sitecms/backend/services/auth-service/internal/models"
)

// Authenticator is the part of AuthService used by the HTTP layer.
type Authenticator interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	User(ctx context.Context, id int64) (*models.User, error)
	SetRole(ctx context.Context, actorID, targetID int64, role string) (*models.User, error)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return req, false
	}
	return req, true
}

// NewSignupHandler handles POST /auth/signup.
func NewSignupHandler(auth Authenticator, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		user, err := auth.Signup(r.Context(), req.Email, req.Password)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				logger.Error("signup failed", zap.Error(err))
				writeError(w, status, "failed to create user")
				return
			}
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

// NewLoginHandler handles POST /auth/login.
func NewLoginHandler(auth Authenticator, expiresIn time.Duration, logger *zap.Logger) http.HandlerFunc {
	type response struct {
		Token     string       `json:"token"`
		TokenType string       `json:"token_type"`
		ExpiresIn int64        `json:"expires_in"`
		User      *models.User `json:"user"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		token, user, err := auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				logger.Error("login failed", zap.Error(err))
				writeError(w, status, "failed to login")
				return
			}
			writeError(w, status, "invalid credentials")
			return
		}

		writeJSON(w, http.StatusOK, response{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: int64(expiresIn / time.Second),
			User:      user,
		})
	}
}

// UsersHandler serves account lookups and role changes.
type UsersHandler struct {
	auth   Authenticator
	tokens TokenValidator
	logger *zap.Logger
}

// NewUsersHandler builds UsersHandler. Callers are identified by their bearer token.
func NewUsersHandler(auth Authenticator, tokens TokenValidator, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{auth: auth, tokens: tokens, logger: logger}
}

// Me handles GET /auth/me.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _, ok := identity(r, h.tokens)
	if !ok {
		writeError(w, http.StatusUnauthorized, "valid bearer token required")
		return
	}
	user, err := h.auth.User(r.Context(), id)
	if err != nil {
		h.fail(w, "load user failed", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SetRole handles PUT /auth/users/{id}/role.
func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := identity(r, h.tokens)
	if !ok {
		writeError(w, http.StatusUnauthorized, "valid bearer token required")
		return
	}
	if role != libauth.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || targetID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.SetRole(r.Context(), actorID, targetID, req.Role)
	if err != nil {
		h.fail(w, "set role failed", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
