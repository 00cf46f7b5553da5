package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	libauth "sitecms/backend/libs/auth"
	httpserver "sitecms/backend/services/auth-service/internal/http"
	"sitecms/backend/services/auth-service/internal/http/handlers"
	"sitecms/backend/services/auth-service/internal/models"
	"sitecms/backend/services/auth-service/internal/password"
	"sitecms/backend/services/auth-service/internal/repository"
	"sitecms/backend/services/auth-service/internal/service"
)

type stubAuth struct {
	users   map[int64]*models.User
	loginOK bool
	failAll error
}

func (s *stubAuth) Signup(_ context.Context, email, plain string) (*models.User, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	if err := password.Validate(plain); err != nil {
		return nil, err
	}
	if email == "taken@example.com" {
		return nil, service.ErrEmailInUse
	}
	return &models.User{ID: 7, Email: email, PasswordHash: "hash", Role: libauth.RoleViewer}, nil
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (string, *models.User, error) {
	if !s.loginOK {
		return "", nil, service.ErrInvalidCredentials
	}
	return "signed.jwt.token", &models.User{ID: 7, Email: email, Role: libauth.RoleEditor}, nil
}

func (s *stubAuth) User(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *stubAuth) SetRole(_ context.Context, actorID, targetID int64, role string) (*models.User, error) {
	if actorID == targetID {
		return nil, service.ErrOwnRole
	}
	parsed, err := libauth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u, ok := s.users[targetID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Role = parsed
	return u, nil
}

var tokens = service.NewTokenService("auth-handlers-test-secret", time.Hour)

func bearer(t *testing.T, id int64, role libauth.Role) map[string]string {
	t.Helper()
	token, err := tokens.GenerateToken(id, role)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func newRouter(auth *stubAuth) http.Handler {
	logger := zap.NewNop()
	users := handlers.NewUsersHandler(auth, tokens, logger)
	return httpserver.NewRouter(httpserver.Routes{
		Signup:  handlers.NewSignupHandler(auth, logger),
		Login:   handlers.NewLoginHandler(auth, time.Hour, logger),
		Me:      users.Me,
		SetRole: users.SetRole,
		Health:  handlers.NewHealthHandler(nil),
	})
}

func do(h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSignupHandler(t *testing.T) {
	h := newRouter(&stubAuth{})

	rec := do(h, http.MethodPost, "/auth/signup", `{"email":"new@example.com","password":"long enough"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "viewer", user["role"])

	rec = do(h, http.MethodPost, "/auth/signup", `{"email":"taken@example.com","password":"long enough"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPost, "/auth/signup", `{"email":"new@example.com","password":"short"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/auth/signup", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRouter(&stubAuth{failAll: errors.New("db down")}), http.MethodPost, "/auth/signup",
		`{"email":"new@example.com","password":"long enough"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestLoginHandler(t *testing.T) {
	rec := do(newRouter(&stubAuth{loginOK: true}), http.MethodPost, "/auth/login",
		`{"email":"e@example.com","password":"long enough"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int64  `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.token", body.Token)
	assert.Equal(t, "Bearer", body.TokenType)
	assert.Equal(t, int64(3600), body.ExpiresIn)

	rec = do(newRouter(&stubAuth{}), http.MethodPost, "/auth/login",
		`{"email":"e@example.com","password":"nope nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(newRouter(&stubAuth{}), http.MethodGet, "/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUsersHandlers(t *testing.T) {
	auth := &stubAuth{users: map[int64]*models.User{
		1: {ID: 1, Email: "admin@example.com", Role: libauth.RoleAdmin},
		2: {ID: 2, Email: "viewer@example.com", Role: libauth.RoleViewer},
	}}
	h := newRouter(auth)
	admin := bearer(t, 1, libauth.RoleAdmin)
	viewer := bearer(t, 2, libauth.RoleViewer)

	rec := do(h, http.MethodGet, "/auth/me", "", viewer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "viewer@example.com")

	rec = do(h, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodPut, "/auth/users/2/role", `{"role":"admin"}`, map[string]string{"X-User-ID": "1", "X-User-Role": "admin"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, libauth.RoleViewer, auth.users[2].Role)

	rec = do(h, http.MethodPut, "/auth/users/2/role", `{"role":"editor"}`, viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, http.MethodPut, "/auth/users/2/role", `{"role":"editor"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, libauth.RoleEditor, auth.users[2].Role)

	rec = do(h, http.MethodPut, "/auth/users/2/role", `{"role":"root"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPut, "/auth/users/1/role", `{"role":"viewer"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPut, "/auth/users/99/role", `{"role":"viewer"}`, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodPut, "/auth/users/abc/role", `{"role":"viewer"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := do(newRouter(&stubAuth{}), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
