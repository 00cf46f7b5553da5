package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libauth "sitecms/backend/libs/auth"
	libhttp "sitecms/backend/libs/httpserver"
)

const secret = "0123456789abcdef"

func bearer(t *testing.T, role libauth.Role) string {
	t.Helper()
	token, err := libauth.Sign([]byte(secret), 5, role, time.Hour, time.Now())
	require.NoError(t, err)
	return "Bearer " + token
}

func guarded(min libauth.Role) (http.Handler, *Identity) {
	var seen Identity
	h := libhttp.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}), AuthMiddleware(secret), RequireRole(min))
	return h, &seen
}

func serve(h http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	h, seen := guarded(libauth.RoleViewer)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "Bearer garbage").Code)

	rec := serve(h, bearer(t, libauth.RoleViewer))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, Identity{UserID: 5, Role: libauth.RoleViewer}, *seen)
}

func TestRequireRole(t *testing.T) {
	editorOnly, _ := guarded(libauth.RoleEditor)
	assert.Equal(t, http.StatusForbidden, serve(editorOnly, bearer(t, libauth.RoleViewer)).Code)
	assert.Equal(t, http.StatusNoContent, serve(editorOnly, bearer(t, libauth.RoleEditor)).Code)
	assert.Equal(t, http.StatusNoContent, serve(editorOnly, bearer(t, libauth.RoleAdmin)).Code)

	adminOnly, _ := guarded(libauth.RoleAdmin)
	rec := serve(adminOnly, bearer(t, libauth.RoleEditor))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"admin role required"}`, rec.Body.String())

	bare := RequireRole(libauth.RoleViewer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	assert.Equal(t, http.StatusUnauthorized, serve(bare, "").Code)
}
