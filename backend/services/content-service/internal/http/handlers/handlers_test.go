package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	libauth "sitecms/backend/libs/auth"
	"sitecms/backend/services/content-service/internal/cache"
	httpserver "sitecms/backend/services/content-service/internal/http"
	"sitecms/backend/services/content-service/internal/http/handlers"
	"sitecms/backend/services/content-service/internal/models"
	"sitecms/backend/services/content-service/internal/repository"
	"sitecms/backend/services/content-service/internal/service"
	"sitecms/backend/services/content-service/internal/style"
)

type memoryStore struct {
	overrides map[string]models.StyleOverride
	tokens    []models.ColorToken
}

func (m *memoryStore) Get(_ context.Context, id string) (*models.StyleOverride, error) {
	o, ok := m.overrides[id]
	if !ok {
		return nil, repository.ErrOverrideNotFound
	}
	return &o, nil
}

func (m *memoryStore) Upsert(_ context.Context, o *models.StyleOverride) error {
	m.overrides[o.ElementID] = *o
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	if _, ok := m.overrides[id]; !ok {
		return repository.ErrOverrideNotFound
	}
	delete(m.overrides, id)
	return nil
}

func (m *memoryStore) List(context.Context) ([]models.ColorToken, error) {
	return m.tokens, nil
}

func (m *memoryStore) SetOptimalTextColor(context.Context, string, models.TextColor) error {
	return nil
}

func (m *memoryStore) LoadSnapshot(context.Context) (*style.Snapshot, error) {
	overrides := make([]models.StyleOverride, 0, len(m.overrides))
	for _, o := range m.overrides {
		overrides = append(overrides, o)
	}
	return style.NewSnapshot(overrides, m.tokens, time.Now()), nil
}

const jwtSecret = "content-test-secret"

func bearer(t *testing.T, userID int64, role libauth.Role) map[string]string {
	t.Helper()
	token, err := libauth.Sign([]byte(jwtSecret), userID, role, time.Hour, time.Now())
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	store := &memoryStore{
		overrides: map[string]models.StyleOverride{},
		tokens: []models.ColorToken{
			{CSSVariableName: "--primary", HSLValue: "221 83% 53%", ColorType: models.ColorSolid, OptimalTextColor: models.TextWhite},
			{CSSVariableName: "--card", HSLValue: "0 0% 100%", ColorType: models.ColorSolid, OptimalTextColor: models.TextDark},
		},
	}
	styleCache := cache.NewStyleCache(store, nil, logger)
	require.NoError(t, styleCache.Load(context.Background()))
	svc := service.NewContentService(store, store, styleCache, nil, logger)
	styles := handlers.NewStylesHandler(svc, jwtSecret, logger)

	return httpserver.NewRouter(httpserver.Routes{
		ListStyles:    styles.List,
		ResolveStyle:  styles.Resolve,
		GetStyle:      styles.Get,
		PutStyle:      styles.Put,
		DeleteStyle:   styles.Delete,
		Tokens:        handlers.NewTokensHandler(svc, logger),
		TokenContrast: handlers.NewContrastHandler(svc, logger),
		Health:        handlers.NewHealthHandler(nil),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestResolveUnknownElementEchoesDefaults(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodGet, "/content/styles/resolve?element=hero&bg=bg-muted&text=text-muted&icon=primary&iconName=Star&size=md&shape=rounded", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got style.Resolved
	decode(t, rec, &got)
	assert.Equal(t, style.Resolved{
		ElementID:  "hero",
		Background: "bg-muted",
		TextColor:  "text-muted",
		IconColor:  "primary",
		Icon:       style.IconStar,
		Size:       "md",
		Shape:      "rounded",
	}, got)

	rec = do(t, router, http.MethodGet, "/content/styles/resolve", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditFlow(t *testing.T) {
	router := newRouter(t)
	editor := bearer(t, 12, libauth.RoleEditor)

	rec := do(t, router, http.MethodPut, "/content/styles/hero", `{"background_class":"bg-primary/80"}`, bearer(t, 5, libauth.RoleViewer))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, http.MethodGet, "/content/styles/hero", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, "/content/styles/hero", `{"background_class":"bg-primary/80"}`, editor)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/content/styles/hero", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"background_class":"bg-primary/80"`)

	rec = do(t, router, http.MethodGet, "/content/styles/resolve?element=hero&bg=bg-card&text=text-foreground", "", nil)
	var got style.Resolved
	decode(t, rec, &got)
	assert.True(t, got.Overridden)
	assert.Equal(t, "bg-primary/80", got.Background)
	assert.Equal(t, style.TextWhiteClass, got.TextColor)

	rec = do(t, router, http.MethodGet, "/content/styles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"ready"`)
	assert.Contains(t, rec.Body.String(), `"element_id":"hero"`)

	rec = do(t, router, http.MethodDelete, "/content/styles/hero", "", editor)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/content/styles/hero", "", editor)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutValidation(t *testing.T) {
	router := newRouter(t)
	admin := bearer(t, 1, libauth.RoleAdmin)

	rec := do(t, router, http.MethodPut, "/content/styles/hero", `{}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/content/styles/hero", `{"icon_name":"unicorn"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/content/styles/hero", `{"icon_name":`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWritesIgnoreIdentityHeaders(t *testing.T) {
	router := newRouter(t)
	forged := map[string]string{"X-User-Role": "admin", "X-User-ID": "1"}

	rec := do(t, router, http.MethodPut, "/content/styles/hero", `{"background_class":"bg-primary"}`, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodDelete, "/content/styles/hero", "", forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, err := libauth.Sign([]byte("some-other-secret"), 1, libauth.RoleAdmin, time.Hour, time.Now())
	require.NoError(t, err)
	rec = do(t, router, http.MethodPut, "/content/styles/hero", `{"background_class":"bg-primary"}`, map[string]string{"Authorization": "Bearer " + other})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/content/styles/resolve?element=hero&bg=bg-card", "", nil)
	var got style.Resolved
	decode(t, rec, &got)
	assert.False(t, got.Overridden)
}

func TestTokenEndpoints(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodGet, "/content/tokens", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"--primary"`)

	rec = do(t, router, http.MethodGet, "/content/tokens/contrast", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Reports []struct {
			Token    string `json:"token"`
			Best     string `json:"best"`
			Mismatch bool   `json:"mismatch"`
		} `json:"reports"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Reports, 2)
	for _, r := range body.Reports {
		assert.False(t, r.Mismatch, r.Token)
	}

	rec = do(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
