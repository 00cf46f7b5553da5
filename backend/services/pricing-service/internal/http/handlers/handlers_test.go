package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
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
	httpserver "sitecms/backend/services/pricing-service/internal/http"
	"sitecms/backend/services/pricing-service/internal/http/handlers"
	"sitecms/backend/services/pricing-service/internal/pricing"
	"sitecms/backend/services/pricing-service/internal/service"
)

type memoryTiers struct {
	overrides map[pricing.PlanFamily][]pricing.Tier
	saveErr   error
}

func (m *memoryTiers) Schedule(_ context.Context, family pricing.PlanFamily) (service.ResolvedSchedule, error) {
	schedule, err := pricing.DefaultSchedule(family, pricing.DefaultGeneratorConfig())
	if err != nil {
		return service.ResolvedSchedule{}, err
	}
	if tiers, ok := m.overrides[family]; ok {
		schedule.Tiers = tiers
		return service.ResolvedSchedule{Schedule: schedule, Overridden: true}, nil
	}
	return service.ResolvedSchedule{Schedule: schedule}, nil
}

func (m *memoryTiers) SaveOverride(_ context.Context, family pricing.PlanFamily, tiers []pricing.Tier) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if err := pricing.ValidateTiers(tiers); err != nil {
		return err
	}
	m.overrides[family] = tiers
	return nil
}

func (m *memoryTiers) ResetOverride(_ context.Context, family pricing.PlanFamily) error {
	delete(m.overrides, family)
	return nil
}

const jwtSecret = "pricing-test-secret"

func bearer(t *testing.T, role libauth.Role) map[string]string {
	t.Helper()
	token, err := libauth.Sign([]byte(jwtSecret), 4, role, time.Hour, time.Now())
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func newRouter(t *testing.T) (http.Handler, *memoryTiers) {
	t.Helper()
	logger := zap.NewNop()
	tiers := &memoryTiers{overrides: map[pricing.PlanFamily][]pricing.Tier{}}
	pricingSvc := service.NewPricingService(service.NewTierService(nil, nil, pricing.DefaultGeneratorConfig(), logger), logger)
	tiersHandler := handlers.NewTiersHandler(tiers, jwtSecret, logger)

	return httpserver.NewRouter(httpserver.Routes{
		Calculate:   handlers.NewCalculateHandler(pricingSvc, logger),
		GetTiers:    tiersHandler.Get,
		PutTiers:    tiersHandler.Put,
		DeleteTiers: tiersHandler.Delete,
		ExportTiers: handlers.NewExportHandler(pricingSvc, logger),
		Currencies:  handlers.NewCurrenciesHandler(),
		Health:      handlers.NewHealthHandler(nil),
	}), tiers
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

func TestCalculateEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodPost, "/pricing/calculate",
		`{"revenue":{"garage":750000,"shop":200000,"mobile":50000},"contract":"none","currency":"EUR"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tier          int     `json:"tier"`
		Total         float64 `json:"total"`
		EffectiveRate float64 `json:"effective_rate_percent"`
		Display       struct {
			TotalFormatted string `json:"total_formatted"`
		} `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Tier)
	assert.InDelta(t, 45_000, body.Total, 1e-6)
	assert.InDelta(t, 4.5, body.EffectiveRate, 1e-9)
	assert.Equal(t, "€45,000", body.Display.TotalFormatted)
}

func TestCalculateEndpointRejectsBadInput(t *testing.T) {
	router, _ := newRouter(t)

	cases := map[string]string{
		"negative revenue":  `{"revenue":{"garage":-5}}`,
		"unknown contract":  `{"revenue":{"garage":5},"contract":"weekly"}`,
		"unknown plan":      `{"revenue":{"garage":5},"plan":"gold"}`,
		"unknown currency":  `{"revenue":{"garage":5},"currency":"JPY"}`,
		"negative sites":    `{"revenue":{"garage":5},"locations":-1}`,
		"broken json":       `{"revenue":`,
		"oversized revenue": `{"revenue":{"garage":1e308,"shop":1e308}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/pricing/calculate", body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestTiersRequireAdminForWrites(t *testing.T) {
	router, tiers := newRouter(t)
	body := `{"tiers":[{"tier_number":1,"revenue_threshold":0,"take_rates":{"garage":3,"shop":3,"mobile":3}}]}`

	rec := do(t, router, http.MethodPut, "/pricing/tiers?plan=launch", body, map[string]string{"X-User-Role": "admin"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodPut, "/pricing/tiers?plan=launch", body, bearer(t, libauth.RoleEditor))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, tiers.overrides)

	rec = do(t, router, http.MethodPut, "/pricing/tiers?plan=launch", body, bearer(t, libauth.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"overridden":true`)

	rec = do(t, router, http.MethodGet, "/pricing/tiers?plan=launch", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"overridden":true`)

	rec = do(t, router, http.MethodDelete, "/pricing/tiers?plan=launch", "", map[string]string{"X-User-Role": "admin"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodDelete, "/pricing/tiers?plan=launch", "", bearer(t, libauth.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, tiers.overrides)
}

func TestPutTiersValidation(t *testing.T) {
	router, tiers := newRouter(t)
	admin := bearer(t, libauth.RoleAdmin)

	rec := do(t, router, http.MethodPut, "/pricing/tiers", `{"tiers":[{"tier_number":1,"revenue_threshold":100}]}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	tiers.saveErr = errors.New("db down")
	rec = do(t, router, http.MethodPut, "/pricing/tiers", `{"tiers":[{"tier_number":1,"revenue_threshold":0}]}`, admin)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestExportEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodGet, "/pricing/tiers/export?plan=scale", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pricing-tiers-scale.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestCurrenciesAndHealth(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(t, router, http.MethodGet, "/pricing/currencies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"base":"EUR"`)
	assert.Contains(t, rec.Body.String(), `"code":"NOK"`)

	rec = do(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
