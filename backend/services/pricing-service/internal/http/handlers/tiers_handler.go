package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"sitecms/backend/services/pricing-service/internal/pricing"
	"sitecms/backend/services/pricing-service/internal/service"
)

// TierManager reads and writes plan tier tables.
type TierManager interface {
	Schedule(ctx context.Context, family pricing.PlanFamily) (service.ResolvedSchedule, error)
	SaveOverride(ctx context.Context, family pricing.PlanFamily, tiers []pricing.Tier) error
	ResetOverride(ctx context.Context, family pricing.PlanFamily) error
}

// WorkbookExporter renders the tier table as a spreadsheet.
type WorkbookExporter interface {
	ExportWorkbook(ctx context.Context, family pricing.PlanFamily, w io.Writer) error
}

// TiersHandler serves /pricing/tiers.
type TiersHandler struct {
	tiers  TierManager
	secret []byte
	logger *zap.Logger
}

// NewTiersHandler builds handler. Writes need an admin token signed with jwtSecret.
func NewTiersHandler(tiers TierManager, jwtSecret string, logger *zap.Logger) *TiersHandler {
	return &TiersHandler{tiers: tiers, secret: []byte(jwtSecret), logger: logger}
}

// Get handles GET /pricing/tiers?plan=.
func (h *TiersHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, err := pricing.ParsePlanFamily(r.URL.Query().Get("plan"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	schedule, err := h.tiers.Schedule(r.Context(), plan)
	if err != nil {
		h.fail(w, "failed to load tiers", err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

type putTiersRequest struct {
	Tiers []pricing.Tier `json:"tiers"`
}

// Put handles PUT /pricing/tiers?plan=.
func (h *TiersHandler) Put(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.secret) {
		return
	}
	plan, err := pricing.ParsePlanFamily(r.URL.Query().Get("plan"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req putTiersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.tiers.SaveOverride(r.Context(), plan, req.Tiers); err != nil {
		h.fail(w, "failed to save tiers", err)
		return
	}
	schedule, err := h.tiers.Schedule(r.Context(), plan)
	if err != nil {
		h.fail(w, "failed to load tiers", err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// Delete handles DELETE /pricing/tiers?plan=.
func (h *TiersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.secret) {
		return
	}
	plan, err := pricing.ParsePlanFamily(r.URL.Query().Get("plan"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.tiers.ResetOverride(r.Context(), plan); err != nil {
		h.fail(w, "failed to reset tiers", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TiersHandler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
		writeError(w, status, message)
		return
	}
	writeError(w, status, err.Error())
}

// NewExportHandler returns GET /pricing/tiers/export handler.
func NewExportHandler(exporter WorkbookExporter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := pricing.ParsePlanFamily(r.URL.Query().Get("plan"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var buf bytes.Buffer
		if err := exporter.ExportWorkbook(r.Context(), plan, &buf); err != nil {
			logger.Error("tier export failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pricing-tiers-%s.xlsx"`, plan))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}
