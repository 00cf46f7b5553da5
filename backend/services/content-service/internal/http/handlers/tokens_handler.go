package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"sitecms/backend/services/content-service/internal/service"
)

// NewTokensHandler returns GET /content/tokens handler.
func NewTokensHandler(svc *service.ContentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, err := svc.Tokens(r.Context())
		if err != nil {
			logger.Error("failed to load tokens", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load tokens")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"tokens": tokens})
	}
}

// NewContrastHandler returns GET /content/tokens/contrast handler.
func NewContrastHandler(svc *service.ContentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := svc.ContrastReport(r.Context())
		if err != nil {
			logger.Error("contrast report failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "contrast report failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
	}
}
