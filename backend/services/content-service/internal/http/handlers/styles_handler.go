package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"sitecms/backend/services/content-service/internal/service"
	"sitecms/backend/services/content-service/internal/style"
)

// StylesHandler serves /content/styles.
type StylesHandler struct {
	svc    *service.ContentService
	secret []byte
	logger *zap.Logger
}

// NewStylesHandler builds handler. Writes need a token signed with jwtSecret.
func NewStylesHandler(svc *service.ContentService, jwtSecret string, logger *zap.Logger) *StylesHandler {
	return &StylesHandler{svc: svc, secret: []byte(jwtSecret), logger: logger}
}

// List handles GET /content/styles.
func (h *StylesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Styles())
}

// Resolve handles GET /content/styles/resolve. Query parameters carry the caller defaults; an
// unknown iconName means no default icon.
func (h *StylesHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	elementID := q.Get("element")
	if elementID == "" {
		writeError(w, http.StatusBadRequest, "element required")
		return
	}
	defaults := style.Defaults{
		Background: q.Get("bg"),
		TextColor:  q.Get("text"),
		IconColor:  q.Get("icon"),
		Size:       q.Get("size"),
		Shape:      q.Get("shape"),
	}
	if icon, ok := style.ParseIcon(q.Get("iconName")); ok {
		defaults.Icon = icon
	}
	writeJSON(w, http.StatusOK, h.svc.Resolve(elementID, defaults))
}

// Get handles GET /content/styles/{elementID} with the stored override of one element.
func (h *StylesHandler) Get(w http.ResponseWriter, r *http.Request) {
	override, err := h.svc.Override(r.Context(), r.PathValue("elementID"))
	if err != nil {
		h.fail(w, "failed to load override", err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}

// Put handles PUT /content/styles/{elementID}.
func (h *StylesHandler) Put(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireEditor(w, r, h.secret)
	if !ok {
		return
	}
	var input service.OverrideInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	saved, err := h.svc.SaveOverride(r.Context(), r.PathValue("elementID"), input, claims.UserID)
	if err != nil {
		h.fail(w, "failed to save override", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /content/styles/{elementID}.
func (h *StylesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireEditor(w, r, h.secret); !ok {
		return
	}
	if err := h.svc.ResetOverride(r.Context(), r.PathValue("elementID")); err != nil {
		h.fail(w, "failed to reset override", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StylesHandler) fail(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
		writeError(w, status, message)
		return
	}
	writeError(w, status, err.Error())
}
