package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"sitecms/backend/services/pricing-service/internal/currency"
	"sitecms/backend/services/pricing-service/internal/pricing"
	"sitecms/backend/services/pricing-service/internal/service"
)

// Quoter runs price calculations.
type Quoter interface {
	Quote(ctx context.Context, input service.QuoteInput) (*service.Quote, error)
}

type calculateRequest struct {
	Revenue   pricing.Revenue `json:"revenue"`
	Contract  string          `json:"contract"`
	Plan      string          `json:"plan"`
	Locations *int            `json:"locations"`
	Currency  string          `json:"currency"`
	Language  string          `json:"language"`
}

// NewCalculateHandler returns POST /pricing/calculate handler.
func NewCalculateHandler(svc Quoter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calculateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		contract, err := pricing.ParseContractType(req.Contract)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		plan, err := pricing.ParsePlanFamily(req.Plan)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		code, err := currency.ParseCode(req.Currency)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		locations := 1
		if req.Locations != nil {
			locations = *req.Locations
		}

		quote, err := svc.Quote(r.Context(), service.QuoteInput{
			Revenue:   req.Revenue,
			Contract:  contract,
			Plan:      plan,
			Locations: locations,
			Currency:  code,
			Language:  displayLanguage(req.Language, r.Header.Get("Accept-Language")),
		})
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				logger.Error("pricing calculation failed", zap.Error(err))
				writeError(w, status, "calculation failed")
				return
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, quote)
	}
}

func displayLanguage(explicit, acceptLanguage string) language.Tag {
	if tag, err := language.Parse(explicit); err == nil {
		return tag
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
		return tags[0]
	}
	return language.English
}
