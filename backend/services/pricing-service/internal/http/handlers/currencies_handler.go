package handlers

import (
	"net/http"

	"sitecms/backend/services/pricing-service/internal/currency"
)

type currencyInfo struct {
	Code   currency.Code `json:"code"`
	Symbol string        `json:"symbol"`
	Rate   float64       `json:"rate"`
}

// NewCurrenciesHandler returns GET /pricing/currencies handler.
func NewCurrenciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes := currency.Supported()
		list := make([]currencyInfo, 0, len(codes))
		for _, code := range codes {
			rate, err := currency.Rate(code)
			if err != nil {
				continue
			}
			list = append(list, currencyInfo{
				Code:   code,
				Symbol: currency.Symbol(code),
				Rate:   rate.InexactFloat64(),
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"base":       currency.Base,
			"currencies": list,
		})
	}
}
