package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"sitecms/backend/services/pricing-service/internal/currency"
	"sitecms/backend/services/pricing-service/internal/pricing"
)

// QuoteInput is one calculator request.
type QuoteInput struct {
	Revenue   pricing.Revenue
	Contract  pricing.ContractType
	Plan      pricing.PlanFamily
	Locations int
	// Currency is the display currency; revenue is always EUR.
	Currency currency.Code
	Language language.Tag
}

// Display holds the figures converted to the display currency.
type Display struct {
	Currency         currency.Code `json:"currency"`
	Total            float64       `json:"total"`
	TotalFormatted   string        `json:"total_formatted"`
	TotalCompact     string        `json:"total_compact"`
	Monthly          float64       `json:"monthly"`
	MonthlyFormatted string        `json:"monthly_formatted"`
}

// Quote is the calculator result plus its display figures.
type Quote struct {
	pricing.Result
	Overridden bool    `json:"tiers_overridden"`
	Display    Display `json:"display"`
}

// PricingService runs calculations against the active schedule.
type PricingService struct {
	tiers  *TierService
	logger *zap.Logger
}

// NewPricingService builds service.
func NewPricingService(tiers *TierService, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingService{tiers: tiers, logger: logger}
}

// Quote calculates the annual cost for input.
func (s *PricingService) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	schedule, err := s.tiers.Schedule(ctx, input.Plan)
	if err != nil {
		return nil, err
	}

	result, err := pricing.Calculate(input.Revenue, input.Contract, schedule.Schedule, input.Locations)
	if err != nil {
		return nil, err
	}

	code := input.Currency
	if code == "" {
		code = currency.Base
	}
	total, err := currency.FromEUR(result.Total, code)
	if err != nil {
		return nil, err
	}
	monthly, err := currency.FromEUR(result.Total/12, code)
	if err != nil {
		return nil, err
	}

	lang := input.Language
	if lang == language.Und {
		lang = language.English
	}

	s.logger.Debug("quote calculated",
		zap.String("plan", string(result.Plan)),
		zap.Int("tier", result.Tier),
		zap.Float64("total_eur", result.Total),
	)

	return &Quote{
		Result:     result,
		Overridden: schedule.Overridden,
		Display: Display{
			Currency:         code,
			Total:            total,
			TotalFormatted:   currency.Format(total, code, lang),
			TotalCompact:     currency.FormatCompact(total, code),
			Monthly:          monthly,
			MonthlyFormatted: currency.Format(monthly, code, lang),
		},
	}, nil
}
