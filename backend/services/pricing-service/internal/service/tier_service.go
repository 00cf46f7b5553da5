package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	libredis "sitecms/backend/libs/redis"
	"sitecms/backend/services/pricing-service/internal/models"
	"sitecms/backend/services/pricing-service/internal/pricing"
)

// ErrOverridesDisabled is returned for writes when no override store is configured.
var ErrOverridesDisabled = errors.New("tiers: override store not configured")

// TierStore persists tier overrides.
type TierStore interface {
	ListByPlan(ctx context.Context, plan string) ([]models.TierOverride, error)
	ReplacePlan(ctx context.Context, plan string, tiers []models.TierOverride) error
	DeletePlan(ctx context.Context, plan string) error
}

// TierCache caches resolved override tables.
type TierCache interface {
	Get(ctx context.Context, plan pricing.PlanFamily) ([]pricing.Tier, error)
	Set(ctx context.Context, plan pricing.PlanFamily, tiers []pricing.Tier) error
	Delete(ctx context.Context, plan pricing.PlanFamily) error
}

// TierService resolves plan schedules: stored override when present and valid, generated default
// otherwise.
type TierService struct {
	store  TierStore
	cache  TierCache
	gen    pricing.GeneratorConfig
	logger *zap.Logger
}

// NewTierService returns service instance. store and cache may be nil.
func NewTierService(store TierStore, cache TierCache, gen pricing.GeneratorConfig, logger *zap.Logger) *TierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TierService{
		store:  store,
		cache:  cache,
		gen:    gen,
		logger: logger,
	}
}

// ResolvedSchedule tells where the tier table came from.
type ResolvedSchedule struct {
	pricing.Schedule
	Overridden bool `json:"overridden"`
}

// Schedule returns the active schedule of family; empty means pricing.PlanTiered. Read failures are
// logged and answered with the built-in table.
func (s *TierService) Schedule(ctx context.Context, family pricing.PlanFamily) (ResolvedSchedule, error) {
	if family == "" {
		family = pricing.PlanTiered
	}
	base, err := pricing.DefaultSchedule(family, s.gen)
	if err != nil {
		return ResolvedSchedule{}, err
	}

	tiers, ok := s.overrideTiers(ctx, family)
	if !ok {
		return ResolvedSchedule{Schedule: base}, nil
	}
	base.Tiers = tiers
	return ResolvedSchedule{Schedule: base, Overridden: true}, nil
}

func (s *TierService) overrideTiers(ctx context.Context, family pricing.PlanFamily) ([]pricing.Tier, bool) {
	log := s.logger.With(zap.String("plan", string(family)))

	if s.cache != nil {
		tiers, err := s.cache.Get(ctx, family)
		switch {
		case err == nil && pricing.ValidateTiers(tiers) == nil:
			return tiers, true
		case err != nil && !libredis.IsMiss(err):
			log.Warn("tier cache read failed", zap.Error(err))
		}
	}

	if s.store == nil {
		return nil, false
	}

	rows, err := s.store.ListByPlan(ctx, string(family))
	if err != nil {
		log.Warn("tier override lookup failed, using default table", zap.Error(err))
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}

	tiers := toTiers(rows)
	if err := pricing.ValidateTiers(tiers); err != nil {
		log.Warn("stored tier override is invalid, using default table", zap.Error(err))
		return nil, false
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, family, tiers); err != nil {
			log.Warn("tier cache write failed", zap.Error(err))
		}
	}
	return tiers, true
}

// SaveOverride validates and stores tiers as the override of family.
func (s *TierService) SaveOverride(ctx context.Context, family pricing.PlanFamily, tiers []pricing.Tier) error {
	if s.store == nil {
		return ErrOverridesDisabled
	}
	if err := pricing.ValidateTiers(tiers); err != nil {
		return err
	}
	if err := s.store.ReplacePlan(ctx, string(family), toRows(family, tiers)); err != nil {
		return fmt.Errorf("save tier override: %w", err)
	}
	s.invalidate(ctx, family)
	s.logger.Info("tier override saved", zap.String("plan", string(family)), zap.Int("tiers", len(tiers)))
	return nil
}

// ResetOverride drops the override of family so the built-in table applies again.
func (s *TierService) ResetOverride(ctx context.Context, family pricing.PlanFamily) error {
	if s.store == nil {
		return ErrOverridesDisabled
	}
	if err := s.store.DeletePlan(ctx, string(family)); err != nil {
		return fmt.Errorf("reset tier override: %w", err)
	}
	s.invalidate(ctx, family)
	s.logger.Info("tier override reset", zap.String("plan", string(family)))
	return nil
}

func (s *TierService) invalidate(ctx context.Context, family pricing.PlanFamily) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, family); err != nil {
		s.logger.Warn("tier cache invalidation failed", zap.String("plan", string(family)), zap.Error(err))
	}
}

func toTiers(rows []models.TierOverride) []pricing.Tier {
	tiers := make([]pricing.Tier, 0, len(rows))
	for _, row := range rows {
		tiers = append(tiers, pricing.Tier{
			Number:    row.TierNumber,
			Threshold: row.RevenueThreshold,
			Rates: pricing.Rates{
				Garage: row.GarageRate,
				Shop:   row.ShopRate,
				Mobile: row.MobileRate,
			},
		})
	}
	return tiers
}

func toRows(family pricing.PlanFamily, tiers []pricing.Tier) []models.TierOverride {
	rows := make([]models.TierOverride, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, models.TierOverride{
			PlanFamily:       string(family),
			TierNumber:       t.Number,
			RevenueThreshold: t.Threshold,
			GarageRate:       t.Rates.Garage,
			ShopRate:         t.Rates.Shop,
			MobileRate:       t.Rates.Mobile,
		})
	}
	return rows
}
