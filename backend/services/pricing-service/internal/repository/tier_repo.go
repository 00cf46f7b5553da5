package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sitecms/backend/services/pricing-service/internal/models"
)

// TierRepository stores tier overrides per plan family.
type TierRepository struct {
	db *sql.DB
}

// NewTierRepository returns repository.
func NewTierRepository(db *sql.DB) *TierRepository {
	return &TierRepository{db: db}
}

// ListByPlan returns the override rows of a plan ordered by tier number.
func (r *TierRepository) ListByPlan(ctx context.Context, plan string) ([]models.TierOverride, error) {
	const query = `
		SELECT plan_family, tier_number, revenue_threshold, garage_rate, shop_rate, mobile_rate, updated_at
		FROM pricing_tier_overrides
		WHERE plan_family = $1
		ORDER BY tier_number
	`
	rows, err := r.db.QueryContext(ctx, query, plan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []models.TierOverride
	for rows.Next() {
		var t models.TierOverride
		if err := rows.Scan(
			&t.PlanFamily,
			&t.TierNumber,
			&t.RevenueThreshold,
			&t.GarageRate,
			&t.ShopRate,
			&t.MobileRate,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tiers, nil
}

// ReplacePlan swaps the whole override table of a plan in one transaction.
func (r *TierRepository) ReplacePlan(ctx context.Context, plan string, tiers []models.TierOverride) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM pricing_tier_overrides WHERE plan_family = $1`, plan); err != nil {
		return fmt.Errorf("delete tiers: %w", err)
	}

	const insert = `
		INSERT INTO pricing_tier_overrides (plan_family, tier_number, revenue_threshold, garage_rate, shop_rate, mobile_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	for _, t := range tiers {
		if _, err = tx.ExecContext(ctx, insert, plan, t.TierNumber, t.RevenueThreshold, t.GarageRate, t.ShopRate, t.MobileRate); err != nil {
			return fmt.Errorf("insert tier %d: %w", t.TierNumber, err)
		}
	}

	return tx.Commit()
}

// DeletePlan removes all overrides of a plan, reverting it to the built-in table.
func (r *TierRepository) DeletePlan(ctx context.Context, plan string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pricing_tier_overrides WHERE plan_family = $1`, plan)
	return err
}
