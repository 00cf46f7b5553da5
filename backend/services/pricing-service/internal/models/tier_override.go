package models

import "time"

// TierOverride is one admin-supplied tier row of a plan family.
type TierOverride struct {
	PlanFamily       string    `db:"plan_family" json:"plan_family"`
	TierNumber       int       `db:"tier_number" json:"tier_number"`
	RevenueThreshold float64   `db:"revenue_threshold" json:"revenue_threshold"`
	GarageRate       float64   `db:"garage_rate" json:"garage_rate"`
	ShopRate         float64   `db:"shop_rate" json:"shop_rate"`
	MobileRate       float64   `db:"mobile_rate" json:"mobile_rate"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
