// Package pricing holds the revenue-based cost model: tier tables, plan families and the
// flat-rate calculator. Everything here is pure; callers fetch tier overrides beforehand.
package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRevenue is returned for negative, non-finite or oversized revenue figures.
	ErrInvalidRevenue = errors.New("pricing: invalid revenue")
	// ErrInvalidLocations is returned for a negative location count.
	ErrInvalidLocations = errors.New("pricing: invalid location count")
	// ErrInvalidTiers is returned when a tier table breaks ordering or range rules.
	ErrInvalidTiers = errors.New("pricing: invalid tier table")
	// ErrInvalidGenerator is returned for generator parameters that cannot produce a table.
	ErrInvalidGenerator = errors.New("pricing: invalid tier generator parameters")
	// ErrUnknownContract is returned by ParseContractType.
	ErrUnknownContract = errors.New("pricing: unknown contract type")
	// ErrUnknownPlan is returned by ParsePlanFamily and DefaultSchedule.
	ErrUnknownPlan = errors.New("pricing: unknown plan family")
)

// MaxRevenue is the largest total annual revenue in EUR that Calculate accepts.
const MaxRevenue = 1e15

// MaxTiers is the length of a full tier table; the last tier has no upper bound.
const MaxTiers = 10

// Revenue is annual revenue per business category in EUR.
type Revenue struct {
	Garage float64 `json:"garage"`
	Shop   float64 `json:"shop"`
	Mobile float64 `json:"mobile"`
}

// Total sums all categories.
func (r Revenue) Total() float64 {
	return r.Garage + r.Shop + r.Mobile
}

// Rates are take rates in percent per category.
type Rates struct {
	Garage float64 `json:"garage"`
	Shop   float64 `json:"shop"`
	Mobile float64 `json:"mobile"`
}

// Tier is one revenue band. Threshold is the inclusive lower bound of the band.
type Tier struct {
	Number    int     `json:"tier_number"`
	Threshold float64 `json:"revenue_threshold"`
	Rates     Rates   `json:"take_rates"`
}

// ContractType selects the contract-length discount.
type ContractType string

const (
	ContractNone    ContractType = "none"
	ContractMonthly ContractType = "monthly"
	ContractYearly  ContractType = "yearly"
)

// DiscountFactor is the multiplier applied to the revenue-based total.
func (c ContractType) DiscountFactor() float64 {
	switch c {
	case ContractMonthly:
		return 0.85
	case ContractYearly:
		return 0.75
	default:
		return 1
	}
}

// ParseContractType accepts "", "none", "monthly" and "yearly" (case-insensitive).
func ParseContractType(raw string) (ContractType, error) {
	switch ContractType(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ContractNone:
		return ContractNone, nil
	case ContractMonthly:
		return ContractMonthly, nil
	case ContractYearly:
		return ContractYearly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContract, raw)
}

// PlanFamily selects the rate table and fixed fees.
type PlanFamily string

const (
	// PlanTiered is the canonical ten-tier per-category model.
	PlanTiered PlanFamily = "tiered"
	// PlanLaunch is the single-location flat plan.
	PlanLaunch PlanFamily = "launch"
	// PlanScale is the multi-location flat plan.
	PlanScale PlanFamily = "scale"
)

// PlanFamilies lists every family in display order.
func PlanFamilies() []PlanFamily {
	return []PlanFamily{PlanTiered, PlanLaunch, PlanScale}
}

// ParsePlanFamily defaults an empty value to PlanTiered.
func ParsePlanFamily(raw string) (PlanFamily, error) {
	switch PlanFamily(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PlanTiered:
		return PlanTiered, nil
	case PlanLaunch:
		return PlanLaunch, nil
	case PlanScale:
		return PlanScale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlan, raw)
}

// Schedule is everything the calculator needs for one plan family.
type Schedule struct {
	Family                PlanFamily `json:"plan"`
	Tiers                 []Tier     `json:"tiers"`
	MonthlyBaseFee        float64    `json:"monthly_base_fee"`
	PerLocationMonthlyFee float64    `json:"per_location_monthly_fee"`
}

// AnnualFixedCost is twelve months of base fee plus per-location fees.
func (s Schedule) AnnualFixedCost(locations int) float64 {
	return 12 * (s.MonthlyBaseFee + s.PerLocationMonthlyFee*float64(locations))
}

// CategoryCosts is the annual cost per category before discount.
type CategoryCosts struct {
	Garage float64 `json:"garage"`
	Shop   float64 `json:"shop"`
	Mobile float64 `json:"mobile"`
}

// Result is the outcome of one calculation.
type Result struct {
	Plan           PlanFamily    `json:"plan"`
	Contract       ContractType  `json:"contract"`
	Tier           int           `json:"tier"`
	TotalRevenue   float64       `json:"total_revenue"`
	Costs          CategoryCosts `json:"per_category_cost"`
	RevenueCost    float64       `json:"revenue_cost"`
	DiscountFactor float64       `json:"discount_factor"`
	FixedCost      float64       `json:"fixed_cost"`
	Total          float64       `json:"total"`
	EffectiveRate  float64       `json:"effective_rate_percent"`
}
