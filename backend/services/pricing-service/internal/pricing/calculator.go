package pricing

import "fmt"

// Calculate prices revenue against schedule. The whole revenue of each category is charged at the
// single rate of the detected tier; lower tiers are not blended in. The contract discount applies to
// the revenue-based total, fixed fees are added afterwards.
func Calculate(revenue Revenue, contract ContractType, schedule Schedule, locations int) (Result, error) {
	if err := validateRevenue(revenue); err != nil {
		return Result{}, err
	}
	if locations < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidLocations, locations)
	}
	if err := ValidateTiers(schedule.Tiers); err != nil {
		return Result{}, err
	}
	if contract == "" {
		contract = ContractNone
	}

	total := revenue.Total()
	if !finite(total) || total > MaxRevenue {
		return Result{}, fmt.Errorf("%w: total %v exceeds %v", ErrInvalidRevenue, total, MaxRevenue)
	}
	tier := DetectTier(schedule.Tiers, total)

	costs := CategoryCosts{
		Garage: revenue.Garage * tier.Rates.Garage / 100,
		Shop:   revenue.Shop * tier.Rates.Shop / 100,
		Mobile: revenue.Mobile * tier.Rates.Mobile / 100,
	}
	revenueCost := costs.Garage + costs.Shop + costs.Mobile
	discount := contract.DiscountFactor()
	fixed := schedule.AnnualFixedCost(locations)
	sum := revenueCost*discount + fixed
	for _, v := range []float64{costs.Garage, costs.Shop, costs.Mobile, revenueCost, fixed, sum} {
		if !finite(v) {
			return Result{}, fmt.Errorf("%w: derived cost %v is not finite", ErrInvalidRevenue, v)
		}
	}

	result := Result{
		Plan:           schedule.Family,
		Contract:       contract,
		Tier:           tier.Number,
		TotalRevenue:   total,
		Costs:          costs,
		RevenueCost:    revenueCost,
		DiscountFactor: discount,
		FixedCost:      fixed,
		Total:          sum,
	}
	if total > 0 {
		result.EffectiveRate = sum / total * 100
	}
	return result, nil
}

func validateRevenue(r Revenue) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"garage", r.Garage},
		{"shop", r.Shop},
		{"mobile", r.Mobile},
	}
	for _, f := range fields {
		if !finite(f.value) || f.value < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidRevenue, f.name, f.value)
		}
	}
	return nil
}
