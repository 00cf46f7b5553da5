package pricing

import "fmt"

// Flat plan fees in EUR per month.
const (
	LaunchMonthlyFee    = 49.0
	ScaleMonthlyFee     = 199.0
	ScalePerLocationFee = 29.0
)

var launchTiers = []Tier{
	{Number: 1, Threshold: 0, Rates: Rates{Garage: 3.5, Shop: 5.0, Mobile: 5.0}},
	{Number: 2, Threshold: 500_000, Rates: Rates{Garage: 3.0, Shop: 4.5, Mobile: 4.5}},
	{Number: 3, Threshold: 2_000_000, Rates: Rates{Garage: 2.5, Shop: 4.0, Mobile: 4.0}},
	{Number: 4, Threshold: 5_000_000, Rates: Rates{Garage: 2.0, Shop: 3.5, Mobile: 3.5}},
}

var scaleTiers = []Tier{
	{Number: 1, Threshold: 0, Rates: Rates{Garage: 3.0, Shop: 4.5, Mobile: 4.5}},
	{Number: 2, Threshold: 2_000_000, Rates: Rates{Garage: 2.5, Shop: 4.0, Mobile: 4.0}},
	{Number: 3, Threshold: 10_000_000, Rates: Rates{Garage: 2.0, Shop: 3.5, Mobile: 3.5}},
	{Number: 4, Threshold: 50_000_000, Rates: Rates{Garage: 1.5, Shop: 3.0, Mobile: 3.0}},
}

// DefaultSchedule returns the built-in schedule of a plan family. The tiered family is generated
// from gen; the flat plans carry fixed tables and fees. An empty family means PlanTiered.
func DefaultSchedule(family PlanFamily, gen GeneratorConfig) (Schedule, error) {
	switch family {
	case "":
		return DefaultSchedule(PlanTiered, gen)
	case PlanTiered:
		tiers, err := GenerateTiers(gen)
		if err != nil {
			return Schedule{}, err
		}
		return Schedule{Family: PlanTiered, Tiers: tiers}, nil
	case PlanLaunch:
		return Schedule{
			Family:         PlanLaunch,
			Tiers:          cloneTiers(launchTiers),
			MonthlyBaseFee: LaunchMonthlyFee,
		}, nil
	case PlanScale:
		return Schedule{
			Family:                PlanScale,
			Tiers:                 cloneTiers(scaleTiers),
			MonthlyBaseFee:        ScaleMonthlyFee,
			PerLocationMonthlyFee: ScalePerLocationFee,
		}, nil
	}
	return Schedule{}, fmt.Errorf("%w: %q", ErrUnknownPlan, string(family))
}

func cloneTiers(src []Tier) []Tier {
	out := make([]Tier, len(src))
	copy(out, src)
	return out
}
