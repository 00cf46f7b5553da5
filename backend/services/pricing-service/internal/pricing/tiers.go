package pricing

import (
	"fmt"
	"math"
)

// RateCurve defines per-category take rates at the first and the last tier; tiers in between
// are interpolated linearly.
type RateCurve struct {
	First Rates `yaml:"first" json:"first"`
	Last  Rates `yaml:"last" json:"last"`
}

// GeneratorConfig parameterises GenerateTiers.
type GeneratorConfig struct {
	InitialSpan     float64   `yaml:"initialSpan" json:"initial_span"`
	RangeMultiplier float64   `yaml:"rangeMultiplier" json:"range_multiplier"`
	TierCount       int       `yaml:"tierCount" json:"tier_count"`
	Curve           RateCurve `yaml:"curve" json:"curve"`
}

// DefaultGeneratorConfig returns the production tier parameters.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		InitialSpan:     2_000_000,
		RangeMultiplier: 1.5,
		TierCount:       MaxTiers,
		Curve: RateCurve{
			First: Rates{Garage: 4.0, Shop: 6.0, Mobile: 6.0},
			Last:  Rates{Garage: 1.5, Shop: 2.0, Mobile: 2.5},
		},
	}
}

// GenerateTiers builds a tier table whose bands widen geometrically: tier 1 starts at 0, each
// following threshold adds the current span, and the span is multiplied after every tier.
func GenerateTiers(cfg GeneratorConfig) ([]Tier, error) {
	if cfg.InitialSpan <= 0 || math.IsInf(cfg.InitialSpan, 0) || math.IsNaN(cfg.InitialSpan) {
		return nil, fmt.Errorf("%w: initial span %v", ErrInvalidGenerator, cfg.InitialSpan)
	}
	if cfg.RangeMultiplier <= 1 || math.IsInf(cfg.RangeMultiplier, 0) || math.IsNaN(cfg.RangeMultiplier) {
		return nil, fmt.Errorf("%w: range multiplier %v", ErrInvalidGenerator, cfg.RangeMultiplier)
	}
	if cfg.TierCount < 1 || cfg.TierCount > MaxTiers {
		return nil, fmt.Errorf("%w: tier count %d", ErrInvalidGenerator, cfg.TierCount)
	}

	tiers := make([]Tier, 0, cfg.TierCount)
	threshold := 0.0
	span := cfg.InitialSpan
	for i := 0; i < cfg.TierCount; i++ {
		tiers = append(tiers, Tier{
			Number:    i + 1,
			Threshold: threshold,
			Rates:     cfg.Curve.at(i, cfg.TierCount),
		})
		threshold += span
		span *= cfg.RangeMultiplier
	}

	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func (c RateCurve) at(index, count int) Rates {
	if count <= 1 {
		return c.First
	}
	pos := float64(index) / float64(count-1)
	return Rates{
		Garage: roundRate(lerp(c.First.Garage, c.Last.Garage, pos)),
		Shop:   roundRate(lerp(c.First.Shop, c.Last.Shop, pos)),
		Mobile: roundRate(lerp(c.First.Mobile, c.Last.Mobile, pos)),
	}
}

func lerp(from, to, pos float64) float64 {
	return from + (to-from)*pos
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateTiers checks numbering (1..n), a zero first threshold, strictly increasing thresholds
// and rates within 0..100.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 || len(tiers) > MaxTiers {
		return fmt.Errorf("%w: need 1..%d tiers, got %d", ErrInvalidTiers, MaxTiers, len(tiers))
	}
	for i, t := range tiers {
		if t.Number != i+1 {
			return fmt.Errorf("%w: tier at position %d numbered %d", ErrInvalidTiers, i+1, t.Number)
		}
		if !finite(t.Threshold) || t.Threshold < 0 {
			return fmt.Errorf("%w: tier %d threshold %v", ErrInvalidTiers, t.Number, t.Threshold)
		}
		if i == 0 && t.Threshold != 0 {
			return fmt.Errorf("%w: first tier must start at 0", ErrInvalidTiers)
		}
		if i > 0 && t.Threshold <= tiers[i-1].Threshold {
			return fmt.Errorf("%w: tier %d threshold must exceed tier %d", ErrInvalidTiers, t.Number, t.Number-1)
		}
		for _, rate := range []float64{t.Rates.Garage, t.Rates.Shop, t.Rates.Mobile} {
			if !finite(rate) || rate < 0 || rate > 100 {
				return fmt.Errorf("%w: tier %d rate %v", ErrInvalidTiers, t.Number, rate)
			}
		}
	}
	return nil
}

// DetectTier returns the last tier whose threshold does not exceed totalRevenue. Revenue below
// the first threshold maps to the first tier and revenue beyond the last tier stays there.
func DetectTier(tiers []Tier, totalRevenue float64) Tier {
	if len(tiers) == 0 {
		return Tier{}
	}
	selected := tiers[0]
	for _, t := range tiers {
		if t.Threshold <= totalRevenue {
			selected = t
		}
	}
	return selected
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
