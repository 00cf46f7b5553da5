package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTiers(t *testing.T) []Tier {
	t.Helper()
	tiers, err := GenerateTiers(DefaultGeneratorConfig())
	require.NoError(t, err)
	return tiers
}

func TestGenerateTiersGeometricBands(t *testing.T) {
	tiers := defaultTiers(t)
	require.Len(t, tiers, MaxTiers)

	want := []float64{0, 2e6, 5e6, 9.5e6, 16.25e6, 26.375e6, 41.5625e6, 64.34375e6, 98.515625e6, 149.7734375e6}
	for i, tier := range tiers {
		assert.Equal(t, i+1, tier.Number)
		assert.Equal(t, want[i], tier.Threshold, "tier %d", tier.Number)
	}

	assert.Equal(t, Rates{Garage: 4.0, Shop: 6.0, Mobile: 6.0}, tiers[0].Rates)
	assert.Equal(t, Rates{Garage: 1.5, Shop: 2.0, Mobile: 2.5}, tiers[9].Rates)
	for i := 1; i < len(tiers); i++ {
		assert.LessOrEqual(t, tiers[i].Rates.Garage, tiers[i-1].Rates.Garage)
		assert.LessOrEqual(t, tiers[i].Rates.Shop, tiers[i-1].Rates.Shop)
		assert.LessOrEqual(t, tiers[i].Rates.Mobile, tiers[i-1].Rates.Mobile)
	}
}

func TestGenerateTiersIsPure(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	first, err := GenerateTiers(cfg)
	require.NoError(t, err)
	second, err := GenerateTiers(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateTiersRejectsBadParameters(t *testing.T) {
	cases := map[string]func(*GeneratorConfig){
		"zero span":       func(c *GeneratorConfig) { c.InitialSpan = 0 },
		"nan span":        func(c *GeneratorConfig) { c.InitialSpan = math.NaN() },
		"flat multiplier": func(c *GeneratorConfig) { c.RangeMultiplier = 1 },
		"no tiers":        func(c *GeneratorConfig) { c.TierCount = 0 },
		"too many tiers":  func(c *GeneratorConfig) { c.TierCount = MaxTiers + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			mutate(&cfg)
			_, err := GenerateTiers(cfg)
			assert.True(t, errors.Is(err, ErrInvalidGenerator), "got %v", err)
		})
	}
}

func TestValidateTiers(t *testing.T) {
	good := []Tier{
		{Number: 1, Threshold: 0, Rates: Rates{Garage: 3, Shop: 3, Mobile: 3}},
		{Number: 2, Threshold: 100, Rates: Rates{Garage: 2, Shop: 2, Mobile: 2}},
	}
	require.NoError(t, ValidateTiers(good))

	cases := map[string][]Tier{
		"empty":          nil,
		"bad numbering":  {{Number: 2, Threshold: 0}},
		"nonzero start":  {{Number: 1, Threshold: 10}},
		"not increasing": {{Number: 1, Threshold: 0}, {Number: 2, Threshold: 0}},
		"rate above 100": {{Number: 1, Threshold: 0, Rates: Rates{Garage: 101}}},
		"negative rate":  {{Number: 1, Threshold: 0, Rates: Rates{Shop: -1}}},
		"infinite bound": {{Number: 1, Threshold: 0}, {Number: 2, Threshold: math.Inf(1)}},
	}
	for name, tiers := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateTiers(tiers), ErrInvalidTiers)
		})
	}
}

func TestDetectTierBoundaries(t *testing.T) {
	tiers := defaultTiers(t)

	assert.Equal(t, 1, DetectTier(tiers, 0).Number)
	assert.Equal(t, 1, DetectTier(tiers, 1_999_999.99).Number)
	assert.Equal(t, 2, DetectTier(tiers, 2_000_000).Number)
	assert.Equal(t, 10, DetectTier(tiers, tiers[9].Threshold).Number)
	assert.Equal(t, 10, DetectTier(tiers, 5e9).Number)
	assert.Equal(t, 0, DetectTier(nil, 100).Number)
}

func TestDetectTierMonotonic(t *testing.T) {
	tiers := defaultTiers(t)

	prev := 0
	for revenue := 0.0; revenue <= 250e6; revenue += 250_000 {
		got := DetectTier(tiers, revenue).Number
		assert.GreaterOrEqual(t, got, prev, "revenue %.0f", revenue)
		prev = got
	}
	assert.Equal(t, MaxTiers, prev)
}
