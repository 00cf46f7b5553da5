package style

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/backend/services/content-service/internal/models"
)

func testSnapshot() *Snapshot {
	return NewSnapshot(
		[]models.StyleOverride{
			{ElementID: "hero-cta", BackgroundClass: "bg-primary/90"},
			{ElementID: "pricing-card", BackgroundClass: "bg-card", TextColorClass: "text-primary"},
			{ElementID: "feature-icon", IconName: "TrendingUp", IconColorToken: "accent"},
			{ElementID: "ghost-icon", IconName: "not-an-icon", Size: "lg"},
			{ElementID: "blank"},
		},
		[]models.ColorToken{
			{CSSVariableName: "--primary", OptimalTextColor: models.TextWhite},
			{CSSVariableName: "--card", OptimalTextColor: models.TextDark},
			{CSSVariableName: "--gradient-primary", OptimalTextColor: models.TextWhite},
		},
		time.Now(),
	)
}

func TestResolveUnknownElementReturnsDefaults(t *testing.T) {
	defaults := Defaults{Background: "bg-muted", TextColor: "", IconColor: "primary", Icon: IconStar, Size: "md", Shape: "rounded"}

	for _, snap := range []*Snapshot{nil, testSnapshot()} {
		got := Resolve(snap, "does-not-exist", defaults)
		assert.False(t, got.Overridden)
		assert.Equal(t, defaults.Background, got.Background)
		assert.Equal(t, defaults.TextColor, got.TextColor)
		assert.Equal(t, defaults.IconColor, got.IconColor)
		assert.Equal(t, defaults.Icon, got.Icon)
		assert.Equal(t, defaults.Size, got.Size)
		assert.Equal(t, defaults.Shape, got.Shape)
	}
}

func TestResolveEmptyOverrideIsIgnored(t *testing.T) {
	got := Resolve(testSnapshot(), "blank", Defaults{Background: "bg-muted", TextColor: "text-muted"})
	assert.False(t, got.Overridden)
	assert.Equal(t, "text-muted", got.TextColor)
}

func TestResolveOverriddenBackgroundUsesContrastRule(t *testing.T) {
	got := Resolve(testSnapshot(), "hero-cta", Defaults{Background: "bg-muted", TextColor: "text-muted", Size: "md"})
	assert.True(t, got.Overridden)
	assert.Equal(t, "bg-primary/90", got.Background)
	assert.Equal(t, TextWhiteClass, got.TextColor)
	assert.Equal(t, "md", got.Size)
}

func TestResolveOverrideTextWins(t *testing.T) {
	got := Resolve(testSnapshot(), "pricing-card", Defaults{Background: "bg-primary", TextColor: "text-white"})
	assert.Equal(t, "bg-card", got.Background)
	assert.Equal(t, "text-primary", got.TextColor)
}

func TestResolveKeepsDefaultTextWhenBackgroundNotOverridden(t *testing.T) {
	snap := testSnapshot()

	got := Resolve(snap, "feature-icon", Defaults{Background: "bg-primary", TextColor: "text-muted"})
	assert.Equal(t, "text-muted", got.TextColor)
	assert.Equal(t, IconTrendingUp, got.Icon)
	assert.Equal(t, "accent", got.IconColor)

	got = Resolve(snap, "feature-icon", Defaults{Background: "bg-primary"})
	assert.Equal(t, TextWhiteClass, got.TextColor)
}

func TestResolveUnknownIconFallsBackToDefault(t *testing.T) {
	got := Resolve(testSnapshot(), "ghost-icon", Defaults{Icon: IconRocket})
	assert.Equal(t, IconRocket, got.Icon)
	assert.Equal(t, "lg", got.Size)
}

func TestTextColorFor(t *testing.T) {
	tokens := testSnapshot().Tokens

	cases := map[string]string{
		"bg-primary":          TextWhiteClass,
		"bg-primary/80":       TextWhiteClass,
		"bg-gradient-primary": TextWhiteClass,
		"--primary":           TextWhiteClass,
		"bg-card":             TextForegroundClass,
		"bg-unknown/50":       TextForegroundClass,
		"":                    TextForegroundClass,
	}
	for background, want := range cases {
		assert.Equal(t, want, TextColorFor(tokens, background), background)
	}
	assert.Equal(t, TextForegroundClass, TextColorFor(nil, "bg-primary"))
}

func TestTokenName(t *testing.T) {
	assert.Equal(t, "--primary", TokenName("bg-primary/90"))
	assert.Equal(t, "--gradient-sunset", TokenName(" bg-gradient-sunset "))
	assert.Equal(t, "--card", TokenName("card"))
	assert.Equal(t, "", TokenName("bg-"))
}

func TestParseIcon(t *testing.T) {
	for _, name := range []string{"trending-up", "TrendingUp", "trending_up", " TRENDINGUP "} {
		icon, ok := ParseIcon(name)
		require.True(t, ok, name)
		assert.Equal(t, IconTrendingUp, icon)
	}
	_, ok := ParseIcon("")
	assert.False(t, ok)
	_, ok = ParseIcon("Unicorn")
	assert.False(t, ok)

	for _, icon := range Icons() {
		parsed, ok := ParseIcon(icon.String())
		require.True(t, ok)
		assert.Equal(t, icon, parsed)
	}
}

func TestIconJSON(t *testing.T) {
	data, err := json.Marshal(Defaults{Icon: IconShield})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"icon_name":"shield"`)

	var d Defaults
	require.NoError(t, json.Unmarshal([]byte(`{"icon_name":"Sparkles"}`), &d))
	assert.Equal(t, IconSparkles, d.Icon)

	assert.Error(t, json.Unmarshal([]byte(`{"icon_name":"unicorn"}`), &d))
}
