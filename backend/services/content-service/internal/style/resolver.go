// Package style resolves element styles from admin overrides and caller defaults.
package style

import (
	"strings"
	"time"

	"sitecms/backend/services/content-service/internal/models"
)

// Tailwind classes produced by the contrast rule.
const (
	TextWhiteClass      = "text-white"
	TextForegroundClass = "text-foreground"
)

// Snapshot is the override and token tables as loaded at one point in time.
type Snapshot struct {
	Overrides map[string]models.StyleOverride `json:"overrides"`
	Tokens    map[string]models.ColorToken    `json:"tokens"`
	LoadedAt  time.Time                       `json:"loaded_at"`
}

// NewSnapshot indexes rows by their keys.
func NewSnapshot(overrides []models.StyleOverride, tokens []models.ColorToken, loadedAt time.Time) *Snapshot {
	snap := &Snapshot{
		Overrides: make(map[string]models.StyleOverride, len(overrides)),
		Tokens:    make(map[string]models.ColorToken, len(tokens)),
		LoadedAt:  loadedAt,
	}
	for _, o := range overrides {
		snap.Overrides[o.ElementID] = o
	}
	for _, t := range tokens {
		snap.Tokens[t.CSSVariableName] = t
	}
	return snap
}

// Defaults are the styles an element renders with when nothing is overridden.
type Defaults struct {
	Background string `json:"background"`
	TextColor  string `json:"text_color"`
	IconColor  string `json:"icon_color"`
	Icon       Icon   `json:"icon_name"`
	Size       string `json:"size"`
	Shape      string `json:"shape"`
}

// Resolved is the style an element should render with.
type Resolved struct {
	ElementID  string `json:"element_id"`
	Background string `json:"background"`
	TextColor  string `json:"text_color"`
	IconColor  string `json:"icon_color"`
	Icon       Icon   `json:"icon_name"`
	Size       string `json:"size"`
	Shape      string `json:"shape"`
	Overridden bool   `json:"overridden"`
}

// Resolve picks each field from the element override when set, from defaults otherwise. An element
// without override gets defaults unchanged. A nil snapshot behaves as an empty one.
func Resolve(snap *Snapshot, elementID string, defaults Defaults) Resolved {
	out := Resolved{
		ElementID:  elementID,
		Background: defaults.Background,
		TextColor:  defaults.TextColor,
		IconColor:  defaults.IconColor,
		Icon:       defaults.Icon,
		Size:       defaults.Size,
		Shape:      defaults.Shape,
	}
	if snap == nil {
		return out
	}
	override, ok := snap.Overrides[elementID]
	if !ok || override.IsEmpty() {
		return out
	}
	out.Overridden = true

	out.Background = pick(override.BackgroundClass, defaults.Background)
	out.IconColor = pick(override.IconColorToken, defaults.IconColor)
	out.Size = pick(override.Size, defaults.Size)
	out.Shape = pick(override.Shape, defaults.Shape)
	if icon, ok := ParseIcon(override.IconName); ok {
		out.Icon = icon
	}

	switch {
	case override.TextColorClass != "":
		out.TextColor = override.TextColorClass
	case override.BackgroundClass != "":
		// a new background invalidates the default text colour
		out.TextColor = TextColorFor(snap.Tokens, out.Background)
	case defaults.TextColor != "":
		out.TextColor = defaults.TextColor
	default:
		out.TextColor = TextColorFor(snap.Tokens, out.Background)
	}
	return out
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// TextColorFor returns the readable text class for a background class such as "bg-primary/90".
// Unknown backgrounds get the foreground colour.
func TextColorFor(tokens map[string]models.ColorToken, background string) string {
	token, ok := tokens[TokenName(background)]
	if ok && token.OptimalTextColor == models.TextWhite {
		return TextWhiteClass
	}
	return TextForegroundClass
}

// TokenName derives the CSS variable behind a background class: "bg-primary/90" -> "--primary".
func TokenName(background string) string {
	name := strings.TrimSpace(background)
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimPrefix(name, "bg-")
	name = strings.TrimPrefix(name, "--")
	if name == "" {
		return ""
	}
	return "--" + name
}
