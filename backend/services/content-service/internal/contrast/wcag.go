// Package contrast computes WCAG 2.x contrast ratios for design tokens.
package contrast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for token values that are neither HSL triples nor hex colours.
var ErrInvalidColor = errors.New("contrast: invalid color value")

// AAMinimum is the WCAG AA contrast requirement for normal text.
const AAMinimum = 4.5

// White is the text colour behind the "white" choice.
var White = colorful.Color{R: 1, G: 1, B: 1}

// ParseColor accepts "222 47% 11%", "hsl(222, 47%, 11%)", an optional "/ alpha" suffix (ignored),
// and hex values such as "#0f172a".
func ParseColor(value string) (colorful.Color, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		return c, nil
	}

	inner := strings.TrimSpace(value)
	if lower := strings.ToLower(inner); strings.HasPrefix(lower, "hsl(") || strings.HasPrefix(lower, "hsla(") {
		start := strings.Index(inner, "(")
		end := strings.LastIndex(inner, ")")
		if end <= start {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		inner = inner[start+1 : end]
	}
	if idx := strings.Index(inner, "/"); idx >= 0 {
		inner = inner[:idx]
	}

	fields := strings.Fields(strings.ReplaceAll(inner, ",", " "))
	if len(fields) < 3 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "deg"), 64)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: hue %q", ErrInvalidColor, fields[0])
	}
	s, err := parsePercent(fields[1])
	if err != nil {
		return colorful.Color{}, err
	}
	l, err := parsePercent(fields[2])
	if err != nil {
		return colorful.Color{}, err
	}

	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l).Clamped(), nil
}

func parsePercent(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: percentage %q", ErrInvalidColor, raw)
	}
	return v / 100, nil
}

// linearize converts one sRGB channel in 0..1 to linear light.
func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance is the WCAG relative luminance of c.
func Luminance(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// Ratio is the WCAG contrast ratio between two colours, always >= 1.
func Ratio(a, b colorful.Color) float64 {
	l1, l2 := Luminance(a), Luminance(b)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
