package models

import "time"

// ColorType classifies a design token.
type ColorType string

const (
	ColorSolid    ColorType = "solid"
	ColorGradient ColorType = "gradient"
	ColorGlass    ColorType = "glass"
)

// TextColor is the precomputed readable text colour on top of a token.
type TextColor string

const (
	TextWhite TextColor = "white"
	TextDark  TextColor = "dark"
)

// ColorToken is one design-system colour.
type ColorToken struct {
	CSSVariableName  string    `db:"css_variable_name" json:"css_variable_name"`
	HSLValue         string    `db:"hsl_value" json:"hsl_value"`
	ColorType        ColorType `db:"color_type" json:"color_type"`
	OptimalTextColor TextColor `db:"optimal_text_color" json:"optimal_text_color"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
