package models

import (
	"database/sql"
	"time"
)

// StyleOverride is an admin-authored style exception for one element. Empty fields fall back to
// the caller default.
type StyleOverride struct {
	ElementID       string        `db:"element_id" json:"element_id"`
	BackgroundClass string        `db:"background_class" json:"background_class,omitempty"`
	TextColorClass  string        `db:"text_color_class" json:"text_color_class,omitempty"`
	IconColorToken  string        `db:"icon_color_token" json:"icon_color_token,omitempty"`
	IconName        string        `db:"icon_name" json:"icon_name,omitempty"`
	Size            string        `db:"size" json:"size,omitempty"`
	Shape           string        `db:"shape" json:"shape,omitempty"`
	UpdatedBy       sql.NullInt64 `db:"updated_by" json:"-"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// IsEmpty reports whether no style field is set.
func (o StyleOverride) IsEmpty() bool {
	return o.BackgroundClass == "" &&
		o.TextColorClass == "" &&
		o.IconColorToken == "" &&
		o.IconName == "" &&
		o.Size == "" &&
		o.Shape == ""
}
