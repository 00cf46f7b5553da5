package contrast

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sitecms/backend/services/content-service/internal/models"
)

// ForegroundToken is the token used as the dark text colour.
const ForegroundToken = "--foreground"

// DefaultForeground is used when the token table has no usable foreground entry.
var DefaultForeground = colorful.Color{R: 0x0f / 255.0, G: 0x17 / 255.0, B: 0x2a / 255.0}

// Report is the contrast outcome for one token.
type Report struct {
	Token           string           `json:"token"`
	Value           string           `json:"value"`
	RatioWhite      float64          `json:"ratio_white"`
	RatioForeground float64          `json:"ratio_foreground"`
	Best            models.TextColor `json:"best"`
	Stored          models.TextColor `json:"stored"`
	PassesAA        bool             `json:"passes_aa"`
	Mismatch        bool             `json:"mismatch"`
	Error           string           `json:"error,omitempty"`
}

// Check reports, for every token, which text colour reads best on it and whether the stored choice
// agrees. Tokens whose value cannot be parsed are reported with Error set. Reports are sorted by
// token name; the foreground token itself is skipped.
func Check(tokens []models.ColorToken) []Report {
	foreground := DefaultForeground
	for _, t := range tokens {
		if t.CSSVariableName == ForegroundToken {
			if c, err := ParseColor(t.HSLValue); err == nil {
				foreground = c
			}
		}
	}

	reports := make([]Report, 0, len(tokens))
	for _, t := range tokens {
		if t.CSSVariableName == ForegroundToken {
			continue
		}
		report := Report{Token: t.CSSVariableName, Value: t.HSLValue, Stored: t.OptimalTextColor}

		bg, err := ParseColor(t.HSLValue)
		if err != nil {
			report.Error = err.Error()
			reports = append(reports, report)
			continue
		}

		report.RatioWhite = round2(Ratio(bg, White))
		report.RatioForeground = round2(Ratio(bg, foreground))
		best := Ratio(bg, foreground)
		report.Best = models.TextDark
		if white := Ratio(bg, White); white > best {
			report.Best = models.TextWhite
			best = white
		}
		report.PassesAA = best >= AAMinimum
		report.Mismatch = report.Best != t.OptimalTextColor
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Token < reports[j].Token })
	return reports
}

// Mismatches returns only the reports whose stored text colour should change.
func Mismatches(reports []Report) []Report {
	var out []Report
	for _, r := range reports {
		if r.Mismatch && r.Error == "" {
			out = append(out, r)
		}
	}
	return out
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
