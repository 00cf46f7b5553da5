package currency

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type symbolFormat struct {
	symbol string
	suffix bool
	spaced bool
}

var symbols = map[Code]symbolFormat{
	EUR: {symbol: "€"},
	USD: {symbol: "$"},
	GBP: {symbol: "£"},
	CHF: {symbol: "CHF", spaced: true},
	NOK: {symbol: "kr", suffix: true, spaced: true},
	SEK: {symbol: "kr", suffix: true, spaced: true},
	DKK: {symbol: "kr", suffix: true, spaced: true},
	PLN: {symbol: "zł", suffix: true, spaced: true},
}

// Symbol returns the display symbol for code, falling back to the code itself.
func Symbol(code Code) string {
	if s, ok := symbols[code]; ok {
		return s.symbol
	}
	return string(code)
}

// Format renders a whole-unit amount with locale grouping, e.g. "€1,500" for English or
// "1.500 kr" for Danish.
func Format(amount float64, code Code, lang language.Tag) string {
	p := message.NewPrinter(lang)
	return decorate(p.Sprintf("%.0f", math.Round(math.Abs(amount))), code, amount < 0)
}

var compactUnits = []struct {
	size   float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCompact renders large amounts with a magnitude suffix and at most one decimal,
// e.g. "€1.5M" or "€250K". Amounts below one thousand are shown whole.
func FormatCompact(amount float64, code Code) string {
	abs := math.Abs(amount)
	number := strconv.FormatFloat(math.Round(abs), 'f', -1, 64)
	for i, unit := range compactUnits {
		if abs < unit.size {
			continue
		}
		scaled := math.Round(abs/unit.size*10) / 10
		if scaled >= 1000 && i > 0 {
			unit = compactUnits[i-1]
			scaled = math.Round(abs/unit.size*10) / 10
		}
		number = strconv.FormatFloat(scaled, 'f', -1, 64) + unit.suffix
		break
	}
	if abs < 1e3 && math.Round(abs) >= 1e3 {
		number = "1K"
	}
	return decorate(number, code, amount < 0)
}

func decorate(number string, code Code, negative bool) string {
	format, ok := symbols[code]
	if !ok {
		format = symbolFormat{symbol: string(code), spaced: true}
	}
	sep := ""
	if format.spaced {
		sep = " "
	}
	out := format.symbol + sep + number
	if format.suffix {
		out = number + sep + format.symbol
	}
	if negative {
		out = "-" + out
	}
	return out
}
