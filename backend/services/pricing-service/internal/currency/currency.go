// Package currency converts EUR-based amounts for display using a static rate table.
package currency

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
)

var (
	// ErrUnsupportedCurrency is returned for codes missing from the rate table.
	ErrUnsupportedCurrency = errors.New("currency: unsupported currency")
	// ErrInvalidAmount is returned for NaN or infinite amounts.
	ErrInvalidAmount = errors.New("currency: invalid amount")
)

// Code is an ISO 4217 currency code.
type Code string

// Base is the currency every amount is stored in.
const Base Code = "EUR"

const (
	EUR Code = "EUR"
	USD Code = "USD"
	GBP Code = "GBP"
	NOK Code = "NOK"
	SEK Code = "SEK"
	DKK Code = "DKK"
	CHF Code = "CHF"
	PLN Code = "PLN"
)

// units of currency per 1 EUR; updated with deployments.
var rates = map[Code]decimal.Decimal{
	EUR: decimal.NewFromInt(1),
	USD: decimal.RequireFromString("1.08"),
	GBP: decimal.RequireFromString("0.86"),
	NOK: decimal.RequireFromString("11.50"),
	SEK: decimal.RequireFromString("11.30"),
	DKK: decimal.RequireFromString("7.46"),
	CHF: decimal.RequireFromString("0.95"),
	PLN: decimal.RequireFromString("4.30"),
}

// Supported returns every known code in alphabetical order.
func Supported() []Code {
	codes := make([]Code, 0, len(rates))
	for c := range rates {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// ParseCode normalises raw and checks it against ISO 4217 and the rate table. An empty value
// means the base currency.
func ParseCode(raw string) (Code, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return Base, nil
	}
	unit, err := xcurrency.ParseISO(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, raw)
	}
	code := Code(unit.String())
	if _, ok := rates[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, raw)
	}
	return code, nil
}

// Rate returns units of code per 1 EUR.
func Rate(code Code) (decimal.Decimal, error) {
	r, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, string(code))
	}
	return r, nil
}

// ConvertDecimal converts amount between two supported currencies without rounding.
func ConvertDecimal(amount decimal.Decimal, from, to Code) (decimal.Decimal, error) {
	fromRate, err := Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := Rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return amount, nil
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// Convert converts amount and rounds to cents.
func Convert(amount float64, from, to Code) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	out, err := ConvertDecimal(decimal.NewFromFloat(amount), from, to)
	if err != nil {
		return 0, err
	}
	return out.Round(2).InexactFloat64(), nil
}

// FromEUR converts a base-currency amount into code.
func FromEUR(amount float64, code Code) (float64, error) {
	return Convert(amount, Base, code)
}
