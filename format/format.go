// Package format renders market numbers for display: grouped decimals,
// currency amounts with per-currency fraction rules, and 24h-change
// classification.
package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// zeroFractionCurrencies lists codes conventionally shown without cents
var zeroFractionCurrencies = map[string]bool{
	"IDR": true,
	"VND": true,
}

// FractionDigits returns how many fraction digits a currency is
// rendered with
func FractionDigits(code string) int {
	if zeroFractionCurrencies[code] {
		return 0
	}
	return 2
}

// Currency renders an amount as "CODE 1,234.56". IDR and VND render
// with no fraction digits, everything else with two. Unknown codes are
// rendered the same way; the code prefix keeps them readable.
func Currency(value float64, code string) string {
	digits := FractionDigits(code)

	// Round half-up first so the fixed fraction width never truncates
	rounded, _ := decimal.NewFromFloat(value).Round(int32(digits)).Float64()

	return printer.Sprintf("%s %v", code, number.Decimal(rounded,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))
}

// Number renders a plain value with thousand grouping
func Number(value float64) string {
	return printer.Sprintf("%v", number.Decimal(value))
}

// Direction classifies a 24h percentage change for styling
type Direction int

const (
	// DirectionUnknown means the upstream had no change value
	DirectionUnknown Direction = iota
	DirectionUp
	DirectionDown
)

// ChangeDirection classifies a possibly-absent percentage change.
// A nil or NaN change is unknown; zero counts as up, matching the
// dashboard's neutral-positive styling.
func ChangeDirection(pct *float64) Direction {
	if pct == nil || math.IsNaN(*pct) {
		return DirectionUnknown
	}
	if *pct >= 0 {
		return DirectionUp
	}
	return DirectionDown
}
