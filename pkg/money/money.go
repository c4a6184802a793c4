// Package money holds the rounding and display formatting rules for
// simulated currency amounts.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Round2 rounds v to 2 decimal places, the precision every persisted balance
// and commission is kept at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders v with locale-aware digit grouping for display. Persisted
// values are never formatted; this is presentation only.
func Format(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}
