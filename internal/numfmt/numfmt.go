// Package numfmt formats salaries and statistics for display.
package numfmt

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money renders a currency amount with thousands separators and no cents
// when the amount is whole, e.g. 75,000 or 1,234.5
func Money(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) {
		return printer.Sprintf("%.0f", v)
	}
	return printer.Sprintf("%.2f", v)
}

// Stat renders a describe() value: NaN stays NaN, whole numbers keep one
// decimal place and fractional values get six
func Stat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%.1f", v)
	}
	return printer.Sprintf("%.6f", v)
}
