// Package valueobject contains domain value objects for the expense tracker.
package valueobject

import "github.com/shopspring/decimal"

// AmountScale is the number of fraction digits every amount carries.
const AmountScale = 2

// MaxAmount is the exclusive upper bound of a single entry (8 integer digits).
var MaxAmount = decimal.New(1, 8)

// CentsFromAmount converts an amount to integer cents, rounding half away from zero.
func CentsFromAmount(amount decimal.Decimal) int64 {
	return amount.Shift(AmountScale).Round(0).IntPart()
}

// AmountFromCents converts integer cents back to an amount with two fraction digits.
func AmountFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -AmountScale)
}

// HasCentPrecision reports whether amount has at most two fraction digits.
func HasCentPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(AmountScale))
}

// FormatAmount renders amount with exactly two fraction digits, e.g. "400.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountScale)
}
