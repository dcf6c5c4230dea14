package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places every amount is kept at.
const amountPlaces = 2

// maxAmountLen bounds the digits accepted for a single cost.
const maxAmountLen = 20

// ParseAmount parses a user-entered cost into an exact decimal rounded to two
// places. Rounding is half-up (decimal.Round rounds half away from zero, and
// negative values are rejected before rounding).
//
//	ParseAmount("25.5")   -> 25.50
//	ParseAmount("0.125")  -> 0.13
//	ParseAmount("-1.00")  -> error
//	ParseAmount("1e3")    -> error
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, newValidationError("amount", "cost is required")
	}

	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, newValidationError("amount", "cost must be a plain number, e.g. 25.50")
	}
	if len(s) > maxAmountLen {
		return decimal.Zero, newValidationError("amount", "cost is too long")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, newValidationError("amount", "cost must be a number, e.g. 25.50")
	}
	if d.IsNegative() {
		return decimal.Zero, newValidationError("amount", "cost must be zero or greater")
	}

	return d.Round(amountPlaces), nil
}

// FormatAmount renders an amount with exactly two decimals, no grouping and
// no currency symbol.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPlaces)
}
