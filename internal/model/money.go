package model

import (
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is used when no currency information is available,
// e.g. formatting the total of an empty cart.
const DefaultCurrency = "USD"

// ParseCents converts decimal string amounts (major units) to minor units.
// The Storefront API returns all MoneyV2 amounts as decimal strings
// (e.g. "99.00" = $99.00 = 9900 cents).
// Handles edge cases: empty strings, missing decimals, large values.
// Examples: "99.00" → 9900, "1234.56" → 123456, "" → 0
func ParseCents(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	// math.Round handles both positive and negative numbers correctly
	return int64(math.Round(f * 100))
}

// FormatMinor renders a minor-unit amount as a locale currency string,
// e.g. (5000, "USD") → "$50.00". An empty currency code falls back to
// DefaultCurrency.
func FormatMinor(minor int64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return money.New(minor, currency).Display()
}
