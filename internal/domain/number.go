package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxNumberExponent bounds the digits a value expands to when rounded and rendered.
// "1e1000000000" is finite but would allocate a billion-digit string.
const maxNumberExponent = 1000

// ParseNumber parses a plain decimal literal such as "12", "-0.5" or "1e3".
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxNumberExponent || exp < -maxNumberExponent {
		return decimal.Zero, false
	}
	return d, true
}

// ParseQuoteValue parses a provider quote like "50,000", dropping thousands separators.
// Negative values are not valid quotes.
func ParseQuoteValue(s string) (decimal.Decimal, bool) {
	d, ok := ParseNumber(strings.ReplaceAll(s, ",", ""))
	if !ok || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
