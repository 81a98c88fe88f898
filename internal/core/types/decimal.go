// Package types holds shared value types used across domain and storage layers.
package types

import "github.com/shopspring/decimal"

// Money is a fixed-point decimal amount. All monetary arithmetic goes
// through decimal.Decimal to avoid binary float drift; persisted columns
// are NUMERIC(10,2).
type Money = decimal.Decimal

// Rate is a percentage with two fractional digits, e.g. 9.75.
// Persisted columns are NUMERIC(5,2).
type Rate = decimal.Decimal

// MustMoney parses a decimal literal and panics on malformed input.
// Intended for constants and tests only.
func MustMoney(s string) Money {
	return decimal.RequireFromString(s)
}

// Round2 rounds half-up to 2 decimal places (money precision).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round4 rounds half-up to 4 decimal places (unit price precision).
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

var (
	// Zero is the zero money amount.
	Zero = decimal.Zero

	// Hundred is used for percentage conversions.
	Hundred = decimal.NewFromInt(100)
)
