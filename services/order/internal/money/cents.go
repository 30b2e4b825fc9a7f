// Package money keeps prices in integer cents and converts to two-digit
// decimals only at the edges (JSON, logs).
package money

import (
	"github.com/shopspring/decimal"
)

type Cents int64

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Dollars is the whole-currency-unit part, rounded down.
func (c Cents) Dollars() int64 {
	if c <= 0 {
		return 0
	}
	return int64(c) / 100
}

func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}
