package entities

import "github.com/shopspring/decimal"

// Decimal is a fixed-point column (coordinates, budgets). It is written to
// JSON as a string, the way MySQL DECIMAL values reach the dashboard, and
// accepts either a JSON number or a numeric string on input.
type Decimal = decimal.Decimal

func NewDecimal(s string) (Decimal, error) { return decimal.NewFromString(s) }

// Dec is NewDecimal for literals known to be valid.
func Dec(s string) Decimal { return decimal.RequireFromString(s) }
