package movement

import (
	"github.com/shopspring/decimal"

	"movistock/internal/core/types"
)

// Subtotal computes quantity × unit price, rounded to 2 decimal places
// (half away from zero). Inputs are raw form strings: empty or
// non-numeric values coerce to zero, never to an error. Negative input
// is treated like empty input, so the result is always non-negative.
func Subtotal(quantity, unitPrice string) types.Money {
	q := nonNegative(types.ParseAmount(quantity))
	p := nonNegative(types.ParseAmount(unitPrice))
	return types.Round2(q.Mul(p))
}

// Total sums the subtotals of all items, rounded to 2 decimal places.
func Total(items []LineItem) types.Money {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal)
	}
	return types.Round2(sum)
}

func nonNegative(m types.Money) types.Money {
	if m.IsNegative() {
		return decimal.Zero
	}
	return m
}
