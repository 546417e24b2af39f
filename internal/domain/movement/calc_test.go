package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"movistock/internal/core/types"
)

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{name: "plain integers", quantity: "3", unitPrice: "2", want: "6.00"},
		{name: "rounding half away from zero", quantity: "3", unitPrice: "2.505", want: "7.52"},
		{name: "empty quantity coerces to zero", quantity: "", unitPrice: "10", want: "0.00"},
		{name: "empty price coerces to zero", quantity: "4", unitPrice: "", want: "0.00"},
		{name: "non-numeric quantity coerces to zero", quantity: "abc", unitPrice: "10", want: "0.00"},
		{name: "non-numeric price coerces to zero", quantity: "2", unitPrice: "1,50", want: "0.00"},
		{name: "negative input treated as empty", quantity: "-2", unitPrice: "5", want: "0.00"},
		{name: "decimal formatting irrelevant", quantity: "3.0", unitPrice: "2.00", want: "6.00"},
		{name: "whitespace tolerated", quantity: " 2 ", unitPrice: "1.25", want: "2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.quantity, tt.unitPrice)
			assert.Equal(t, tt.want, got.StringFixed(2))
			assert.False(t, got.IsNegative())
		})
	}
}

func TestSubtotal_FormattingEquivalence(t *testing.T) {
	// "3" and "3.000" are the same quantity; the parse result must not
	// depend on source formatting.
	assert.True(t, Subtotal("3", "2.505").Equal(Subtotal("3.000", "2.5050")))
}

func TestTotal(t *testing.T) {
	items := []LineItem{
		{Position: 1, Subtotal: Subtotal("3", "2.505")}, // 7.52
		{Position: 2, Subtotal: types.MustMoney("10.00")},
	}

	total := Total(items)
	assert.Equal(t, "17.52", total.StringFixed(2))

	// Idempotent without mutation
	assert.True(t, total.Equal(Total(items)))
}

func TestTotal_EmptyLedgerIsZero(t *testing.T) {
	assert.Equal(t, "0.00", Total(nil).StringFixed(2))
}

func TestTotal_EqualsSumOfSubtotals(t *testing.T) {
	l := NewLedger()
	l.Append()
	l.Append()

	quantities := []string{"1", "2.5", "oops"}
	prices := []string{"9.99", "4", "3"}
	sum := types.Zero()
	for pos := 1; pos <= 3; pos++ {
		item, _ := l.at(pos)
		item.Quantity = quantities[pos-1]
		item.UnitPrice = prices[pos-1]
		item.Subtotal = Subtotal(item.Quantity, item.UnitPrice)
		sum = sum.Add(item.Subtotal)
	}

	assert.True(t, Total(l.Items()).Equal(types.Round2(sum)))
}
