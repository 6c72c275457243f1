package pos_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/pos"
)

func TestCalculateCartTotals(t *testing.T) {
	type testCase struct {
		name  string
		items []pos.CartItem
		want  pos.Totals
	}

	tests := []testCase{
		{
			name:  "Empty Cart",
			items: nil,
			want:  pos.Totals{},
		},
		{
			name: "Single Item",
			items: []pos.CartItem{
				{ID: "1", Name: "Hamer", Quantity: 2, PricePerUnit: 10, VATRate: 21},
			},
			want: pos.Totals{Subtotal: 20, TotalVAT: 4.2, Total: 24.2},
		},
		{
			name: "Discount Applied Before VAT",
			items: []pos.CartItem{
				{ID: "1", Name: "Zaag", Quantity: 1, PricePerUnit: 100, VATRate: 21, Discount: 10},
			},
			want: pos.Totals{Subtotal: 90, TotalVAT: 18.9, Total: 108.9},
		},
		{
			name: "Mixed Rates",
			items: []pos.CartItem{
				{ID: "1", Name: "Boek", Quantity: 1, PricePerUnit: 20, VATRate: 9},
				{ID: "2", Name: "Pen", Quantity: 4, PricePerUnit: 2.5, VATRate: 21, Discount: 50},
				{ID: "3", Name: "Advies", Quantity: 1, PricePerUnit: 50, VATRate: 0, IsManual: true},
			},
			want: pos.Totals{Subtotal: 75, TotalVAT: 2.85, Total: 77.85},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pos.CalculateCartTotals(tt.items)

			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.TotalVAT, got.TotalVAT, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.Equal(t, got.Subtotal+got.TotalVAT, got.Total)
		})
	}
}

func TestCalculateCartTotals_NoRounding(t *testing.T) {
	items := []pos.CartItem{{Quantity: 3, PricePerUnit: 0.1, VATRate: 21}}

	got := pos.CalculateCartTotals(items)

	net := 0.1 * 3.0
	assert.Equal(t, net, got.Subtotal)
	assert.Equal(t, net*21/100, got.TotalVAT)
	assert.NotEqual(t, 0.3, got.Subtotal)
}

func TestCalculateVATBreakdown(t *testing.T) {
	items := []pos.CartItem{
		{Quantity: 1, PricePerUnit: 20, VATRate: 9},
		{Quantity: 2, PricePerUnit: 10, VATRate: 21},
		{Quantity: 1, PricePerUnit: 5, VATRate: 21, Discount: 20},
	}

	got := pos.CalculateVATBreakdown(items)
	require.Len(t, got, 2)

	assert.InDelta(t, 20.0, got[9].Subtotal, 1e-9)
	assert.InDelta(t, 1.8, got[9].VAT, 1e-9)
	assert.InDelta(t, 24.0, got[21].Subtotal, 1e-9)
	assert.InDelta(t, 5.04, got[21].VAT, 1e-9)

	_, ok := got[0]
	assert.False(t, ok)

	assert.Equal(t, []float64{9, 21}, pos.SortedRates(got))
}

func TestCartTotalsMatchBreakdownForSingleRate(t *testing.T) {
	i1 := pos.CartItem{Quantity: 3, PricePerUnit: 7.99, VATRate: 21, Discount: 5}
	i2 := pos.CartItem{Quantity: 1.5, PricePerUnit: 12.35, VATRate: 21}

	totals := pos.CalculateCartTotals([]pos.CartItem{i1, i2})
	breakdown := pos.CalculateVATBreakdown([]pos.CartItem{i1, i2})

	assert.Equal(t, totals.TotalVAT, breakdown[21].VAT)
	assert.Equal(t, totals.Subtotal, breakdown[21].Subtotal)
}

func TestGenerateNumbers(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	trx := pos.GenerateTransactionNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^TRX-20261018-[0-9A-F]{6}$`), trx)

	pak := pos.GeneratePackingSlipNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^PAK-20261018-[0-9A-F]{6}$`), pak)
}
