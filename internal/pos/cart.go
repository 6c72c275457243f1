package pos

import "slices"

// CartItem is one line on the POS receipt. Percentages are 0-100.
type CartItem struct {
	ID              string  `json:"id"`
	InventoryItemID string  `json:"inventory_item_id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	PricePerUnit    float64 `json:"price_per_unit"`
	VATRate         float64 `json:"vat_rate"`
	Discount        float64 `json:"discount"`
	IsManual        bool    `json:"is_manual,omitempty"`
}

// Totals are plain running sums; nothing is rounded.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TotalVAT float64 `json:"total_vat"`
	Total    float64 `json:"total"`
}

// VATLine aggregates the lines that share a VAT rate.
type VATLine struct {
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
}

// lineAmounts returns the discounted net amount of an item and the VAT on it.
func lineAmounts(item CartItem) (float64, float64) {
	gross := item.PricePerUnit * item.Quantity
	discount := gross * item.Discount / 100
	net := gross - discount

	return net, net * item.VATRate / 100
}

func CalculateCartTotals(items []CartItem) Totals {
	var t Totals

	for _, item := range items {
		net, vat := lineAmounts(item)
		t.Subtotal += net
		t.TotalVAT += vat
	}

	t.Total = t.Subtotal + t.TotalVAT

	return t
}

// CalculateVATBreakdown groups net amounts and VAT by rate. Only rates
// present in items appear as keys.
func CalculateVATBreakdown(items []CartItem) map[float64]VATLine {
	breakdown := make(map[float64]VATLine)

	for _, item := range items {
		net, vat := lineAmounts(item)

		line := breakdown[item.VATRate]
		line.Subtotal += net
		line.VAT += vat
		breakdown[item.VATRate] = line
	}

	return breakdown
}

// SortedRates returns the keys of a breakdown in ascending order.
func SortedRates(breakdown map[float64]VATLine) []float64 {
	rates := make([]float64, 0, len(breakdown))
	for rate := range breakdown {
		rates = append(rates, rate)
	}

	slices.Sort(rates)

	return rates
}
