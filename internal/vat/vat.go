package vat

import (
	"math"
	"strings"
)

type RateType string

const (
	RateStandard RateType = "standard"
	RateReduced  RateType = "reduced"
	RateZero     RateType = "zero"
	RateCustom   RateType = "custom"
)

// Dutch VAT percentages.
const (
	StandardRate = 21.0
	ReducedRate  = 9.0
	ZeroRate     = 0.0
)

// Result is a forward calculation from an amount excluding VAT. Values are
// not rounded.
type Result struct {
	Subtotal         float64 `json:"subtotal"`
	VATAmount        float64 `json:"vat_amount"`
	Total            float64 `json:"total"`
	EffectiveVATRate float64 `json:"effective_vat_rate"`
}

// Reverse splits an amount including VAT. Exclusive and VAT are rounded to
// cents.
type Reverse struct {
	Exclusive float64 `json:"exclusive"`
	VAT       float64 `json:"vat"`
	Inclusive float64 `json:"inclusive"`
}

// ParseRateType maps a case-insensitive name to a RateType. Unknown names
// resolve to RateStandard.
func ParseRateType(s string) RateType {
	switch rt := RateType(strings.ToLower(strings.TrimSpace(s))); rt {
	case RateStandard, RateReduced, RateZero, RateCustom:
		return rt
	}

	return RateStandard
}

// EffectiveRate returns the percentage for rateType. A custom rate without a
// value, and any unknown rate type, use the standard rate.
func EffectiveRate(rateType RateType, customRate *float64) float64 {
	switch rateType {
	case RateReduced:
		return ReducedRate
	case RateZero:
		return ZeroRate
	case RateCustom:
		if customRate != nil {
			return *customRate
		}
	}

	return StandardRate
}

func Calculate(amount float64, rateType RateType, customRate *float64) Result {
	rate := EffectiveRate(rateType, customRate)
	vat := amount * rate / 100

	return Result{
		Subtotal:         amount,
		VATAmount:        vat,
		Total:            amount + vat,
		EffectiveVATRate: rate,
	}
}

// FromTotal derives the exclusive amount and VAT from a VAT-inclusive total.
func FromTotal(total, rate float64) Reverse {
	exclusive := total / (1 + rate/100)

	return Reverse{
		Exclusive: round2(exclusive),
		VAT:       round2(total - exclusive),
		Inclusive: total,
	}
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
