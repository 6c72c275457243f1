package vat

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/validate"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/vat"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(validate.Request[calculateQuery](validate.Query)).Get("/calculate", h.calculate)
	r.With(validate.Request[reverseQuery](validate.Query)).Get("/reverse", h.reverse)
}

type calculateQuery struct {
	Amount     *float64 `form:"amount" validate:"required"`
	RateType   string   `form:"rate_type" validate:"omitempty,oneof=standard reduced zero custom"`
	CustomRate *float64 `form:"custom_rate" validate:"required_if=RateType custom,omitempty,gte=0,lte=100"`
	Currency   string   `form:"currency" validate:"omitempty,len=3"`
}

type reverseQuery struct {
	Total    *float64 `form:"total" validate:"required"`
	Rate     *float64 `form:"rate" validate:"required,gte=0,lte=100"`
	Currency string   `form:"currency" validate:"omitempty,len=3"`
}

type calculateResponse struct {
	vat.Result
	Formatted formattedResult `json:"formatted"`
}

type formattedResult struct {
	Subtotal  string `json:"subtotal"`
	VATAmount string `json:"vat_amount"`
	Total     string `json:"total"`
}

type reverseResponse struct {
	vat.Reverse
	Formatted formattedReverse `json:"formatted"`
}

type formattedReverse struct {
	Exclusive string `json:"exclusive"`
	VAT       string `json:"vat"`
	Inclusive string `json:"inclusive"`
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	q, _ := validate.From[calculateQuery](r.Context())

	res := vat.Calculate(*q.Amount, vat.ParseRateType(q.RateType), q.CustomRate)

	writeJSON(w, calculateResponse{
		Result: res,
		Formatted: formattedResult{
			Subtotal:  vat.FormatCurrency(res.Subtotal, q.Currency),
			VATAmount: vat.FormatCurrency(res.VATAmount, q.Currency),
			Total:     vat.FormatCurrency(res.Total, q.Currency),
		},
	})
}

func (h *Handler) reverse(w http.ResponseWriter, r *http.Request) {
	q, _ := validate.From[reverseQuery](r.Context())

	res := vat.FromTotal(*q.Total, *q.Rate)

	writeJSON(w, reverseResponse{
		Reverse: res,
		Formatted: formattedReverse{
			Exclusive: vat.FormatCurrency(res.Exclusive, q.Currency),
			VAT:       vat.FormatCurrency(res.VAT, q.Currency),
			Inclusive: vat.FormatCurrency(res.Inclusive, q.Currency),
		},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
