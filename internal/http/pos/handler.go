package pos

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/validate"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/pos"
)

type Handler struct {
	now func() time.Time
}

func NewHandler(now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(
		middleware.AllowContentType("application/json"),
		validate.Request[totalsRequest](validate.Body),
	).Post("/totals", h.totals)
	r.Post("/transaction-numbers", h.transactionNumber)
	r.Post("/packing-slip-numbers", h.packingSlipNumber)
}

type cartItemRequest struct {
	ID              string  `json:"id"`
	InventoryItemID string  `json:"inventory_item_id"`
	Name            string  `json:"name" validate:"required"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	PricePerUnit    float64 `json:"price_per_unit" validate:"gte=0"`
	VATRate         float64 `json:"vat_rate" validate:"gte=0,lte=100"`
	Discount        float64 `json:"discount" validate:"gte=0,lte=100"`
	IsManual        bool    `json:"is_manual"`
}

type totalsRequest struct {
	Items []cartItemRequest `json:"items" validate:"required,dive"`
}

type vatLineResponse struct {
	Rate     float64 `json:"rate"`
	Subtotal float64 `json:"subtotal"`
	VAT      float64 `json:"vat"`
}

type totalsResponse struct {
	pos.Totals
	Breakdown []vatLineResponse `json:"breakdown"`
}

type numberResponse struct {
	Number string `json:"number"`
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	req, _ := validate.From[totalsRequest](r.Context())

	items := make([]pos.CartItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = pos.CartItem(it)
	}

	breakdown := pos.CalculateVATBreakdown(items)

	resp := totalsResponse{
		Totals:    pos.CalculateCartTotals(items),
		Breakdown: make([]vatLineResponse, 0, len(breakdown)),
	}

	for _, rate := range pos.SortedRates(breakdown) {
		line := breakdown[rate]
		resp.Breakdown = append(resp.Breakdown, vatLineResponse{
			Rate:     rate,
			Subtotal: line.Subtotal,
			VAT:      line.VAT,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) transactionNumber(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, numberResponse{Number: pos.GenerateTransactionNumber(h.now())})
}

func (h *Handler) packingSlipNumber(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, numberResponse{Number: pos.GeneratePackingSlipNumber(h.now())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
