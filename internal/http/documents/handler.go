package documents

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/http/validate"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/numbering"
)

type Handler struct {
	svc *numbering.Service
}

func NewHandler(svc *numbering.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/counters", h.counters)
	r.With(validate.Request[typeParams](validate.Params)).Post("/{type}/next", h.next)
}

type typeParams struct {
	Type string `form:"type" validate:"required,oneof=general factuur offerte werkorder"`
}

type numberResponse struct {
	Type   numbering.DocumentType `json:"type"`
	Number string                 `json:"number"`
}

func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	params, _ := validate.From[typeParams](r.Context())

	dt, err := numbering.ParseDocumentType(params.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	number, err := h.svc.Next(r.Context(), dt)
	if err != nil {
		if errors.Is(err, numbering.ErrUnknownType) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		slog.Error("failed to issue document number", "type", dt, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(numberResponse{Type: dt, Number: number}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) counters(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Counters(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(c); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
